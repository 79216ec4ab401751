package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/notify"
	"github.com/uptrace/bun"
)

const notifyTimeout = 15 * time.Second

// notifyPayment writes the dashboard notification and texts/emails every partner
// whose reimbursements were paid. It runs after the payment has answered and
// nothing here fails it.
func (svc *ZalamaService) notifyPayment(ctx context.Context, result *PaymentResult, details PaymentDetails) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	type partnerTotal struct {
		count   int
		montant int64
	}
	totals := map[string]*partnerTotal{}
	order := []string{}
	for _, r := range result.Remboursements {
		if totals[r.PartenaireID] == nil {
			totals[r.PartenaireID] = &partnerTotal{}
			order = append(order, r.PartenaireID)
		}
		totals[r.PartenaireID].count++
		totals[r.PartenaireID].montant += r.MontantTotalRemboursement
	}

	partners := map[string]models.Partner{}
	if result.Partenaire != nil {
		partners[result.Partenaire.ID] = *result.Partenaire
	} else {
		rows := []models.Partner{}
		if err := svc.DB.NewSelect().Model(&rows).Where("id IN (?)", bun.In(order)).Scan(ctx); err != nil {
			svc.captureErr(fmt.Errorf("loading partners to notify: %w", err))
		}
		for _, p := range rows {
			partners[p.ID] = p
		}
	}

	for _, partenaireID := range order {
		total := totals[partenaireID]
		msg := notify.Message{
			Subject: "Confirmation de remboursement ZaLaMa",
			Text: fmt.Sprintf("Votre paiement de %d GNF couvrant %d remboursement(s) a été enregistré (%s, transaction %s).",
				total.montant, total.count, details.Methode, details.NumeroTransaction),
		}
		notification := &models.Notification{
			PartenaireID: partenaireID,
			Titre:        msg.Subject,
			Message:      msg.Text,
			Type:         common.NotificationTypePaiement,
		}
		if _, err := svc.DB.NewInsert().Model(notification).Exec(ctx); err != nil {
			svc.captureErr(fmt.Errorf("inserting notification for partner %s: %w", partenaireID, err))
		}

		partner, ok := partners[partenaireID]
		if !ok || svc.Notifier == nil {
			continue
		}
		to := notify.Recipient{Name: partner.Nom, Phone: partner.Telephone, Email: partner.EmailRH}
		if to.Email == "" {
			to.Email = partner.Email
		}
		if err := svc.Notifier.Send(ctx, to, msg); err != nil {
			svc.captureErr(fmt.Errorf("notifying partner %s: %w", partenaireID, err))
		}
	}
}
