package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/uptrace/bun"
)

// Selector picks the reimbursements a payment applies to: either an explicit id set
// or every payable reimbursement of a partner.
type Selector struct {
	IDs          []string
	PartenaireID string
}

type PaymentDetails struct {
	Methode           string
	NumeroTransaction string
	NumeroReception   string
	ReferencePaiement string
	Commentaire       string
	// AdminID is recorded on the history rows
	AdminID string
}

type PaymentResult struct {
	Remboursements []models.Remboursement
	Count          int
	MontantTotal   int64
	Partenaire     *models.Partner
	PaidAt         time.Time
}

type paymentMode struct {
	action string
	label  string
	// single payments report 409 when the row is not payable, batches 400
	single bool
}

var (
	modeUnitaire   = paymentMode{action: common.HistoriqueActionPaiement, label: "unitaire", single: true}
	modeLot        = paymentMode{action: common.HistoriqueActionPaiementEnLot, label: "lot"}
	modePartenaire = paymentMode{action: common.HistoriqueActionPaiementGlobal, label: "partenaire"}
)

func ValidMethode(methode string) bool {
	for _, m := range common.MethodesPaiement {
		if m == methode {
			return true
		}
	}
	return false
}

func (svc *ZalamaService) PayRemboursement(ctx context.Context, remboursementID string, details PaymentDetails) (*models.Remboursement, error) {
	result, err := svc.payRemboursements(ctx, Selector{IDs: []string{remboursementID}}, details, modeUnitaire)
	if err != nil {
		return nil, err
	}
	return svc.FindRemboursement(ctx, result.Remboursements[0].ID)
}

func (svc *ZalamaService) PayRemboursementsBatch(ctx context.Context, ids []string, details PaymentDetails) (*PaymentResult, error) {
	return svc.payRemboursements(ctx, Selector{IDs: ids}, details, modeLot)
}

func (svc *ZalamaService) PayPartner(ctx context.Context, partenaireID string, details PaymentDetails) (*PaymentResult, error) {
	return svc.payRemboursements(ctx, Selector{PartenaireID: partenaireID}, details, modePartenaire)
}

// selectPayable resolves the selector and keeps the rows a payment may move to PAYE.
func (svc *ZalamaService) selectPayable(ctx context.Context, selector Selector, mode paymentMode) ([]models.Remboursement, *models.Partner, error) {
	var rows []models.Remboursement
	var partner *models.Partner
	var err error

	if selector.PartenaireID != "" {
		partner, err = svc.findPartner(ctx, selector.PartenaireID)
		if err != nil {
			return nil, nil, err
		}
		rows = []models.Remboursement{}
		err = svc.DB.NewSelect().
			Model(&rows).
			Where("r.partenaire_id = ?", selector.PartenaireID).
			Where("r.statut IN (?)", bun.In(common.PayableStatuts)).
			OrderExpr("r.created_at ASC").
			Scan(ctx)
		if err != nil {
			return nil, nil, wrapDBError(err)
		}
	} else {
		ids := uniqueIDs(selector.IDs)
		if len(ids) == 0 {
			return nil, nil, ErrRemboursementNotFound
		}
		rows, err = svc.findByIDs(ctx, ids)
		if err != nil {
			return nil, nil, err
		}
		if len(rows) != len(ids) {
			if mode.single {
				return nil, nil, ErrRemboursementNotFound
			}
			return nil, nil, fmt.Errorf("%w: %d of %d found", ErrUnknownRemboursements, len(rows), len(ids))
		}
	}

	payable := make([]models.Remboursement, 0, len(rows))
	for _, r := range rows {
		if common.IsPayable(r.Statut) {
			payable = append(payable, r)
		}
	}
	if len(payable) == 0 {
		if mode.single {
			return nil, nil, fmt.Errorf("%w: statut %s", ErrNotPayable, rows[0].Statut)
		}
		return nil, nil, ErrNothingToPay
	}
	return payable, partner, nil
}

func (svc *ZalamaService) payRemboursements(ctx context.Context, selector Selector, details PaymentDetails, mode paymentMode) (*PaymentResult, error) {
	if !ValidMethode(details.Methode) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMethode, details.Methode)
	}
	payable, partner, err := svc.selectPayable(ctx, selector, mode)
	if err != nil {
		return nil, err
	}

	paidAt := now()
	ids := make([]string, 0, len(payable))
	for _, r := range payable {
		ids = append(ids, r.ID)
	}

	query := svc.DB.NewUpdate().
		Model((*models.Remboursement)(nil)).
		Set("statut = ?", common.RemboursementStatutPaye).
		Set("date_remboursement_effectue = ?", paidAt).
		Set("methode_remboursement = ?", details.Methode).
		Set("numero_transaction_remboursement = ?", details.NumeroTransaction).
		Set("updated_at = ?", paidAt)
	if details.NumeroReception != "" {
		query = query.Set("numero_reception = ?", details.NumeroReception)
	}
	if details.ReferencePaiement != "" {
		query = query.Set("reference_paiement = ?", details.ReferencePaiement)
	}
	if details.Commentaire != "" {
		query = query.Set("commentaire_partenaire = ?", details.Commentaire)
	}
	// the status condition is the only guard against paying the same row twice
	res, err := query.
		Where("id IN (?)", bun.In(ids)).
		Where("statut IN (?)", bun.In(common.PayableStatuts)).
		Exec(ctx)
	if err != nil {
		return nil, wrapDBError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAlreadyProcessed
	}

	paid := payable
	if int(affected) != len(payable) {
		// a concurrent call paid some of the rows first, keep only ours
		paid, err = svc.paidBy(ctx, payable, details.NumeroTransaction, paidAt)
		if err != nil {
			return nil, err
		}
	}

	entries := make([]models.HistoriqueRemboursement, 0, len(paid))
	result := &PaymentResult{Partenaire: partner, PaidAt: paidAt}
	for _, r := range paid {
		entries = append(entries, historyFor(r, mode.action, common.RemboursementStatutPaye,
			paymentDescription(mode, details, r), details.AdminID))
		result.MontantTotal += r.MontantTotalRemboursement
	}
	svc.insertHistory(ctx, entries)

	for i := range paid {
		paid[i].Statut = common.RemboursementStatutPaye
		paid[i].DateRemboursementEffectue = bun.NullTime{Time: paidAt}
		paid[i].MethodeRemboursement = details.Methode
		paid[i].NumeroTransactionRemboursement = details.NumeroTransaction
	}
	result.Remboursements = paid
	result.Count = len(paid)

	remboursementsPaid.WithLabelValues(mode.label, details.Methode).Add(float64(result.Count))
	montantPaid.WithLabelValues(mode.label).Add(float64(result.MontantTotal))
	svc.Logger.Infof("Paid %d remboursements (%s) for %d GNF, numero_transaction %s", result.Count, mode.label, result.MontantTotal, details.NumeroTransaction)

	go svc.notifyPayment(ctx, result, details)
	svc.publishStatut(paid)
	return result, nil
}

// paidBy keeps the rows of candidates that this payment actually updated.
func (svc *ZalamaService) paidBy(ctx context.Context, candidates []models.Remboursement, numeroTransaction string, paidAt time.Time) ([]models.Remboursement, error) {
	ids := make([]string, 0, len(candidates))
	for _, r := range candidates {
		ids = append(ids, r.ID)
	}
	var updatedIDs []string
	err := svc.DB.NewSelect().
		Model((*models.Remboursement)(nil)).
		Column("id").
		Where("id IN (?)", bun.In(ids)).
		Where("statut = ?", common.RemboursementStatutPaye).
		Where("numero_transaction_remboursement = ?", numeroTransaction).
		Where("date_remboursement_effectue = ?", paidAt).
		Scan(ctx, &updatedIDs)
	if err != nil {
		return nil, wrapDBError(err)
	}
	updated := make(map[string]bool, len(updatedIDs))
	for _, id := range updatedIDs {
		updated[id] = true
	}
	kept := make([]models.Remboursement, 0, len(updatedIDs))
	for _, r := range candidates {
		if updated[r.ID] {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

func paymentDescription(mode paymentMode, details PaymentDetails, r models.Remboursement) string {
	desc := fmt.Sprintf("Paiement %s de %d GNF par %s, transaction %s", mode.label, r.MontantTotalRemboursement, details.Methode, details.NumeroTransaction)
	if details.Commentaire != "" {
		desc += ": " + details.Commentaire
	}
	return desc
}

func (svc *ZalamaService) findPartner(ctx context.Context, id string) (*models.Partner, error) {
	partner := models.Partner{}
	err := svc.DB.NewSelect().Model(&partner).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPartnerNotFound
		}
		return nil, wrapDBError(err)
	}
	return &partner, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
