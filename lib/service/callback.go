package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lengo"
	"github.com/uptrace/bun"
)

type CallbackResult struct {
	PayID            string `json:"pay_id"`
	GatewayStatus    string `json:"status"`
	Statut           string `json:"statut"`
	Updated          int    `json:"remboursements_mis_a_jour"`
	AlreadyProcessed bool   `json:"already_processed"`
}

// mapGatewayStatus translates a Lengo Pay status into a reimbursement status and the
// comment stored on the row.
func mapGatewayStatus(cb *lengo.Callback) (statut, commentaire string, known bool) {
	status, known := cb.NormalizedStatus()
	switch status {
	case common.LengoStatusSuccess:
		return common.RemboursementStatutPaye, fmt.Sprintf("Paiement Lengo Pay confirmé (%s): %s", cb.PayID, cb.Message), true
	case common.LengoStatusFailed:
		return common.RemboursementStatutAnnule, fmt.Sprintf("Paiement Lengo Pay échoué (%s): %s", cb.PayID, cb.Message), true
	case common.LengoStatusCancelled:
		return common.RemboursementStatutAnnule, fmt.Sprintf("Paiement Lengo Pay annulé (%s): %s", cb.PayID, cb.Message), true
	case common.LengoStatusPending:
		return common.RemboursementStatutEnAttente, fmt.Sprintf("Paiement Lengo Pay en attente (%s): %s", cb.PayID, cb.Message), true
	}
	return common.RemboursementStatutEnAttente, fmt.Sprintf("Statut Lengo Pay inconnu %q (%s): %s", cb.Status, cb.PayID, cb.Message), known
}

// ReconcileLengoCallback applies a gateway callback to every reimbursement linked to its pay_id.
// PAYE is terminal: replays and late failures on paid rows are acknowledged without writes.
func (svc *ZalamaService) ReconcileLengoCallback(ctx context.Context, cb *lengo.Callback) (*CallbackResult, error) {
	if strings.TrimSpace(cb.PayID) == "" || strings.TrimSpace(cb.Status) == "" {
		return nil, ErrInvalidCallback
	}
	rows := []models.Remboursement{}
	err := svc.DB.NewSelect().
		Model(&rows).
		Where("r.numero_transaction_remboursement = ?", cb.PayID).
		Scan(ctx)
	if err != nil {
		return nil, wrapDBError(err)
	}
	status, _ := cb.NormalizedStatus()
	if len(rows) == 0 {
		lengoCallbacks.WithLabelValues(status, "unknown_pay_id").Inc()
		return nil, fmt.Errorf("%w: %s", ErrUnknownPayID, cb.PayID)
	}

	statut, commentaire, known := mapGatewayStatus(cb)
	if !known {
		svc.Logger.Warnf("Unknown Lengo Pay status %q for pay_id %s", cb.Status, cb.PayID)
	}
	result := &CallbackResult{PayID: cb.PayID, GatewayStatus: status, Statut: statut}

	open := make([]models.Remboursement, 0, len(rows))
	for _, r := range rows {
		if r.Statut != common.RemboursementStatutPaye {
			open = append(open, r)
		}
	}
	if len(open) == 0 {
		result.AlreadyProcessed = true
		result.Statut = common.RemboursementStatutPaye
		lengoCallbacks.WithLabelValues(status, "already_processed").Inc()
		svc.Logger.Infof("Lengo Pay callback %s for already paid pay_id %s ignored", status, cb.PayID)
		return result, nil
	}

	ids := make([]string, 0, len(open))
	for _, r := range open {
		ids = append(ids, r.ID)
	}
	at := now()
	query := svc.DB.NewUpdate().Model((*models.Remboursement)(nil))
	if statut == common.RemboursementStatutEnAttente {
		// a waiting callback does not undo the overdue sweep
		query = query.Set("statut = CASE WHEN statut = ? THEN statut ELSE ? END", common.RemboursementStatutEnRetard, statut)
	} else {
		query = query.Set("statut = ?", statut)
	}
	query = query.
		Set("commentaire_partenaire = ?", commentaire).
		Set("updated_at = ?", at)
	numeroReception := cb.Client
	if numeroReception == "" {
		numeroReception = cb.PayID
	}
	if statut == common.RemboursementStatutPaye {
		query = query.
			Set("date_remboursement_effectue = ?", at).
			Set("numero_reception = ?", numeroReception)
	}
	res, err := query.
		Where("id IN (?)", bun.In(ids)).
		Where("statut != ?", common.RemboursementStatutPaye).
		Exec(ctx)
	if err != nil {
		return nil, wrapDBError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	result.Updated = int(affected)

	changed := []models.Remboursement{}
	entries := []models.HistoriqueRemboursement{}
	for _, r := range open {
		target := statutAfterCallback(r.Statut, statut)
		if r.Statut == target {
			continue
		}
		entries = append(entries, historyFor(r, common.HistoriqueActionCallbackLengo, target, commentaire, ""))
		r.Statut = target
		r.CommentairePartenaire = commentaire
		r.UpdatedAt = bun.NullTime{Time: at}
		if statut == common.RemboursementStatutPaye {
			r.NumeroReception = numeroReception
			r.DateRemboursementEffectue = bun.NullTime{Time: at}
		}
		changed = append(changed, r)
	}
	svc.insertHistory(ctx, entries)
	svc.publishStatut(changed)

	lengoCallbacks.WithLabelValues(status, "applied").Inc()
	svc.Logger.Infof("Lengo Pay callback %s applied to %d remboursements for pay_id %s", status, affected, cb.PayID)
	return result, nil
}

func statutAfterCallback(current, mapped string) string {
	if mapped == common.RemboursementStatutEnAttente && current == common.RemboursementStatutEnRetard {
		return current
	}
	return mapped
}

// HandleLengoCallback reconciles a callback relayed through the message broker.
func (svc *ZalamaService) HandleLengoCallback(ctx context.Context, cb *lengo.Callback) error {
	_, err := svc.ReconcileLengoCallback(ctx, cb)
	return err
}
