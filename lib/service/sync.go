package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/db/models"
)

var (
	errRequestNotFound    = errors.New("demande d'avance introuvable")
	errTransactionNoOwner = errors.New("transaction sans partenaire")
)

type SyncError struct {
	TransactionID string `json:"transaction_id"`
	Error         string `json:"error"`
}

type SyncResult struct {
	Total   int         `json:"total"`
	Updated int         `json:"updated"`
	Skipped int         `json:"skipped"`
	Created int         `json:"remboursements_crees"`
	Errors  []SyncError `json:"errors"`
}

// SyncPaymentStatus copies completed transactions back onto their advance requests and makes
// sure each of them has its reimbursement. Row failures are collected, never fatal.
func (svc *ZalamaService) SyncPaymentStatus(ctx context.Context, requestID string) (*SyncResult, error) {
	transactions := []models.Transaction{}
	query := svc.DB.NewSelect().
		Model(&transactions).
		Where("statut = ?", common.TransactionStatutEffectuee).
		Where("demande_avance_id IS NOT NULL").
		OrderExpr("date_transaction ASC")
	if requestID != "" {
		query = query.Where("demande_avance_id = ?", requestID)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, wrapDBError(err)
	}

	result := &SyncResult{Total: len(transactions), Errors: []SyncError{}}
	for i := range transactions {
		tx := &transactions[i]

		// each transaction ends up in exactly one of updated, skipped or errors
		created, err := svc.ensureRemboursement(ctx, tx)
		if err != nil {
			result.Errors = append(result.Errors, svc.syncError(tx, err))
			continue
		}
		if created {
			result.Created++
		}

		updated, err := svc.syncRequest(ctx, tx)
		switch {
		case err != nil:
			result.Errors = append(result.Errors, svc.syncError(tx, err))
		case updated:
			result.Updated++
		default:
			result.Skipped++
		}
	}
	svc.Logger.Infof("Payment status sync: %d transactions, %d updated, %d skipped, %d remboursements created, %d errors",
		result.Total, result.Updated, result.Skipped, result.Created, len(result.Errors))
	return result, nil
}

// syncRequest marks the advance request as validated. A request that already carries a
// numero_reception was synchronized before and is left alone.
func (svc *ZalamaService) syncRequest(ctx context.Context, tx *models.Transaction) (bool, error) {
	request := models.SalaryAdvanceRequest{}
	err := svc.DB.NewSelect().Model(&request).Where("id = ?", tx.DemandeAvanceID).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("%w: %s", errRequestNotFound, tx.DemandeAvanceID)
		}
		return false, wrapDBError(err)
	}
	if request.NumeroReception != "" {
		return false, nil
	}

	validatedAt := tx.DateTransaction
	if validatedAt.IsZero() {
		validatedAt = now()
	}
	res, err := svc.DB.NewUpdate().
		Model((*models.SalaryAdvanceRequest)(nil)).
		Set("statut = ?", common.DemandeStatutValide).
		Set("date_validation = ?", validatedAt).
		Set("numero_reception = ?", tx.NumeroTransaction).
		Set("updated_at = ?", now()).
		Where("id = ?", request.ID).
		Where("numero_reception IS NULL").
		Exec(ctx)
	if err != nil {
		return false, wrapDBError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ensureRemboursement inserts the reimbursement of a transaction unless one exists.
// transaction_id is the idempotency key shared with manual creation.
func (svc *ZalamaService) ensureRemboursement(ctx context.Context, tx *models.Transaction) (bool, error) {
	if tx.PartenaireID == "" {
		return false, fmt.Errorf("%w: %s", errTransactionNoOwner, tx.ID)
	}
	r, _ := svc.newRemboursement(tx, now())
	res, err := svc.DB.NewInsert().
		Model(r).
		On("CONFLICT (transaction_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, wrapDBError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}
	remboursementsCreated.WithLabelValues("sync").Inc()
	svc.publishCreated(*r)
	return true, nil
}

// syncError reports a row failure to the caller without exposing storage error text.
func (svc *ZalamaService) syncError(tx *models.Transaction, err error) SyncError {
	svc.captureErr(fmt.Errorf("sync transaction %s: %w", tx.ID, err))
	msg := "Erreur de base de données"
	switch {
	case errors.Is(err, ErrPermissionDenied):
		msg = "Permission refusée: le service n'a pas les droits suffisants sur la base de données"
	case errors.Is(err, errRequestNotFound), errors.Is(err, errTransactionNoOwner):
		msg = err.Error()
	}
	return SyncError{TransactionID: tx.ID, Error: msg}
}
