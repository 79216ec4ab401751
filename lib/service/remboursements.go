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

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type Pagination struct {
	Limit  int
	Offset int
}

func (p Pagination) normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

type RemboursementFilter struct {
	PartenaireID string
	Statut       string
	Pagination
}

type PartnerRemboursementFilter struct {
	PartenaireID string
	Statut       string
	EmployeID    string
	// DateDebut and DateFin bound created_at, both days included
	DateDebut *time.Time
	DateFin   *time.Time
	Pagination
}

// RemboursementAvecRetard is a reimbursement with its days overdue computed at read time.
type RemboursementAvecRetard struct {
	models.Remboursement
	JoursRetard int64 `json:"jours_retard"`
}

type StatutStats struct {
	Nombre  int   `json:"nombre"`
	Montant int64 `json:"montant"`
}

type PartnerStats struct {
	Total        int         `json:"total"`
	MontantTotal int64       `json:"montant_total"`
	EnAttente    StatutStats `json:"en_attente"`
	Paye         StatutStats `json:"paye"`
	Annule       StatutStats `json:"annule"`
	EnRetard     StatutStats `json:"en_retard"`
}

func (svc *ZalamaService) CreateRemboursement(ctx context.Context, transactionID, commentaireAdmin string) (*models.Remboursement, *Frais, error) {
	tx := models.Transaction{}
	err := svc.DB.NewSelect().Model(&tx).Where("id = ?", transactionID).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrTransactionNotFound
		}
		return nil, nil, wrapDBError(err)
	}
	if tx.Statut != common.TransactionStatutEffectuee {
		return nil, nil, ErrTransactionNotFound
	}

	r, frais := svc.newRemboursement(&tx, now())
	r.CommentaireAdmin = commentaireAdmin

	// the unique index on transaction_id decides, there is no existence pre-check
	if _, err := svc.DB.NewInsert().Model(r).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRemboursementExists, transactionID)
		}
		return nil, nil, wrapDBError(err)
	}

	remboursementsCreated.WithLabelValues("manuel").Inc()
	svc.Logger.Infof("Created remboursement %s for transaction %s", r.ID, tx.ID)
	svc.publishCreated(*r)
	return r, &frais, nil
}

func (svc *ZalamaService) newRemboursement(tx *models.Transaction, createdAt time.Time) (*models.Remboursement, Frais) {
	frais := CalculerFrais(tx.Montant, svc.Config.FraisServiceTaux)
	return &models.Remboursement{
		TransactionID:             tx.ID,
		DemandeAvanceID:           tx.DemandeAvanceID,
		EmployeID:                 tx.EmployeID,
		PartenaireID:              tx.PartenaireID,
		MontantTransaction:        frais.MontantDemande,
		FraisService:              frais.FraisService,
		MontantTotalRemboursement: frais.MontantTotalRemboursement,
		Statut:                    common.RemboursementStatutEnAttente,
		MethodeRemboursement:      common.MethodeVirementBancaire,
		DateLimiteRemboursement:   createdAt.AddDate(0, 0, svc.Config.RemboursementDelaiJours),
		CreatedAt:                 createdAt,
	}, frais
}

func (svc *ZalamaService) FindRemboursement(ctx context.Context, id string) (*models.Remboursement, error) {
	r := models.Remboursement{}
	err := svc.DB.NewSelect().Model(&r).Where("r.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRemboursementNotFound
		}
		return nil, wrapDBError(err)
	}
	return &r, nil
}

func (svc *ZalamaService) ListRemboursements(ctx context.Context, filter RemboursementFilter) ([]models.Remboursement, int, error) {
	page := filter.Pagination.normalize()
	rows := []models.Remboursement{}
	query := svc.DB.NewSelect().
		Model(&rows).
		Relation("Employe").
		Relation("Partenaire").
		OrderExpr("r.created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset)
	if filter.PartenaireID != "" {
		query = query.Where("r.partenaire_id = ?", filter.PartenaireID)
	}
	if filter.Statut != "" {
		query = query.Where("r.statut = ?", filter.Statut)
	}
	count, err := query.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, wrapDBError(err)
	}
	return rows, count, nil
}

func (svc *ZalamaService) ListPartnerRemboursements(ctx context.Context, filter PartnerRemboursementFilter) ([]RemboursementAvecRetard, int, *PartnerStats, error) {
	page := filter.Pagination.normalize()
	rows := []models.Remboursement{}
	query := svc.DB.NewSelect().
		Model(&rows).
		Relation("Employe").
		Where("r.partenaire_id = ?", filter.PartenaireID).
		OrderExpr("r.created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset)
	if filter.Statut != "" {
		query = query.Where("r.statut = ?", filter.Statut)
	}
	if filter.EmployeID != "" {
		query = query.Where("r.employe_id = ?", filter.EmployeID)
	}
	if filter.DateDebut != nil {
		query = query.Where("r.created_at >= ?", filter.DateDebut.UTC())
	}
	if filter.DateFin != nil {
		query = query.Where("r.created_at < ?", filter.DateFin.UTC().AddDate(0, 0, 1))
	}
	count, err := query.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, nil, wrapDBError(err)
	}

	stats, err := svc.partnerStats(ctx, filter.PartenaireID)
	if err != nil {
		return nil, 0, nil, err
	}

	at := time.Now().UTC()
	result := make([]RemboursementAvecRetard, 0, len(rows))
	for _, r := range rows {
		result = append(result, RemboursementAvecRetard{Remboursement: r, JoursRetard: r.JoursRetard(at)})
	}
	return result, count, stats, nil
}

// partnerStats aggregates every reimbursement of the partner, ignoring list filters.
func (svc *ZalamaService) partnerStats(ctx context.Context, partenaireID string) (*PartnerStats, error) {
	var groups []struct {
		Statut  string `bun:"statut"`
		Nombre  int    `bun:"nombre"`
		Montant int64  `bun:"montant"`
	}
	err := svc.DB.NewSelect().
		Model((*models.Remboursement)(nil)).
		Column("statut").
		ColumnExpr("COUNT(*) AS nombre").
		ColumnExpr("COALESCE(SUM(montant_total_remboursement), 0) AS montant").
		Where("partenaire_id = ?", partenaireID).
		Group("statut").
		Scan(ctx, &groups)
	if err != nil {
		return nil, wrapDBError(err)
	}

	stats := &PartnerStats{}
	for _, g := range groups {
		s := StatutStats{Nombre: g.Nombre, Montant: g.Montant}
		stats.Total += g.Nombre
		stats.MontantTotal += g.Montant
		switch g.Statut {
		case common.RemboursementStatutEnAttente:
			stats.EnAttente = s
		case common.RemboursementStatutPaye:
			stats.Paye = s
		case common.RemboursementStatutAnnule:
			stats.Annule = s
		case common.RemboursementStatutEnRetard:
			stats.EnRetard = s
		}
	}
	return stats, nil
}

func (svc *ZalamaService) GetHistorique(ctx context.Context, remboursementID string) ([]models.HistoriqueRemboursement, error) {
	if _, err := svc.FindRemboursement(ctx, remboursementID); err != nil {
		return nil, err
	}
	entries := []models.HistoriqueRemboursement{}
	err := svc.DB.NewSelect().
		Model(&entries).
		Where("remboursement_id = ?", remboursementID).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, wrapDBError(err)
	}
	return entries, nil
}

// insertHistory appends one audit row per reimbursement. Failures are logged and never
// returned: the state change they describe is already committed.
func (svc *ZalamaService) insertHistory(ctx context.Context, entries []models.HistoriqueRemboursement) {
	if len(entries) == 0 {
		return
	}
	if _, err := svc.DB.NewInsert().Model(&entries).Exec(ctx); err != nil {
		svc.captureErr(fmt.Errorf("inserting %d historique rows: %w", len(entries), err))
	}
}

func historyFor(r models.Remboursement, action, statutApres, description, utilisateurID string) models.HistoriqueRemboursement {
	return models.HistoriqueRemboursement{
		RemboursementID: r.ID,
		Action:          action,
		MontantAvant:    r.MontantTotalRemboursement,
		MontantApres:    r.MontantTotalRemboursement,
		StatutAvant:     r.Statut,
		StatutApres:     statutApres,
		Description:     description,
		UtilisateurID:   utilisateurID,
	}
}

func (svc *ZalamaService) findByIDs(ctx context.Context, ids []string) ([]models.Remboursement, error) {
	rows := []models.Remboursement{}
	if len(ids) == 0 {
		return rows, nil
	}
	err := svc.DB.NewSelect().Model(&rows).Where("r.id IN (?)", bun.In(ids)).Scan(ctx)
	if err != nil {
		return nil, wrapDBError(err)
	}
	return rows, nil
}
