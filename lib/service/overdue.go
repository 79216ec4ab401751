package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/uptrace/bun"
)

// MarquerEnRetard moves every EN_ATTENTE reimbursement whose deadline is before at to EN_RETARD.
// Only EN_ATTENTE rows are touched, paid and cancelled ones keep their status.
func (svc *ZalamaService) MarquerEnRetard(ctx context.Context, at time.Time) (int, error) {
	at = at.UTC().Truncate(time.Second)
	due := []models.Remboursement{}
	err := svc.DB.NewSelect().
		Model(&due).
		Where("r.statut = ?", common.RemboursementStatutEnAttente).
		Where("r.date_limite_remboursement < ?", at).
		Scan(ctx)
	if err != nil {
		return 0, wrapDBError(err)
	}
	if len(due) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(due))
	for _, r := range due {
		ids = append(ids, r.ID)
	}
	res, err := svc.DB.NewUpdate().
		Model((*models.Remboursement)(nil)).
		Set("statut = ?", common.RemboursementStatutEnRetard).
		Set("updated_at = ?", now()).
		Where("id IN (?)", bun.In(ids)).
		Where("statut = ?", common.RemboursementStatutEnAttente).
		Where("date_limite_remboursement < ?", at).
		Exec(ctx)
	if err != nil {
		return 0, wrapDBError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	marked := due
	if int(affected) != len(due) {
		marked, err = svc.withStatut(ctx, due, common.RemboursementStatutEnRetard)
		if err != nil {
			return int(affected), err
		}
	}

	entries := make([]models.HistoriqueRemboursement, 0, len(marked))
	for _, r := range marked {
		jours := int64(at.Sub(r.DateLimiteRemboursement).Hours() / 24)
		entries = append(entries, historyFor(r, common.HistoriqueActionMarquageRetard, common.RemboursementStatutEnRetard,
			fmt.Sprintf("Échéance du %s dépassée de %d jour(s)", r.DateLimiteRemboursement.Format("2006-01-02"), jours), ""))
	}
	svc.insertHistory(ctx, entries)
	for i := range marked {
		marked[i].Statut = common.RemboursementStatutEnRetard
	}
	svc.publishStatut(marked)

	remboursementsOverdue.Add(float64(affected))
	svc.Logger.Infof("Marked %d remboursements as overdue", affected)
	return int(affected), nil
}

// withStatut keeps the candidates whose stored status is statut.
func (svc *ZalamaService) withStatut(ctx context.Context, candidates []models.Remboursement, statut string) ([]models.Remboursement, error) {
	ids := make([]string, 0, len(candidates))
	for _, r := range candidates {
		ids = append(ids, r.ID)
	}
	var matching []string
	err := svc.DB.NewSelect().
		Model((*models.Remboursement)(nil)).
		Column("id").
		Where("id IN (?)", bun.In(ids)).
		Where("statut = ?", statut).
		Scan(ctx, &matching)
	if err != nil {
		return nil, wrapDBError(err)
	}
	keep := make(map[string]bool, len(matching))
	for _, id := range matching {
		keep[id] = true
	}
	kept := make([]models.Remboursement, 0, len(matching))
	for _, r := range candidates {
		if keep[r.ID] {
			kept = append(kept, r)
		}
	}
	return kept, nil
}
