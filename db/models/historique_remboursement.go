package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// HistoriqueRemboursement : append-only audit entry of a reimbursement
type HistoriqueRemboursement struct {
	bun.BaseModel `bun:"table:historique_remboursements,alias:h"`

	ID              string    `json:"id" bun:",pk,type:uuid"`
	RemboursementID string    `json:"remboursement_id" bun:",type:uuid,notnull"`
	Action          string    `json:"action" bun:",notnull"`
	MontantAvant    int64     `json:"montant_avant"`
	MontantApres    int64     `json:"montant_apres"`
	StatutAvant     string    `json:"statut_avant" bun:",nullzero"`
	StatutApres     string    `json:"statut_apres" bun:",nullzero"`
	Description     string    `json:"description" bun:",nullzero"`
	UtilisateurID   string    `json:"utilisateur_id" bun:",nullzero"`
	CreatedAt       time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

func (h *HistoriqueRemboursement) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		if h.ID == "" {
			h.ID = uuid.NewString()
		}
		if h.CreatedAt.IsZero() {
			h.CreatedAt = time.Now().UTC()
		}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*HistoriqueRemboursement)(nil)
