package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Transaction : money disbursed to an employee for a salary advance
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID                string    `json:"id" bun:",pk,type:uuid"`
	NumeroTransaction string    `json:"numero_transaction" bun:",notnull"`
	Montant           int64     `json:"montant" bun:",notnull"`
	Statut            string    `json:"statut" bun:",notnull"`
	DemandeAvanceID   string    `json:"demande_avance_id" bun:",type:uuid,nullzero"`
	EmployeID         string    `json:"employe_id" bun:",type:uuid,nullzero"`
	PartenaireID      string    `json:"partenaire_id" bun:",type:uuid,nullzero"`
	DateTransaction   time.Time `json:"date_transaction" bun:",nullzero"`
	CreatedAt         time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

func (t *Transaction) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Transaction)(nil)
