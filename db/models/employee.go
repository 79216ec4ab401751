package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Employee : Employee Model
type Employee struct {
	bun.BaseModel `bun:"table:employees,alias:e"`

	ID           string    `json:"id" bun:",pk,type:uuid"`
	PartenaireID string    `json:"partenaire_id" bun:",type:uuid,notnull"`
	Nom          string    `json:"nom" bun:",notnull"`
	Prenom       string    `json:"prenom" bun:",notnull"`
	Telephone    string    `json:"telephone" bun:",nullzero"`
	Email        string    `json:"email" bun:",nullzero"`
	Actif        bool      `json:"actif" bun:",notnull"`
	CreatedAt    time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

func (e *Employee) NomComplet() string {
	return e.Prenom + " " + e.Nom
}

func (e *Employee) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Employee)(nil)
