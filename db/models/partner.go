package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Partner : employer company that repays the advances of its employees
type Partner struct {
	bun.BaseModel `bun:"table:partners,alias:p"`

	ID        string    `json:"id" bun:",pk,type:uuid"`
	Nom       string    `json:"nom" bun:",notnull"`
	Email     string    `json:"email" bun:",nullzero"`
	EmailRH   string    `json:"email_rh" bun:"email_rh,nullzero"`
	Telephone string    `json:"telephone" bun:",nullzero"`
	Actif     bool      `json:"actif" bun:",notnull"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

func (p *Partner) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Partner)(nil)
