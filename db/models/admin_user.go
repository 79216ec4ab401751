package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AdminUser : back-office operator allowed to log in
type AdminUser struct {
	bun.BaseModel `bun:"table:admin_users,alias:au"`

	ID        string    `json:"id" bun:",pk,type:uuid"`
	Email     string    `json:"email" bun:",notnull,unique"`
	Nom       string    `json:"nom" bun:",nullzero"`
	Password  string    `json:"-" bun:",notnull"`
	Role      string    `json:"role" bun:",notnull"`
	Actif     bool      `json:"actif" bun:",notnull"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

func (a *AdminUser) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*AdminUser)(nil)
