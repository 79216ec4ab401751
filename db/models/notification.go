package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Notification : in-app notification shown on the partner dashboard
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID           string    `json:"id" bun:",pk,type:uuid"`
	PartenaireID string    `json:"partenaire_id" bun:",type:uuid,nullzero"`
	Titre        string    `json:"titre" bun:",notnull"`
	Message      string    `json:"message" bun:",notnull"`
	Type         string    `json:"type" bun:",notnull"`
	Lu           bool      `json:"lu" bun:",notnull"`
	CreatedAt    time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

func (n *Notification) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Notification)(nil)
