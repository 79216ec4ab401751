package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SalaryAdvanceRequest : the employee's original request for an advance.
// An empty NumeroReception means the request was not synchronized with its transaction yet.
type SalaryAdvanceRequest struct {
	bun.BaseModel `bun:"table:salary_advance_requests,alias:sar"`

	ID              string       `json:"id" bun:",pk,type:uuid"`
	EmployeID       string       `json:"employe_id" bun:",type:uuid,nullzero"`
	PartenaireID    string       `json:"partenaire_id" bun:",type:uuid,nullzero"`
	MontantDemande  int64        `json:"montant_demande" bun:",notnull"`
	Motif           string       `json:"motif" bun:",nullzero"`
	Statut          string       `json:"statut" bun:",notnull"`
	NumeroReception string       `json:"numero_reception" bun:",nullzero"`
	DateValidation  bun.NullTime `json:"date_validation"`
	CreatedAt       time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt       bun.NullTime `json:"updated_at"`
}

func (r *SalaryAdvanceRequest) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
	case *bun.UpdateQuery:
		r.UpdatedAt = bun.NullTime{Time: time.Now().UTC()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*SalaryAdvanceRequest)(nil)
