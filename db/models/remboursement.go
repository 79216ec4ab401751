package models

import (
	"context"
	"math"
	"time"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Remboursement : partner's obligation to repay a disbursed advance
type Remboursement struct {
	bun.BaseModel `bun:"table:remboursements,alias:r"`

	ID                             string       `json:"id" bun:",pk,type:uuid"`
	TransactionID                  string       `json:"transaction_id" bun:",type:uuid,notnull"`
	Transaction                    *Transaction `json:"transaction,omitempty" bun:"rel:belongs-to,join:transaction_id=id"`
	DemandeAvanceID                string       `json:"demande_avance_id" bun:",type:uuid,nullzero"`
	EmployeID                      string       `json:"employe_id" bun:",type:uuid,nullzero"`
	Employe                        *Employee    `json:"employe,omitempty" bun:"rel:belongs-to,join:employe_id=id"`
	PartenaireID                   string       `json:"partenaire_id" bun:",type:uuid,notnull"`
	Partenaire                     *Partner     `json:"partenaire,omitempty" bun:"rel:belongs-to,join:partenaire_id=id"`
	MontantTransaction             int64        `json:"montant_transaction" bun:",notnull"`
	FraisService                   int64        `json:"frais_service" bun:",notnull"`
	MontantTotalRemboursement      int64        `json:"montant_total_remboursement" bun:",notnull"`
	Statut                         string       `json:"statut" bun:",notnull"`
	MethodeRemboursement           string       `json:"methode_remboursement" bun:",nullzero"`
	NumeroTransactionRemboursement string       `json:"numero_transaction_remboursement" bun:",nullzero"`
	NumeroReception                string       `json:"numero_reception" bun:",nullzero"`
	ReferencePaiement              string       `json:"reference_paiement" bun:",nullzero"`
	CommentaireAdmin               string       `json:"commentaire_admin" bun:",nullzero"`
	CommentairePartenaire          string       `json:"commentaire_partenaire" bun:",nullzero"`
	DateLimiteRemboursement        time.Time    `json:"date_limite_remboursement" bun:",notnull"`
	DateRemboursementEffectue      bun.NullTime `json:"date_remboursement_effectue"`
	CreatedAt                      time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt                      bun.NullTime `json:"updated_at"`
}

func (r *Remboursement) BeforeAppendModel(ctx context.Context, query bun.Query) error {
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

// JoursRetard returns the whole days elapsed since the repayment deadline.
// Only overdue rows carry a value, anything else is 0.
func (r *Remboursement) JoursRetard(now time.Time) int64 {
	if r.Statut != common.RemboursementStatutEnRetard {
		return 0
	}
	elapsed := now.Sub(r.DateLimiteRemboursement)
	if elapsed <= 0 {
		return 0
	}
	return int64(math.Floor(elapsed.Hours() / 24))
}

var _ bun.BeforeAppendModelHook = (*Remboursement)(nil)
