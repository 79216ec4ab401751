package service

import (
	"github.com/shopspring/decimal"
)

type Frais struct {
	MontantDemande            int64 `json:"montant_demande"`
	FraisService              int64 `json:"frais_service"`
	MontantRecuEmploye        int64 `json:"montant_recu_employe"`
	MontantTotalRemboursement int64 `json:"montant_total_remboursement"`
}

// CalculerFrais computes the platform fee on an advance. The fee is withheld from
// the employee, the partner always owes the full amount.
func CalculerFrais(montant int64, taux decimal.Decimal) Frais {
	frais := decimal.NewFromInt(montant).Mul(taux).Round(0).IntPart()
	return Frais{
		MontantDemande:            montant,
		FraisService:              frais,
		MontantRecuEmploye:        montant - frais,
		MontantTotalRemboursement: montant,
	}
}
