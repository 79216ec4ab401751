package common

const (
	TransactionStatutEffectuee = "EFFECTUEE"

	DemandeStatutValide = "Validé"

	RemboursementStatutEnAttente = "EN_ATTENTE"
	RemboursementStatutPaye      = "PAYE"
	RemboursementStatutAnnule    = "ANNULE"
	RemboursementStatutEnRetard  = "EN_RETARD"

	MethodeVirementBancaire   = "VIREMENT_BANCAIRE"
	MethodeMobileMoney        = "MOBILE_MONEY"
	MethodeEspeces            = "ESPECES"
	MethodeCheque             = "CHEQUE"
	MethodePrelevementSalaire = "PRELEVEMENT_SALAIRE"
	MethodeCompensationAvance = "COMPENSATION_AVANCE"

	HistoriqueActionPaiement       = "PAIEMENT"
	HistoriqueActionPaiementEnLot  = "PAIEMENT_EN_LOT"
	HistoriqueActionPaiementGlobal = "PAIEMENT_PARTENAIRE"
	HistoriqueActionCallbackLengo  = "CALLBACK_LENGO"
	HistoriqueActionMarquageRetard = "MARQUAGE_RETARD"

	LengoStatusSuccess   = "SUCCESS"
	LengoStatusFailed    = "FAILED"
	LengoStatusCancelled = "CANCELLED"
	LengoStatusPending   = "PENDING"

	EventRemboursementCreated = "remboursement.created"
	EventRemboursementStatut  = "remboursement.statut"

	NotificationTypePaiement = "PAIEMENT_REMBOURSEMENT"
)

var MethodesPaiement = []string{
	MethodeVirementBancaire,
	MethodeMobileMoney,
	MethodeEspeces,
	MethodeCheque,
	MethodePrelevementSalaire,
	MethodeCompensationAvance,
}

var RemboursementStatuts = []string{
	RemboursementStatutEnAttente,
	RemboursementStatutPaye,
	RemboursementStatutAnnule,
	RemboursementStatutEnRetard,
}

// PayableStatuts are the statuses a payment operation may move to PAYE.
var PayableStatuts = []string{
	RemboursementStatutEnAttente,
	RemboursementStatutEnRetard,
}

func IsPayable(statut string) bool {
	for _, s := range PayableStatuts {
		if s == statut {
			return true
		}
	}
	return false
}
