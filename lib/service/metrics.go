package service

import (
	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	remboursementsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zalama_remboursements_created_total",
		Help: "Reimbursements created, by origin (manuel or sync).",
	}, []string{"origine"})

	remboursementsPaid = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zalama_remboursements_paid_total",
		Help: "Reimbursements moved to PAYE by a payment operation.",
	}, []string{"mode", "methode"})

	montantPaid = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zalama_remboursements_paid_amount_total",
		Help: "Sum of montant_total_remboursement paid, in GNF.",
	}, []string{"mode"})

	lengoCallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zalama_lengo_callbacks_total",
		Help: "Lengo Pay callbacks handled, by gateway status and outcome.",
	}, []string{"status", "outcome"})

	remboursementsOverdue = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zalama_remboursements_marked_overdue_total",
		Help: "Reimbursements moved to EN_RETARD by the overdue sweep.",
	})
)

func (svc *ZalamaService) captureErr(err error) {
	svc.Logger.Error(err)
	sentry.CaptureException(err)
}
