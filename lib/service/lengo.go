package service

import (
	"context"
	"fmt"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lengo"
	"github.com/uptrace/bun"
)

type LengoPaymentResult struct {
	PayID        string `json:"pay_id"`
	PaymentUrl   string `json:"payment_url"`
	Count        int    `json:"nombre_remboursements"`
	MontantTotal int64  `json:"montant_total"`
}

// InitierPaiementLengo asks Lengo Pay for a mobile money payment covering the selected
// reimbursements and links them to the returned pay_id. Their status changes only when
// the gateway calls back.
func (svc *ZalamaService) InitierPaiementLengo(ctx context.Context, selector Selector, account string) (*LengoPaymentResult, error) {
	if svc.LengoClient == nil {
		return nil, ErrGatewayUnavailable
	}
	payable, _, err := svc.selectPayable(ctx, selector, paymentMode{label: "lengo"})
	if err != nil {
		return nil, err
	}

	var total int64
	ids := make([]string, 0, len(payable))
	for _, r := range payable {
		total += r.MontantTotalRemboursement
		ids = append(ids, r.ID)
	}

	resp, err := svc.LengoClient.InitiatePayment(ctx, lengo.PaymentRequest{Amount: total, Account: account})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	_, err = svc.DB.NewUpdate().
		Model((*models.Remboursement)(nil)).
		Set("numero_transaction_remboursement = ?", resp.PayID).
		Set("methode_remboursement = ?", common.MethodeMobileMoney).
		Set("updated_at = ?", now()).
		Where("id IN (?)", bun.In(ids)).
		Where("statut IN (?)", bun.In(common.PayableStatuts)).
		Exec(ctx)
	if err != nil {
		// the gateway payment exists but cannot be reconciled, keep the pay_id in the logs
		return nil, fmt.Errorf("linking pay_id %s to %d remboursements: %w", resp.PayID, len(ids), wrapDBError(err))
	}

	svc.Logger.Infof("Initiated Lengo Pay payment %s for %d remboursements, %d GNF", resp.PayID, len(ids), total)
	return &LengoPaymentResult{
		PayID:        resp.PayID,
		PaymentUrl:   resp.PaymentUrl,
		Count:        len(ids),
		MontantTotal: total,
	}, nil
}
