package service

import "errors"

var (
	ErrBadAuth               = errors.New("bad auth")
	ErrTransactionNotFound   = errors.New("transaction not found or not completed")
	ErrRemboursementExists   = errors.New("a reimbursement already exists for this transaction")
	ErrRemboursementNotFound = errors.New("reimbursement not found")
	ErrNotPayable            = errors.New("reimbursement is not awaiting payment")
	ErrAlreadyProcessed      = errors.New("reimbursement was already processed")
	ErrUnknownRemboursements = errors.New("some reimbursements do not exist")
	ErrNothingToPay          = errors.New("no reimbursement awaiting payment")
	ErrPartnerNotFound       = errors.New("partner not found")
	ErrUnknownPayID          = errors.New("no reimbursement matches this pay_id")
	ErrInvalidCallback       = errors.New("pay_id and status are required")
	ErrInvalidMethode        = errors.New("invalid payment method")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrGatewayUnavailable    = errors.New("payment gateway unavailable")
)
