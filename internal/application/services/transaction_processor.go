package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

// invalidTransactionID is reported for a declined charge the processor gave no id for.
const invalidTransactionID = "invalid"

// TransactionProcessor runs charges and refunds. Results are in-band: a declined
// charge or a failed refund is a Transaction with a failure status, not an error.
type TransactionProcessor struct {
	processor application.Processor
	invoices  application.InvoiceLookup
	callLog   application.CallLogger
	logger    *slog.Logger
}

func NewTransactionProcessor(
	processor application.Processor,
	invoices application.InvoiceLookup,
	callLog application.CallLogger,
	logger *slog.Logger,
) *TransactionProcessor {
	return &TransactionProcessor{
		processor: processor,
		invoices:  invoices,
		callLog:   callLog,
		logger:    logger,
	}
}

func (p *TransactionProcessor) Charge(ctx context.Context, cmd ChargeCommand) domain.Transaction {
	const url = "charges"

	descriptor := p.describe(ctx, cmd.Invoices)
	req := application.ChargeRequest{
		Amount:              cmd.Amount.MinorUnits(cmd.Currency),
		Currency:            strings.ToLower(cmd.Currency),
		Customer:            cmd.ClientReferenceID,
		Source:              cmd.ReferenceID,
		StatementDescriptor: descriptor,
		Description:         descriptor,
	}

	charge, err := p.processor.CreateCharge(ctx, req, idempotencyKey(cmd.IdempotencyKey))
	if err != nil {
		c := logFailure(ctx, p.callLog, url, req, err)

		tx := domain.Transaction{
			Status:        domain.StatusDeclined,
			Message:       domain.MsgDeclined,
			TransactionID: invalidTransactionID,
		}
		if procErr, ok := application.IsProcessorError(err); ok {
			if procErr.Message != "" {
				tx.Message = procErr.Message
			}
			if procErr.ChargeID != "" {
				tx.TransactionID = procErr.ChargeID
			}
		}
		if c.Error.Kind == domain.KindAuth {
			tx.Message = c.Error.Message
		}

		p.logger.Warn("charge declined",
			"customer_id", cmd.ClientReferenceID,
			"transaction_id", tx.TransactionID,
			"kind", c.Error.Kind,
		)
		return tx
	}

	p.callLog.LogCall(ctx, url, req, charge, false)

	return domain.Transaction{
		Status:        domain.StatusApproved,
		ReferenceID:   charge.BalanceTransaction,
		TransactionID: charge.ID,
	}
}

// Refund refunds cmd.Amount of the charge, or all of it as a void when Amount is nil.
func (p *TransactionProcessor) Refund(ctx context.Context, cmd RefundCommand) domain.Transaction {
	const url = "refunds"

	req := application.RefundRequest{Charge: cmd.TransactionID}
	if cmd.Amount != nil {
		amount := cmd.Amount.MinorUnits(cmd.Currency)
		req.Amount = &amount
	}

	refund, err := p.processor.CreateRefund(ctx, req, idempotencyKey(cmd.IdempotencyKey))
	if err != nil {
		c := logFailure(ctx, p.callLog, url, req, err)

		message := domain.MsgRefundFailed
		if c.Surfaced && c.Error.Field == "" && c.Error.Message != "" {
			message = c.Error.Message
		}

		p.logger.Warn("refund failed", "charge_id", cmd.TransactionID, "kind", c.Error.Kind)
		return domain.Transaction{
			Status:  domain.StatusError,
			Message: message,
		}
	}

	p.callLog.LogCall(ctx, url, req, refund, false)

	status := domain.StatusRefunded
	if cmd.Amount == nil {
		status = domain.StatusVoid
	}
	return domain.Transaction{
		Status:        status,
		TransactionID: refund.ID,
	}
}

// Unsupported is the answer to any operation the processor's object model has no equivalent for.
func (p *TransactionProcessor) Unsupported() error {
	return domain.NewUnsupportedError()
}

func (p *TransactionProcessor) describe(ctx context.Context, invoices []domain.InvoiceAmount) string {
	codes := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		code, err := p.invoices.FindInvoiceCode(ctx, inv.InvoiceID)
		if err != nil {
			if !errors.Is(err, application.ErrInvoiceNotFound) {
				p.logger.Warn("invoice lookup failed", "invoice_id", inv.InvoiceID, "error", err)
			}
			code = strconv.FormatInt(inv.InvoiceID, 10)
		}
		codes = append(codes, code)
	}
	return domain.StatementDescriptor(codes)
}
