package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

// Gateway is the operation surface the billing host calls, one method per host lifecycle call.
type Gateway struct {
	resolver     *CustomerResolver
	sources      *SourceManager
	transactions *TransactionProcessor
	logger       *slog.Logger
}

func NewGateway(
	processor application.Processor,
	mappings application.CustomerMappingRepository,
	invoices application.InvoiceLookup,
	callLog application.CallLogger,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		resolver:     NewCustomerResolver(processor, mappings, callLog, logger),
		sources:      NewSourceManager(processor, callLog, logger),
		transactions: NewTransactionProcessor(processor, invoices, callLog, logger),
		logger:       logger,
	}
}

// Capabilities

func (g *Gateway) RequiresCustomerPresent() bool { return false }
func (g *Gateway) RequiresCcStorage() bool       { return true }
func (g *Gateway) RequiresAchStorage() bool      { return true }

// Credit cards

func (g *Gateway) StoreCC(ctx context.Context, cmd StoreCCCommand) (*domain.PaymentAccount, error) {
	customer, err := g.resolver.Resolve(ctx, cmd.Contact)
	if err != nil {
		return nil, err
	}
	return g.sources.Store(ctx, customer, CardSourceRequest(cmd.Card), cmd.IdempotencyKey)
}

func (g *Gateway) UpdateCC(ctx context.Context, cmd UpdateCCCommand) (*domain.PaymentAccount, error) {
	customer, err := g.resolver.Resolve(ctx, cmd.Contact)
	if err != nil {
		return nil, err
	}
	return g.sources.Update(ctx, customer, cmd.ReferenceID, cmd.Card)
}

func (g *Gateway) RemoveCC(ctx context.Context, clientReferenceID, referenceID string) domain.AccountReference {
	return g.sources.Remove(ctx, clientReferenceID, referenceID)
}

func (g *Gateway) ProcessStoredCC(ctx context.Context, cmd ChargeCommand) (*domain.Transaction, error) {
	tx := g.transactions.Charge(ctx, cmd)
	return &tx, nil
}

func (g *Gateway) AuthorizeStoredCC(ctx context.Context, cmd ChargeCommand) (*domain.Transaction, error) {
	return nil, g.transactions.Unsupported()
}

func (g *Gateway) CaptureStoredCC(ctx context.Context, cmd CaptureCommand) (*domain.Transaction, error) {
	return nil, g.transactions.Unsupported()
}

func (g *Gateway) VoidStoredCC(ctx context.Context, cmd VoidCommand) (*domain.Transaction, error) {
	return g.void(ctx, cmd)
}

func (g *Gateway) RefundStoredCC(ctx context.Context, cmd RefundCommand) (*domain.Transaction, error) {
	tx := g.transactions.Refund(ctx, cmd)
	return &tx, nil
}

// ACH

func (g *Gateway) StoreACH(ctx context.Context, cmd StoreACHCommand) (*domain.PaymentAccount, error) {
	customer, err := g.resolver.Resolve(ctx, cmd.Contact)
	if err != nil {
		return nil, err
	}
	account, err := g.sources.Store(ctx, customer, BankAccountSourceRequest(cmd.Account, cmd.Currency), cmd.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	// the processor keeps only the holder type, so savings would read back as checking
	if cmd.Account.Type != "" && cmd.Account.Type.HolderType() == domain.AccountType(account.Type).HolderType() {
		account.Type = string(cmd.Account.Type)
	}
	return account, nil
}

func (g *Gateway) UpdateACH(ctx context.Context, cmd UpdateACHCommand) (*domain.PaymentAccount, error) {
	return nil, g.transactions.Unsupported()
}

func (g *Gateway) RemoveACH(ctx context.Context, clientReferenceID, referenceID string) domain.AccountReference {
	return g.sources.Remove(ctx, clientReferenceID, referenceID)
}

func (g *Gateway) ProcessStoredACH(ctx context.Context, cmd ChargeCommand) (*domain.Transaction, error) {
	tx := g.transactions.Charge(ctx, cmd)
	return &tx, nil
}

func (g *Gateway) VoidStoredACH(ctx context.Context, cmd VoidCommand) (*domain.Transaction, error) {
	return g.void(ctx, cmd)
}

func (g *Gateway) RefundStoredACH(ctx context.Context, cmd RefundCommand) (*domain.Transaction, error) {
	tx := g.transactions.Refund(ctx, cmd)
	return &tx, nil
}

func (g *Gateway) void(ctx context.Context, cmd VoidCommand) (*domain.Transaction, error) {
	tx := g.transactions.Refund(ctx, RefundCommand{
		ClientReferenceID:      cmd.ClientReferenceID,
		ReferenceID:            cmd.ReferenceID,
		TransactionReferenceID: cmd.TransactionReferenceID,
		TransactionID:          cmd.TransactionID,
		IdempotencyKey:         cmd.IdempotencyKey,
	})
	return &tx, nil
}
