package application

import (
	"context"
	"errors"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

// Processor is the port for the remote payment processor.
// Create calls take an idempotency key so that a retried request is never applied twice.
type Processor interface {
	CreateCustomer(ctx context.Context, req CustomerRequest, idempotencyKey string) (*Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
	CreateSource(ctx context.Context, customerID string, req SourceRequest, idempotencyKey string) (*Source, error)
	GetSource(ctx context.Context, customerID, sourceID string) (*Source, error)
	UpdateSource(ctx context.Context, customerID, sourceID string, req SourceUpdate) (*Source, error)
	DeleteSource(ctx context.Context, customerID, sourceID string) (*Source, error)
	CreateCharge(ctx context.Context, req ChargeRequest, idempotencyKey string) (*Charge, error)
	CreateRefund(ctx context.Context, req RefundRequest, idempotencyKey string) (*Refund, error)
}

// CustomerMappingRepository is the port for the contact -> remote customer table.
// FindByContactID returns nil, nil when no mapping exists.
type CustomerMappingRepository interface {
	FindByContactID(ctx context.Context, contactID int64) (*domain.CustomerMapping, error)
	Create(ctx context.Context, mapping *domain.CustomerMapping) error
	DeleteByContactID(ctx context.Context, contactID int64) error
}

// InvoiceLookup resolves the display code of a host invoice.
type InvoiceLookup interface {
	FindInvoiceCode(ctx context.Context, invoiceID int64) (string, error)
}

// CallLogger records every remote call. Implementations must never fail the caller.
type CallLogger interface {
	LogCall(ctx context.Context, url string, request, response any, isError bool)
}
