package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

// ContactMetadataKey is the customer metadata key carrying the local contact id.
const ContactMetadataKey = "contact_id"

// CustomerResolver finds or lazily creates the remote customer for a contact.
type CustomerResolver struct {
	processor application.Processor
	mappings  application.CustomerMappingRepository
	callLog   application.CallLogger
	logger    *slog.Logger
}

func NewCustomerResolver(
	processor application.Processor,
	mappings application.CustomerMappingRepository,
	callLog application.CallLogger,
	logger *slog.Logger,
) *CustomerResolver {
	return &CustomerResolver{
		processor: processor,
		mappings:  mappings,
		callLog:   callLog,
		logger:    logger,
	}
}

// Resolve returns the contact's remote customer. The error is a *domain.NormalizedError
// for remote failures (including a customer deleted on the processor side) and a
// *application.ServiceError when the mapping table cannot be read or written.
func (r *CustomerResolver) Resolve(ctx context.Context, contact domain.Contact) (*application.Customer, error) {
	mapping, err := r.mappings.FindByContactID(ctx, contact.ID)
	if err != nil {
		r.logger.Error("failed to look up customer mapping", "contact_id", contact.ID, "error", err)
		return nil, application.NewInternalError(err)
	}

	if mapping == nil {
		return r.create(ctx, contact)
	}

	url := customerURL(mapping.RemoteCustomerID)
	customer, err := r.processor.GetCustomer(ctx, mapping.RemoteCustomerID)
	if err != nil {
		c := logFailure(ctx, r.callLog, url, emptyRequest, err)

		if procErr, ok := application.IsProcessorError(err); ok && procErr.IsNotFound() {
			r.logger.Warn("remote customer no longer exists, recreating",
				"contact_id", contact.ID,
				"customer_id", mapping.RemoteCustomerID,
			)
			if err := r.mappings.DeleteByContactID(ctx, contact.ID); err != nil {
				r.logger.Error("failed to delete stale customer mapping", "contact_id", contact.ID, "error", err)
				return nil, application.NewInternalError(err)
			}
			return r.create(ctx, contact)
		}

		return nil, c.ForHost()
	}

	r.callLog.LogCall(ctx, url, emptyRequest, customer, false)

	if customer.Deleted {
		r.logger.Warn("remote customer was deleted manually",
			"contact_id", contact.ID,
			"customer_id", customer.ID,
		)
		return nil, domain.NewCustomerDeletedError()
	}

	return customer, nil
}

func (r *CustomerResolver) create(ctx context.Context, contact domain.Contact) (*application.Customer, error) {
	const url = "customers"

	req := application.CustomerRequest{
		Email:       contact.Email,
		Description: fmt.Sprintf("Customer contact: %d", contact.ID),
		Metadata: map[string]string{
			ContactMetadataKey: strconv.FormatInt(contact.ID, 10),
		},
	}

	customer, err := r.processor.CreateCustomer(ctx, req, idempotencyKey(""))
	if err != nil {
		c := logFailure(ctx, r.callLog, url, req, err)
		return nil, c.ForHost()
	}

	r.callLog.LogCall(ctx, url, req, customer, false)

	err = r.mappings.Create(ctx, &domain.CustomerMapping{
		ContactID:        contact.ID,
		RemoteCustomerID: customer.ID,
	})
	if err != nil {
		// the remote customer stays orphaned
		r.logger.Error("failed to persist customer mapping",
			"contact_id", contact.ID,
			"customer_id", customer.ID,
			"error", err,
		)
		r.callLog.LogCall(ctx, url, req, map[string]any{
			"db": map[string]string{"create": err.Error()},
		}, true)
		return nil, application.NewInternalError(err)
	}

	r.logger.Info("created remote customer", "contact_id", contact.ID, "customer_id", customer.ID)
	return customer, nil
}
