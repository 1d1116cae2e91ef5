package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

// SourceManager stores, updates and removes the payment sources of a remote customer.
type SourceManager struct {
	processor application.Processor
	callLog   application.CallLogger
	logger    *slog.Logger
}

func NewSourceManager(processor application.Processor, callLog application.CallLogger, logger *slog.Logger) *SourceManager {
	return &SourceManager{
		processor: processor,
		callLog:   callLog,
		logger:    logger,
	}
}

// CardSourceRequest builds the source for a card. A merchant token replaces the raw card fields.
func CardSourceRequest(card domain.CardInfo) application.SourceRequest {
	if card.MerchantToken != "" {
		return application.SourceRequest{Token: card.MerchantToken}
	}

	return application.SourceRequest{
		Card: &application.CardDetails{
			Number:         card.CardNumber,
			ExpMonth:       card.ExpMonth(),
			ExpYear:        card.ExpYear(),
			CVC:            card.SecurityCode,
			Name:           card.HolderName(""),
			AddressLine1:   card.Address1,
			AddressLine2:   card.Address2,
			AddressZip:     card.Zip,
			AddressState:   card.State.Code,
			AddressCountry: card.Country.Alpha3,
		},
	}
}

// BankAccountSourceRequest builds the source for a bank account charged in currency.
func BankAccountSourceRequest(account domain.AchInfo, currency string) application.SourceRequest {
	if account.MerchantToken != "" {
		return application.SourceRequest{Token: account.MerchantToken}
	}

	return application.SourceRequest{
		BankAccount: &application.BankAccountDetails{
			AccountNumber:     account.AccountNumber,
			RoutingNumber:     account.RoutingNumber,
			AccountHolderName: account.HolderName(""),
			AccountHolderType: account.Type.HolderType(),
			Currency:          strings.ToLower(currency),
			Country:           account.Country.Alpha2,
		},
	}
}

func (m *SourceManager) Store(ctx context.Context, customer *application.Customer, req application.SourceRequest, idemKey string) (*domain.PaymentAccount, error) {
	url := sourcesURL(customer.ID)

	src, err := m.processor.CreateSource(ctx, customer.ID, req, idempotencyKey(idemKey))
	if err != nil {
		c := logFailure(ctx, m.callLog, url, req, err)
		m.logger.Warn("failed to store source", "customer_id", customer.ID, "kind", c.Error.Kind)
		return nil, c.ForHost()
	}

	m.callLog.LogCall(ctx, url, req, src, false)
	return toPaymentAccount(customer.ID, src), nil
}

// Update overwrites the supplied card fields and keeps the stored value for the rest.
func (m *SourceManager) Update(ctx context.Context, customer *application.Customer, sourceID string, card domain.CardInfo) (*domain.PaymentAccount, error) {
	url := sourceURL(customer.ID, sourceID)

	existing, err := m.processor.GetSource(ctx, customer.ID, sourceID)
	if err != nil {
		c := logFailure(ctx, m.callLog, url, emptyRequest, err)
		return nil, c.ForHost()
	}

	update := application.SourceUpdate{
		ExpMonth:       fmt.Sprintf("%02d", existing.ExpMonth),
		ExpYear:        fmt.Sprintf("%d", existing.ExpYear),
		Name:           card.HolderName(existing.Name),
		AddressLine1:   ifSet(card.Address1, existing.AddressLine1),
		AddressLine2:   ifSet(card.Address2, existing.AddressLine2),
		AddressZip:     ifSet(card.Zip, existing.AddressZip),
		AddressState:   ifSet(card.State.Code, existing.AddressState),
		AddressCountry: ifSet(card.Country.Alpha3, existing.AddressCountry),
	}
	if card.CardExp != "" {
		update.ExpMonth = card.ExpMonth()
		update.ExpYear = card.ExpYear()
	}

	updated, err := m.processor.UpdateSource(ctx, customer.ID, existing.ID, update)
	if err != nil {
		c := logFailure(ctx, m.callLog, url, update, err)
		return nil, c.ForHost()
	}

	m.callLog.LogCall(ctx, url, update, updated, false)
	return toPaymentAccount(customer.ID, updated), nil
}

// Remove deletes a source. It always returns the reference pair it was given: failures
// are logged and never reported.
func (m *SourceManager) Remove(ctx context.Context, clientReferenceID, referenceID string) domain.AccountReference {
	ref := domain.AccountReference{
		ClientReferenceID: clientReferenceID,
		ReferenceID:       referenceID,
	}
	url := sourceURL(clientReferenceID, referenceID)

	if err := m.remove(ctx, clientReferenceID, referenceID, url); err != nil {
		m.logger.Warn("failed to remove source",
			"customer_id", clientReferenceID,
			"source_id", referenceID,
			"error", err,
		)
	}

	return ref
}

func (m *SourceManager) remove(ctx context.Context, customerID, sourceID, url string) error {
	customer, err := m.processor.GetCustomer(ctx, customerID)
	if err != nil {
		logFailure(ctx, m.callLog, url, emptyRequest, err)
		return err
	}

	src, err := m.processor.GetSource(ctx, customer.ID, sourceID)
	if err != nil {
		logFailure(ctx, m.callLog, url, emptyRequest, err)
		return err
	}

	deleted, err := m.processor.DeleteSource(ctx, customer.ID, src.ID)
	if err != nil {
		logFailure(ctx, m.callLog, url, emptyRequest, err)
		return err
	}

	m.callLog.LogCall(ctx, url, emptyRequest, deleted, false)
	return nil
}
