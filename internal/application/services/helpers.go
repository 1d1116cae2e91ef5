package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

// emptyRequest is logged as the request side of calls that carry no body.
var emptyRequest = map[string]any{}

func idempotencyKey(supplied string) string {
	if supplied != "" {
		return supplied
	}
	return uuid.NewString()
}

func customerURL(customerID string) string {
	return "customers/" + customerID
}

func sourcesURL(customerID string) string {
	return fmt.Sprintf("customers/%s/sources", customerID)
}

func sourceURL(customerID, sourceID string) string {
	return fmt.Sprintf("customers/%s/sources/%s", customerID, sourceID)
}

// logFailure classifies err and writes the failed call to the call log.
func logFailure(ctx context.Context, callLog application.CallLogger, url string, request any, err error) application.Classification {
	c := application.Classify(err)
	callLog.LogCall(ctx, url, request, application.ErrorLogPayload(err, c), true)
	return c
}

func ifSet(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func toPaymentAccount(customerID string, src *application.Source) *domain.PaymentAccount {
	account := &domain.PaymentAccount{
		ClientReferenceID: customerID,
		ReferenceID:       src.ID,
		Last4:             src.Last4,
	}

	if src.Object == application.SourceObjectBankAccount {
		account.Type = string(domain.AchAccountType(src.AccountHolderType))
		return account
	}

	account.Type = domain.NormalizeBrand(src.Brand)
	account.Expiration = domain.FormatExpiration(src.ExpYear, src.ExpMonth)
	return account
}
