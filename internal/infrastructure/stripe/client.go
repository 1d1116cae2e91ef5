package stripe

import (
	"context"
	"net/http"
	"strings"

	stripeapi "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/config"
)

// Client talks to the Stripe API with the key and base URL it was built with.
// Nothing here touches the package level stripe.Key.
type Client struct {
	api *client.API
}

func NewClient(cfg config.StripeConfig, apiKey string) application.Processor {
	backendConfig := &stripeapi.BackendConfig{
		URL: stripeapi.String(strings.TrimRight(cfg.BaseURL, "/")),
		HTTPClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
		// retries are owned by RetryProcessor
		MaxNetworkRetries: stripeapi.Int64(0),
		LeveledLogger:     &stripeapi.LeveledLogger{Level: stripeapi.LevelNull},
	}

	backend := stripeapi.GetBackendWithConfig(stripeapi.APIBackend, backendConfig)

	api := &client.API{}
	api.Init(apiKey, &stripeapi.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})

	return &Client{api: api}
}

func (c *Client) CreateCustomer(ctx context.Context, req application.CustomerRequest, idempotencyKey string) (*application.Customer, error) {
	params := &stripeapi.CustomerParams{}
	params.Context = ctx
	if req.Email != "" {
		params.Email = stripeapi.String(req.Email)
	}
	if req.Description != "" {
		params.Description = stripeapi.String(req.Description)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	setIdempotencyKey(&params.Params, idempotencyKey)

	cus, err := c.api.Customers.New(params)
	if err != nil {
		return nil, toProcessorError(err)
	}
	return toCustomer(cus), nil
}

func (c *Client) GetCustomer(ctx context.Context, customerID string) (*application.Customer, error) {
	params := &stripeapi.CustomerParams{}
	params.Context = ctx

	cus, err := c.api.Customers.Get(customerID, params)
	if err != nil {
		return nil, toProcessorError(err)
	}
	return toCustomer(cus), nil
}

func (c *Client) CreateSource(ctx context.Context, customerID string, req application.SourceRequest, idempotencyKey string) (*application.Source, error) {
	if req.BankAccount != nil {
		return c.createBankAccount(ctx, customerID, *req.BankAccount, idempotencyKey)
	}

	params := &stripeapi.PaymentSourceParams{
		Customer: stripeapi.String(customerID),
		Source:   &stripeapi.PaymentSourceSourceParams{},
	}
	params.Context = ctx
	setIdempotencyKey(&params.Params, idempotencyKey)

	switch {
	case req.Token != "":
		params.Source.Token = stripeapi.String(req.Token)
	case req.Card != nil:
		params.Source.Card = toCardParams(*req.Card)
	}

	src, err := c.api.PaymentSources.New(params)
	if err != nil {
		return nil, toProcessorError(err)
	}
	return toSource(src), nil
}

func (c *Client) createBankAccount(ctx context.Context, customerID string, details application.BankAccountDetails, idempotencyKey string) (*application.Source, error) {
	params := &stripeapi.BankAccountParams{
		Customer:          stripeapi.String(customerID),
		AccountNumber:     stripeapi.String(details.AccountNumber),
		RoutingNumber:     stripeapi.String(details.RoutingNumber),
		AccountHolderType: stripeapi.String(details.AccountHolderType),
	}
	params.Context = ctx
	setIdempotencyKey(&params.Params, idempotencyKey)

	if details.AccountHolderName != "" {
		params.AccountHolderName = stripeapi.String(details.AccountHolderName)
	}
	if details.Country != "" {
		params.Country = stripeapi.String(details.Country)
	}
	if details.Currency != "" {
		params.Currency = stripeapi.String(details.Currency)
	}

	ba, err := c.api.BankAccounts.New(params)
	if err != nil {
		return nil, toProcessorError(err)
	}
	return fromBankAccount(ba, customerID), nil
}

func (c *Client) GetSource(ctx context.Context, customerID, sourceID string) (*application.Source, error) {
	params := &stripeapi.PaymentSourceParams{Customer: stripeapi.String(customerID)}
	params.Context = ctx

	src, err := c.api.PaymentSources.Get(sourceID, params)
	if err != nil {
		return nil, toProcessorError(err)
	}
	return toSource(src), nil
}

func (c *Client) UpdateSource(ctx context.Context, customerID, sourceID string, req application.SourceUpdate) (*application.Source, error) {
	params := &stripeapi.PaymentSourceParams{Customer: stripeapi.String(customerID)}
	params.Context = ctx

	params.ExpMonth = optional(req.ExpMonth)
	params.ExpYear = optional(req.ExpYear)
	params.Name = optional(req.Name)
	params.AddressLine1 = optional(req.AddressLine1)
	params.AddressLine2 = optional(req.AddressLine2)
	params.AddressZip = optional(req.AddressZip)
	params.AddressState = optional(req.AddressState)
	params.AddressCountry = optional(req.AddressCountry)

	src, err := c.api.PaymentSources.Update(sourceID, params)
	if err != nil {
		return nil, toProcessorError(err)
	}
	return toSource(src), nil
}

func (c *Client) DeleteSource(ctx context.Context, customerID, sourceID string) (*application.Source, error) {
	params := &stripeapi.PaymentSourceParams{Customer: stripeapi.String(customerID)}
	params.Context = ctx

	src, err := c.api.PaymentSources.Del(sourceID, params)
	if err != nil {
		return nil, toProcessorError(err)
	}
	return toSource(src), nil
}

func (c *Client) CreateCharge(ctx context.Context, req application.ChargeRequest, idempotencyKey string) (*application.Charge, error) {
	params := &stripeapi.ChargeParams{
		Amount:   stripeapi.Int64(req.Amount),
		Currency: stripeapi.String(req.Currency),
		Customer: stripeapi.String(req.Customer),
		Source:   &stripeapi.PaymentSourceSourceParams{Token: stripeapi.String(req.Source)},
	}
	params.Context = ctx
	setIdempotencyKey(&params.Params, idempotencyKey)

	params.StatementDescriptor = optional(req.StatementDescriptor)
	params.Description = optional(req.Description)

	ch, err := c.api.Charges.New(params)
	if err != nil {
		return nil, toProcessorError(err)
	}

	charge := &application.Charge{
		ID:             ch.ID,
		Amount:         ch.Amount,
		Currency:       string(ch.Currency),
		Status:         string(ch.Status),
		FailureMessage: ch.FailureMessage,
	}
	if ch.BalanceTransaction != nil {
		charge.BalanceTransaction = ch.BalanceTransaction.ID
	}
	return charge, nil
}

func (c *Client) CreateRefund(ctx context.Context, req application.RefundRequest, idempotencyKey string) (*application.Refund, error) {
	params := &stripeapi.RefundParams{
		Charge: stripeapi.String(req.Charge),
	}
	params.Context = ctx
	setIdempotencyKey(&params.Params, idempotencyKey)

	if req.Amount != nil {
		params.Amount = stripeapi.Int64(*req.Amount)
	}

	re, err := c.api.Refunds.New(params)
	if err != nil {
		return nil, toProcessorError(err)
	}

	refund := &application.Refund{
		ID:     re.ID,
		Amount: re.Amount,
		Status: string(re.Status),
	}
	if re.Charge != nil {
		refund.Charge = re.Charge.ID
	}
	return refund, nil
}

func setIdempotencyKey(params *stripeapi.Params, key string) {
	if key != "" {
		params.SetIdempotencyKey(key)
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return stripeapi.String(v)
}
