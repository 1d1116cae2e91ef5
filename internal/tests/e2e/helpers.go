package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/interfaces/rest"
)

// TestClient wraps HTTP calls to the gateway
type TestClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// do sends body as JSON with a fresh idempotency key and decodes data into out.
func (c *TestClient) do(t *testing.T, method, path string, body, out any) (int, *rest.APIError) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "e2e-"+uuid.NewString())

	resp, err := c.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	envelope := struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *rest.APIError  `json:"error"`
	}{}
	require.NoError(t, json.Unmarshal(raw, &envelope), string(raw))

	if envelope.Success && out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return resp.StatusCode, envelope.Error
}

func (c *TestClient) StoreCard(t *testing.T, contact domain.Contact, card domain.CardInfo) (*domain.PaymentAccount, error) {
	var account domain.PaymentAccount
	status, apiErr := c.do(t, http.MethodPost, "/v1/cc/accounts", map[string]any{
		"contact": contact,
		"card":    card,
	}, &account)
	if apiErr != nil {
		return nil, fmt.Errorf("status %d: %s", status, apiErr.Message)
	}
	return &account, nil
}

func (c *TestClient) Charge(t *testing.T, account *domain.PaymentAccount, amount, currency string, invoices ...domain.InvoiceAmount) *domain.Transaction {
	var tx domain.Transaction
	status, apiErr := c.do(t, http.MethodPost, "/v1/cc/charges", map[string]any{
		"client_reference_id": account.ClientReferenceID,
		"reference_id":        account.ReferenceID,
		"amount":              amount,
		"currency":            currency,
		"invoices":            invoices,
	}, &tx)
	require.Nil(t, apiErr, "status %d", status)
	return &tx
}

// Refund refunds amount of the charge, or all of it when amount is empty.
func (c *TestClient) Refund(t *testing.T, account *domain.PaymentAccount, transactionID, amount string) *domain.Transaction {
	body := map[string]any{
		"client_reference_id": account.ClientReferenceID,
		"reference_id":        account.ReferenceID,
		"currency":            "usd",
	}
	if amount != "" {
		body["amount"] = amount
	}

	var tx domain.Transaction
	status, apiErr := c.do(t, http.MethodPost, "/v1/cc/transactions/"+transactionID+"/refund", body, &tx)
	require.Nil(t, apiErr, "status %d", status)
	return &tx
}

func (c *TestClient) Capture(t *testing.T, account *domain.PaymentAccount, transactionID string) (int, *rest.APIError) {
	return c.do(t, http.MethodPost, "/v1/cc/captures", map[string]any{
		"client_reference_id": account.ClientReferenceID,
		"reference_id":        account.ReferenceID,
		"transaction_id":      transactionID,
		"amount":              "1",
		"currency":            "usd",
	}, nil)
}
