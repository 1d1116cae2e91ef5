package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/application/services"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/interfaces/rest"
)

// Gateway is the operation surface served over HTTP. *services.Gateway implements it.
type Gateway interface {
	RequiresCustomerPresent() bool
	RequiresCcStorage() bool
	RequiresAchStorage() bool

	StoreCC(ctx context.Context, cmd services.StoreCCCommand) (*domain.PaymentAccount, error)
	UpdateCC(ctx context.Context, cmd services.UpdateCCCommand) (*domain.PaymentAccount, error)
	RemoveCC(ctx context.Context, clientReferenceID, referenceID string) domain.AccountReference
	ProcessStoredCC(ctx context.Context, cmd services.ChargeCommand) (*domain.Transaction, error)
	AuthorizeStoredCC(ctx context.Context, cmd services.ChargeCommand) (*domain.Transaction, error)
	CaptureStoredCC(ctx context.Context, cmd services.CaptureCommand) (*domain.Transaction, error)
	VoidStoredCC(ctx context.Context, cmd services.VoidCommand) (*domain.Transaction, error)
	RefundStoredCC(ctx context.Context, cmd services.RefundCommand) (*domain.Transaction, error)

	StoreACH(ctx context.Context, cmd services.StoreACHCommand) (*domain.PaymentAccount, error)
	UpdateACH(ctx context.Context, cmd services.UpdateACHCommand) (*domain.PaymentAccount, error)
	RemoveACH(ctx context.Context, clientReferenceID, referenceID string) domain.AccountReference
	ProcessStoredACH(ctx context.Context, cmd services.ChargeCommand) (*domain.Transaction, error)
	VoidStoredACH(ctx context.Context, cmd services.VoidCommand) (*domain.Transaction, error)
	RefundStoredACH(ctx context.Context, cmd services.RefundCommand) (*domain.Transaction, error)
}

var _ Gateway = (*services.Gateway)(nil)

const (
	methodCC  = "cc"
	methodACH = "ach"
)

const idempotencyKeyHeader = "Idempotency-Key"

type Handlers struct {
	gateway  Gateway
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandlers(gateway Gateway, logger *slog.Logger) *Handlers {
	return &Handlers{
		gateway:  gateway,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/capabilities", h.Capabilities)

	mux.HandleFunc("POST /v1/{method}/accounts", h.StoreAccount)
	mux.HandleFunc("PUT /v1/{method}/accounts/{reference_id}", h.UpdateAccount)
	mux.HandleFunc("DELETE /v1/{method}/customers/{client_reference_id}/accounts/{reference_id}", h.RemoveAccount)

	mux.HandleFunc("POST /v1/{method}/charges", h.Charge)
	mux.HandleFunc("POST /v1/cc/authorizations", h.Authorize)
	mux.HandleFunc("POST /v1/cc/captures", h.Capture)
	mux.HandleFunc("POST /v1/{method}/transactions/{transaction_id}/void", h.Void)
	mux.HandleFunc("POST /v1/{method}/transactions/{transaction_id}/refund", h.Refund)
}

type CapabilitiesResponse struct {
	RequiresCustomerPresent bool `json:"requires_customer_present"`
	RequiresCcStorage       bool `json:"requires_cc_storage"`
	RequiresAchStorage      bool `json:"requires_ach_storage"`
}

func (h *Handlers) Capabilities(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, CapabilitiesResponse{
		RequiresCustomerPresent: h.gateway.RequiresCustomerPresent(),
		RequiresCcStorage:       h.gateway.RequiresCcStorage(),
		RequiresAchStorage:      h.gateway.RequiresAchStorage(),
	})
}

// paymentMethod reads the {method} path segment. Unknown methods get a 404.
func paymentMethod(w http.ResponseWriter, r *http.Request) (string, bool) {
	method := r.PathValue("method")
	if method != methodCC && method != methodACH {
		http.NotFound(w, r)
		return "", false
	}
	return method, true
}

// decode reads and validates the request body.
func (h *Handlers) decode(r *http.Request, dst any) error {
	if err := rest.DecodeJSON(r, dst); err != nil {
		return err
	}
	if err := h.validate.Struct(dst); err != nil {
		return application.NewInvalidInputError(err)
	}
	return nil
}

func missingField(name string) error {
	return application.NewInvalidInputError(fmt.Errorf("%s is required", name))
}
