package handlers

import (
	"net/http"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application/services"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/interfaces/rest"
)

// Charge answers 200 for declined charges too: the outcome is in the transaction status.
func (h *Handlers) Charge(w http.ResponseWriter, r *http.Request) {
	method, ok := paymentMethod(w, r)
	if !ok {
		return
	}

	var req ChargeRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}

	cmd := services.ChargeCommand{
		ClientReferenceID: req.ClientReferenceID,
		ReferenceID:       req.ReferenceID,
		Amount:            req.Amount,
		Currency:          req.Currency,
		Invoices:          req.Invoices,
		IdempotencyKey:    r.Header.Get(idempotencyKeyHeader),
	}

	var (
		tx  *domain.Transaction
		err error
	)
	if method == methodCC {
		tx, err = h.gateway.ProcessStoredCC(r.Context(), cmd)
	} else {
		tx, err = h.gateway.ProcessStoredACH(r.Context(), cmd)
	}
	writeTransaction(w, tx, err)
}

// Authorize and Capture have no processor equivalent. They answer unsupported
// without reading the body.
func (h *Handlers) Authorize(w http.ResponseWriter, r *http.Request) {
	tx, err := h.gateway.AuthorizeStoredCC(r.Context(), services.ChargeCommand{})
	writeTransaction(w, tx, err)
}

func (h *Handlers) Capture(w http.ResponseWriter, r *http.Request) {
	tx, err := h.gateway.CaptureStoredCC(r.Context(), services.CaptureCommand{})
	writeTransaction(w, tx, err)
}

func (h *Handlers) Void(w http.ResponseWriter, r *http.Request) {
	method, ok := paymentMethod(w, r)
	if !ok {
		return
	}

	var req VoidRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}

	cmd := services.VoidCommand{
		ClientReferenceID:      req.ClientReferenceID,
		ReferenceID:            req.ReferenceID,
		TransactionReferenceID: req.TransactionReferenceID,
		TransactionID:          r.PathValue("transaction_id"),
		IdempotencyKey:         r.Header.Get(idempotencyKeyHeader),
	}

	var (
		tx  *domain.Transaction
		err error
	)
	if method == methodCC {
		tx, err = h.gateway.VoidStoredCC(r.Context(), cmd)
	} else {
		tx, err = h.gateway.VoidStoredACH(r.Context(), cmd)
	}
	writeTransaction(w, tx, err)
}

func (h *Handlers) Refund(w http.ResponseWriter, r *http.Request) {
	method, ok := paymentMethod(w, r)
	if !ok {
		return
	}

	var req RefundRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}

	cmd := services.RefundCommand{
		ClientReferenceID:      req.ClientReferenceID,
		ReferenceID:            req.ReferenceID,
		TransactionReferenceID: req.TransactionReferenceID,
		TransactionID:          r.PathValue("transaction_id"),
		Amount:                 req.Amount,
		Currency:               req.Currency,
		IdempotencyKey:         r.Header.Get(idempotencyKeyHeader),
	}

	var (
		tx  *domain.Transaction
		err error
	)
	if method == methodCC {
		tx, err = h.gateway.RefundStoredCC(r.Context(), cmd)
	} else {
		tx, err = h.gateway.RefundStoredACH(r.Context(), cmd)
	}
	writeTransaction(w, tx, err)
}

func writeTransaction(w http.ResponseWriter, tx *domain.Transaction, err error) {
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, tx)
}
