package handlers

import (
	"net/http"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application/services"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/interfaces/rest"
)

func (h *Handlers) StoreAccount(w http.ResponseWriter, r *http.Request) {
	method, ok := paymentMethod(w, r)
	if !ok {
		return
	}

	var req StoreAccountRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}

	idemKey := r.Header.Get(idempotencyKeyHeader)

	var (
		account *domain.PaymentAccount
		err     error
	)
	switch method {
	case methodCC:
		if req.Card == nil {
			rest.WriteError(w, missingField("card"))
			return
		}
		account, err = h.gateway.StoreCC(r.Context(), services.StoreCCCommand{
			Contact:        req.Contact,
			Card:           *req.Card,
			IdempotencyKey: idemKey,
		})
	case methodACH:
		if req.Account == nil {
			rest.WriteError(w, missingField("account"))
			return
		}
		if req.Currency == "" {
			rest.WriteError(w, missingField("currency"))
			return
		}
		account, err = h.gateway.StoreACH(r.Context(), services.StoreACHCommand{
			Contact:        req.Contact,
			Account:        *req.Account,
			Currency:       req.Currency,
			IdempotencyKey: idemKey,
		})
	}
	if err != nil {
		h.logger.Warn("store account failed", "method", method, "contact_id", req.Contact.ID, "error", err)
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, account)
}

func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	method, ok := paymentMethod(w, r)
	if !ok {
		return
	}
	referenceID := r.PathValue("reference_id")

	// bank accounts cannot be updated, whatever the body says
	if method == methodACH {
		account, err := h.gateway.UpdateACH(r.Context(), services.UpdateACHCommand{ReferenceID: referenceID})
		if err != nil {
			rest.WriteError(w, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, account)
		return
	}

	var req UpdateAccountRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}
	if req.Card == nil {
		rest.WriteError(w, missingField("card"))
		return
	}

	account, err := h.gateway.UpdateCC(r.Context(), services.UpdateCCCommand{
		Contact:           req.Contact,
		Card:              *req.Card,
		ClientReferenceID: req.ClientReferenceID,
		ReferenceID:       referenceID,
	})
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, account)
}

// RemoveAccount always answers with the reference pair: removal is best effort.
func (h *Handlers) RemoveAccount(w http.ResponseWriter, r *http.Request) {
	method, ok := paymentMethod(w, r)
	if !ok {
		return
	}

	clientReferenceID := r.PathValue("client_reference_id")
	referenceID := r.PathValue("reference_id")

	var ref domain.AccountReference
	if method == methodCC {
		ref = h.gateway.RemoveCC(r.Context(), clientReferenceID, referenceID)
	} else {
		ref = h.gateway.RemoveACH(r.Context(), clientReferenceID, referenceID)
	}

	rest.WriteJSON(w, http.StatusOK, ref)
}
