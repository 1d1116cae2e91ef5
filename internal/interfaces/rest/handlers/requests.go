package handlers

import (
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

// StoreAccountRequest carries Card for cc and Account plus Currency for ach.
type StoreAccountRequest struct {
	Contact  domain.Contact   `json:"contact"`
	Card     *domain.CardInfo `json:"card,omitempty"`
	Account  *domain.AchInfo  `json:"account,omitempty"`
	Currency string           `json:"currency,omitempty" validate:"omitempty,len=3"`
}

// UpdateAccountRequest only applies to cards.
type UpdateAccountRequest struct {
	Contact           domain.Contact   `json:"contact"`
	ClientReferenceID string           `json:"client_reference_id" validate:"required"`
	Card              *domain.CardInfo `json:"card,omitempty"`
}

type ChargeRequest struct {
	ClientReferenceID string                 `json:"client_reference_id" validate:"required"`
	ReferenceID       string                 `json:"reference_id" validate:"required"`
	Amount            domain.HostAmount      `json:"amount"`
	Currency          string                 `json:"currency" validate:"required,len=3"`
	Invoices          []domain.InvoiceAmount `json:"invoices"`
}

type VoidRequest struct {
	ClientReferenceID      string `json:"client_reference_id" validate:"required"`
	ReferenceID            string `json:"reference_id" validate:"required"`
	TransactionReferenceID string `json:"transaction_reference_id"`
}

// RefundRequest refunds the whole charge when Amount is omitted.
type RefundRequest struct {
	ClientReferenceID      string             `json:"client_reference_id" validate:"required"`
	ReferenceID            string             `json:"reference_id" validate:"required"`
	TransactionReferenceID string             `json:"transaction_reference_id"`
	Amount                 *domain.HostAmount `json:"amount,omitempty"`
	Currency               string             `json:"currency" validate:"required,len=3"`
}
