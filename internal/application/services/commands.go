package services

import (
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

// IdempotencyKey on a command is optional. When empty a fresh key is generated,
// so only callers that replay the same command need to set it.

type StoreCCCommand struct {
	Contact        domain.Contact
	Card           domain.CardInfo
	IdempotencyKey string
}

type UpdateCCCommand struct {
	Contact           domain.Contact
	Card              domain.CardInfo
	ClientReferenceID string
	ReferenceID       string
}

type StoreACHCommand struct {
	Contact        domain.Contact
	Account        domain.AchInfo
	Currency       string
	IdempotencyKey string
}

type UpdateACHCommand struct {
	Contact           domain.Contact
	Account           domain.AchInfo
	ClientReferenceID string
	ReferenceID       string
}

type ChargeCommand struct {
	ClientReferenceID string
	ReferenceID       string
	Amount            domain.HostAmount
	Currency          string
	Invoices          []domain.InvoiceAmount
	IdempotencyKey    string
}

type CaptureCommand struct {
	ClientReferenceID      string
	ReferenceID            string
	TransactionReferenceID string
	TransactionID          string
	Amount                 domain.HostAmount
	Currency               string
	Invoices               []domain.InvoiceAmount
}

type VoidCommand struct {
	ClientReferenceID      string
	ReferenceID            string
	TransactionReferenceID string
	TransactionID          string
	IdempotencyKey         string
}

// RefundCommand refunds the whole charge when Amount is nil.
type RefundCommand struct {
	ClientReferenceID      string
	ReferenceID            string
	TransactionReferenceID string
	TransactionID          string
	Amount                 *domain.HostAmount
	Currency               string
	IdempotencyKey         string
}
