package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Contact is the host billing contact a remote customer is created for.
type Contact struct {
	ID        int64  `json:"id" validate:"required,gt=0"`
	ClientID  int64  `json:"client_id,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Company   string `json:"company,omitempty"`
	Email     string `json:"email,omitempty"`
}

type State struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}

type Country struct {
	Alpha2 string `json:"alpha2,omitempty"`
	Alpha3 string `json:"alpha3,omitempty"`
	Name   string `json:"name,omitempty"`
}

// CardInfo is a credit card as the host hands it over. CardExp is yyyymm.
type CardInfo struct {
	FirstName     string  `json:"first_name,omitempty"`
	LastName      string  `json:"last_name,omitempty"`
	CardNumber    string  `json:"card_number,omitempty"`
	CardExp       string  `json:"card_exp,omitempty"`
	SecurityCode  string  `json:"card_security_code,omitempty"`
	Address1      string  `json:"address1,omitempty"`
	Address2      string  `json:"address2,omitempty"`
	City          string  `json:"city,omitempty"`
	State         State   `json:"state"`
	Country       Country `json:"country"`
	Zip           string  `json:"zip,omitempty"`
	MerchantToken string  `json:"merchant_token,omitempty"`
}

// ExpMonth returns the two-digit month of CardExp.
func (c CardInfo) ExpMonth() string {
	if len(c.CardExp) < 2 {
		return c.CardExp
	}
	return c.CardExp[len(c.CardExp)-2:]
}

// ExpYear returns the four-digit year of CardExp.
func (c CardInfo) ExpYear() string {
	if len(c.CardExp) < 4 {
		return c.CardExp
	}
	return c.CardExp[:4]
}

func (c CardInfo) HolderName(fallback string) string {
	return holderName(c.FirstName, c.LastName, fallback)
}

type AccountType string

const (
	AccountTypeChecking         AccountType = "checking"
	AccountTypeSavings          AccountType = "savings"
	AccountTypeBusinessChecking AccountType = "business_checking"
)

// HolderType maps the host account type onto the processor's account holder type.
func (t AccountType) HolderType() string {
	if t == AccountTypeBusinessChecking {
		return "company"
	}
	return "individual"
}

// AchInfo is a bank account as the host hands it over.
type AchInfo struct {
	FirstName     string      `json:"first_name,omitempty"`
	LastName      string      `json:"last_name,omitempty"`
	AccountNumber string      `json:"account_number,omitempty"`
	RoutingNumber string      `json:"routing_number,omitempty"`
	Type          AccountType `json:"type,omitempty"`
	Address1      string      `json:"address1,omitempty"`
	Address2      string      `json:"address2,omitempty"`
	City          string      `json:"city,omitempty"`
	State         State       `json:"state"`
	Country       Country     `json:"country"`
	Zip           string      `json:"zip,omitempty"`
	MerchantToken string      `json:"merchant_token,omitempty"`
}

func (a AchInfo) HolderName(fallback string) string {
	return holderName(a.FirstName, a.LastName, fallback)
}

func holderName(first, last, fallback string) string {
	name := first
	if last != "" {
		name = name + " " + last
	}
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}

// PaymentAccount is the normalized stored source returned to the host.
type PaymentAccount struct {
	ClientReferenceID string `json:"client_reference_id"`
	ReferenceID       string `json:"reference_id"`
	Last4             string `json:"last4"`
	Type              string `json:"type"`
	Expiration        string `json:"expiration"`
}

// AccountReference identifies a stored source on the processor.
type AccountReference struct {
	ClientReferenceID string `json:"client_reference_id"`
	ReferenceID       string `json:"reference_id"`
}

// InvoiceAmount is one invoice covered by a charge.
type InvoiceAmount struct {
	InvoiceID int64           `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type TransactionStatus string

const (
	StatusApproved   TransactionStatus = "approved"
	StatusDeclined   TransactionStatus = "declined"
	StatusVoid       TransactionStatus = "void"
	StatusPending    TransactionStatus = "pending"
	StatusReconciled TransactionStatus = "reconciled"
	StatusRefunded   TransactionStatus = "refunded"
	StatusReturned   TransactionStatus = "returned"
	StatusError      TransactionStatus = "error"
)

// Transaction is the one-shot result of a charge, void or refund.
type Transaction struct {
	Status        TransactionStatus `json:"status"`
	ReferenceID   string            `json:"reference_id,omitempty"`
	TransactionID string            `json:"transaction_id,omitempty"`
	Message       string            `json:"message,omitempty"`
}

// CustomerMapping links a host contact to its remote customer record.
type CustomerMapping struct {
	ID               int64
	ContactID        int64
	RemoteCustomerID string
}
