package application

// Request and response shapes exchanged with the processor. JSON names follow the
// processor's wire names so that logged payloads read like the real API traffic.

type CustomerRequest struct {
	Email       string            `json:"email,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type Customer struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	Description string `json:"description,omitempty"`
	Deleted     bool   `json:"deleted,omitempty"`
}

type CardDetails struct {
	Number         string `json:"number"`
	ExpMonth       string `json:"exp_month"`
	ExpYear        string `json:"exp_year"`
	CVC            string `json:"cvc,omitempty"`
	Name           string `json:"name,omitempty"`
	AddressLine1   string `json:"address_line1,omitempty"`
	AddressLine2   string `json:"address_line2,omitempty"`
	AddressZip     string `json:"address_zip,omitempty"`
	AddressState   string `json:"address_state,omitempty"`
	AddressCountry string `json:"address_country,omitempty"`
}

type BankAccountDetails struct {
	AccountNumber     string `json:"account_number"`
	RoutingNumber     string `json:"routing_number"`
	AccountHolderName string `json:"account_holder_name,omitempty"`
	AccountHolderType string `json:"account_holder_type"`
	Currency          string `json:"currency,omitempty"`
	Country           string `json:"country,omitempty"`
}

// SourceRequest carries exactly one of Token, Card or BankAccount.
type SourceRequest struct {
	Token       string              `json:"source,omitempty"`
	Card        *CardDetails        `json:"card,omitempty"`
	BankAccount *BankAccountDetails `json:"bank_account,omitempty"`
}

type SourceObject string

const (
	SourceObjectCard        SourceObject = "card"
	SourceObjectBankAccount SourceObject = "bank_account"
)

type Source struct {
	ID                string       `json:"id"`
	Object            SourceObject `json:"object"`
	Customer          string       `json:"customer,omitempty"`
	Brand             string       `json:"brand,omitempty"`
	Last4             string       `json:"last4,omitempty"`
	ExpMonth          int64        `json:"exp_month,omitempty"`
	ExpYear           int64        `json:"exp_year,omitempty"`
	Name              string       `json:"name,omitempty"`
	AddressLine1      string       `json:"address_line1,omitempty"`
	AddressLine2      string       `json:"address_line2,omitempty"`
	AddressZip        string       `json:"address_zip,omitempty"`
	AddressState      string       `json:"address_state,omitempty"`
	AddressCountry    string       `json:"address_country,omitempty"`
	BankName          string       `json:"bank_name,omitempty"`
	AccountHolderType string       `json:"account_holder_type,omitempty"`
	Deleted           bool         `json:"deleted,omitempty"`
}

// SourceUpdate is the full set of mutable card fields written back on update.
type SourceUpdate struct {
	ExpMonth       string `json:"exp_month,omitempty"`
	ExpYear        string `json:"exp_year,omitempty"`
	Name           string `json:"name,omitempty"`
	AddressLine1   string `json:"address_line1,omitempty"`
	AddressLine2   string `json:"address_line2,omitempty"`
	AddressZip     string `json:"address_zip,omitempty"`
	AddressState   string `json:"address_state,omitempty"`
	AddressCountry string `json:"address_country,omitempty"`
}

type ChargeRequest struct {
	Amount              int64  `json:"amount"`
	Currency            string `json:"currency"`
	Customer            string `json:"customer"`
	Source              string `json:"source"`
	StatementDescriptor string `json:"statement_descriptor"`
	Description         string `json:"description"`
}

type Charge struct {
	ID                 string `json:"id"`
	Amount             int64  `json:"amount"`
	Currency           string `json:"currency"`
	Status             string `json:"status,omitempty"`
	BalanceTransaction string `json:"balance_transaction,omitempty"`
	FailureMessage     string `json:"failure_message,omitempty"`
}

// RefundRequest refunds the full charge when Amount is nil.
type RefundRequest struct {
	Charge string `json:"charge"`
	Amount *int64 `json:"amount,omitempty"`
}

type Refund struct {
	ID     string `json:"id"`
	Charge string `json:"charge,omitempty"`
	Amount int64  `json:"amount"`
	Status string `json:"status,omitempty"`
}
