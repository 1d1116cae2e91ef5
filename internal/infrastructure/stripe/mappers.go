package stripe

import (
	stripeapi "github.com/stripe/stripe-go/v79"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
)

func toCustomer(cus *stripeapi.Customer) *application.Customer {
	return &application.Customer{
		ID:          cus.ID,
		Email:       cus.Email,
		Description: cus.Description,
		Deleted:     cus.Deleted,
	}
}

func toCardParams(card application.CardDetails) *stripeapi.CardParams {
	return &stripeapi.CardParams{
		Number:         stripeapi.String(card.Number),
		ExpMonth:       stripeapi.String(card.ExpMonth),
		ExpYear:        stripeapi.String(card.ExpYear),
		CVC:            optional(card.CVC),
		Name:           optional(card.Name),
		AddressLine1:   optional(card.AddressLine1),
		AddressLine2:   optional(card.AddressLine2),
		AddressZip:     optional(card.AddressZip),
		AddressState:   optional(card.AddressState),
		AddressCountry: optional(card.AddressCountry),
	}
}

func toSource(src *stripeapi.PaymentSource) *application.Source {
	out := &application.Source{ID: src.ID}

	switch src.Type {
	case stripeapi.PaymentSourceTypeCard:
		if src.Card != nil {
			return fromCard(src.Card, src.ID)
		}
		out.Object = application.SourceObjectCard
	case stripeapi.PaymentSourceTypeBankAccount:
		if src.BankAccount != nil {
			customerID := ""
			if src.BankAccount.Customer != nil {
				customerID = src.BankAccount.Customer.ID
			}
			return fromBankAccount(src.BankAccount, customerID)
		}
		out.Object = application.SourceObjectBankAccount
	default:
		out.Object = application.SourceObject(src.Type)
	}
	return out
}

func fromCard(card *stripeapi.Card, id string) *application.Source {
	out := &application.Source{
		ID:             card.ID,
		Object:         application.SourceObjectCard,
		Brand:          string(card.Brand),
		Last4:          card.Last4,
		ExpMonth:       card.ExpMonth,
		ExpYear:        card.ExpYear,
		Name:           card.Name,
		AddressLine1:   card.AddressLine1,
		AddressLine2:   card.AddressLine2,
		AddressZip:     card.AddressZip,
		AddressState:   card.AddressState,
		AddressCountry: card.AddressCountry,
		Deleted:        card.Deleted,
	}
	if out.ID == "" {
		out.ID = id
	}
	if card.Customer != nil {
		out.Customer = card.Customer.ID
	}
	return out
}

func fromBankAccount(ba *stripeapi.BankAccount, customerID string) *application.Source {
	out := &application.Source{
		ID:                ba.ID,
		Object:            application.SourceObjectBankAccount,
		Customer:          customerID,
		Last4:             ba.Last4,
		Name:              ba.AccountHolderName,
		BankName:          ba.BankName,
		AccountHolderType: string(ba.AccountHolderType),
		Deleted:           ba.Deleted,
	}
	if ba.Customer != nil && ba.Customer.ID != "" {
		out.Customer = ba.Customer.ID
	}
	return out
}
