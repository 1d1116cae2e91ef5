package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/application/mocks"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/application/services"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

func testCard() domain.CardInfo {
	return domain.CardInfo{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		CardNumber:   "4242424242424242",
		CardExp:      "203007",
		SecurityCode: "123",
		Address1:     "12 St James's Square",
		Zip:          "SW1Y 4JH",
		State:        domain.State{Code: "LND"},
		Country:      domain.Country{Alpha2: "GB", Alpha3: "GBR"},
	}
}

var storedCustomer = &application.Customer{ID: "cus_1"}

func newSourceManager(t *testing.T) (*services.SourceManager, *mocks.Processor, *mocks.CallLogger) {
	processor := mocks.NewProcessor(t)
	callLog := &mocks.CallLogger{}
	return services.NewSourceManager(processor, callLog, discardLogger()), processor, callLog
}

func TestCardSourceRequest(t *testing.T) {
	t.Run("merchant token bypasses raw fields", func(t *testing.T) {
		card := testCard()
		card.MerchantToken = "tok_visa"

		assert.Equal(t, application.SourceRequest{Token: "tok_visa"}, services.CardSourceRequest(card))
	})

	t.Run("raw card fields", func(t *testing.T) {
		req := services.CardSourceRequest(testCard())

		require.NotNil(t, req.Card)
		assert.Empty(t, req.Token)
		assert.Equal(t, "4242424242424242", req.Card.Number)
		assert.Equal(t, "07", req.Card.ExpMonth)
		assert.Equal(t, "2030", req.Card.ExpYear)
		assert.Equal(t, "123", req.Card.CVC)
		assert.Equal(t, "Ada Lovelace", req.Card.Name)
		assert.Equal(t, "LND", req.Card.AddressState)
		assert.Equal(t, "GBR", req.Card.AddressCountry)
	})
}

func TestBankAccountSourceRequest(t *testing.T) {
	account := domain.AchInfo{
		FirstName:     "Acme",
		LastName:      "Corp",
		AccountNumber: "000123456789",
		RoutingNumber: "110000000",
		Type:          domain.AccountTypeBusinessChecking,
		Country:       domain.Country{Alpha2: "US", Alpha3: "USA"},
	}

	req := services.BankAccountSourceRequest(account, "USD")

	require.NotNil(t, req.BankAccount)
	assert.Equal(t, "company", req.BankAccount.AccountHolderType)
	assert.Equal(t, "usd", req.BankAccount.Currency)
	assert.Equal(t, "US", req.BankAccount.Country)
	assert.Equal(t, "Acme Corp", req.BankAccount.AccountHolderName)

	account.Type = domain.AccountTypeSavings
	assert.Equal(t, "individual", services.BankAccountSourceRequest(account, "usd").BankAccount.AccountHolderType)
}

func TestSourceManager_Store(t *testing.T) {
	t.Run("token store sends exactly the token", func(t *testing.T) {
		manager, processor, callLog := newSourceManager(t)

		processor.On("CreateSource", mock.Anything, "cus_1", application.SourceRequest{Token: "tok_visa"}, mock.AnythingOfType("string")).
			Return(&application.Source{
				ID: "card_1", Object: application.SourceObjectCard, Brand: "American Express",
				Last4: "0005", ExpMonth: 7, ExpYear: 2030,
			}, nil).
			Once()

		account, err := manager.Store(context.Background(), storedCustomer, application.SourceRequest{Token: "tok_visa"}, "")

		require.NoError(t, err)
		assert.Equal(t, &domain.PaymentAccount{
			ClientReferenceID: "cus_1",
			ReferenceID:       "card_1",
			Last4:             "0005",
			Type:              "amex",
			Expiration:        "203007",
		}, account)
		assert.Equal(t, []string{"customers/cus_1/sources"}, callLog.URLs())
	})

	t.Run("supplied idempotency key is forwarded", func(t *testing.T) {
		manager, processor, _ := newSourceManager(t)

		processor.On("CreateSource", mock.Anything, "cus_1", mock.Anything, "host-key").
			Return(&application.Source{ID: "card_1", Brand: "Visa"}, nil).
			Once()

		_, err := manager.Store(context.Background(), storedCustomer, application.SourceRequest{Token: "tok_visa"}, "host-key")
		require.NoError(t, err)
	})

	t.Run("bank account is typed from holder type", func(t *testing.T) {
		manager, processor, _ := newSourceManager(t)

		processor.On("CreateSource", mock.Anything, "cus_1", mock.Anything, mock.Anything).
			Return(&application.Source{
				ID: "ba_1", Object: application.SourceObjectBankAccount, Last4: "6789", AccountHolderType: "company",
			}, nil).
			Once()

		account, err := manager.Store(context.Background(), storedCustomer, application.SourceRequest{
			BankAccount: &application.BankAccountDetails{AccountNumber: "000123456789"},
		}, "")

		require.NoError(t, err)
		assert.Equal(t, "business_checking", account.Type)
		assert.Empty(t, account.Expiration)
	})

	t.Run("failure is classified and logged", func(t *testing.T) {
		manager, processor, callLog := newSourceManager(t)

		processor.On("CreateSource", mock.Anything, "cus_1", mock.Anything, mock.Anything).
			Return(nil, &application.ProcessorError{
				Type:       application.ErrTypeCard,
				Code:       "incorrect_cvc",
				Message:    "Your card's security code is incorrect.",
				StatusCode: http.StatusPaymentRequired,
			}).
			Once()

		account, err := manager.Store(context.Background(), storedCustomer, services.CardSourceRequest(testCard()), "")

		assert.Nil(t, account)
		normErr, ok := domain.IsNormalizedError(err)
		require.True(t, ok)
		assert.Equal(t, domain.KindCard, normErr.Kind)
		assert.Equal(t, "incorrect_cvc", normErr.Field)
		require.Len(t, callLog.Calls, 1)
		assert.True(t, callLog.Calls[0].IsError)
	})
}

func TestSourceManager_Update(t *testing.T) {
	existing := &application.Source{
		ID:             "card_1",
		Object:         application.SourceObjectCard,
		Brand:          "Visa",
		Last4:          "4242",
		ExpMonth:       3,
		ExpYear:        2027,
		Name:           "Old Name",
		AddressLine1:   "Old street",
		AddressLine2:   "Flat 2",
		AddressZip:     "00000",
		AddressState:   "OLD",
		AddressCountry: "USA",
	}

	t.Run("supplied fields overwrite, the rest are kept", func(t *testing.T) {
		manager, processor, callLog := newSourceManager(t)

		card := domain.CardInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			CardExp:   "203112",
			Address1:  "New street",
			Country:   domain.Country{Alpha3: "GBR"},
		}
		expected := application.SourceUpdate{
			ExpMonth:       "12",
			ExpYear:        "2031",
			Name:           "Ada Lovelace",
			AddressLine1:   "New street",
			AddressLine2:   "Flat 2",
			AddressZip:     "00000",
			AddressState:   "OLD",
			AddressCountry: "GBR",
		}

		processor.On("GetSource", mock.Anything, "cus_1", "card_1").Return(existing, nil).Once()
		processor.On("UpdateSource", mock.Anything, "cus_1", "card_1", expected).
			Return(&application.Source{ID: "card_1", Brand: "Visa", Last4: "4242", ExpMonth: 12, ExpYear: 2031}, nil).
			Once()

		account, err := manager.Update(context.Background(), storedCustomer, "card_1", card)

		require.NoError(t, err)
		assert.Equal(t, "203112", account.Expiration)
		assert.Equal(t, "visa", account.Type)
		assert.Equal(t, []string{"customers/cus_1/sources/card_1"}, callLog.URLs())
	})

	t.Run("no name and no expiry keep the stored values", func(t *testing.T) {
		manager, processor, _ := newSourceManager(t)

		processor.On("GetSource", mock.Anything, "cus_1", "card_1").Return(existing, nil).Once()
		processor.On("UpdateSource", mock.Anything, "cus_1", "card_1", mock.MatchedBy(func(u application.SourceUpdate) bool {
			return u.Name == "Old Name" && u.ExpMonth == "03" && u.ExpYear == "2027"
		})).
			Return(existing, nil).
			Once()

		_, err := manager.Update(context.Background(), storedCustomer, "card_1", domain.CardInfo{})
		require.NoError(t, err)
	})

	t.Run("retrieve failure stops the update", func(t *testing.T) {
		manager, processor, callLog := newSourceManager(t)

		processor.On("GetSource", mock.Anything, "cus_1", "card_x").
			Return(nil, &application.ProcessorError{
				Type: application.ErrTypeInvalidRequest, Param: "id", Message: "No such source", StatusCode: http.StatusNotFound,
			}).
			Once()

		_, err := manager.Update(context.Background(), storedCustomer, "card_x", testCard())

		assert.True(t, domain.IsErrorKind(err, domain.KindInvalidRequest))
		processor.AssertNotCalled(t, "UpdateSource", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.True(t, callLog.Calls[0].IsError)
	})
}

func TestSourceManager_Remove(t *testing.T) {
	want := domain.AccountReference{ClientReferenceID: "cus_1", ReferenceID: "card_1"}

	t.Run("successful delete", func(t *testing.T) {
		manager, processor, callLog := newSourceManager(t)

		processor.On("GetCustomer", mock.Anything, "cus_1").Return(storedCustomer, nil).Once()
		processor.On("GetSource", mock.Anything, "cus_1", "card_1").Return(&application.Source{ID: "card_1"}, nil).Once()
		processor.On("DeleteSource", mock.Anything, "cus_1", "card_1").Return(&application.Source{ID: "card_1", Deleted: true}, nil).Once()

		assert.Equal(t, want, manager.Remove(context.Background(), "cus_1", "card_1"))
		require.Len(t, callLog.Calls, 1)
		assert.False(t, callLog.Calls[0].IsError)
	})

	t.Run("failed delete still returns the references", func(t *testing.T) {
		manager, processor, callLog := newSourceManager(t)

		processor.On("GetCustomer", mock.Anything, "cus_1").Return(storedCustomer, nil).Once()
		processor.On("GetSource", mock.Anything, "cus_1", "card_1").Return(&application.Source{ID: "card_1"}, nil).Once()
		processor.On("DeleteSource", mock.Anything, "cus_1", "card_1").Return(nil, errors.New("connection reset")).Once()

		assert.Equal(t, want, manager.Remove(context.Background(), "cus_1", "card_1"))
		require.Len(t, callLog.Calls, 1)
		assert.True(t, callLog.Calls[0].IsError)
	})

	t.Run("missing customer still returns the references", func(t *testing.T) {
		manager, processor, _ := newSourceManager(t)

		processor.On("GetCustomer", mock.Anything, "cus_1").
			Return(nil, &application.ProcessorError{Type: application.ErrTypeInvalidRequest, StatusCode: http.StatusNotFound}).
			Once()

		assert.Equal(t, want, manager.Remove(context.Background(), "cus_1", "card_1"))
		processor.AssertNotCalled(t, "DeleteSource", mock.Anything, mock.Anything, mock.Anything)
	})
}
