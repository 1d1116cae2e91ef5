package services_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/application/mocks"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/application/services"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/infrastructure/calllog"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []calllog.Entry
}

func (s *recordingSink) Write(_ context.Context, entry calllog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

type GatewayTestSuite struct {
	suite.Suite
	processor *mocks.Processor
	invoices  *mocks.InvoiceLookup
	mappings  *memoryMappings
	sink      *recordingSink
	gateway   *services.Gateway
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewayTestSuite))
}

func (s *GatewayTestSuite) SetupTest() {
	s.processor = mocks.NewProcessor(s.T())
	s.invoices = mocks.NewInvoiceLookup(s.T())
	s.mappings = newMemoryMappings()
	s.sink = &recordingSink{}

	callLog := calllog.NewLogger("https://api.stripe.com/v1/", s.sink, discardLogger())
	s.gateway = services.NewGateway(s.processor, s.mappings, s.invoices, callLog, discardLogger())
}

func (s *GatewayTestSuite) assertNoRemoteCalls() {
	s.Empty(s.processor.Calls)
	s.Empty(s.sink.entries)
}

func (s *GatewayTestSuite) TestCapabilities() {
	s.False(s.gateway.RequiresCustomerPresent())
	s.True(s.gateway.RequiresCcStorage())
	s.True(s.gateway.RequiresAchStorage())
}

func (s *GatewayTestSuite) TestUnsupportedOperationsMakeNoRemoteCall() {
	ctx := context.Background()

	tx, err := s.gateway.AuthorizeStoredCC(ctx, services.ChargeCommand{ClientReferenceID: "cus_1", ReferenceID: "card_1"})
	s.Nil(tx)
	s.True(domain.IsErrorKind(err, domain.KindUnsupported))

	tx, err = s.gateway.CaptureStoredCC(ctx, services.CaptureCommand{TransactionID: "ch_1"})
	s.Nil(tx)
	s.True(domain.IsErrorKind(err, domain.KindUnsupported))

	account, err := s.gateway.UpdateACH(ctx, services.UpdateACHCommand{Contact: testContact(), ReferenceID: "ba_1"})
	s.Nil(account)
	s.True(domain.IsErrorKind(err, domain.KindUnsupported))

	s.assertNoRemoteCalls()
	s.Zero(s.mappings.count())
}

func (s *GatewayTestSuite) TestStoreCCStopsWhenCustomerCannotBeResolved() {
	s.mappings.seed(7, "cus_gone")
	s.processor.On("GetCustomer", mock.Anything, "cus_gone").
		Return(&application.Customer{ID: "cus_gone", Deleted: true}, nil).
		Once()

	account, err := s.gateway.StoreCC(context.Background(), services.StoreCCCommand{
		Contact: testContact(),
		Card:    domain.CardInfo{MerchantToken: "tok_visa"},
	})

	s.Nil(account)
	s.True(domain.IsErrorKind(err, domain.KindCustomerDeleted))
	s.processor.AssertNotCalled(s.T(), "CreateSource", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *GatewayTestSuite) TestStoreCCMasksCardDataInCallLog() {
	s.processor.On("CreateCustomer", mock.Anything, mock.Anything, mock.Anything).
		Return(&application.Customer{ID: "cus_1"}, nil).
		Once()
	s.processor.On("CreateSource", mock.Anything, "cus_1", mock.Anything, mock.Anything).
		Return(&application.Source{
			ID: "card_1", Object: application.SourceObjectCard, Brand: "Visa", Last4: "4242", ExpMonth: 7, ExpYear: 2030,
		}, nil).
		Once()

	account, err := s.gateway.StoreCC(context.Background(), services.StoreCCCommand{
		Contact: testContact(),
		Card:    testCard(),
	})

	s.Require().NoError(err)
	s.Equal("card_1", account.ReferenceID)
	s.Equal("203007", account.Expiration)
	s.Equal(1, s.mappings.count())

	// customer create and source create, one input and one output entry each
	s.Require().Len(s.sink.entries, 4)
	s.Equal("https://api.stripe.com/v1/customers", s.sink.entries[0].URL)
	s.Equal("https://api.stripe.com/v1/customers/cus_1/sources", s.sink.entries[2].URL)
	for _, entry := range s.sink.entries {
		s.NotContains(entry.Payload, "4242424242424242")
		s.NotContains(entry.Payload, `"cvc":"123"`)
		s.True(entry.Success)
	}
	s.Contains(s.sink.entries[2].Payload, `"number":"xxxxxxxxxxxxxxxx"`)
}

func (s *GatewayTestSuite) TestStoreACHUsesCommandCurrency() {
	s.mappings.seed(7, "cus_1")
	s.processor.On("GetCustomer", mock.Anything, "cus_1").Return(&application.Customer{ID: "cus_1"}, nil).Once()
	s.processor.On("CreateSource", mock.Anything, "cus_1", mock.MatchedBy(func(req application.SourceRequest) bool {
		return req.BankAccount != nil && req.BankAccount.Currency == "eur"
	}), mock.Anything).
		Return(&application.Source{ID: "ba_1", Object: application.SourceObjectBankAccount, Last4: "6789"}, nil).
		Once()

	account, err := s.gateway.StoreACH(context.Background(), services.StoreACHCommand{
		Contact:  testContact(),
		Account:  domain.AchInfo{AccountNumber: "000123456789", RoutingNumber: "110000000", Type: domain.AccountTypeChecking},
		Currency: "EUR",
	})

	s.Require().NoError(err)
	s.Equal("checking", account.Type)
}

func (s *GatewayTestSuite) TestStoreACHKeepsSavingsType() {
	s.mappings.seed(7, "cus_1")
	s.processor.On("GetCustomer", mock.Anything, "cus_1").Return(&application.Customer{ID: "cus_1"}, nil).Once()
	s.processor.On("CreateSource", mock.Anything, "cus_1", mock.MatchedBy(func(req application.SourceRequest) bool {
		return req.BankAccount != nil && req.BankAccount.AccountHolderType == "individual"
	}), mock.Anything).
		Return(&application.Source{
			ID:                "ba_2",
			Object:            application.SourceObjectBankAccount,
			Last4:             "6789",
			AccountHolderType: "individual",
		}, nil).
		Once()

	account, err := s.gateway.StoreACH(context.Background(), services.StoreACHCommand{
		Contact:  testContact(),
		Account:  domain.AchInfo{AccountNumber: "000123456789", RoutingNumber: "110000000", Type: domain.AccountTypeSavings},
		Currency: "usd",
	})

	s.Require().NoError(err)
	s.Equal("savings", account.Type)
	s.Equal("ba_2", account.ReferenceID)
}

func (s *GatewayTestSuite) TestVoidIsFullRefund() {
	s.processor.On("CreateRefund", mock.Anything, application.RefundRequest{Charge: "ch_1"}, "void-key").
		Return(&application.Refund{ID: "re_1", Charge: "ch_1"}, nil).
		Twice()

	cmd := services.VoidCommand{ClientReferenceID: "cus_1", ReferenceID: "card_1", TransactionID: "ch_1", IdempotencyKey: "void-key"}

	tx, err := s.gateway.VoidStoredCC(context.Background(), cmd)
	s.Require().NoError(err)
	s.Equal(domain.StatusVoid, tx.Status)

	tx, err = s.gateway.VoidStoredACH(context.Background(), cmd)
	s.Require().NoError(err)
	s.Equal(domain.StatusVoid, tx.Status)
}

func (s *GatewayTestSuite) TestDeclinedChargeIsInBand() {
	s.processor.On("CreateCharge", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &application.ProcessorError{
			Type: application.ErrTypeCard, Code: "card_declined", Message: "Your card was declined.", StatusCode: http.StatusPaymentRequired,
		}).
		Once()

	tx, err := s.gateway.ProcessStoredACH(context.Background(), services.ChargeCommand{
		ClientReferenceID: "cus_1",
		ReferenceID:       "ba_1",
		Amount:            "12",
		Currency:          "usd",
	})

	s.Require().NoError(err)
	s.Equal(domain.StatusDeclined, tx.Status)
	s.Require().Len(s.sink.entries, 2)
	s.False(s.sink.entries[1].Success)
	s.Contains(s.sink.entries[1].Payload, "card_declined")
}

func (s *GatewayTestSuite) TestRemoveReturnsReferencesWithoutRemoteCustomer() {
	s.processor.On("GetCustomer", mock.Anything, "cus_1").
		Return(nil, &application.ProcessorError{Type: application.ErrTypeInvalidRequest, StatusCode: http.StatusNotFound}).
		Twice()

	want := domain.AccountReference{ClientReferenceID: "cus_1", ReferenceID: "card_1"}
	s.Equal(want, s.gateway.RemoveCC(context.Background(), "cus_1", "card_1"))
	s.Equal(want, s.gateway.RemoveACH(context.Background(), "cus_1", "card_1"))
}
