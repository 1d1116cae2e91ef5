package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

// CustomerMappingRepository is a testify mock of application.CustomerMappingRepository.
type CustomerMappingRepository struct {
	mock.Mock
}

func NewCustomerMappingRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CustomerMappingRepository {
	m := &CustomerMappingRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CustomerMappingRepository) FindByContactID(ctx context.Context, contactID int64) (*domain.CustomerMapping, error) {
	args := m.Called(ctx, contactID)
	mapping, _ := args.Get(0).(*domain.CustomerMapping)
	return mapping, args.Error(1)
}

func (m *CustomerMappingRepository) Create(ctx context.Context, mapping *domain.CustomerMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *CustomerMappingRepository) DeleteByContactID(ctx context.Context, contactID int64) error {
	args := m.Called(ctx, contactID)
	return args.Error(0)
}

// InvoiceLookup is a testify mock of application.InvoiceLookup.
type InvoiceLookup struct {
	mock.Mock
}

func NewInvoiceLookup(t interface {
	mock.TestingT
	Cleanup(func())
}) *InvoiceLookup {
	m := &InvoiceLookup{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *InvoiceLookup) FindInvoiceCode(ctx context.Context, invoiceID int64) (string, error) {
	args := m.Called(ctx, invoiceID)
	return args.String(0), args.Error(1)
}
