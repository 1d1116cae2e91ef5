package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
)

// Processor is a testify mock of application.Processor.
type Processor struct {
	mock.Mock
}

func NewProcessor(t interface {
	mock.TestingT
	Cleanup(func())
}) *Processor {
	m := &Processor{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Processor) CreateCustomer(ctx context.Context, req application.CustomerRequest, idempotencyKey string) (*application.Customer, error) {
	args := m.Called(ctx, req, idempotencyKey)
	return customerArg(args, 0), args.Error(1)
}

func (m *Processor) GetCustomer(ctx context.Context, customerID string) (*application.Customer, error) {
	args := m.Called(ctx, customerID)
	return customerArg(args, 0), args.Error(1)
}

func (m *Processor) CreateSource(ctx context.Context, customerID string, req application.SourceRequest, idempotencyKey string) (*application.Source, error) {
	args := m.Called(ctx, customerID, req, idempotencyKey)
	return sourceArg(args, 0), args.Error(1)
}

func (m *Processor) GetSource(ctx context.Context, customerID, sourceID string) (*application.Source, error) {
	args := m.Called(ctx, customerID, sourceID)
	return sourceArg(args, 0), args.Error(1)
}

func (m *Processor) UpdateSource(ctx context.Context, customerID, sourceID string, req application.SourceUpdate) (*application.Source, error) {
	args := m.Called(ctx, customerID, sourceID, req)
	return sourceArg(args, 0), args.Error(1)
}

func (m *Processor) DeleteSource(ctx context.Context, customerID, sourceID string) (*application.Source, error) {
	args := m.Called(ctx, customerID, sourceID)
	return sourceArg(args, 0), args.Error(1)
}

func (m *Processor) CreateCharge(ctx context.Context, req application.ChargeRequest, idempotencyKey string) (*application.Charge, error) {
	args := m.Called(ctx, req, idempotencyKey)
	ch, _ := args.Get(0).(*application.Charge)
	return ch, args.Error(1)
}

func (m *Processor) CreateRefund(ctx context.Context, req application.RefundRequest, idempotencyKey string) (*application.Refund, error) {
	args := m.Called(ctx, req, idempotencyKey)
	re, _ := args.Get(0).(*application.Refund)
	return re, args.Error(1)
}

func customerArg(args mock.Arguments, i int) *application.Customer {
	cus, _ := args.Get(i).(*application.Customer)
	return cus
}

func sourceArg(args mock.Arguments, i int) *application.Source {
	src, _ := args.Get(i).(*application.Source)
	return src
}
