package services_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

// memoryMappings is an in-memory CustomerMappingRepository. The Err fields force failures.
type memoryMappings struct {
	mu        sync.Mutex
	rows      map[int64]*domain.CustomerMapping
	nextID    int64
	creates   int
	deletes   int
	FindErr   error
	CreateErr error
	DeleteErr error
}

func newMemoryMappings() *memoryMappings {
	return &memoryMappings{rows: make(map[int64]*domain.CustomerMapping)}
}

func (m *memoryMappings) FindByContactID(_ context.Context, contactID int64) (*domain.CustomerMapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	row, ok := m.rows[contactID]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (m *memoryMappings) Create(_ context.Context, mapping *domain.CustomerMapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.creates++
	m.nextID++
	mapping.ID = m.nextID
	cp := *mapping
	m.rows[mapping.ContactID] = &cp
	return nil
}

func (m *memoryMappings) DeleteByContactID(_ context.Context, contactID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.deletes++
	delete(m.rows, contactID)
	return nil
}

func (m *memoryMappings) seed(contactID int64, customerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.rows[contactID] = &domain.CustomerMapping{ID: m.nextID, ContactID: contactID, RemoteCustomerID: customerID}
}

func (m *memoryMappings) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testContact() domain.Contact {
	return domain.Contact{
		ID:        7,
		ClientID:  3,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
}
