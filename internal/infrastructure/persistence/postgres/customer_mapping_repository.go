package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

var ErrMappingExists = errors.New("customer mapping already exists")

type customerMappingRepository struct {
	db Executor
}

func NewCustomerMappingRepository(db *DB) application.CustomerMappingRepository {
	return &customerMappingRepository{db: db.Pool}
}

// FindByContactID returns nil, nil when the contact has no remote customer yet.
func (r *customerMappingRepository) FindByContactID(ctx context.Context, contactID int64) (*domain.CustomerMapping, error) {
	query := `
		SELECT id, contact_id, remote_customer_id, created_at
		FROM contact_customer_mappings
		WHERE contact_id = $1
	`

	var m CustomerMappingModel
	err := r.db.QueryRow(ctx, query, contactID).Scan(&m.ID, &m.ContactID, &m.RemoteCustomerID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find customer mapping: %w", err)
	}

	return toDomainMapping(m), nil
}

func (r *customerMappingRepository) Create(ctx context.Context, mapping *domain.CustomerMapping) error {
	query := `
		INSERT INTO contact_customer_mappings (contact_id, remote_customer_id)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, mapping.ContactID, mapping.RemoteCustomerID).Scan(&mapping.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("contact %d: %w", mapping.ContactID, ErrMappingExists)
		}
		return fmt.Errorf("failed to create customer mapping: %w", err)
	}

	return nil
}

func (r *customerMappingRepository) DeleteByContactID(ctx context.Context, contactID int64) error {
	query := `DELETE FROM contact_customer_mappings WHERE contact_id = $1`

	if _, err := r.db.Exec(ctx, query, contactID); err != nil {
		return fmt.Errorf("failed to delete customer mapping: %w", err)
	}

	return nil
}
