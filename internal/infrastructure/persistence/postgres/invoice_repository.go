package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
)

// invoiceRepository reads the host's invoices table. It never writes to it.
type invoiceRepository struct {
	db Executor
}

func NewInvoiceRepository(db *DB) application.InvoiceLookup {
	return &invoiceRepository{db: db.Pool}
}

func (r *invoiceRepository) FindInvoiceCode(ctx context.Context, invoiceID int64) (string, error) {
	query := `SELECT id_code FROM invoices WHERE id = $1`

	var code string
	if err := r.db.QueryRow(ctx, query, invoiceID).Scan(&code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", application.ErrInvoiceNotFound
		}
		return "", fmt.Errorf("failed to find invoice %d: %w", invoiceID, err)
	}

	return code, nil
}
