package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/infrastructure/calllog"
)

// CallLogRepository persists call log entries. It satisfies calllog.Sink.
type CallLogRepository struct {
	db Executor
}

func NewCallLogRepository(db *DB) *CallLogRepository {
	return &CallLogRepository{db: db.Pool}
}

func (r *CallLogRepository) Write(ctx context.Context, entry calllog.Entry) error {
	query := `
		INSERT INTO gateway_call_logs (url, direction, payload, success, logged_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	m := toCallLogModel(entry)
	if _, err := r.db.Exec(ctx, query, m.URL, m.Direction, m.Payload, m.Success, m.LoggedAt); err != nil {
		return fmt.Errorf("failed to write call log: %w", err)
	}

	return nil
}

// FindByURL returns entries for a url, oldest first.
func (r *CallLogRepository) FindByURL(ctx context.Context, url string, limit int) ([]CallLogModel, error) {
	query := `
		SELECT id, url, direction, payload, success, logged_at
		FROM gateway_call_logs
		WHERE url = $1
		ORDER BY id
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, url, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query call logs: %w", err)
	}
	defer rows.Close()

	var logs []CallLogModel
	for rows.Next() {
		var m CallLogModel
		if err := rows.Scan(&m.ID, &m.URL, &m.Direction, &m.Payload, &m.Success, &m.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan call log: %w", err)
		}
		logs = append(logs, m)
	}

	return logs, rows.Err()
}

// DeleteOlderThan removes up to limit entries logged before cutoff, oldest first.
func (r *CallLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	query := `
		DELETE FROM gateway_call_logs
		WHERE id IN (
			SELECT id FROM gateway_call_logs
			WHERE logged_at < $1
			ORDER BY id
			LIMIT $2
		)
	`

	tag, err := r.db.Exec(ctx, query, cutoff, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to prune call logs: %w", err)
	}

	return tag.RowsAffected(), nil
}
