package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/remitd/remitd/internal/limits"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL-backed history store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, rec limits.TransactionRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, amount_usd, currency, recipient, status, created_at)
		VALUES ($1, $2, $3::NUMERIC(20,6), $4, $5, $6, $7)
	`, rec.ID, rec.UserID, rec.AmountUSD, rec.Currency, rec.Recipient, rec.Status, createdAt)
	return err
}

func (s *PostgresStore) ListSince(ctx context.Context, userID string, since time.Time) ([]limits.TransactionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, amount_usd, currency, COALESCE(recipient, ''), status, created_at
		FROM transactions
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at ASC, id ASC
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []limits.TransactionRecord
	for rows.Next() {
		var rec limits.TransactionRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.AmountUSD, &rec.Currency, &rec.Recipient, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status limits.Status) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
