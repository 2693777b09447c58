package compliance

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresStore persists assessments in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed assessment store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Record(ctx context.Context, a *Assessment) error {
	violationsJSON, err := json.Marshal(a.Violations)
	if err != nil {
		return fmt.Errorf("failed to marshal violations: %w", err)
	}
	warningsJSON, err := json.Marshal(a.Warnings)
	if err != nil {
		return fmt.Errorf("failed to marshal warnings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO compliance_assessments (id, user_id, allowed, amount_usd, currency, violations, warnings, evaluated_at)
		VALUES ($1, $2, $3, $4::NUMERIC(20,6), $5, $6, $7, $8)
	`,
		a.ID,
		a.UserID,
		a.Allowed,
		a.AmountUSD,
		a.Currency,
		violationsJSON,
		warningsJSON,
		a.EvaluatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record assessment: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string, limit int) ([]*Assessment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, allowed, amount_usd, currency, violations, warnings, evaluated_at
		FROM compliance_assessments
		WHERE user_id = $1
		ORDER BY evaluated_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*Assessment
	for rows.Next() {
		var a Assessment
		var violationsJSON, warningsJSON []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.Allowed, &a.AmountUSD, &a.Currency, &violationsJSON, &warningsJSON, &a.EvaluatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(violationsJSON, &a.Violations)
		_ = json.Unmarshal(warningsJSON, &a.Warnings)
		result = append(result, &a)
	}
	return result, rows.Err()
}
