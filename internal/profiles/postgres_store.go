package profiles

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresDirectory implements Directory using PostgreSQL.
type PostgresDirectory struct {
	db *sql.DB
}

// NewPostgresDirectory creates a new PostgreSQL-backed profile directory.
func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) Get(ctx context.Context, userID string) (*Profile, error) {
	p := &Profile{}
	err := d.db.QueryRowContext(ctx, `
		SELECT user_id, verification_level, risk_score, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.VerificationLevel, &p.RiskScore, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (d *PostgresDirectory) Put(ctx context.Context, p *Profile) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, verification_level, risk_score, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			verification_level = EXCLUDED.verification_level,
			risk_score = EXCLUDED.risk_score,
			updated_at = NOW()
	`, p.UserID, p.VerificationLevel, p.RiskScore)
	return err
}
