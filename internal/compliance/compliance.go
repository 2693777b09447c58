// Package compliance keeps an audit trail of limit evaluations.
//
// Every evaluation that produced a violation or a regulatory warning is
// recorded with its full verdict, so reviewers can answer "why was this
// transfer blocked" and "which transfers crossed a reporting threshold"
// after the fact. Recording is best-effort and never blocks or fails the
// transfer path.
package compliance

import (
	"context"
	"time"

	"github.com/remitd/remitd/internal/limits"
)

// Assessment is one recorded limit evaluation.
type Assessment struct {
	ID          string             `json:"id"`
	UserID      string             `json:"userId"`
	Allowed     bool               `json:"allowed"`
	AmountUSD   float64            `json:"amountUsd"`
	Currency    string             `json:"currency"`
	Violations  []limits.Violation `json:"violations"`
	Warnings    []limits.Warning   `json:"warnings"`
	EvaluatedAt time.Time          `json:"evaluatedAt"`
}

// Store persists assessments for the audit trail.
type Store interface {
	Record(ctx context.Context, a *Assessment) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*Assessment, error)
}
