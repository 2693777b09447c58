// Package history stores the per-user transfer records that limit
// evaluation aggregates over.
//
// The decision engine works on an in-memory slice of records, so the store's
// job is to return a user's recent activity quickly. Callers ask for records
// since a cutoff; one calendar month covers every window the engine computes.
package history

import (
	"context"
	"time"

	"github.com/remitd/remitd/internal/limits"
)

// Store persists and retrieves transfer records.
type Store interface {
	// Append records a transfer attempt.
	Append(ctx context.Context, rec limits.TransactionRecord) error
	// ListSince returns a user's records created at or after the cutoff,
	// oldest first. All statuses are returned; the engine filters.
	ListSince(ctx context.Context, userID string, since time.Time) ([]limits.TransactionRecord, error)
	// UpdateStatus transitions a record to a new status.
	UpdateStatus(ctx context.Context, id string, status limits.Status) error
}

// WindowFor returns the earliest cutoff a limit evaluation at the given time
// needs history for.
func WindowFor(now time.Time) time.Time {
	return now.AddDate(0, -1, 0)
}
