// Package profiles stores per-user verification and risk state.
//
// A profile is the non-transactional half of a limit evaluation: which tier
// the user's limits come from and their current risk score. Unknown users
// get a zero-value profile, which the engine treats as an unverified,
// zero-risk account.
package profiles

import (
	"context"
	"errors"
	"time"

	"github.com/remitd/remitd/internal/limits"
)

// ErrNotFound is returned when no profile exists for a user.
var ErrNotFound = errors.New("profiles: profile not found")

// Profile holds a user's verification tier and risk score.
type Profile struct {
	UserID            string      `json:"user_id"`
	VerificationLevel limits.Tier `json:"verification_level"`
	RiskScore         float64     `json:"risk_score"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// Directory reads and writes user profiles.
type Directory interface {
	// Get returns a user's profile, or ErrNotFound.
	Get(ctx context.Context, userID string) (*Profile, error)
	// Put creates or replaces a user's profile.
	Put(ctx context.Context, p *Profile) error
}

// Default returns the profile assumed for a user with no stored record:
// the lowest tier and no risk signal.
func Default(userID string) *Profile {
	return &Profile{
		UserID:            userID,
		VerificationLevel: limits.TierBasic,
		RiskScore:         0,
	}
}
