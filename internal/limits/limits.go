// Package limits implements the transaction-limits and regulatory-compliance
// decision engine.
//
// Every proposed transfer is evaluated against the user's tier limits
// (single/daily/weekly/monthly/annual amounts plus a velocity count), a fixed
// set of regulatory disclosure thresholds (CTR/SAR/high-risk monitoring), and
// risk-based limit reductions. The engine is a pure function of its inputs:
// it performs no I/O, holds no mutable state, and is safe to share across
// goroutines.
package limits

import "time"

// Tier is a user's KYC verification level. It governs which limit set applies.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierVerified Tier = "verified"
	TierPremium  Tier = "premium"
)

// ParseTier maps a raw tier string to a known Tier. Unknown or empty values
// fall back to TierBasic; the fallback is deliberate and tested, not an
// accidental lookup miss.
func ParseTier(s string) Tier {
	switch Tier(s) {
	case TierBasic, TierVerified, TierPremium:
		return Tier(s)
	default:
		return TierBasic
	}
}

// IsValid checks if the tier is one of the supported enum values.
func (t Tier) IsValid() bool {
	switch t {
	case TierBasic, TierVerified, TierPremium:
		return true
	}
	return false
}

// LimitSet holds the numeric limits for one verification tier.
// Amounts are USD; Velocity is a transaction count per rolling hour.
type LimitSet struct {
	Single   float64 `json:"single"`
	Daily    float64 `json:"daily"`
	Weekly   float64 `json:"weekly"`
	Monthly  float64 `json:"monthly"`
	Annual   float64 `json:"annual"`
	Velocity int     `json:"velocity"`
}

// Per-tier limit sets. Fixed constants; adjust via a new release, not config.
var (
	basicLimits    = LimitSet{Single: 500, Daily: 1000, Weekly: 5000, Monthly: 10000, Annual: 50000, Velocity: 5}
	verifiedLimits = LimitSet{Single: 2500, Daily: 5000, Weekly: 25000, Monthly: 50000, Annual: 250000, Velocity: 10}
	premiumLimits  = LimitSet{Single: 10000, Daily: 25000, Weekly: 100000, Monthly: 250000, Annual: 1000000, Velocity: 20}
)

// ForTier returns the limit set for a verification tier.
// Unrecognized tiers get the basic limits.
func ForTier(t Tier) LimitSet {
	switch t {
	case TierVerified:
		return verifiedLimits
	case TierPremium:
		return premiumLimits
	case TierBasic:
		return basicLimits
	default:
		return basicLimits
	}
}

// RegulatoryThresholds are tier-independent disclosure and monitoring
// thresholds. They never change per request.
type RegulatoryThresholds struct {
	CTR                  float64 `json:"ctrThreshold"`
	SAR                  float64 `json:"sarThreshold"`
	HighRisk             float64 `json:"highRiskThreshold"`
	InternationalDaily   float64 `json:"internationalDaily"`
	InternationalMonthly float64 `json:"internationalMonthly"`
}

// Thresholds returns the fixed regulatory thresholds.
func Thresholds() RegulatoryThresholds {
	return RegulatoryThresholds{
		CTR:                  10000,
		SAR:                  5000,
		HighRisk:             2500,
		InternationalDaily:   10000,
		InternationalMonthly: 50000,
	}
}

// Status is the settlement state of a historical transaction.
// Only completed transactions count toward rolling aggregates.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

// TransactionRecord is one historical transfer. Records are read-only inputs;
// the engine never mutates them.
type TransactionRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	AmountUSD float64   `json:"amountUsd"`
	Currency  string    `json:"currency"`
	Recipient string    `json:"recipient"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserProfile carries everything the engine needs to know about the sender.
// History is a snapshot supplied by the caller; the engine does no fetching.
type UserProfile struct {
	UserID            string
	VerificationLevel Tier
	RiskScore         int // 0-100
	History           []TransactionRecord
}

// TransactionRequest is a proposed transfer.
type TransactionRequest struct {
	Amount    float64
	Currency  string
	Type      string
	Recipient string
}

// ViolationType tags a blocking rule breach.
type ViolationType string

const (
	ViolationSingleLimit        ViolationType = "single_transaction_limit"
	ViolationDailyLimit         ViolationType = "daily_limit"
	ViolationWeeklyLimit        ViolationType = "weekly_limit"
	ViolationMonthlyLimit       ViolationType = "monthly_limit"
	ViolationVelocityLimit      ViolationType = "velocity_limit"
	ViolationInternationalDaily ViolationType = "international_daily_limit"
	ViolationRiskAdjustedSingle ViolationType = "risk_adjusted_single_limit"
)

// Violation is a blocking breach of a tier limit.
type Violation struct {
	Type    ViolationType `json:"type"`
	Limit   float64       `json:"limit"`
	Actual  float64       `json:"actual"`
	Message string        `json:"message"`
}

// WarningType tags a non-blocking regulatory disclosure trigger.
type WarningType string

const (
	WarningCTR      WarningType = "ctr_threshold"
	WarningSAR      WarningType = "sar_threshold"
	WarningHighRisk WarningType = "high_risk_monitoring"
)

// Warning is a regulatory disclosure trigger. Warnings never block a
// transfer; they are captured for compliance review.
type Warning struct {
	Type      WarningType `json:"type"`
	Threshold float64     `json:"threshold"`
	Actual    float64     `json:"actual"`
	Message   string      `json:"message"`
}

// RecommendationType tags a remediation suggestion.
type RecommendationType string

const (
	RecommendVerificationUpgrade RecommendationType = "verification_upgrade"
	RecommendReduceFrequency     RecommendationType = "reduce_frequency"
	RecommendReduceAmount        RecommendationType = "reduce_amount"
	RecommendCTRFiling           RecommendationType = "ctr_filing"
)

// Action is the user-facing step a recommendation suggests.
type Action string

const (
	ActionUpgradeVerification Action = "upgrade_verification"
	ActionWaitBeforeRetry     Action = "wait_before_retry"
	ActionLowerAmount         Action = "lower_amount"
	ActionExpectCTRFiling     Action = "expect_ctr_filing"
)

// Recommendation is user-facing remediation guidance derived from the result.
type Recommendation struct {
	Type    RecommendationType `json:"type"`
	Message string             `json:"message"`
	Action  Action             `json:"action"`
}

// LimitsView echoes the limits the evaluation was made against, so callers
// can render actionable messaging without a second lookup.
type LimitsView struct {
	Current    LimitSet             `json:"current"`
	Regulatory RegulatoryThresholds `json:"regulatory"`
}

// EvaluationResult is the engine's verdict on one proposed transfer.
// Invariant: Allowed == (len(Violations) == 0). Immutable once produced.
type EvaluationResult struct {
	Allowed         bool             `json:"allowed"`
	AmountUSD       float64          `json:"amountUsd"`
	Violations      []Violation      `json:"violations"`
	Warnings        []Warning        `json:"warnings"`
	Recommendations []Recommendation `json:"recommendations"`
	Limits          LimitsView       `json:"limits"`
	EvaluatedAt     time.Time        `json:"evaluatedAt"`
}
