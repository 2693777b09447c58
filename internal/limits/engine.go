package limits

import (
	"fmt"
	"time"

	"github.com/remitd/remitd/internal/currency"
	"github.com/remitd/remitd/internal/international"
)

// velocityWindow is the rolling window for the transaction-count check.
const velocityWindow = 60 * time.Minute

// riskScoreCutoff is the score above which (strictly) limits are tightened.
const riskScoreCutoff = 70

// riskReductionFactor is applied to single and daily limits for high-risk users.
const riskReductionFactor = 0.5

// AdjustedLimits are the reduced limits applied to high-risk users.
// Only the single limit is enforced as a violation check; the adjusted daily
// value is computed for visibility but not compared against the running total.
type AdjustedLimits struct {
	Single float64 `json:"single"`
	Daily  float64 `json:"daily"`
}

// AdjustForRisk derives reduced limits for a risk score. The boolean reports
// whether any reduction applies (riskScore strictly above the cutoff).
func AdjustForRisk(l LimitSet, riskScore int) (AdjustedLimits, bool) {
	if riskScore > riskScoreCutoff {
		return AdjustedLimits{
			Single: l.Single * riskReductionFactor,
			Daily:  l.Daily * riskReductionFactor,
		}, true
	}
	return AdjustedLimits{Single: l.Single, Daily: l.Daily}, false
}

// Engine evaluates proposed transfers. Construct once at startup and share:
// it is immutable and safe for concurrent use.
type Engine struct {
	thresholds RegulatoryThresholds
	normalizer *currency.Normalizer
	classifier international.Classifier
}

// NewEngine creates a decision engine. A nil normalizer gets the default
// static rate table in parity mode; a nil classifier gets the suffix
// heuristic.
func NewEngine(normalizer *currency.Normalizer, classifier international.Classifier) *Engine {
	if normalizer == nil {
		normalizer = currency.NewNormalizer(nil, currency.ModeParity)
	}
	if classifier == nil {
		classifier = international.NewSuffixClassifier()
	}
	return &Engine{
		thresholds: Thresholds(),
		normalizer: normalizer,
		classifier: classifier,
	}
}

// Evaluate runs every rule against the proposed transfer and returns the
// accumulated verdict. Checks are independent; nothing short-circuits.
// Amount checks use strict >, the velocity check and regulatory thresholds
// use >= — the operator per rule is load-bearing and covered by tests.
//
// Evaluate has no side effects: identical inputs (including now) produce
// identical results.
func (e *Engine) Evaluate(req TransactionRequest, profile UserProfile, now time.Time) (*EvaluationResult, error) {
	usd, err := e.normalizer.ToUSD(req.Amount, req.Currency)
	if err != nil {
		return nil, fmt.Errorf("normalize amount: %w", err)
	}

	tier := ParseTier(string(profile.VerificationLevel))
	tierLimits := ForTier(tier)

	violations := make([]Violation, 0, 4)
	warnings := make([]Warning, 0, 3)

	if usd > tierLimits.Single {
		violations = append(violations, Violation{
			Type:    ViolationSingleLimit,
			Limit:   tierLimits.Single,
			Actual:  usd,
			Message: fmt.Sprintf("amount $%.2f exceeds the single transaction limit of $%.2f", usd, tierLimits.Single),
		})
	}

	if total := DailyTotal(profile.History, now) + usd; total > tierLimits.Daily {
		violations = append(violations, Violation{
			Type:    ViolationDailyLimit,
			Limit:   tierLimits.Daily,
			Actual:  total,
			Message: fmt.Sprintf("daily total $%.2f would exceed the daily limit of $%.2f", total, tierLimits.Daily),
		})
	}

	if total := WeeklyTotal(profile.History, now) + usd; total > tierLimits.Weekly {
		violations = append(violations, Violation{
			Type:    ViolationWeeklyLimit,
			Limit:   tierLimits.Weekly,
			Actual:  total,
			Message: fmt.Sprintf("weekly total $%.2f would exceed the weekly limit of $%.2f", total, tierLimits.Weekly),
		})
	}

	if total := MonthlyTotal(profile.History, now) + usd; total > tierLimits.Monthly {
		violations = append(violations, Violation{
			Type:    ViolationMonthlyLimit,
			Limit:   tierLimits.Monthly,
			Actual:  total,
			Message: fmt.Sprintf("monthly total $%.2f would exceed the monthly limit of $%.2f", total, tierLimits.Monthly),
		})
	}

	// Count check is inclusive: the Nth transaction inside the window is
	// already at the cap before this one.
	if count := RecentCount(profile.History, now, velocityWindow); count >= tierLimits.Velocity {
		violations = append(violations, Violation{
			Type:    ViolationVelocityLimit,
			Limit:   float64(tierLimits.Velocity),
			Actual:  float64(count),
			Message: fmt.Sprintf("%d transactions in the last hour reached the velocity limit of %d", count, tierLimits.Velocity),
		})
	}

	// Regulatory thresholds are non-blocking and may all fire for one large
	// transaction.
	if usd >= e.thresholds.CTR {
		warnings = append(warnings, Warning{
			Type:      WarningCTR,
			Threshold: e.thresholds.CTR,
			Actual:    usd,
			Message:   fmt.Sprintf("amount $%.2f meets the Currency Transaction Report threshold of $%.2f", usd, e.thresholds.CTR),
		})
	}
	if usd >= e.thresholds.SAR {
		warnings = append(warnings, Warning{
			Type:      WarningSAR,
			Threshold: e.thresholds.SAR,
			Actual:    usd,
			Message:   fmt.Sprintf("amount $%.2f meets the Suspicious Activity Report review threshold of $%.2f", usd, e.thresholds.SAR),
		})
	}
	if usd >= e.thresholds.HighRisk {
		warnings = append(warnings, Warning{
			Type:      WarningHighRisk,
			Threshold: e.thresholds.HighRisk,
			Actual:    usd,
			Message:   fmt.Sprintf("amount $%.2f is subject to enhanced monitoring above $%.2f", usd, e.thresholds.HighRisk),
		})
	}

	if e.classifier.IsInternational(req.Recipient) {
		if total := InternationalDailyTotal(profile.History, now, e.classifier.IsInternational) + usd; total > e.thresholds.InternationalDaily {
			violations = append(violations, Violation{
				Type:    ViolationInternationalDaily,
				Limit:   e.thresholds.InternationalDaily,
				Actual:  total,
				Message: fmt.Sprintf("international daily total $%.2f would exceed the limit of $%.2f", total, e.thresholds.InternationalDaily),
			})
		}
	}

	if adjusted, reduced := AdjustForRisk(tierLimits, profile.RiskScore); reduced && usd > adjusted.Single {
		violations = append(violations, Violation{
			Type:    ViolationRiskAdjustedSingle,
			Limit:   adjusted.Single,
			Actual:  usd,
			Message: fmt.Sprintf("amount $%.2f exceeds the risk-adjusted single transaction limit of $%.2f", usd, adjusted.Single),
		})
	}

	return &EvaluationResult{
		Allowed:         len(violations) == 0,
		AmountUSD:       usd,
		Violations:      violations,
		Warnings:        warnings,
		Recommendations: Recommend(violations, warnings, tier),
		Limits: LimitsView{
			Current:    tierLimits,
			Regulatory: e.thresholds,
		},
		EvaluatedAt: now,
	}, nil
}
