package limits

import "strings"

// Recommend derives user-facing remediation guidance from an evaluation.
// Rules are independent; all that apply fire together.
func Recommend(violations []Violation, warnings []Warning, tier Tier) []Recommendation {
	recs := []Recommendation{}

	if len(violations) > 0 && tier == TierBasic {
		recs = append(recs, Recommendation{
			Type:    RecommendVerificationUpgrade,
			Message: "Verify your identity to unlock higher transfer limits.",
			Action:  ActionUpgradeVerification,
		})
	}

	for _, v := range violations {
		if v.Type == ViolationVelocityLimit {
			recs = append(recs, Recommendation{
				Type:    RecommendReduceFrequency,
				Message: "You are sending transfers too frequently. Wait a while before trying again.",
				Action:  ActionWaitBeforeRetry,
			})
			break
		}
	}

	// Matches every *_limit violation, velocity included. Preserved from the
	// original rule set.
	for _, v := range violations {
		if strings.Contains(string(v.Type), "limit") {
			recs = append(recs, Recommendation{
				Type:    RecommendReduceAmount,
				Message: "Try a smaller amount that fits within your current limits.",
				Action:  ActionLowerAmount,
			})
			break
		}
	}

	for _, w := range warnings {
		if w.Type == WarningCTR {
			recs = append(recs, Recommendation{
				Type:    RecommendCTRFiling,
				Message: "Transfers of $10,000 or more require a Currency Transaction Report filing.",
				Action:  ActionExpectCTRFiling,
			})
			break
		}
	}

	return recs
}
