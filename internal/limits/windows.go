package limits

import "time"

// Time-windowed aggregation over a user's transaction history.
//
// Window semantics differ on purpose and are relied on by the rule checks:
//   - daily: from local midnight of "now" through "now", not a rolling 24h
//   - weekly: rolling 7 days back from "now", not a calendar week
//   - monthly: rolling one calendar month back (date subtraction, not 30 days)
//   - velocity: rolling window counting records, not amounts
//
// Only completed records participate in any aggregate.

// DailyTotal sums completed transactions since local midnight of now.
func DailyTotal(history []TransactionRecord, now time.Time) float64 {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return sumSince(history, midnight)
}

// WeeklyTotal sums completed transactions in the trailing 7 days.
func WeeklyTotal(history []TransactionRecord, now time.Time) float64 {
	return sumSince(history, now.AddDate(0, 0, -7))
}

// MonthlyTotal sums completed transactions in the trailing calendar month.
func MonthlyTotal(history []TransactionRecord, now time.Time) float64 {
	return sumSince(history, now.AddDate(0, -1, 0))
}

// RecentCount counts completed transactions inside the trailing window.
func RecentCount(history []TransactionRecord, now time.Time, window time.Duration) int {
	cutoff := now.Add(-window)
	count := 0
	for _, rec := range history {
		if rec.Status != StatusCompleted {
			continue
		}
		if !rec.CreatedAt.Before(cutoff) {
			count++
		}
	}
	return count
}

// InternationalDailyTotal sums completed transactions since local midnight
// whose recipient the classifier deems foreign.
func InternationalDailyTotal(history []TransactionRecord, now time.Time, isInternational func(recipient string) bool) float64 {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var total float64
	for _, rec := range history {
		if rec.Status != StatusCompleted {
			continue
		}
		if rec.CreatedAt.Before(midnight) {
			continue
		}
		if isInternational(rec.Recipient) {
			total += rec.AmountUSD
		}
	}
	return total
}

func sumSince(history []TransactionRecord, cutoff time.Time) float64 {
	var total float64
	for _, rec := range history {
		if rec.Status != StatusCompleted {
			continue
		}
		if !rec.CreatedAt.Before(cutoff) {
			total += rec.AmountUSD
		}
	}
	return total
}
