package compliance

import (
	"context"
	"log/slog"
	"time"

	"github.com/remitd/remitd/internal/idgen"
	"github.com/remitd/remitd/internal/limits"
	"github.com/remitd/remitd/internal/retry"
)

// Recorder captures evaluation results into the audit trail.
type Recorder struct {
	store  Store
	logger *slog.Logger
}

// NewRecorder creates a recorder. A nil store disables persistence; the
// recorder still logs.
func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, logger: logger}
}

// Capture records an evaluation that tripped a violation or a regulatory
// warning. Clean evaluations are not persisted. Persistence runs in the
// background; a failure is logged and otherwise ignored so the transfer
// path never depends on the audit store.
func (r *Recorder) Capture(userID, currency string, result *limits.EvaluationResult) *Assessment {
	if result == nil || (len(result.Violations) == 0 && len(result.Warnings) == 0) {
		return nil
	}

	a := &Assessment{
		ID:          idgen.WithPrefix("asmt_"),
		UserID:      userID,
		Allowed:     result.Allowed,
		AmountUSD:   result.AmountUSD,
		Currency:    currency,
		Violations:  append([]limits.Violation(nil), result.Violations...),
		Warnings:    append([]limits.Warning(nil), result.Warnings...),
		EvaluatedAt: result.EvaluatedAt,
	}

	for _, w := range result.Warnings {
		r.logger.Warn("regulatory threshold crossed",
			"assessment_id", a.ID,
			"user_id", userID,
			"type", string(w.Type),
			"threshold", w.Threshold,
			"amount_usd", w.Actual,
		)
	}
	if !result.Allowed {
		r.logger.Info("transfer blocked by limits",
			"assessment_id", a.ID,
			"user_id", userID,
			"amount_usd", result.AmountUSD,
			"violations", len(result.Violations),
		)
	}

	if r.store != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := retry.Do(ctx, 3, 100*time.Millisecond, func() error {
				return r.store.Record(ctx, a)
			})
			if err != nil {
				r.logger.Error("failed to persist compliance assessment",
					"assessment_id", a.ID, "error", err)
			}
		}()
	}
	return a
}
