package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/remitd/remitd/internal/auth"
	"github.com/remitd/remitd/internal/currency"
	"github.com/remitd/remitd/internal/history"
	"github.com/remitd/remitd/internal/idgen"
	"github.com/remitd/remitd/internal/limits"
	"github.com/remitd/remitd/internal/logging"
	"github.com/remitd/remitd/internal/metrics"
	"github.com/remitd/remitd/internal/profiles"
	"github.com/remitd/remitd/internal/traces"
	"github.com/remitd/remitd/internal/validation"
)

// transferRequest is the body for transfer submission and dry-run evaluation.
type transferRequest struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Type      string  `json:"type"`
	Recipient string  `json:"recipient"`
}

func (r *transferRequest) sanitize() {
	r.Currency = validation.SanitizeCurrency(r.Currency)
	r.Recipient = validation.SanitizeString(r.Recipient, validation.MaxRecipientLength)
	r.Type = validation.SanitizeString(r.Type, 64)
}

// evaluateFor fetches the sender's profile and recent history and runs the
// decision engine. The fail mode decides what an internal fault means: "open"
// lets the request proceed unevaluated, "closed" rejects it with 503.
//
// Returns (result, true) when the engine produced a verdict, (nil, true) when
// the evaluation failed open, and (nil, false) when a response has already
// been written (unknown currency in reject mode, or fail-closed).
func (s *Server) evaluateFor(c *gin.Context, userID string, req transferRequest) (*limits.EvaluationResult, bool) {
	ctx := c.Request.Context()
	now := time.Now()
	started := now

	ctx, span := traces.StartSpan(ctx, "limits.evaluate",
		traces.UserID(userID),
		traces.AmountUSD(req.Amount),
		traces.Currency(req.Currency),
	)
	defer span.End()

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, profiles.ErrNotFound) {
			return nil, s.evaluationFault(c, userID, "load profile", err, started)
		}
		// Unknown users get the lowest tier and no risk signal
		profile = profiles.Default(userID)
	}

	records, err := s.history.ListSince(ctx, userID, history.WindowFor(now))
	if err != nil {
		return nil, s.evaluationFault(c, userID, "load history", err, started)
	}

	result, err := s.engine.Evaluate(limits.TransactionRequest{
		Amount:    req.Amount,
		Currency:  req.Currency,
		Type:      req.Type,
		Recipient: req.Recipient,
	}, limits.UserProfile{
		UserID:            userID,
		VerificationLevel: profile.VerificationLevel,
		RiskScore:         int(profile.RiskScore),
		History:           records,
	}, now)
	if err != nil {
		// A currency the rate table doesn't know is a client problem when the
		// normalizer runs in reject mode, not an internal fault.
		if errors.Is(err, currency.ErrUnknownCurrency) {
			metrics.ObserveEvaluation("error", nil, nil, time.Since(started))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "unsupported_currency",
				"message": "No exchange rate is available for this currency",
			})
			return nil, false
		}
		return nil, s.evaluationFault(c, userID, "evaluate", err, started)
	}

	span.SetAttributes(traces.Outcome(outcomeLabel(result)))

	// Audit trail and counters fire on every evaluation, allowed or not
	s.recorder.Capture(userID, req.Currency, result)
	metrics.ObserveEvaluation(outcomeLabel(result), violationTypes(result), warningTypes(result), time.Since(started))

	return result, true
}

// evaluationFault applies the configured fail mode to an internal evaluation
// error. Reports true when the request may proceed (fail-open).
func (s *Server) evaluationFault(c *gin.Context, userID, stage string, err error, started time.Time) bool {
	logging.L(c.Request.Context()).Error("limit evaluation failed",
		"stage", stage,
		"user_id", userID,
		"fail_mode", s.cfg.FailMode,
		"error", err,
	)
	metrics.ObserveEvaluation("error", nil, nil, time.Since(started))

	if s.cfg.FailMode == "closed" {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error":   "evaluation_unavailable",
			"message": "Transfer limits could not be verified. Please retry.",
		})
		return false
	}
	return true
}

func outcomeLabel(result *limits.EvaluationResult) string {
	if result.Allowed {
		return "allowed"
	}
	return "blocked"
}

func violationTypes(result *limits.EvaluationResult) []string {
	types := make([]string, len(result.Violations))
	for i, v := range result.Violations {
		types[i] = string(v.Type)
	}
	return types
}

func warningTypes(result *limits.EvaluationResult) []string {
	types := make([]string, len(result.Warnings))
	for i, w := range result.Warnings {
		types[i] = string(w.Type)
	}
	return types
}

// submitTransfer handles POST /v1/transfers
//
// The limits gate runs first. Two inputs make it skip evaluation entirely: an
// unauthenticated request (no user to evaluate) and a missing amount (nothing
// to measure). Both proceed to recording rather than being rejected.
func (s *Server) submitTransfer(c *gin.Context) {
	ctx := c.Request.Context()

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Request body must be valid JSON",
		})
		return
	}
	req.sanitize()

	if errs := validation.Validate(
		validation.ValidCurrency("currency", req.Currency),
		validation.MaxLength("recipient", req.Recipient, validation.MaxRecipientLength),
	); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"details": errs,
		})
		return
	}
	if req.Amount < 0 || req.Amount != req.Amount {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_amount",
			"message": "amount must not be negative",
		})
		return
	}

	userID := auth.GetAuthenticatedUser(c)

	var result *limits.EvaluationResult
	if userID != "" && req.Amount > 0 {
		var ok bool
		if result, ok = s.evaluateFor(c, userID, req); !ok {
			return
		}
		if result != nil && !result.Allowed {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success":         false,
				"message":         "Transaction exceeds limits",
				"violations":      result.Violations,
				"warnings":        result.Warnings,
				"recommendations": result.Recommendations,
				"limits":          result.Limits,
			})
			return
		}
	} else {
		logging.L(ctx).Info("limit evaluation skipped",
			"authenticated", userID != "",
			"has_amount", req.Amount > 0,
		)
	}

	amountUSD := req.Amount
	if result != nil {
		amountUSD = result.AmountUSD
	}

	record := limits.TransactionRecord{
		ID:        idgen.WithPrefix("txn_"),
		UserID:    userID,
		AmountUSD: amountUSD,
		Currency:  req.Currency,
		Recipient: req.Recipient,
		Status:    limits.StatusCompleted,
		CreatedAt: time.Now(),
	}

	if err := s.history.Append(ctx, record); err != nil {
		logging.L(ctx).Error("failed to record transfer",
			"transaction_id", record.ID,
			"user_id", userID,
			"error", err,
		)
		if s.cfg.FailMode == "closed" {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "storage_unavailable",
				"message": "Transfer could not be recorded. Please retry.",
			})
			return
		}
	}

	metrics.TransfersTotal.WithLabelValues(string(record.Status)).Inc()

	resp := gin.H{
		"success":     true,
		"transaction": record,
	}
	if result != nil {
		resp["evaluation"] = result
	}
	c.JSON(http.StatusCreated, resp)
}

// evaluateTransfer handles POST /v1/transfers/evaluate
// Dry-run: runs the full evaluation for the authenticated user and returns
// the verdict without recording a transfer.
func (s *Server) evaluateTransfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Request body must be valid JSON",
		})
		return
	}
	req.sanitize()

	if errs := validation.Validate(
		validation.PositiveAmount("amount", req.Amount),
		validation.ValidCurrency("currency", req.Currency),
		validation.MaxLength("recipient", req.Recipient, validation.MaxRecipientLength),
	); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"details": errs,
		})
		return
	}

	userID := auth.GetAuthenticatedUser(c)

	result, ok := s.evaluateFor(c, userID, req)
	if !ok {
		return
	}
	if result == nil {
		// Failed open: nothing was measured, report that honestly
		c.JSON(http.StatusOK, gin.H{"allowed": true, "evaluated": false})
		return
	}

	c.JSON(http.StatusOK, result)
}
