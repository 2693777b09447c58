package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/remitd/remitd/internal/history"
	"github.com/remitd/remitd/internal/limits"
	"github.com/remitd/remitd/internal/logging"
	"github.com/remitd/remitd/internal/pagination"
	"github.com/remitd/remitd/internal/profiles"
)

// getUserLimits handles GET /v1/users/:id/limits
// Returns the user's tier limits, regulatory thresholds, and rolling usage.
func (s *Server) getUserLimits(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("id")
	now := time.Now()

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, profiles.ErrNotFound) {
			logging.L(ctx).Error("failed to load profile", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Failed to load limits",
			})
			return
		}
		profile = profiles.Default(userID)
	}

	records, err := s.history.ListSince(ctx, userID, history.WindowFor(now))
	if err != nil {
		logging.L(ctx).Error("failed to load history", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to load limits",
		})
		return
	}

	tierLimits := limits.ForTier(profile.VerificationLevel)
	daily := limits.DailyTotal(records, now)
	weekly := limits.WeeklyTotal(records, now)
	monthly := limits.MonthlyTotal(records, now)
	recent := limits.RecentCount(records, now, time.Hour)

	resp := gin.H{
		"userId": userID,
		"tier":   profile.VerificationLevel,
		"limits": limits.LimitsView{
			Current:    tierLimits,
			Regulatory: limits.Thresholds(),
		},
		"usage": gin.H{
			"daily":   usageView(daily, tierLimits.Daily),
			"weekly":  usageView(weekly, tierLimits.Weekly),
			"monthly": usageView(monthly, tierLimits.Monthly),
			"velocity": gin.H{
				"recentCount": recent,
				"limit":       tierLimits.Velocity,
			},
		},
	}

	if adjusted, reduced := limits.AdjustForRisk(tierLimits, int(profile.RiskScore)); reduced {
		resp["adjusted"] = adjusted
	}

	c.JSON(http.StatusOK, resp)
}

func usageView(used, limit float64) gin.H {
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return gin.H{
		"used":      used,
		"limit":     limit,
		"remaining": remaining,
	}
}

// listUserTransactions handles GET /v1/users/:id/transactions
// Returns the user's transfer records within the rolling monthly window (or
// since an explicit RFC 3339 cutoff), newest first, with cursor pagination.
func (s *Server) listUserTransactions(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("id")

	since := history.WindowFor(time.Now())
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_since",
				"message": "since must be an RFC 3339 timestamp",
			})
			return
		}
		since = parsed
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_limit",
				"message": "limit must be a positive integer",
			})
			return
		}
		if parsed > 500 {
			parsed = 500
		}
		limit = parsed
	}

	cursor, err := pagination.Decode(c.Query("cursor"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_cursor",
			"message": "cursor is not valid",
		})
		return
	}

	records, err := s.history.ListSince(ctx, userID, since)
	if err != nil {
		logging.L(ctx).Error("failed to list transactions", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to list transactions",
		})
		return
	}

	// ListSince returns oldest first; the API pages newest first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	if cursor != nil {
		// Next page starts strictly after the cursor position
		i := 0
		for i < len(records) {
			r := records[i]
			if r.CreatedAt.Before(cursor.CreatedAt) ||
				(r.CreatedAt.Equal(cursor.CreatedAt) && r.ID > cursor.ID) {
				break
			}
			i++
		}
		records = records[i:]
	}

	if len(records) > limit+1 {
		records = records[:limit+1]
	}
	page, next, hasMore := pagination.ComputePage(records, limit, func(r limits.TransactionRecord) (time.Time, string) {
		return r.CreatedAt, r.ID
	})

	c.JSON(http.StatusOK, gin.H{
		"transactions": page,
		"count":        len(page),
		"nextCursor":   next,
		"hasMore":      hasMore,
	})
}

// setUserProfile handles PUT /v1/admin/users/:id/profile
// Sets a user's verification level and risk score.
func (s *Server) setUserProfile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("id")

	var req struct {
		VerificationLevel string   `json:"verificationLevel"`
		RiskScore         *float64 `json:"riskScore"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Request body must be valid JSON",
		})
		return
	}

	if req.VerificationLevel != "" && !limits.Tier(req.VerificationLevel).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_tier",
			"message": "verificationLevel must be basic, verified, or premium",
		})
		return
	}
	if req.RiskScore != nil && (*req.RiskScore < 0 || *req.RiskScore > 100) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_risk_score",
			"message": "riskScore must be between 0 and 100",
		})
		return
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, profiles.ErrNotFound) {
			logging.L(ctx).Error("failed to load profile", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Failed to update profile",
			})
			return
		}
		profile = profiles.Default(userID)
	}

	if req.VerificationLevel != "" {
		profile.VerificationLevel = limits.Tier(req.VerificationLevel)
	}
	if req.RiskScore != nil {
		profile.RiskScore = *req.RiskScore
	}

	if err := s.profiles.Put(ctx, profile); err != nil {
		logging.L(ctx).Error("failed to update profile", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to update profile",
		})
		return
	}

	logging.L(ctx).Info("user profile updated",
		"user_id", userID,
		"tier", profile.VerificationLevel,
		"risk_score", profile.RiskScore,
	)

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// listUserAssessments handles GET /v1/admin/users/:id/assessments
// Returns a user's compliance audit trail, most recent first.
func (s *Server) listUserAssessments(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("id")

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_limit",
				"message": "limit must be a positive integer",
			})
			return
		}
		if parsed > 500 {
			parsed = 500
		}
		limit = parsed
	}

	assessments, err := s.assessments.ListByUser(ctx, userID, limit)
	if err != nil {
		logging.L(ctx).Error("failed to list assessments", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to list assessments",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessments": assessments,
		"count":       len(assessments),
	})
}
