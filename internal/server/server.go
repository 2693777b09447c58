// Package server sets up the HTTP server with all routes
package server

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/remitd/remitd/internal/auth"
	"github.com/remitd/remitd/internal/compliance"
	"github.com/remitd/remitd/internal/config"
	"github.com/remitd/remitd/internal/currency"
	"github.com/remitd/remitd/internal/history"
	"github.com/remitd/remitd/internal/international"
	"github.com/remitd/remitd/internal/limits"
	"github.com/remitd/remitd/internal/logging"
	"github.com/remitd/remitd/internal/metrics"
	"github.com/remitd/remitd/internal/profiles"
	"github.com/remitd/remitd/internal/ratelimit"
	"github.com/remitd/remitd/internal/security"
	"github.com/remitd/remitd/internal/validation"
)

// Version is reported by the health and info endpoints.
const Version = "0.1.0"

// -----------------------------------------------------------------------------
// Server
// -----------------------------------------------------------------------------

// Server wraps the HTTP server and dependencies
type Server struct {
	cfg          *config.Config
	engine       *limits.Engine
	history      history.Store
	profiles     profiles.Directory
	assessments  compliance.Store
	recorder     *compliance.Recorder
	authMgr      *auth.Manager
	rateLimiter  *ratelimit.Limiter
	db           *sql.DB // nil if using in-memory
	router       *gin.Engine
	httpSrv      *http.Server
	logger       *slog.Logger
	cancelRunCtx context.CancelFunc // cancels background goroutines started in Run

	// Health state
	ready   atomic.Bool
	healthy atomic.Bool
}

// Option configures the server
type Option func(*Server)

// WithLogger sets a custom logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithHistory sets a custom transaction history store (for testing)
func WithHistory(store history.Store) Option {
	return func(s *Server) {
		s.history = store
	}
}

// WithProfiles sets a custom profile directory (for testing)
func WithProfiles(dir profiles.Directory) Option {
	return func(s *Server) {
		s.profiles = dir
	}
}

// New creates a new server instance
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: logging.New(cfg.LogLevel, cfg.LogFmt),
	}

	// Apply options first (may set stores/logger)
	for _, opt := range opts {
		opt(s)
	}

	// Initialize storage (Postgres if DATABASE_URL set, otherwise in-memory)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		// Configure connection pool
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		// Test connection
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		s.db = db
		s.logger.Info("using PostgreSQL storage", "url", maskDSN(cfg.DatabaseURL))

		if s.history == nil {
			s.history = history.NewPostgresStore(db)
		}
		if s.profiles == nil {
			s.profiles = profiles.NewPostgresDirectory(db)
		}
		s.assessments = compliance.NewPostgresStore(db)
		s.authMgr = auth.NewManager(auth.NewPostgresStore(db))
	} else {
		s.logger.Info("using in-memory storage (data will not persist)")

		if s.history == nil {
			s.history = history.NewMemoryStore()
		}
		if s.profiles == nil {
			s.profiles = profiles.NewMemoryDirectory()
		}
		s.assessments = compliance.NewMemoryStore()
		s.authMgr = auth.NewManager(auth.NewMemoryStore())
	}

	// Decision engine: currency normalization mode and the international
	// recipient heuristic come from config.
	normalizer := currency.NewNormalizer(nil, currency.UnknownMode(cfg.UnknownCurrencyMode))
	var classifier international.Classifier
	if cfg.ForeignSuffixes != "" {
		var suffixes []string
		for _, suf := range strings.Split(cfg.ForeignSuffixes, ",") {
			if suf = strings.TrimSpace(suf); suf != "" {
				suffixes = append(suffixes, suf)
			}
		}
		classifier = international.NewSuffixClassifier(suffixes...)
	}
	s.engine = limits.NewEngine(normalizer, classifier)

	// Compliance audit trail (best-effort, never blocks transfers)
	s.recorder = compliance.NewRecorder(s.assessments, s.logger)
	s.logger.Info("compliance capture enabled")

	s.logger.Info("limit enforcement configured",
		"fail_mode", cfg.FailMode,
		"unknown_currency_mode", cfg.UnknownCurrencyMode,
	)

	// Configure gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()
	s.setupMiddleware()
	s.setupRoutes()

	s.healthy.Store(true)

	return s, nil
}

// maskDSN hides password in connection string for logging
func maskDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "***"
	}
	if u.User != nil {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}

// -----------------------------------------------------------------------------
// Middleware
// -----------------------------------------------------------------------------

func (s *Server) setupMiddleware() {
	// Recovery with logging
	s.router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logging.L(c.Request.Context()).Error("panic recovered",
			"error", recovered,
			"path", c.Request.URL.Path,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "An unexpected error occurred",
		})
	}))

	// Security headers
	s.router.Use(security.HeadersMiddleware())

	// CORS (allow all origins for demo - restrict in production)
	s.router.Use(security.CORSMiddleware([]string{"*"}))

	// Request size limit (1MB)
	s.router.Use(validation.RequestSizeMiddleware(validation.MaxRequestSize))

	// Rate limiting
	s.rateLimiter = ratelimit.New(ratelimit.Config{
		RequestsPerSecond: s.cfg.RateLimitRPS,
		BurstSize:         2 * s.cfg.RateLimitRPS,
		CleanupInterval:   time.Minute,
	})
	s.router.Use(s.rateLimiter.Middleware())

	// Prometheus metrics
	s.router.Use(metrics.Middleware())

	// Request ID
	s.router.Use(s.requestIDMiddleware())

	// Logging
	s.router.Use(s.loggingMiddleware())
}

func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check for existing request ID (from load balancer, etc.)
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}

		// Add to context
		ctx := logging.WithRequestID(c.Request.Context(), requestID)
		ctx = logging.WithLogger(ctx, s.logger)
		c.Request = c.Request.WithContext(ctx)

		// Set response header
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		logger := logging.L(c.Request.Context())

		// Log level based on status code
		switch {
		case status >= 500:
			logger.Error("request completed",
				"method", c.Request.Method,
				"path", path,
				"status", status,
				"latency_ms", latency.Milliseconds(),
				"client_ip", c.ClientIP(),
			)
		case status >= 400:
			logger.Warn("request completed",
				"method", c.Request.Method,
				"path", path,
				"status", status,
				"latency_ms", latency.Milliseconds(),
			)
		default:
			logger.Info("request completed",
				"method", c.Request.Method,
				"path", path,
				"status", status,
				"latency_ms", latency.Milliseconds(),
			)
		}
	}
}

// -----------------------------------------------------------------------------
// Routes
// -----------------------------------------------------------------------------

func (s *Server) setupRoutes() {
	// Health & metrics endpoints
	s.router.GET("/healthz", s.healthHandler)
	s.router.GET("/readyz", s.readinessHandler)
	s.router.GET("/metrics", metrics.Handler())

	// Service info
	s.router.GET("/", s.infoHandler)

	// V1 API group
	v1 := s.router.Group("/v1")
	// Validate :id URL params on all v1 routes (no-op when param absent)
	v1.Use(validation.UserIDParamMiddleware())

	authHandler := auth.NewHandler(s.authMgr)

	// PUBLIC ROUTES (no auth required)
	v1.GET("/auth/info", authHandler.Info)

	// REGISTRATION (public but returns API key)
	v1.POST("/users", s.registerUserWithAPIKey)

	// PROTECTED ROUTES (require API key)
	protected := v1.Group("")
	protected.Use(auth.Middleware(s.authMgr))
	{
		// Transfer submission runs through the limits gate. Deliberately no
		// RequireAuth: an unauthenticated or amount-less request skips
		// evaluation rather than failing, matching the gate's bypass rule.
		protected.POST("/transfers", s.submitTransfer)

		// Dry-run evaluation is explicit about who it evaluates
		protected.POST("/transfers/evaluate", auth.RequireAuth(s.authMgr), s.evaluateTransfer)

		// Limit and history reads are private to the account
		protected.GET("/users/:id/limits", auth.RequireSelf(s.authMgr, "id"), s.getUserLimits)
		protected.GET("/users/:id/transactions", auth.RequireSelf(s.authMgr, "id"), s.listUserTransactions)

		// API key management
		protected.GET("/auth/keys", authHandler.ListKeys)
		protected.POST("/auth/keys", authHandler.CreateKey)
		protected.DELETE("/auth/keys/:keyId", authHandler.RevokeKey)
		protected.GET("/auth/me", authHandler.GetCurrentUser)
	}

	// ADMIN ROUTES (verification levels, risk scores, audit trail)
	// RequireAdmin checks X-Admin-Secret (or allows any auth in demo mode).
	admin := v1.Group("/admin")
	admin.Use(auth.Middleware(s.authMgr), auth.RequireAdmin())
	{
		admin.PUT("/users/:id/profile", s.setUserProfile)
		admin.GET("/users/:id/assessments", s.listUserAssessments)
	}
}

// registerUserWithAPIKey handles POST /v1/users
// Creates a user profile at the lowest verification tier and returns an API key
func (s *Server) registerUserWithAPIKey(c *gin.Context) {
	ctx := c.Request.Context()

	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body",
		})
		return
	}

	if !validation.IsValidUserID(req.UserID) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_user_id",
			"message": "user ID must be alphanumeric with ._- separators",
		})
		return
	}

	if _, err := s.profiles.Get(ctx, req.UserID); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "user_exists",
			"message": "A user with this ID is already registered",
		})
		return
	} else if !errors.Is(err, profiles.ErrNotFound) {
		s.logger.Error("failed to look up profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to register user",
		})
		return
	}

	// New users start at the basic tier; verification upgrades are an admin
	// operation, never self-service.
	profile := profiles.Default(req.UserID)
	if err := s.profiles.Put(ctx, profile); err != nil {
		s.logger.Error("failed to create profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to register user",
		})
		return
	}

	rawKey, keyInfo, err := s.authMgr.GenerateKey(ctx, req.UserID, "Primary key")
	if err != nil {
		s.logger.Error("failed to generate API key", "error", err)
		c.JSON(http.StatusCreated, gin.H{
			"user":    profile,
			"warning": "User registered but API key generation failed. Contact support.",
		})
		return
	}

	s.logger.Info("user registered with API key",
		"user_id", req.UserID,
		"keyId", keyInfo.ID,
	)

	c.JSON(http.StatusCreated, gin.H{
		"user":    profile,
		"apiKey":  rawKey,
		"keyId":   keyInfo.ID,
		"warning": "Store this API key securely. It will not be shown again.",
		"usage":   "Include 'Authorization: Bearer <apiKey>' header in requests.",
	})
}

// -----------------------------------------------------------------------------
// Handlers
// -----------------------------------------------------------------------------

// HealthResponse for health check endpoints
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp string            `json:"timestamp"`
}

func (s *Server) healthHandler(c *gin.Context) {
	checks := make(map[string]string)

	if s.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			checks["database"] = "unhealthy"
		} else {
			checks["database"] = "healthy"
		}
	} else {
		checks["storage"] = "in-memory"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if checks["database"] == "unhealthy" {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthResponse{
		Status:    status,
		Version:   Version,
		Checks:    checks,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if !s.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *Server) infoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "remitd",
		"description": "Transaction limits and regulatory compliance checks for money transfers",
		"version":     Version,
		"docs":        "/v1/auth/info",
	})
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Run starts the HTTP server with graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	// Create a cancellable context for background goroutines so Shutdown() can stop them.
	runCtx, cancel := context.WithCancel(ctx)
	s.cancelRunCtx = cancel

	s.httpSrv = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Channel to catch server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		s.logger.Info("starting server",
			"port", s.cfg.Port,
			"env", s.cfg.Env,
		)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Export connection pool stats
	if s.db != nil {
		metrics.StartDBStatsCollector(runCtx, s.db, 15*time.Second)
	}

	// Mark as ready after brief delay for startup
	go func() {
		time.Sleep(100 * time.Millisecond)
		s.ready.Store(true)
		s.logger.Info("server ready")
	}()

	// Wait for shutdown signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		s.logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		s.logger.Info("context cancelled")
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	s.ready.Store(false)
	s.logger.Info("starting graceful shutdown")

	// Cancel the context for background goroutines
	if s.cancelRunCtx != nil {
		s.cancelRunCtx()
	}

	// Give load balancers time to stop sending traffic
	time.Sleep(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
		s.logger.Info("rate limiter stopped")
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("database close error", "error", err)
		} else {
			s.logger.Info("database connection closed")
		}
	}

	s.logger.Info("shutdown complete")
	return nil
}

// Router exposes the HTTP handler for tests
func (s *Server) Router() http.Handler {
	return s.router
}

func generateRequestID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}
