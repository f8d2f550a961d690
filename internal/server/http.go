package server

import (
	"time"

	"resumeiq/internal/config"
	resumeiqErrors "resumeiq/internal/errors"
	"resumeiq/internal/store"
	"resumeiq/internal/types"
)

// EnhanceRequest represents the request body for the enhance endpoint
// RenderRequest represents the request body for the render endpoint
// ErrorResponse represents an error response
type EnhanceRequest struct {
	AnalysisID     string             `json:"analysisId,omitempty"`
	ResumeText     string             `json:"resumeText"`
	JobDescription string             `json:"jobDescription,omitempty"`
	Suggestions    []types.Suggestion `json:"suggestions"`
}

type RenderRequest struct {
	AnalysisID string `json:"analysisId,omitempty"`
	Text       string `json:"text"`
}

type AnalyzeResponse struct {
	AnalysisID string                    `json:"analysisId"`
	ResumeText string                    `json:"resumeText"`
	Analysis   types.AnalyzeResumeOutput `json:"analysis"`
}

type EnhanceResponse struct {
	AnalysisID   string   `json:"analysisId,omitempty"`
	EnhancedText string   `json:"enhancedText"`
	AppliedIDs   []string `json:"appliedIds,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate management
	CertificateManager *CertificateManager

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Analysis persistence
	Store *store.Service

	// Logger
	Logger *resumeiqErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
// (Refactored to reduce long parameter list in NewServer)
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *resumeiqErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	analysisStore, err := store.NewService(&appCfg.Store, logger)
	if err != nil {
		// The server stays fully functional without persistence
		logger.Warn("Analysis store unavailable, continuing without persistence", "error", err)
		analysisStore = nil
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Store:          analysisStore,
		Logger:         logger,
	}
}
