package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// clientOrigin is the postMessage target for the OAuth callback page:
	// the first concrete allowed origin, or "*" when only the wildcard is
	// configured.
	clientOrigin string

	// Services
	authService     driving.AuthService
	oauthService    driving.OAuthService
	setupService    driving.SetupService
	driveService    driving.DriveService
	passwordService driving.PasswordService
	societyService  driving.SocietyService

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	oauthService driving.OAuthService,
	setupService driving.SetupService,
	driveService driving.DriveService,
	passwordService driving.PasswordService,
	societyService driving.SocietyService,
	db Pinger,
	redisClient Pinger,
) *Server {
	s := &Server{
		router:          http.NewServeMux(),
		version:         cfg.Version,
		clientOrigin:    callbackTargetOrigin(cfg.AllowedOrigins),
		authService:     authService,
		oauthService:    oauthService,
		setupService:    setupService,
		driveService:    driveService,
		passwordService: passwordService,
		societyService:  societyService,
		db:              db,
		redisClient:     redisClient,
	}

	s.setupRoutes()

	corsMiddleware := NewCORSMiddleware(cfg.AllowedOrigins)
	loggingMiddleware := NewLoggingMiddleware()
	recoveryMiddleware := NewRecoveryMiddleware()
	handler := recoveryMiddleware.Handler(
		loggingMiddleware.Handler(
			corsMiddleware.Handler(s.router)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func callbackTargetOrigin(allowedOrigins []string) string {
	for _, o := range allowedOrigins {
		if o != "*" {
			return o
		}
	}
	return "*"
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// OAuth endpoints (public; callback is hit by the provider redirect)
	s.router.HandleFunc("GET /auth/google/url", s.handleGoogleAuthURL)
	s.router.HandleFunc("GET /auth/google/callback", s.handleGoogleCallback)

	// Setup endpoint (public; guarded by the single-use setup session)
	s.router.HandleFunc("POST /admin/finalize-setup", s.handleFinalizeSetup)

	// Password reset endpoints (public; guarded by the emailed code)
	s.router.HandleFunc("POST /auth/forgot-password", s.handleForgotPassword)
	s.router.HandleFunc("POST /auth/verify-otp", s.handleVerifyOTP)
	s.router.HandleFunc("POST /auth/reset-password", s.handleResetPassword)

	// OAuth endpoints (authenticated)
	s.router.Handle("GET /auth/google/refresh",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleRefreshAccessToken)))

	// Drive endpoints (authenticated)
	s.router.Handle("POST /drive/upload-resident-staff",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUploadStaffFile)))
	s.router.Handle("POST /drive/delete-resident-file",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteStaffFile)))
	s.router.Handle("POST /drive/archive-resident-staff",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleArchiveStaff)))

	// Society endpoints (authenticated)
	s.router.Handle("GET /society",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetSociety)))
	s.router.Handle("PUT /society/wings",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSaveWings)))
	s.router.Handle("GET /society/wings",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetWings)))
	s.router.Handle("POST /society/units",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSaveUnits)))
	s.router.Handle("GET /society/units",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListUnits)))
	s.router.Handle("POST /society/staff",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleRegisterStaff)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
