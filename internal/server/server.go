package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minjae/jobbridge/internal/config"
	"github.com/minjae/jobbridge/internal/db"
	"github.com/minjae/jobbridge/internal/ingest"
	"github.com/minjae/jobbridge/internal/placement"
	"github.com/minjae/jobbridge/internal/schemas"
	"github.com/minjae/jobbridge/internal/server/middleware"
	"github.com/minjae/jobbridge/internal/server/ratelimit"
	"github.com/minjae/jobbridge/internal/wizard"
)

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	db            *db.DB
	rateLimiter   *ratelimit.Limiter
	jwtService    *JWTService
	userService   *UserService
	authHandler   *AuthHandler
	layouts       placement.Layouts
	wizards       *wizard.Store
	ingest        *ingest.Client
	allowedOrigin string
}

// Config holds server configuration
type Config struct {
	Port          int
	DatabaseURL   string
	AllowedOrigin string
	LayoutPath    string
	SchemaPath    string
	UseBrowser    bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:            database,
		allowedOrigin: cfg.AllowedOrigin,
	}
	if s.allowedOrigin == "" {
		s.allowedOrigin = "*"
	}

	// Grid layouts: built-in tiers unless an override file is given
	s.layouts = placement.DefaultLayouts()
	if cfg.LayoutPath != "" {
		s.layouts, err = placement.LoadLayouts(cfg.LayoutPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load grid layouts: %w", err)
		}
	}

	// Submission schema is optional; without it payloads skip the schema gate
	var schemaJSON string
	if cfg.SchemaPath != "" {
		schemaJSON, err = schemas.LoadSchema(cfg.SchemaPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load submission schema: %w", err)
		}
	}

	s.wizards = wizard.NewStore(
		wizard.JobseekerOnboardingFlow(database, schemaJSON),
		wizard.JobseekerEditFlow(database, schemaJSON),
		wizard.CompanySignupFlow(database),
	)

	s.ingest = ingest.NewClient(cfg.UseBrowser)

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request multiplexer
func (s *Server) routes() *http.ServeMux {
	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	company := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(db.UserTypeCompany, h))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication endpoints
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("PUT /auth/password", authed(http.HandlerFunc(s.handleUpdatePassword)))

	// Job posting endpoints
	mux.HandleFunc("GET /job-postings", s.handleListJobPostings)
	mux.HandleFunc("GET /job-postings/{id}", s.handleGetJobPosting)
	mux.Handle("POST /job-postings", company(s.handleCreateJobPosting))
	mux.Handle("PUT /job-postings/{id}", company(s.handleUpdateJobPosting))
	mux.Handle("DELETE /job-postings/{id}", company(s.handleDeleteJobPosting))

	// Display grid endpoints
	mux.HandleFunc("GET /placement/grid", s.handlePlacementGrid)
	mux.HandleFunc("GET /placement/summary", s.handlePlacementSummary)
	mux.Handle("POST /job-postings/{id}/placement", company(s.handleAssignPlacement))
	mux.Handle("DELETE /job-postings/{id}/placement", company(s.handleClearPlacement))

	// Wizard endpoints
	mux.Handle("POST /wizard/{flow}", authed(http.HandlerFunc(s.handleStartWizard)))
	mux.Handle("GET /wizard/{flow}/{session_id}", authed(http.HandlerFunc(s.handleWizardState)))
	mux.Handle("POST /wizard/{flow}/{session_id}", authed(http.HandlerFunc(s.handleWizardStep)))
	mux.Handle("POST /wizard/{flow}/{session_id}/back", authed(http.HandlerFunc(s.handleWizardBack)))
	mux.Handle("DELETE /wizard/{flow}/{session_id}", authed(http.HandlerFunc(s.handleDiscardWizard)))

	// Profile and company endpoints
	mux.Handle("GET /profiles/me", authed(http.HandlerFunc(s.handleGetMyProfile)))
	mux.HandleFunc("GET /profiles/{user_id}", s.handleGetProfile)
	mux.Handle("GET /companies/me", authed(http.HandlerFunc(s.handleGetMyCompany)))
	mux.HandleFunc("GET /companies/{id}", s.handleGetCompany)

	// Dashboards
	mux.Handle("GET /dashboard/jobseeker", authed(http.HandlerFunc(s.handleJobseekerDashboard)))
	mux.Handle("GET /dashboard/company", authed(http.HandlerFunc(s.handleCompanyDashboard)))

	// Posting ingest preview
	mux.Handle("POST /ingest/preview", company(s.handleIngestPreview))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Register(w, r)
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// handleUpdatePassword handles password update requests.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is deliberately
// not trusted here.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
