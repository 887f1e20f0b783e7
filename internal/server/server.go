package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/affan/hiring-agent/internal/config"
	"github.com/affan/hiring-agent/internal/db"
	"github.com/affan/hiring-agent/internal/workflow"
)

// UserStore looks up HR operator accounts. Satisfied by *db.DB; nil when the
// server runs without Postgres, in which case login falls back to the
// configured operator credentials.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
}

// Config holds server configuration
type Config struct {
	Port      int
	Scheduler *workflow.Scheduler
	Users     UserStore

	// Fallback operator credentials used when no user store is wired.
	OperatorEmail        string
	OperatorPasswordHash string
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	scheduler   *workflow.Scheduler
	jwtService  *JWTService
	authHandler *AuthHandler
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Scheduler == nil {
		return nil, fmt.Errorf("server requires a workflow scheduler")
	}

	s := &Server{scheduler: cfg.Scheduler}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(cfg.Users, passwordConfig, s.jwtService,
		cfg.OperatorEmail, cfg.OperatorPasswordHash)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /workflows", s.handleStartWorkflow)
	mux.HandleFunc("GET /workflows/{job_id}", s.handleGetWorkflow)
	mux.HandleFunc("POST /workflows/{job_id}/approvals", s.requireAuth(s.handleApproval))
	mux.HandleFunc("POST /workflows/{job_id}/interview-feedback", s.requireAuth(s.handleInterviewFeedback))

	// Candidate-facing webhooks. Offer-reply and onboarding accept GET as
	// well because email links submit them from a browser form.
	mux.HandleFunc("POST /webhook/application", s.handleApplicationWebhook)
	mux.HandleFunc("GET /webhook/offer-reply", s.handleOfferReplyWebhook)
	mux.HandleFunc("POST /webhook/offer-reply", s.handleOfferReplyWebhook)
	mux.HandleFunc("GET /webhook/onboarding", s.handleOnboardingWebhook)
	mux.HandleFunc("POST /webhook/onboarding", s.handleOnboardingWebhook)

	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // LLM stages can run long
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
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

	log.Println("Server stopped")
	return nil
}

// Handler exposes the configured routes, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
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

// requireAuth validates the Bearer token before invoking the handler.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			s.errorResponse(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if _, err := s.jwtService.ValidateToken(token); err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r)
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLogin handles operator login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFrom maps a typed error to its HTTP status and writes it.
func (s *Server) errorFrom(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
