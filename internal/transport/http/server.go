// Package http provides the HTTP transport layer for the report service.
// It extracts raw field values from requests, hands them to the services and
// translates result envelopes and domain errors into status codes. All
// business rules live below this layer.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ireporter-ke/ireporter/internal/config"
	"github.com/ireporter-ke/ireporter/internal/domain"
	"github.com/ireporter-ke/ireporter/internal/service"
)

// Client-facing messages inherited from the original API. Asserted verbatim
// by clients, so they must not be reworded.
const (
	msgResourceNotFound  = "That resource cannot be found"
	msgNoIncidents       = "There are no incidences at the moment"
	msgCreatedIncident   = "Successfuly created incident"
	msgUpdatedIncident   = "Updated incident record"
	msgDeletedIncident   = "Incident record has been deleted"
	msgSignedUp          = "You have successfuly signed up"
	msgLoggedOut         = "Successfuly logged out"
	msgUserNotFound      = "User not found in our database"
	msgInvalidCredential = "Invalid password/email combination"
	msgNotLoggedIn       = "That user is not logged in"
	msgFieldNotEditable  = "That field cannot be edited"
)

// Server is the HTTP server for the report service.
type Server struct {
	cfg        *config.Config
	httpServer *http.Server
	router     *chi.Mux
	reports    *service.ReportService
	accounts   *service.AccountService
	logger     *slog.Logger
	metrics    *metrics
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg *config.Config,
	reports *service.ReportService,
	accounts *service.AccountService,
	logger *slog.Logger,
) *Server {
	s := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		reports:  reports,
		accounts: accounts,
		logger:   logger,
		metrics:  newMetrics(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Addr returns the listen address derived from the configuration.
func (s *Server) Addr() string {
	return fmt.Sprintf(":%d", s.cfg.HTTPPort)
}

// ListenAndServe starts the HTTP server on the configured port.
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:         s.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.metricsMiddleware)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", s.metrics.handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/incidents", func(r chi.Router) {
			r.Post("/", s.handleCreateIncident)
			r.Get("/", s.handleListIncidents)
			r.Get("/{id}", s.handleGetIncident)
			r.Patch("/{id}/{field}", s.handlePatchIncident)
			r.Delete("/{id}", s.handleDeleteIncident)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.handleSignUp)
			r.Post("/login", s.handleLogin)
			r.Post("/logout/{id}", s.handleLogout)
		})
	})
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Response helpers

// envelope is the response body shape of the original API: the HTTP status
// repeated in the body, plus one of data, error or errors.
type envelope struct {
	Status int      `json:"status"`
	Data   any      `json:"data,omitempty"`
	Error  string   `json:"error,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verrs domain.ValidationErrors

	switch {
	case errors.As(err, &verrs):
		s.writeJSON(w, http.StatusBadRequest, envelope{
			Status: http.StatusBadRequest,
			Errors: verrs,
		})

	case errors.Is(err, domain.ErrUnknownField):
		s.writeJSON(w, http.StatusBadRequest, envelope{
			Status: http.StatusBadRequest,
			Error:  msgFieldNotEditable,
		})

	case errors.Is(err, domain.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, envelope{
			Status: http.StatusNotFound,
			Error:  msgResourceNotFound,
		})

	case errors.Is(err, domain.ErrUserNotFound):
		s.writeJSON(w, http.StatusBadRequest, envelope{
			Status: http.StatusBadRequest,
			Error:  msgUserNotFound,
		})

	case errors.Is(err, domain.ErrInvalidCredential):
		s.writeJSON(w, http.StatusBadRequest, envelope{
			Status: http.StatusBadRequest,
			Error:  msgInvalidCredential,
		})

	case errors.Is(err, domain.ErrNotLoggedIn):
		s.writeJSON(w, http.StatusBadRequest, envelope{
			Status: http.StatusBadRequest,
			Error:  msgNotLoggedIn,
		})

	default:
		s.logger.Error("unhandled error", slog.String("error", err.Error()))
		s.writeJSON(w, http.StatusInternalServerError, envelope{
			Status: http.StatusInternalServerError,
			Error:  "internal server error",
		})
	}
}

func (s *Server) readJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ValidationErrors{"Request body should be valid JSON"}
	}
	return nil
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.status),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
