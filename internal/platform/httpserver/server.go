package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	accountservice "calendar/contexts/identity-access/account-service"
	eventservice "calendar/contexts/scheduling/event-service"
	"calendar/internal/shared/results"

	_ "calendar/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	origins  []string
	events   eventservice.Module
	accounts accountservice.Module
	verifier TokenVerifier
}

func New(
	events eventservice.Module,
	accounts accountservice.Module,
	verifier TokenVerifier,
	allowedOrigins []string,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		origins:  allowedOrigins,
		events:   events,
		accounts: accounts,
		verifier: verifier,
	}
	s.registerRoutes()
	return s
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    s.addr,
		Handler: corsMiddleware.Handler(s.mux),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/account/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/account/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/account/logout", s.handleLogout)

	s.mux.Handle("POST /api/event", s.requireUser(s.handleCreateEvent))
	s.mux.Handle("GET /api/event/{eventId}", s.requireUser(s.handleGetEvent))
	s.mux.Handle("PATCH /api/event/{eventId}", s.requireUser(s.handleUpdateEvent))
	s.mux.Handle("PATCH /api/event/{eventId}/partial", s.requireUser(s.handlePatchEvent))
	s.mux.Handle("DELETE /api/event/{eventId}", s.requireUser(s.handleDeleteEvent))
	s.mux.Handle("GET /api/event/events/date/{date}", s.requireUser(s.handleEventsOnDate))
	s.mux.Handle("GET /api/event/events/range", s.requireUser(s.handleEventsBetween))
}

// Handler exposes the routing table for transport-level tests.
func (s *Server) Handler() http.Handler { return s.mux }

// writeResultStatus maps a non-Ok envelope status onto the HTTP response.
// Error stays opaque: only the envelope's summary message leaves the process.
func writeResultStatus(w http.ResponseWriter, status results.Status, message string, writeError func(http.ResponseWriter, int, string, string)) {
	switch status {
	case results.StatusNotFound:
		writeError(w, http.StatusNotFound, "not_found", message)
	case results.StatusUnprocessable:
		writeError(w, http.StatusUnprocessableEntity, "unprocessable", message)
	case results.StatusBadRequest:
		writeError(w, http.StatusBadRequest, "bad_request", message)
	case results.StatusUnauthorized:
		writeError(w, http.StatusUnauthorized, "unauthorized", message)
	default:
		if message == "" {
			message = "internal server error"
		}
		writeError(w, http.StatusInternalServerError, "internal_error", message)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
