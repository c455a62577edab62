// Package api exposes the generation pipeline over HTTP. The API
// layer owns the caller-side rules the pipeline itself does not
// enforce: per-contact single-flight, history persistence after a
// successful generation, and event publication.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/azizmatyakubov/flirtkey/internal/analytics"
	"github.com/azizmatyakubov/flirtkey/internal/backend"
	"github.com/azizmatyakubov/flirtkey/internal/coach"
	"github.com/azizmatyakubov/flirtkey/internal/generate"
	"github.com/azizmatyakubov/flirtkey/internal/ocr"
	"github.com/azizmatyakubov/flirtkey/internal/parse"
	"github.com/azizmatyakubov/flirtkey/internal/tone"
)

// Generator runs the reply and opener pipelines.
type Generator interface {
	GenerateReplies(ctx context.Context, apiKey string, contact coach.Contact, herMessage, culture string) (*coach.AnalysisResult, error)
	GenerateOpeners(ctx context.Context, apiKey, profileText string, toneFilter *tone.Tone) ([]coach.GeneratedOpener, error)
}

// HistoryStore is the slice of the history store the API needs.
type HistoryStore interface {
	GetContact(ctx context.Context, id string) (coach.Contact, error)
	UpsertContact(ctx context.Context, c coach.Contact) error
	Append(ctx context.Context, entry coach.ConversationEntry) (uuid.UUID, error)
	Recent(ctx context.Context, contactID string, limit int) ([]coach.ConversationEntry, error)
}

// UsageStore records and reads per-user app-open stats.
type UsageStore interface {
	RecordOpen(ctx context.Context, userID string, now time.Time) error
	Stats(ctx context.Context, userID string) (analytics.UsageStats, error)
}

// OCRClient extracts text from a screenshot.
type OCRClient interface {
	PerformOCR(ctx context.Context, imageBase64, apiKey string) (string, error)
}

// EventPublisher publishes generation events. Optional: a nil
// publisher means no events, never a failed request.
type EventPublisher interface {
	Publish(subject string, data any) error
}

// Deps are the collaborators the server is wired with.
type Deps struct {
	Generator        Generator
	History          HistoryStore
	Usage            UsageStore
	OCR              OCRClient
	Events           EventPublisher
	GenerationAPIKey string
	OCRAPIKey        string
	APIToken         string
	Logger           *slog.Logger
}

type Server struct {
	router  *chi.Mux
	port    int
	deps    Deps
	logger  *slog.Logger
	flights flightTable
}

func NewServer(port int, deps Deps) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	s := &Server{
		router:  router,
		port:    port,
		deps:    deps,
		logger:  deps.Logger,
		flights: flightTable{busy: make(map[string]bool)},
	}

	router.Get("/health", s.health)

	router.Route("/api/v1", func(r chi.Router) {
		if deps.APIToken != "" {
			r.Use(bearerAuth(deps.APIToken))
		}
		r.Post("/contacts/{contactID}/replies", s.generateReplies)
		r.Post("/openers", s.generateOpeners)
		r.Get("/contacts/{contactID}/history", s.contactHistory)
		r.Get("/contacts/{contactID}/trend", s.contactTrend)
		r.Post("/users/{userID}/opens", s.recordOpen)
		r.Get("/users/{userID}/streak", s.userStreak)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// flightTable enforces one in-flight generation per contact. The
// pipeline itself is stateless; mutual exclusion is the caller's job.
type flightTable struct {
	mu   sync.Mutex
	busy map[string]bool
}

func (f *flightTable) acquire(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy[id] {
		return false
	}
	f.busy[id] = true
	return true
}

func (f *flightTable) release(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.busy, id)
}

func bearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != token {
				writeError(w, http.StatusUnauthorized, "invalid or missing bearer token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps pipeline errors onto HTTP statuses. Unrecognized
// errors are internal faults, never dressed up as client errors.
func statusFor(err error) int {
	var statusErr *backend.StatusError
	var ocrStatusErr *ocr.StatusError
	var transportErr *backend.TransportError
	var parseErr *parse.ParseError

	switch {
	case errors.Is(err, generate.ErrMissingAPIKey):
		return http.StatusUnauthorized
	case errors.Is(err, generate.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, ocr.ErrNoText):
		return http.StatusUnprocessableEntity
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &statusErr), errors.As(err, &ocrStatusErr):
		return http.StatusBadGateway
	case errors.As(err, &transportErr):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
