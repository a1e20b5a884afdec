package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"alphabeta/communication"
	"alphabeta/game"
	"alphabeta/searcher"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// Server answers find move requests for chomp positions. Every request is
// searched by its own engine, so requests never wait on each other.
type Server struct {
	depth     int
	budget    time.Duration
	startTime time.Time
}

// NewServer returns a server searching to depth (0 uses the engine default)
// within budget (0 means no budget) when a request does not say otherwise.
func NewServer(depth int, budget time.Duration) *Server {
	return &Server{
		depth:     depth,
		budget:    budget,
		startTime: time.Now(),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/findmove", s.handleFindMove)
	return r
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("agent server listening")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("agent server shutting down")
		return srv.Shutdown(shutdown)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, communication.HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	id := getRequestID(r.Context())
	logger := log.With().Str("request", id).Logger()

	var request communication.FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("bad request: %w", err))
		return
	}
	if err := request.State.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid state: %w", err))
		return
	}
	if request.BudgetMs < 0 {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("budget %dms is negative", request.BudgetMs))
		return
	}
	name := request.Evaluation
	if name == "" {
		name = "neutral"
	}
	evaluate, ok := game.Evaluations[name]
	if !ok {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("unknown evaluation %q", name))
		return
	}

	depth := request.Depth
	if depth == 0 {
		depth = s.depth
	}
	budget := s.budget
	if request.BudgetMs > 0 {
		budget = time.Duration(request.BudgetMs) * time.Millisecond
	}

	ab := searcher.NewAlphaBeta(
		game.NewAdapter(game.Scorer(evaluate)),
		searcher.WithMetrics(),
		searcher.WithLogger(logger),
	)
	if err := ab.Setup(request.State, depth); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	var deadline time.Time
	if budget > 0 {
		deadline = time.Now().Add(budget)
	}
	result, err := ab.Search(r.Context(), deadline)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, r, status, err)
		return
	}

	prediction := ab.Prediction()
	logger.Info().
		Stringer("state", request.State).
		Stringer("move", result.Move).
		Int("depth", result.Depth).
		Float64("score", result.Score).
		Msg("found move")

	writeJSON(w, http.StatusOK, communication.FindMoveResponse{
		Found:      result.Found,
		Move:       result.Move,
		Prediction: prediction.State,
		Line:       result.Line,
		Score:      result.Score,
		Depth:      result.Depth,
		Exhausted:  result.Exhausted,
		TimedOut:   result.TimedOut,
		RunID:      result.RunID,
		RequestID:  id,
		Metric:     result.Metric,
	})
}

// requestID tags every request with the caller's request id, or a fresh one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := getRequestID(r.Context())
	log.Warn().Err(err).Str("request", id).Int("status", status).Msg("find move failed")
	writeJSON(w, status, communication.ErrorResponse{Error: err.Error(), RequestID: id})
}
