// internal/httpserver/server.go
//
// HTTP server wiring for the Logik backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/howto", "/metrics", "/stats".
//   - Session endpoints (token required): digit entry, check, restart, exit.
//   - Recording finished sessions in the stats store.
//
// Notes:
//   - POST /session returns a signed session token; clients send it back as a
//     bearer token or via the session cookie.
//   - Each session is one game.Engine in the store; the store serialises
//     access so an engine never sees two requests at once.
//   - Engine errors map to 4xx responses with a stable error code.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/logik/assets"
	"github.com/robalobadob/logik/internal/config"
	"github.com/robalobadob/logik/internal/game"
	"github.com/robalobadob/logik/internal/metrics"
	"github.com/robalobadob/logik/internal/stats"
	"github.com/robalobadob/logik/internal/store"
)

// Server bundles router, session store, stats and metrics.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	gen      game.Generator
	store    store.Store
	stats    *stats.Store
	metrics  *metrics.Metrics
	validate *validator.Validate
	howTo    string
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, gen game.Generator, st store.Store, sts *stats.Store, m *metrics.Metrics) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		gen:      gen,
		store:    st,
		stats:    sts,
		metrics:  m,
		validate: validator.New(),
	}
	if txt, err := assets.HowToPlay(); err == nil {
		s.howTo = txt
	} else {
		log.Warn().Err(err).Msg("load how-to-play text")
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                // add X-Request-ID
	s.r.Use(chimw.RealIP)                   // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                      // debug access log
	s.r.Use(chimw.Recoverer)                // recover from panics
	s.r.Use(chimw.Timeout(cfg.HTTPTimeout)) // bound handler time
	s.r.Use(jsonContentType)                // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"logik","endpoints":["/health","/howto","/stats","/metrics","POST /session"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/howto", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(s.howTo))
	})
	s.r.Method(http.MethodGet, "/metrics", m.Handler())
	s.r.Get("/stats", s.handleStats)

	// Session endpoints
	s.r.Post("/session", s.handleNewSession)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireSession())
		r.Get("/session", s.handleSnapshot)
		r.Post("/session/digit", s.handleDigit)
		r.Post("/session/check", s.handleCheck)
		r.Post("/session/restart", s.handleRestart)
		r.Delete("/session", s.handleExit)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})
	return s
}

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ SESSION ------------------------------------

type newSessionRes struct {
	SessionID string        `json:"sessionId"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Snapshot  game.Snapshot `json:"snapshot"`
}

// handleNewSession creates a session with a fresh secret and hands back its token.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	e := game.New(s.gen)
	id, err := s.store.Create(r.Context(), e)
	if err != nil {
		log.Error().Err(err).Msg("create session")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	tok, exp, err := s.signSessionToken(id)
	if err != nil {
		_ = s.store.Delete(r.Context(), id)
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed", "")
		return
	}
	s.setSessionCookie(w, tok, exp)
	s.metrics.SessionStarted()
	log.Info().Str("sessionId", id).Msg("session started")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newSessionRes{SessionID: id, Token: tok, ExpiresAt: exp, Snapshot: e.Snapshot()})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	err := s.store.With(r.Context(), sessionID(r.Context()), func(e *game.Engine) error {
		snap = e.Snapshot()
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// digitReq is the payload for POST /session/digit.
type digitReq struct {
	Digit *int `json:"digit" validate:"required,min=0,max=9"`
}

// handleDigit appends one digit to the session's input buffer.
func (s *Server) handleDigit(w http.ResponseWriter, r *http.Request) {
	var req digitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.metrics.Rejected(game.ErrInvalidDigit)
		writeError(w, http.StatusBadRequest, "invalid_digit", "digit must be 0-9")
		return
	}

	var snap game.Snapshot
	err := s.store.With(r.Context(), sessionID(r.Context()), func(e *game.Engine) error {
		if err := e.AppendDigit(game.Digit(*req.Digit)); err != nil {
			return err
		}
		snap = e.Snapshot()
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.metrics.DigitAppended()
	_ = json.NewEncoder(w).Encode(snap)
}

type checkRes struct {
	Attempt  game.Attempt  `json:"attempt"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// handleCheck scores the buffered guess. A winning guess is recorded in stats.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r.Context())
	var res checkRes
	err := s.store.With(r.Context(), id, func(e *game.Engine) error {
		a, err := e.SubmitGuess()
		if err != nil {
			return err
		}
		res = checkRes{Attempt: a, Snapshot: e.Snapshot()}
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.metrics.GuessScored(res.Attempt)
	if res.Snapshot.Won {
		log.Info().Str("sessionId", id).Int("guesses", res.Snapshot.Guesses).Msg("session won")
		s.record(r.Context(), true, res.Snapshot.Guesses)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleRestart starts a new game in the same session ("Again").
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var (
		snap    game.Snapshot
		guesses int
		won     bool
	)
	err := s.store.With(r.Context(), sessionID(r.Context()), func(e *game.Engine) error {
		guesses, won = e.GuessCount(), e.IsWon()
		e.Restart()
		snap = e.Snapshot()
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	if !won {
		s.record(r.Context(), false, guesses)
	}
	s.metrics.Restarted()
	_ = json.NewEncoder(w).Encode(snap)
}

// handleExit drops the session ("Exit").
func (s *Server) handleExit(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r.Context())
	var (
		guesses int
		won     bool
	)
	err := s.store.With(r.Context(), id, func(e *game.Engine) error {
		guesses, won = e.GuessCount(), e.IsWon()
		return nil
	})
	if err == nil {
		err = s.store.Delete(r.Context(), id)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	if !won {
		s.record(r.Context(), false, guesses)
	}
	s.metrics.SessionEnded()
	s.clearSessionCookie(w)
	log.Info().Str("sessionId", id).Msg("session closed")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// record stores a finished game. Abandoned games without a single guess are
// skipped. Failures are logged, never surfaced.
func (s *Server) record(ctx context.Context, won bool, guesses int) {
	if !won && guesses == 0 {
		return
	}
	if err := s.stats.Record(ctx, stats.Result{SessionID: uuid.NewString(), Won: won, Guesses: guesses}); err != nil {
		log.Warn().Err(err).Msg("record result")
	}
}

type statsRes struct {
	Summary stats.Summary  `json:"summary"`
	Latest  []stats.Recent `json:"latest"`
	Live    int            `json:"liveSessions"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sum, err := s.stats.Summary(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("stats summary")
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	latest, err := s.stats.Latest(r.Context(), 20)
	if err != nil {
		log.Error().Err(err).Msg("stats latest")
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	_ = json.NewEncoder(w).Encode(statsRes{Summary: sum, Latest: latest, Live: s.store.Len()})
}

// ------------------------------- errors ------------------------------------

type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorRes{Error: code, Message: msg})
}

// fail maps store and engine errors to HTTP responses.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", "")
		return
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "timeout", "")
		return
	}

	s.metrics.Rejected(err)
	switch {
	case errors.Is(err, game.ErrBufferFull):
		writeError(w, http.StatusConflict, "buffer_full", "All 3 boxes are already filled")
	case errors.Is(err, game.ErrIncompleteGuess):
		writeError(w, http.StatusUnprocessableEntity, "incomplete_guess", "Please fill all 3 boxes")
	case errors.Is(err, game.ErrInvalidDigit):
		writeError(w, http.StatusBadRequest, "invalid_digit", "digit must be 0-9")
	case errors.Is(err, game.ErrGameWon):
		writeError(w, http.StatusConflict, "game_won", "Start a new game to keep playing")
	default:
		log.Error().Err(err).Msg("unexpected session error")
		writeError(w, http.StatusInternalServerError, "internal", "")
	}
}
