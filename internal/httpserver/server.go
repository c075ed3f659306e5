// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the games backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, metrics, JSON, CORS,
//     timeouts, panic recovery).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words".
//   - Robot endpoints (optional auth): mounted under /api/robot.
//   - Word chain endpoints (optional auth): mounted under /api/words.
//   - Auth endpoints: /auth/*.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid token is
//     present; routes still run for guests.
//   - Results are saved after the response body is decided; a failed save is
//     logged and never turns a computed answer into an error.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/games/apps/go-server/internal/chain"
	"github.com/robalobadob/games/apps/go-server/internal/config"
	"github.com/robalobadob/games/apps/go-server/internal/i18n"
	"github.com/robalobadob/games/apps/go-server/internal/metrics"
	"github.com/robalobadob/games/apps/go-server/internal/store"
	"github.com/robalobadob/games/apps/go-server/internal/words"
)

// Deps are the collaborators the server is built from.
type Deps struct {
	Config   config.Config
	Words    *words.Catalog
	I18n     *i18n.Bundle
	Results  store.Results
	Users    store.Users
	Sessions store.Sessions
	Metrics  *metrics.Metrics
	Logger   zerolog.Logger
	Now      func() time.Time // defaults to time.Now
}

// Server bundles router and collaborators.
type Server struct {
	r         *chi.Mux
	cfg       config.Config
	words     *words.Catalog
	validator *chain.Validator
	i18n      *i18n.Bundle
	results   store.Results
	users     store.Users
	sessions  store.Sessions
	metrics   *metrics.Metrics
	now       func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{
		r:         chi.NewRouter(),
		cfg:       d.Config,
		words:     d.Words,
		validator: chain.NewValidator(d.Words.Dictionary()),
		i18n:      d.I18n,
		results:   d.Results,
		users:     d.Users,
		sessions:  d.Sessions,
		metrics:   d.Metrics,
		now:       d.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.results == nil {
		s.results = store.NewMemory()
	}
	if s.users == nil {
		s.users = store.NewMemoryUsers()
	}
	if s.sessions == nil {
		s.sessions = store.NewMemorySessions(store.WithSessionClock(s.now))
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                   // add X-Request-ID
	s.r.Use(chimw.RealIP)                      // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(d.Logger))         // request-scoped logger
	s.r.Use(accessLog)                         // one line per request
	s.r.Use(s.metrics.Middleware)              // request count + latency
	s.r.Use(chimw.Recoverer)                   // recover from panics
	s.r.Use(chimw.Timeout(s.requestTimeout())) // bound handler time
	s.r.Use(jsonContentType)                   // default JSON responses
	s.r.Use(cors(s.cfg.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"games-go","endpoints":["/health","/metrics","POST /api/robot/move","POST /api/words/validate","/api/words/sessions","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// Game endpoints: OPTIONAL AUTH (guests can play)
	s.r.Route("/api", func(api chi.Router) {
		api.Use(s.withOptionalAuth())
		s.mountRobot(api)
		s.mountWords(api)
	})

	// Auth
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	// Debug: word list counts
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		es, en := s.words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"spanish": es, "english": en})
	})

	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler { return s.r }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) requestTimeout() time.Duration {
	if s.cfg.RequestTimeout > 0 {
		return s.cfg.RequestTimeout
	}
	return 10 * time.Second
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one info line per request with the chi request id.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Str("req_id", chimw.GetReqID(r.Context())).
		Msg("request")
})

// ------------------------------- helpers -----------------------------------

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError writes {"error": code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// limitParam reads ?limit=; invalid values fall back to the store default.
func limitParam(r *http.Request) int {
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return store.ClampLimit(n)
}

// translator picks the response language for r.
func (s *Server) translator(r *http.Request) *i18n.Translator {
	return s.i18n.Translator(s.i18n.Resolve(r))
}

// player is the username of the signed-in caller, or "" for guests.
func player(r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.Username
	}
	return ""
}
