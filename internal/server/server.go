// Package server provides the web shell: a JSON API and a small HTML page
// over per-visitor recommendation sessions.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"foodrec/internal/metrics"
	"foodrec/internal/service"
)

// Options configures the web shell.
type Options struct {
	Logger *zap.Logger
	// RateLimit is requests per minute per client IP on the page and API
	// routes; 0 disables it.
	RateLimit int
	// CORSOrigins lists origins allowed to call the API; empty disables CORS.
	CORSOrigins []string
	// SessionTTL is how long an untouched session survives; 0 selects
	// DefaultSessionTTL.
	SessionTTL time.Duration
	// MaxSessions caps live sessions; the least recently used one is evicted
	// to make room. 0 selects DefaultMaxSessions.
	MaxSessions int
}

// Session store defaults.
const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 10000
)

type sessionEntry struct {
	sess     *service.Session
	lastSeen time.Time
}

// Server is the HTTP server for the web shell.
type Server struct {
	rec    *service.Recommender
	opts   Options
	logger *zap.Logger
	server *http.Server

	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionEntry
	now      func() time.Time
}

// NewServer creates a server over a ready recommender.
func NewServer(rec *service.Recommender, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	return &Server{
		rec:      rec,
		opts:     opts,
		logger:   logger,
		sessions: make(map[uuid.UUID]*sessionEntry),
		now:      time.Now,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Compress(5))

	// One limiter covers every route that can create or query a session.
	limit := func(next http.Handler) http.Handler { return next }
	if s.opts.RateLimit > 0 {
		limit = httprate.LimitByIP(s.opts.RateLimit, time.Minute)
	}

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Group(func(r chi.Router) {
		r.Use(limit)
		r.Get("/", s.handleIndex)
		r.Post("/", s.handleIndexSubmit)
	})

	r.Route("/api/v1", func(r chi.Router) {
		if len(s.opts.CORSOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.opts.CORSOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
		}
		r.Use(limit)
		r.Get("/options", s.handleOptions)
		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Delete("/sessions/{id}", s.handleDeleteSession)
		r.Post("/sessions/{id}/recommendations", s.handleRecommend)
	})
	return r
}

// Start starts the HTTP server on addr and blocks until it stops.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()
	s.logger.Info("Starting server", zap.String("addr", addr))
	return srv.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) newSession() uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	now := s.now()
	s.evictLocked(now)
	s.sessions[id] = &sessionEntry{sess: s.rec.NewSession(), lastSeen: now}
	n := len(s.sessions)
	s.mu.Unlock()
	metrics.ActiveSessions.Set(float64(n))
	return id
}

// evictLocked drops expired sessions, then the least recently used ones
// until there is room for one more. s.mu must be held.
func (s *Server) evictLocked(now time.Time) {
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.opts.SessionTTL {
			delete(s.sessions, id)
		}
	}
	for len(s.sessions) >= s.opts.MaxSessions {
		var (
			oldest   uuid.UUID
			oldestAt time.Time
			found    bool
		)
		for id, e := range s.sessions {
			if !found || e.lastSeen.Before(oldestAt) {
				oldest, oldestAt, found = id, e.lastSeen, true
			}
		}
		delete(s.sessions, oldest)
		s.logger.Debug("session evicted", zap.String("id", oldest.String()))
	}
}

// withSession runs fn on the session under the lock and marks it used. It
// reports false when the session does not exist or has expired.
func (s *Server) withSession(id uuid.UUID, fn func(*service.Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return false
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.opts.SessionTTL {
		delete(s.sessions, id)
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
		return false
	}
	e.lastSeen = now
	fn(e.sess)
	return true
}

func (s *Server) sessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) deleteSession(id uuid.UUID) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()
	metrics.ActiveSessions.Set(float64(n))
	return ok
}
