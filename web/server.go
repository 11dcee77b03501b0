package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gricha/site/blog"
	"github.com/gricha/site/feed"
	"github.com/gricha/site/game"
)

// GameProxy answers player commands.
type GameProxy interface {
	Handle(ctx context.Context, req game.Request) game.Result
	Resume(ctx context.Context, sessionID string) game.Result
}

// PostStore lists blog posts.
type PostStore interface {
	All(ctx context.Context) ([]blog.Post, error)
	BySlug(ctx context.Context, slug string) (*blog.Post, error)
}

// Server routes site requests.
type Server struct {
	router          *mux.Router
	game            GameProxy
	posts           PostStore
	site            feed.Site
	allowOrigin     string
	shutdownTimeout time.Duration
	registry        *prometheus.Registry
	metrics         *metrics
	logger          logr.Logger
	now             func() time.Time
}

// Option customises a Server.
type Option func(*Server)

// WithGame enables the game API; without it the API answers 503.
func WithGame(proxy GameProxy) Option {
	return func(s *Server) { s.game = proxy }
}

// WithPosts sets the blog post source.
func WithPosts(store PostStore) Option {
	return func(s *Server) { s.posts = store }
}

// WithSite sets the site metadata used by pages and feeds.
func WithSite(site feed.Site) Option {
	return func(s *Server) { s.site = site }
}

// WithAllowOrigin sets the CORS origin of the game API.
func WithAllowOrigin(origin string) Option {
	return func(s *Server) {
		if origin != "" {
			s.allowOrigin = origin
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.shutdownTimeout = timeout
		}
	}
}

// WithRegistry registers metrics with registry instead of a private one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) { s.registry = registry }
}

// WithLogger sets the logger.
func WithLogger(logger logr.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithClock overrides the time source used for feed stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a server with its routes registered.
func New(opts ...Option) *Server {
	s := &Server{
		allowOrigin:     "*",
		shutdownTimeout: 10 * time.Second,
		logger:          logr.Discard(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)
	s.router = mux.NewRouter()
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.metrics.middleware)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)

	s.router.HandleFunc("/api/game", s.handleGame).Methods(http.MethodPost)
	s.router.HandleFunc("/api/game", s.handlePreflight).Methods(http.MethodOptions)
	s.router.HandleFunc("/api/game/resume", s.handleResume).Methods(http.MethodPost)
	s.router.HandleFunc("/api/game/resume", s.handlePreflight).Methods(http.MethodOptions)

	s.router.HandleFunc("/blog", s.handleBlogIndex).Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/blog/{slug}", s.handlePost).Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/rss.xml", s.handleRSS).Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/atom.xml", s.handleAtom).Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/feed.json", s.handleJSONFeed).Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/sitemap.xml", s.handleSitemap).Methods(http.MethodGet, http.MethodHead)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is ListenAndServe over an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- httpServer.Serve(listener)
	}()
	s.logger.Info("site server listening", "addr", listener.Addr().String())

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"game":   s.game != nil,
	})
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
