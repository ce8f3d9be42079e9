// Package webui serves the browser chat page and the JSON and websocket chat
// API behind it.
package webui

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"weatherbot/internal/chat"
)

//go:embed static
var staticFiles embed.FS

// Options configure NewServer.
type Options struct {
	Addr string
	// AllowedOrigins lists the CORS origins; "*" allows every origin.
	AllowedOrigins []string
	// Cities backs GET /api/cities.
	Cities []string
	Logger zerolog.Logger
}

// Server is the Web UI backend.
type Server struct {
	responder chat.Responder
	opts      Options
	log       zerolog.Logger
	router    chi.Router
	upgrader  websocket.Upgrader
	started   time.Time
}

func NewServer(r chat.Responder, opts Options) (*Server, error) {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	s := &Server{
		responder: r,
		opts:      opts,
		log:       opts.Logger.With().Str("component", "webui").Logger(),
		started:   time.Now(),
	}
	// Browsers send Origin on websocket handshakes; other clients may not.
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || s.originAllowed(origin)
		},
	}
	router, err := s.buildRouter()
	if err != nil {
		return nil, err
	}
	s.router = router
	return s, nil
}

func (s *Server) buildRouter() (chi.Router, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return s.originAllowed(origin)
		},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// The websocket stays open far longer than any single request.
	r.Get("/api/ws", s.handleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Post("/api/chat", s.handleChat)
		r.Get("/api/status", s.handleStatus)
		r.Get("/api/cities", s.handleCities)
	})

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to load static files: %w", err)
	}
	r.Handle("/", http.FileServer(http.FS(staticFS)))
	return r, nil
}

func (s *Server) originAllowed(origin string) bool {
	return allowOrigin(s.opts.AllowedOrigins, origin)
}

// allowOrigin reports whether origin is in allowed. One "*" inside an entry
// stands for any run of characters ("http://localhost:*"); an empty list or
// a bare "*" allows every origin. Matching ignores case.
func allowOrigin(allowed []string, origin string) bool {
	if len(allowed) == 0 {
		return true
	}
	origin = strings.ToLower(origin)
	for _, a := range allowed {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "*" {
			return true
		}
		if prefix, suffix, ok := strings.Cut(a, "*"); ok {
			if len(origin) >= len(prefix)+len(suffix) &&
				strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix) {
				return true
			}
			continue
		}
		if a == origin {
			return true
		}
	}
	return false
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("addr", s.opts.Addr).Msg("starting web UI")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("webui server error: %w", err)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}
