// Package server exposes the edit-view configuration over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-formlayout/internal/config"
	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/preview"
)

// Server holds the collaborators of the HTTP handlers.
type Server struct {
	service     *configuration.Service
	sessions    *configuration.Registry
	preview     *preview.Renderer
	permissions config.Permissions
	bodyLimit   int64
	logger      *zap.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithPermissions sets the actions required per route group.
func WithPermissions(p config.Permissions) Option {
	return func(s *Server) {
		s.permissions = p
	}
}

// WithBodyLimit caps request bodies.
func WithBodyLimit(limit int64) Option {
	return func(s *Server) {
		if limit > 0 {
			s.bodyLimit = limit
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds a Server.
func New(service *configuration.Service, sessions *configuration.Registry, renderer *preview.Renderer, opts ...Option) *Server {
	s := &Server{
		service:     service,
		sessions:    sessions,
		preview:     renderer,
		permissions: config.Defaults().Permissions,
		bodyLimit:   config.Defaults().Server.BodyLimit,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	read := s.RequirePermission(s.permissions.Read)
	update := s.RequirePermission(s.permissions.Update)

	r.Route("/content-manager/content-types/{uid}", func(r chi.Router) {
		r.With(read).Get("/configuration", s.getConfiguration)
		r.With(update).Put("/configuration", s.putConfiguration)
		r.With(read).Get("/configuration/preview", s.getPreview)

		r.Route("/sessions", func(r chi.Router) {
			r.Use(update)
			r.Post("/", s.createSession)
			r.Get("/{id}", s.getSession)
			r.Delete("/{id}", s.deleteSession)
			r.Post("/{id}/insert", s.insertField)
			r.Post("/{id}/remove", s.removeField)
			r.Post("/{id}/move", s.moveField)
			r.Post("/{id}/resize", s.resizeField)
			r.Post("/{id}/relabel", s.relabelField)
			r.Post("/{id}/main-field", s.setMainField)
			r.Post("/{id}/reset", s.resetSession)
			r.Post("/{id}/submit", s.submitSession)
		})
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
