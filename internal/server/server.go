// Package server exposes the portal's HTTP API: static curriculum content,
// the AI-assisted actions, and the history, diagram, and report operations.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/masterclass-labs/architect-advisor/internal/advisor"
	"github.com/masterclass-labs/architect-advisor/internal/diagram"
	"github.com/masterclass-labs/architect-advisor/internal/report"
)

type Server struct {
	Router *chi.Mux
	Port   int
	logger *slog.Logger
}

// New builds the router with the full middleware chain and portal routes.
func New(port int, logger *slog.Logger, session *advisor.Session, renderer *diagram.KrokiRenderer, exporter *report.Exporter) *Server {
	r := chi.NewRouter()

	// Apply middleware in order
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(TimeoutMiddleware(120 * time.Second))
	r.Use(middleware.Recoverer)

	// Wrap with OpenTelemetry HTTP instrumentation
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "architect-advisor")
	})

	h := &Handler{
		session:  session,
		renderer: renderer,
		exporter: exporter,
		logger:   logger,
	}

	r.Get("/healthz", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/curriculum/sections", h.Sections)
		r.Get("/curriculum/modules", h.Modules)
		r.Get("/curriculum/roadmap", h.Roadmap)
		r.Get("/curriculum/labs", h.Labs)

		r.Post("/match", h.Match)
		r.Post("/review", h.Review)
		r.Post("/explain", h.Explain)

		r.Get("/history", h.History)
		r.Delete("/history", h.ClearHistory)
		r.Get("/history/export", h.ExportHistory)
		r.Post("/history/import", h.ImportHistory)

		r.Post("/diagram", h.Diagram)
		r.Post("/report", h.Report)
	})

	return &Server{
		Router: r,
		Port:   port,
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting server", slog.Int("port", s.Port))
	return http.ListenAndServe(fmt.Sprintf(":%d", s.Port), s.Router)
}
