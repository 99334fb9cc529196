package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/TodayDesign/vercel-project-dashboard/internal/api/handler"
	mw "github.com/TodayDesign/vercel-project-dashboard/internal/api/middleware"
	"github.com/TodayDesign/vercel-project-dashboard/internal/api/response"
	"github.com/TodayDesign/vercel-project-dashboard/internal/config"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type Services struct {
	Projects handler.ProjectService
	Prober   handler.Prober
	// Checks are run by /readyz, keyed by the name reported in its body.
	Checks map[string]ReadinessCheck
}

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services Services
	cfg      *config.Config
}

func NewServer(logger zerolog.Logger, cfg *config.Config, services Services) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: services,
		cfg:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
	s.router.Use(mw.CORS(s.cfg.CORSOrigins))
}

func (s *Server) setupRoutes() {
	// Served by the dedicated listener when one is configured.
	if s.cfg.MetricsListenAddr == "" {
		s.router.Handle("/metrics", promhttp.Handler())
	}

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.BasicAuth(mw.Credentials{
			Username:     s.cfg.AuthUsername,
			Password:     s.cfg.AuthPassword,
			PasswordHash: s.cfg.AuthPasswordHash,
		}))

		project := handler.NewProject(s.services.Projects)
		r.Get("/projects", project.List)
		r.Get("/deployments/{projectId}", project.Deployments)

		ping := handler.NewPing(s.services.Prober)
		r.Post("/ping", ping.Probe)
	})

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteError(w, http.StatusNotFound, "not found")
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(s.services.Checks))
	for name := range s.services.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := map[string]string{}
	healthy := true
	for _, name := range names {
		if err := s.services.Checks[name](ctx); err != nil {
			checks[name] = err.Error()
			healthy = false
			zerolog.Ctx(r.Context()).Warn().Err(err).Str("check", name).Msg("readiness check failed")
			continue
		}
		checks[name] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	response.WriteJSON(w, status, checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
