package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dconn.dev/portfolio/internal/config"
	"dconn.dev/portfolio/internal/middleware"
	"dconn.dev/portfolio/internal/services"
)

// Dependencies are the services the router exposes
type Dependencies struct {
	Config   *config.Config
	Projects *services.ProjectService
	Profile  *services.ProfileService
	Logger   *zap.Logger
}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(deps Dependencies) http.Handler {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger.Named("http")))

	projectHandler := NewProjectHandler(deps.Projects, logger)
	profileHandler := NewProfileHandler(deps.Profile, logger)
	limit := middleware.BodyLimit(cfg.MaxUploadBytes())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/site", profileHandler.GetSite)

		r.Get("/config", profileHandler.GetProfile)
		r.With(limit).Put("/config", profileHandler.UpdateProfile)

		r.Get("/projects", projectHandler.ListProjects)
		r.With(limit).Post("/projects", projectHandler.CreateProject)
		r.Get("/projects/{id}", projectHandler.GetProject)
		r.With(limit).Put("/projects/{id}", projectHandler.UpdateProject)
		r.Delete("/projects/{id}", projectHandler.DeleteProject)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			profileHandler.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	// Static files, including uploaded project images
	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	r.Handle(cfg.StaticPrefix+"/*", http.StripPrefix(cfg.StaticPrefix, fileServer))

	// Serve index.html at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(cfg.StaticDir, "index.html"))
	})

	return r
}
