package main

import (
	"fmt"

	"go.uber.org/zap"

	"dconn.dev/portfolio/internal/config"
	"dconn.dev/portfolio/internal/metrics"
	"dconn.dev/portfolio/internal/services"
	"dconn.dev/portfolio/internal/store"
)

// app holds the wired components shared by the subcommands
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *store.JSONStore
	projects *services.ProjectService
	profile  *services.ProfileService
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	m := metrics.New()
	js := store.NewJSONStore(cfg.DataFile, logger, m)
	locked := store.NewLocked(js)
	images := services.NewImageService(cfg.UploadDir, cfg.UploadURL, logger, m)

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    js,
		projects: services.NewProjectService(locked, images, logger, m),
		profile:  services.NewProfileService(locked, logger),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
