package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dconn.dev/portfolio/internal/handlers"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	// Seed the data file and upload directory before accepting requests
	if _, err := a.store.Load(); err != nil {
		return err
	}
	if err := os.MkdirAll(a.cfg.UploadDir, 0o755); err != nil {
		return err
	}

	router := handlers.SetupRoutes(handlers.Dependencies{
		Config:   a.cfg,
		Projects: a.projects,
		Profile:  a.profile,
		Logger:   a.logger,
	})

	srv := &http.Server{
		Addr:              a.cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting portfolio server",
			zap.String("addr", a.cfg.ServerAddr),
			zap.String("data_file", a.cfg.DataFile),
			zap.String("version", version),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
