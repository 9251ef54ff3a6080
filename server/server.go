// Package server exposes the tracker's queries and commands over a local
// HTTP API, and provides the client used by the CLI to reach it.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/report"
)

// Service is what the API serves. *tracker.Tracker implements it.
type Service interface {
	Stats(q report.Query) (*models.PeriodStats, error)
	YearlyRecap(year int) *models.YearlyRecap
	SetCategory(id, name string) (bool, error)
	Overrides() models.Overrides
	Snapshot() models.Snapshot
	Running() bool
	Start(ctx context.Context)
	Stop() error
}

// Handler routes API requests to a Service.
type Handler struct {
	svc    Service
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler returns a Handler serving svc.
func NewHandler(svc Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger.With(slog.String("component", "server")),
		now:    time.Now,
	}
}

// Router returns the API routes.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(h.loggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/stats", h.handleStats)
		r.Get("/recap", h.handleRecap)
		r.Get("/categories", h.handleCategoriesGet)
		r.Post("/categories", h.handleCategoriesPost)
		r.Post("/tracking/start", h.handleTrackingStart)
		r.Post("/tracking/stop", h.handleTrackingStop)
		r.Get("/snapshot", h.handleSnapshot)
	})

	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("api listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return errListen.Fmt(addr).Wrap(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
