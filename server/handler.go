package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/slihbo/WinTrace/category"
	"github.com/slihbo/WinTrace/internal/config"
	"github.com/slihbo/WinTrace/internal/timeutil"
	"github.com/slihbo/WinTrace/report"
)

const requestIDHeader = "X-Request-ID"

type ctxKey struct{}

type (
	// Health is the body of GET /api/health.
	Health struct {
		Status   string `json:"status"`
		Version  string `json:"version"`
		Tracking bool   `json:"tracking"`
	}

	// CategoryRequest is the body of POST /api/categories.
	CategoryRequest struct {
		ID       string `json:"id"`
		Category string `json:"category"`
	}

	// CategoryResponse reports whether an override was accepted.
	CategoryResponse struct {
		Error   string `json:"error,omitempty"`
		Success bool   `json:"success"`
	}

	// TrackingResponse reports the tracking state after a start or stop.
	TrackingResponse struct {
		Tracking bool `json:"tracking"`
	}
)

// callerErrors are rejected requests rather than server faults.
var callerErrors = []error{
	report.ErrInvalidRange,
	report.ErrUnknownMode,
	report.ErrIncompleteRange,
	report.ErrInvalidYear,
	timeutil.ErrInvalidDate,
	category.ErrUnknownCategory,
	category.ErrEmptyIdentity,
}

func statusFor(err error) int {
	for _, target := range callerErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, Health{
		Status:   "ok",
		Version:  config.Version,
		Tracking: h.svc.Running(),
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()

	q, err := report.ParseQuery(
		v.Get("mode"),
		v.Get("date"),
		v.Get("start"),
		v.Get("end"),
		h.now(),
	)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	stats, err := h.svc.Stats(q)
	if err != nil {
		h.logger.Error("stats failed", slog.String("request_id", RequestID(r.Context())), slog.Any("error", err))
		respondError(w, statusFor(err), err.Error())

		return
	}

	respondJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleRecap(w http.ResponseWriter, r *http.Request) {
	year, err := report.ParseYear(r.URL.Query().Get("year"), h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.svc.YearlyRecap(year))
}

func (h *Handler) handleCategoriesGet(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Overrides())
}

func (h *Handler) handleCategoriesPost(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, CategoryResponse{Error: "invalid json"})
		return
	}

	ok, err := h.svc.SetCategory(req.ID, req.Category)
	if err != nil {
		respondJSON(w, statusFor(err), CategoryResponse{Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, CategoryResponse{Success: ok})
}

func (h *Handler) handleTrackingStart(w http.ResponseWriter, r *http.Request) {
	// the loop must outlive this request
	h.svc.Start(context.WithoutCancel(r.Context()))

	respondJSON(w, http.StatusOK, TrackingResponse{Tracking: h.svc.Running()})
}

func (h *Handler) handleTrackingStop(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Stop(); err != nil {
		// tracking did stop; only the final save failed
		h.logger.Error("final flush failed", slog.String("request_id", RequestID(r.Context())), slog.Any("error", err))
	}

	respondJSON(w, http.StatusOK, TrackingResponse{Tracking: h.svc.Running()})
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Snapshot())
}

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (h *Handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		h.logger.Debug(
			"request handled",
			slog.String("request_id", RequestID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}
