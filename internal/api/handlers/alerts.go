package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dportela/procura/backend/internal/alerts"
	"github.com/dportela/procura/backend/pkg/logger"
)

// AlertHandler serves the follow-up alert endpoints. Three renderers
// consume them: the sidebar badge (total only), the dashboard header
// (per-category counts) and the alert panel (full annotated lists).
type AlertHandler struct {
	service *alerts.Service
	logger  *logger.Logger
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(service *alerts.Service, log *logger.Logger) *AlertHandler {
	return &AlertHandler{
		service: service,
		logger:  log,
	}
}

// GetSummary returns the full alert summary
// GET /api/alerts?date=YYYY-MM-DD
func (h *AlertHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	refDate, ok := h.parseRefDate(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(ctx, refDate)
	if err != nil {
		if errors.Is(err, alerts.ErrZeroReferenceDate) {
			respondError(w, http.StatusBadRequest, "Invalid reference date")
			return
		}
		h.logger.WithError(err).Error("Failed to compute alert summary")
		respondError(w, http.StatusInternalServerError, "Failed to compute alert summary")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetBadge returns only the alert total for the sidebar badge
// GET /api/alerts/badge
func (h *AlertHandler) GetBadge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	refDate, ok := h.parseRefDate(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(ctx, refDate)
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute alert badge")
		respondError(w, http.StatusInternalServerError, "Failed to compute alert badge")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"total": summary.Total})
}

// GetCounts returns the per-category sizes for the dashboard header
// GET /api/alerts/summary
func (h *AlertHandler) GetCounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	refDate, ok := h.parseRefDate(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(ctx, refDate)
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute alert counts")
		respondError(w, http.StatusInternalServerError, "Failed to compute alert counts")
		return
	}

	respondJSON(w, http.StatusOK, summary.Counts())
}

// parseRefDate reads the optional ?date= override. A zero time means
// "use the service clock". Reports false after writing the error.
func (h *AlertHandler) parseRefDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Time{}, true
	}

	refDate, err := time.Parse("2006-01-02", raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'date' format (expected YYYY-MM-DD)")
		return time.Time{}, false
	}

	return refDate, true
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
