package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mythwell/field-api/internal/api/middleware"
	"github.com/mythwell/field-api/internal/api/shared"
	"github.com/mythwell/field-api/internal/service"
)

// FieldAnalyticsRequest is the request body for the cohort analytics
// endpoint. An empty cohort is valid and yields the empty field summary.
type FieldAnalyticsRequest struct {
	UserIDs []string `json:"user_ids" validate:"dive,uuid"`
}

// AnalyticsHandler handles analytics-related HTTP requests.
type AnalyticsHandler struct {
	analytics service.AnalyticsService
	logger    *slog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analytics service.AnalyticsService, log *slog.Logger) *AnalyticsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AnalyticsHandler{
		analytics: analytics,
		logger:    log.With(slog.String("component", "analytics_handler")),
	}
}

// GetUserAnalytics handles GET /api/users/{id}/analytics requests.
// A token without the field scope may only read its own summary.
func (h *AnalyticsHandler) GetUserAnalytics(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if userID != claims.UserID && !claims.HasFieldScope() {
		shared.RespondWithError(w, r, http.StatusForbidden, "Cannot access another user's analytics")
		return
	}

	opts, err := nowOptions(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid now parameter")
		return
	}

	summary, err := h.analytics.UserAnalytics(r.Context(), userID, opts...)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to compute analytics", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// GetFieldAnalytics handles POST /api/field/analytics requests.
// Requires the field scope.
func (h *AnalyticsHandler) GetFieldAnalytics(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	if !claims.HasFieldScope() {
		shared.RespondWithError(w, r, http.StatusForbidden, "Field scope required")
		return
	}

	var req FieldAnalyticsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userIDs := make([]uuid.UUID, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID in cohort")
			return
		}
		userIDs = append(userIDs, id)
	}

	opts, err := nowOptions(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid now parameter")
		return
	}

	summary, err := h.analytics.FieldAnalytics(r.Context(), userIDs, opts...)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to compute field analytics", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// nowOptions parses the optional ?now=RFC3339 query parameter used for
// deterministic replay of recency windows.
func nowOptions(r *http.Request) ([]service.Option, error) {
	raw := r.URL.Query().Get("now")
	if raw == "" {
		return nil, nil
	}
	now, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return []service.Option{service.WithNow(now.UTC())}, nil
}
