package transport

import (
	"net/http"

	"stockroom/internal/middleware"
	"stockroom/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// InventoryValueResponse carries the total inventory value
type InventoryValueResponse struct {
	TotalInventoryValue float64 `json:"total_inventory_value"`
}

// AnalyticsHandler handles HTTP requests for derived analytics
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	logger           *zap.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// RegisterRoutes registers the protected analytics routes
func (h *AnalyticsHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/api/analytics/low-stock", h.LowStock)
		r.Get("/api/analytics/inventory-value", h.InventoryValue)
		r.Get("/api/analytics/stock-movement", h.StockMovement)
		r.Get("/api/dashboard/summary", h.DashboardSummary)
	})
}

// LowStock returns the items at or below their restock threshold
func (h *AnalyticsHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.analyticsService.LowStock(r.Context())
	if err != nil {
		h.logger.Error("Failed to list low-stock items", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list low-stock items")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}

// InventoryValue returns the total value of all stock
func (h *AnalyticsHandler) InventoryValue(w http.ResponseWriter, r *http.Request) {
	total, err := h.analyticsService.InventoryValue(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute inventory value", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute inventory value")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, InventoryValueResponse{TotalInventoryValue: total})
}

// StockMovement returns the per-day movement summary for the requested
// range, defaulting to the 30 days ending today
func (h *AnalyticsHandler) StockMovement(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	entries, err := h.analyticsService.StockMovement(
		r.Context(),
		query.Get("start_date"),
		query.Get("end_date"),
	)
	if err != nil {
		if err == service.ErrInvalidDate {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to compute stock movement", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute stock movement")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, entries)
}

// DashboardSummary returns the aggregate dashboard rollup
func (h *AnalyticsHandler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsService.DashboardSummary(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute dashboard summary", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute dashboard summary")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, summary)
}
