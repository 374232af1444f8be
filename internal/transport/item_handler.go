package transport

import (
	"net/http"
	"time"

	"stockroom/internal/middleware"
	"stockroom/internal/repository"
	"stockroom/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateItemRequest represents the item creation payload. Quantity and
// minimum_stock are pointers so an explicit 0 passes the required check.
type CreateItemRequest struct {
	Name         string   `json:"name" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	Quantity     *int     `json:"quantity" validate:"required"`
	MinimumStock *int     `json:"minimum_stock" validate:"required"`
	UnitPrice    *float64 `json:"unit_price"`
	Location     string   `json:"location"`
}

// UpdateItemRequest represents the full-replace update payload. Update is
// not a patch: every stored field must be resupplied, including created_at
// and created_by, or the request fails validation.
type UpdateItemRequest struct {
	Name         string     `json:"name" validate:"required"`
	Category     string     `json:"category" validate:"required"`
	Quantity     *int       `json:"quantity" validate:"required"`
	MinimumStock *int       `json:"minimum_stock" validate:"required"`
	UnitPrice    *float64   `json:"unit_price" validate:"required"`
	Location     *string    `json:"location" validate:"required"`
	CreatedAt    *time.Time `json:"created_at" validate:"required"`
	CreatedBy    string     `json:"created_by" validate:"required"`
}

// CreatedResponse carries the identifier of a newly created entity
type CreatedResponse struct {
	ID string `json:"id"`
}

// ItemHandler handles HTTP requests for inventory operations
type ItemHandler struct {
	inventoryService service.InventoryService
	logger           *zap.Logger
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(inventoryService service.InventoryService, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// RegisterRoutes registers the protected inventory routes
func (h *ItemHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/api/items", h.List)
		r.Post("/api/items", h.Create)
		r.Put("/api/items/{id}", h.Update)
		r.Delete("/api/items/{id}", h.Delete)
		r.Get("/api/categories", h.Categories)
	})
}

// List handles filtered item listing
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	items, err := h.inventoryService.ListItems(
		r.Context(),
		query.Get("search"),
		query.Get("category"),
		query.Get("date"),
	)
	if err != nil {
		if err == service.ErrInvalidDate {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to list items", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}

// Create handles item creation
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Item validation failed", zap.Error(err))
		if msg := middleware.ValidationMessage(err); msg != "" {
			middleware.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	callerID, _ := middleware.GetUserID(r.Context())

	fields := service.ItemFields{
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     *req.Quantity,
		MinimumStock: *req.MinimumStock,
		Location:     req.Location,
	}
	if req.UnitPrice != nil {
		fields.UnitPrice = *req.UnitPrice
	}

	item, err := h.inventoryService.CreateItem(r.Context(), fields, callerID)
	if err != nil {
		h.logger.Error("Failed to create item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	h.logger.Info("Item created",
		zap.String("item_id", item.ID.String()),
		zap.String("name", item.Name),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, CreatedResponse{ID: item.ID.String()})
}

// Update handles full-replace item updates
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req UpdateItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Item update validation failed", zap.Error(err))
		if msg := middleware.ValidationMessage(err); msg != "" {
			middleware.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	callerID, _ := middleware.GetUserID(r.Context())

	fields := service.ItemFields{
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     *req.Quantity,
		MinimumStock: *req.MinimumStock,
		UnitPrice:    *req.UnitPrice,
		Location:     *req.Location,
		CreatedAt:    *req.CreatedAt,
		CreatedBy:    req.CreatedBy,
	}

	if err := h.inventoryService.UpdateItem(r.Context(), id, fields, callerID); err != nil {
		if err == repository.ErrItemNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "item not found")
			return
		}
		h.logger.Error("Failed to update item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "item updated successfully",
	})
}

// Delete handles item deletion; a missing id still reports success
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.inventoryService.DeleteItem(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "item deleted successfully",
	})
}

// Categories handles the distinct-category listing
func (h *ItemHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.inventoryService.Categories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}
