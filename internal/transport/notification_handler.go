package transport

import (
	"net/http"

	"stockroom/internal/middleware"
	"stockroom/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateNotificationRequest represents the notification creation payload
type CreateNotificationRequest struct {
	Message string `json:"message" validate:"required"`
}

// NotificationHandler handles HTTP requests for notifications
type NotificationHandler struct {
	notificationService service.NotificationService
	logger              *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// RegisterRoutes registers the protected notification routes
func (h *NotificationHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/api/notifications", h.List)
		r.Post("/api/notifications", h.Create)
		r.Delete("/api/notifications/{id}", h.Delete)
	})
}

// List returns the 20 most recent notifications, newest first
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list notifications", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, notifications)
}

// Create stores a new notification
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNotificationRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Notification validation failed", zap.Error(err))
		if msg := middleware.ValidationMessage(err); msg != "" {
			middleware.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	callerID, _ := middleware.GetUserID(r.Context())

	notification, err := h.notificationService.Create(r.Context(), req.Message, callerID)
	if err != nil {
		if err == service.ErrEmptyMessage {
			middleware.RespondWithError(w, http.StatusBadRequest, "message is required")
			return
		}
		h.logger.Error("Failed to create notification", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create notification")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, CreatedResponse{ID: notification.ID.String()})
}

// Delete removes a notification; a missing id still reports success
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.notificationService.Delete(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete notification", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete notification")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "notification deleted successfully",
	})
}
