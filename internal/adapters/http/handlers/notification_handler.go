package handlers

import (
	"lexcase/internal/core/services"
	"lexcase/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the signed in user's notifications
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items"
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, role := currentUser(c)
	items, err := h.notificationService.List(c.Context(), userID, role, c.QueryInt("limit"))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", items)
}

// UnreadCount returns the unread notification count
// @Summary Unread count
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/unread [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, role := currentUser(c)
	count, err := h.notificationService.UnreadCount(c.Context(), userID, role)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", fiber.Map{"unread": count})
}

// MarkRead marks one notification as read
// @Summary Mark notification read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Response
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid notification id")
	}

	userID, role := currentUser(c)
	if err := h.notificationService.MarkRead(c.Context(), id, userID, role); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Notification marked read", nil)
}

// MarkAllRead marks every notification as read
// @Summary Mark all read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, role := currentUser(c)
	if err := h.notificationService.MarkAllRead(c.Context(), userID, role); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "All notifications marked read", nil)
}
