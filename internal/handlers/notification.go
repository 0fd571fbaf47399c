package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orquestra-app/orquestra/backend/internal/middleware"
	"github.com/orquestra-app/orquestra/backend/internal/services"
	"github.com/orquestra-app/orquestra/backend/pkg/response"
)

// NotificationHandler exposes the caller's in-app notifications.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's notifications; ?unread=true filters to unread
// GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notificationService.List(middleware.GetUserID(c), unreadOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, notifications)
}

// MarkRead flags one notification as read
// POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}

	if err := h.notificationService.MarkRead(middleware.GetUserID(c), uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "notification marked as read"})
}

// UnreadCount returns the caller's unread notification count
// GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"count": count})
}
