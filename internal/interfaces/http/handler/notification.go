package handler

import (
	"github.com/gin-gonic/gin"
	notifapp "github.com/weshare/backend/internal/application/notification"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	BaseHandler
	notificationService *notifapp.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *notifapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the recipient's notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	recipientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	unreadOnly := c.Query("unread") == "true"

	list, err := h.notificationService.List(c.Request.Context(), recipientID, unreadOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// UnreadCount returns how many notifications the recipient has not read
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	recipientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), recipientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"unread_count": count})
}

// MarkRead marks a single notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	recipientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	notif, err := h.notificationService.MarkRead(c.Request.Context(), recipientID, notificationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notif)
}

// MarkAllRead marks every unread notification of the recipient as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	recipientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	changed, err := h.notificationService.MarkAllRead(c.Request.Context(), recipientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"marked_read": changed})
}

// Delete removes one of the recipient's notifications
func (h *NotificationHandler) Delete(c *gin.Context) {
	recipientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), recipientID, notificationID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
