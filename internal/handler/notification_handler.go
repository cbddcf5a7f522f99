package handler

import (
	"encoding/json"
	"net/http"

	"complaint-portal/internal/messaging"
	"complaint-portal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
	hub                 *messaging.SSEHub
}

func NewNotificationHandler(notificationService *service.NotificationService, hub *messaging.SSEHub) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, hub: hub}
}

func (h *NotificationHandler) List(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	resp, err := h.notificationService.List(c.Request.Context(), id.ID)
	if err != nil {
		respondError(c, err, "Failed to fetch notifications")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stream keeps an SSE connection open and forwards the caller's new
// notifications until the client goes away.
func (h *NotificationHandler) Stream(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	userID, err := uuid.Parse(id.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	client := h.hub.RegisterClient(userID)
	defer h.hub.UnregisterClient(client)

	c.SSEvent("connected", gin.H{"message": "SSE connection established"})
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			return
		case n, ok := <-client.Channel:
			if !ok {
				return
			}
			data, _ := json.Marshal(n)
			c.SSEvent("notification", string(data))
			c.Writer.Flush()
		}
	}
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	if err := h.notificationService.MarkAsRead(c.Request.Context(), id.ID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to update notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	if err := h.notificationService.MarkAllAsRead(c.Request.Context(), id.ID); err != nil {
		respondError(c, err, "Failed to update notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
