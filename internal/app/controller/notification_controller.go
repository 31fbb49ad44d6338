package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/certificate-validator/internal/app/service"
	apperrors "github.com/ikkim/certificate-validator/internal/errors"
	"github.com/ikkim/certificate-validator/internal/middleware"
	"github.com/ikkim/certificate-validator/internal/websocket"
)

// NotificationController 알림 컨트롤러
type NotificationController struct {
	service service.NotificationService
	hub     *websocket.Hub
}

// NewNotificationController 알림 컨트롤러 생성자
func NewNotificationController(service service.NotificationService, hub *websocket.Hub) *NotificationController {
	return &NotificationController{
		service: service,
		hub:     hub,
	}
}

// GetNotifications returns the visible toasts, oldest first
// GET /api/v1/notifications
func (ctrl *NotificationController) GetNotifications(c *gin.Context) {
	toasts := ctrl.service.Visible()
	c.JSON(http.StatusOK, gin.H{
		"notifications": toasts,
		"count":         len(toasts),
	})
}

// DismissNotification closes a toast before it expires
// DELETE /api/v1/notifications/:id
func (ctrl *NotificationController) DismissNotification(c *gin.Context) {
	if !ctrl.service.Dismiss(c.Param("id")) {
		apperrors.NotFound(c, apperrors.NotificationNotFound, "Notification not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// Stream upgrades to a websocket that receives every toast, progress and tab event
// GET /ws
func (ctrl *NotificationController) Stream(c *gin.Context) {
	if err := websocket.Serve(ctrl.hub, c.Writer, c.Request); err != nil {
		// upgrader가 이미 에러 응답을 씀
		middleware.GetLoggerFromContext(c).Warn("WebSocket upgrade failed", map[string]interface{}{
			"origin": c.GetHeader("Origin"),
			"error":  err.Error(),
		})
	}
}
