package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/certificate-validator/internal/app/service"
	apperrors "github.com/ikkim/certificate-validator/internal/errors"
	"github.com/ikkim/certificate-validator/internal/middleware"
	"github.com/ikkim/certificate-validator/internal/websocket"
	"github.com/ikkim/certificate-validator/pkg/logger"
)

// 클라이언트 메시지 타입
const messageNavigate = "navigate"

type TabController struct {
	tabs service.TabService
}

func NewTabController(tabs service.TabService) *TabController {
	return &TabController{tabs: tabs}
}

// Activate switches to a tab and returns its content
// POST /api/v1/tabs/:tab
func (ctrl *TabController) Activate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tab := c.Param("tab")
	tabView, err := ctrl.tabs.Activate(c.Request.Context(), tab)
	if err != nil {
		log.Warn("Tab activation failed", map[string]interface{}{
			"tab":   tab,
			"error": err.Error(),
		})
		apperrors.ParseAndRespond(c, err, "tab")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tab": tabView,
	})
}

// Current returns the active tab
// GET /api/v1/tabs/current
func (ctrl *TabController) Current(c *gin.Context) {
	current := ctrl.tabs.Current()
	c.JSON(http.StatusOK, gin.H{
		"tab":   current,
		"label": current.Label(),
	})
}

// HandleSocketMessage lets browsers switch tabs over the websocket.
func (ctrl *TabController) HandleSocketMessage(client *websocket.Client, msg websocket.ClientMessage) {
	if msg.Type != messageNavigate {
		logger.Warn("Unknown websocket message type", map[string]interface{}{
			"client_id": client.ID,
			"type":      msg.Type,
		})
		return
	}

	// errors are logged by the tab service
	_, _ = ctrl.tabs.Activate(context.Background(), msg.Tab)
}
