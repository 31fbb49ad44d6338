package controller

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/certificate-validator/internal/app/service"
	"github.com/ikkim/certificate-validator/internal/app/view"
	apperrors "github.com/ikkim/certificate-validator/internal/errors"
	"github.com/ikkim/certificate-validator/internal/middleware"
)

type DashboardController struct {
	verification service.VerificationService
}

func NewDashboardController(verification service.VerificationService) *DashboardController {
	return &DashboardController{verification: verification}
}

// GetDashboard returns the statistics cards and recent verifications
// GET /api/v1/dashboard
func (ctrl *DashboardController) GetDashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	dashboard, err := dashboardView(ctrl.verification)
	if err != nil {
		log.Error("Failed to load dashboard", err, nil)
		apperrors.ParseAndRespond(c, err, "dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dashboard": dashboard,
	})
}

// Chart renders the verification trend chart
// GET /api/v1/dashboard/chart.png, /api/v1/dashboard/chart.svg
func (ctrl *DashboardController) Chart(format view.ChartFormat) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		var buf bytes.Buffer
		if err := view.RenderTrendChart(&buf, format, view.TrendSeries()); err != nil {
			log.Error("Failed to render chart", err, map[string]interface{}{
				"format": format,
			})
			apperrors.InternalError(c, "Failed to render chart")
			return
		}

		c.Header("Cache-Control", "no-cache")
		c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
	}
}
