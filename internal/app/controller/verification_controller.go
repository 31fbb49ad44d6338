package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/app/service"
	"github.com/ikkim/certificate-validator/internal/app/view"
	apperrors "github.com/ikkim/certificate-validator/internal/errors"
	"github.com/ikkim/certificate-validator/internal/middleware"
)

type VerificationController struct {
	verification service.VerificationService
}

func NewVerificationController(verification service.VerificationService) *VerificationController {
	return &VerificationController{verification: verification}
}

// Verify checks already extracted certificate data against the database
// POST /api/v1/verifications
func (ctrl *VerificationController) Verify(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req model.ExtractedData
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid verification request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "student_name and certificate_id are required")
		return
	}

	result, err := ctrl.verification.Verify(c.Request.Context(), &req)
	if err != nil {
		log.Error("Verification failed", err, map[string]interface{}{
			"certificate_id": req.CertificateID,
		})
		apperrors.ParseAndRespond(c, err, "verification")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"view":   view.BuildResultView(result),
	})
}

// GetRecent returns the recent verification log
// GET /api/v1/verifications/recent
func (ctrl *VerificationController) GetRecent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	recent, err := ctrl.verification.ListRecent()
	if err != nil {
		log.Error("Failed to fetch recent verifications", err, nil)
		apperrors.ParseAndRespond(c, err, "verification")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"verifications": recent,
		"count":         len(recent),
	})
}

// GetStats returns the verification counters
// GET /api/v1/verifications/stats
func (ctrl *VerificationController) GetStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.verification.GetStats()
	if err != nil {
		log.Error("Failed to fetch verification stats", err, nil)
		apperrors.ParseAndRespond(c, err, "verification")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}
