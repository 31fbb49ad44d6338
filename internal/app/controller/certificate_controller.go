package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/app/service"
	"github.com/ikkim/certificate-validator/internal/app/view"
	apperrors "github.com/ikkim/certificate-validator/internal/errors"
	"github.com/ikkim/certificate-validator/internal/middleware"
)

type CertificateController struct {
	certificates service.CertificateService
	share        service.ShareService
}

func NewCertificateController(certificates service.CertificateService, share service.ShareService) *CertificateController {
	return &CertificateController{
		certificates: certificates,
		share:        share,
	}
}

// ListCertificates returns the admin table, filtered when q is present
// GET /api/v1/certificates?q=
func (ctrl *CertificateController) ListCertificates(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	query := strings.TrimSpace(c.Query("q"))

	var (
		certs []model.Certificate
		err   error
	)
	if query != "" {
		certs, err = ctrl.certificates.Search(query)
	} else {
		certs, err = ctrl.certificates.List()
	}
	if err != nil {
		log.Error("Failed to fetch certificates", err, map[string]interface{}{
			"query": query,
		})
		apperrors.ParseAndRespond(c, err, "certificate")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"certificates": certs,
		"count":        len(certs),
		"query":        query,
	})
}

// CreateCertificate adds a certificate
// POST /api/v1/certificates
func (ctrl *CertificateController) CreateCertificate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.CertificateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid certificate creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	cert, err := ctrl.certificates.Create(req)
	if err != nil {
		log.Warn("Failed to create certificate", map[string]interface{}{
			"certificate_id": req.CertificateID,
			"error":          err.Error(),
		})
		apperrors.ParseAndRespond(c, err, "create certificate")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"certificate": cert,
	})
}

// UpdateCertificate edits a certificate by row id
// PUT /api/v1/certificates/:id
func (ctrl *CertificateController) UpdateCertificate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseRowID(c)
	if !ok {
		return
	}

	var req service.CertificateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid certificate update request", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	cert, err := ctrl.certificates.Update(id, req)
	if err != nil {
		log.Warn("Failed to update certificate", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		apperrors.ParseAndRespond(c, err, "update certificate")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"certificate": cert,
	})
}

// DeleteCertificate removes a certificate by row id
// DELETE /api/v1/certificates/:id
func (ctrl *CertificateController) DeleteCertificate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseRowID(c)
	if !ok {
		return
	}

	if err := ctrl.certificates.Delete(id); err != nil {
		log.Warn("Failed to delete certificate", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		apperrors.ParseAndRespond(c, err, "delete certificate")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": service.MessageCertificateDeleted,
	})
}

// GetDetails returns the detail modal for a certificate id
// GET /api/v1/certificates/:id/details
func (ctrl *CertificateController) GetDetails(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	certificateID := c.Param("id")
	details, err := ctrl.certificates.Details(certificateID)
	if err != nil {
		log.Warn("Certificate details unavailable", map[string]interface{}{
			"certificate_id": certificateID,
			"error":          err.Error(),
		})
		apperrors.ParseAndRespond(c, err, "certificate")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"details": details,
		"modal":   view.BuildDetailModal(details),
	})
}

// GenerateQR issues a signed share link for a certificate id
// POST /api/v1/certificates/:id/qr
func (ctrl *CertificateController) GenerateQR(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	certificateID := c.Param("id")
	link, err := ctrl.share.CreateLink(certificateID)
	if err != nil {
		log.Warn("Failed to generate share link", map[string]interface{}{
			"certificate_id": certificateID,
			"error":          err.Error(),
		})
		apperrors.ParseAndRespond(c, err, "certificate")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"share": link,
	})
}

// ResolveShare opens a shared verification link
// GET /api/v1/share/:token
func (ctrl *CertificateController) ResolveShare(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	details, err := ctrl.share.Resolve(c.Param("token"))
	if err != nil {
		log.Warn("Failed to resolve share link", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.ParseAndRespond(c, err, "certificate")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"details": details,
		"modal":   view.BuildDetailModal(details),
	})
}

func parseRowID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		middleware.GetLoggerFromContext(c).Warn("Invalid certificate row ID", map[string]interface{}{
			"id": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid certificate ID")
		return 0, false
	}
	return uint(id), true
}
