package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/app/service"
	apperrors "github.com/ikkim/certificate-validator/internal/errors"
	"github.com/ikkim/certificate-validator/internal/middleware"
)

// uploadFormField is the multipart field carrying the certificate scan.
const uploadFormField = "file"

type UploadController struct {
	uploads  service.UploadService
	maxBytes int64
}

func NewUploadController(uploads service.UploadService, maxBytes int64) *UploadController {
	if maxBytes <= 0 {
		maxBytes = service.DefaultMaxUploadBytes
	}
	return &UploadController{
		uploads:  uploads,
		maxBytes: maxBytes,
	}
}

// Submit starts processing an uploaded certificate
// POST /api/v1/uploads
func (ctrl *UploadController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	header, err := c.FormFile(uploadFormField)
	if err != nil {
		log.Warn("Upload without file", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Please select a file")
		return
	}

	doc := model.Document{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}

	// 크기 초과 파일은 본문을 읽지 않고 서비스에서 거절
	if header.Size <= ctrl.maxBytes {
		f, err := header.Open()
		if err != nil {
			log.Error("Failed to open uploaded file", err, map[string]interface{}{
				"filename": header.Filename,
			})
			apperrors.InternalError(c, "Failed to read uploaded file")
			return
		}
		defer f.Close()

		doc.Body, err = io.ReadAll(io.LimitReader(f, ctrl.maxBytes))
		if err != nil {
			log.Error("Failed to read uploaded file", err, map[string]interface{}{
				"filename": header.Filename,
			})
			apperrors.InternalError(c, "Failed to read uploaded file")
			return
		}
	}

	sessionID, err := ctrl.uploads.Submit(c.Request.Context(), doc)
	if err != nil {
		log.Warn("Upload rejected", map[string]interface{}{
			"filename":     doc.Filename,
			"content_type": doc.ContentType,
			"size":         doc.Size,
			"error":        err.Error(),
		})
		apperrors.ParseAndRespond(c, err, "upload")
		return
	}

	log.Info("Upload accepted", map[string]interface{}{
		"session_id": sessionID,
		"filename":   doc.Filename,
		"size":       doc.Size,
	})

	c.JSON(http.StatusAccepted, gin.H{
		"session_id": sessionID,
		"upload":     ctrl.uploads.State(),
	})
}

// Current returns the upload pipeline state
// GET /api/v1/uploads/current
func (ctrl *UploadController) Current(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"upload": ctrl.uploads.State(),
	})
}

// Reset clears the upload area
// DELETE /api/v1/uploads/current
func (ctrl *UploadController) Reset(c *gin.Context) {
	ctrl.uploads.Reset()
	c.JSON(http.StatusOK, gin.H{
		"upload": ctrl.uploads.State(),
	})
}
