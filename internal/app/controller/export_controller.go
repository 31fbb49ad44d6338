package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/certificate-validator/internal/app/service"
	apperrors "github.com/ikkim/certificate-validator/internal/errors"
	"github.com/ikkim/certificate-validator/internal/middleware"
)

type ExportController struct {
	exports service.ExportService
}

func NewExportController(exports service.ExportService) *ExportController {
	return &ExportController{exports: exports}
}

// ExportJSON downloads the database as JSON
// GET /api/v1/admin/export
func (ctrl *ExportController) ExportJSON(c *gin.Context) {
	ctrl.download(c, ctrl.exports.ExportJSON)
}

// ExportXLSX downloads the database as a spreadsheet
// GET /api/v1/admin/export.xlsx
func (ctrl *ExportController) ExportXLSX(c *gin.Context) {
	ctrl.download(c, ctrl.exports.ExportXLSX)
}

func (ctrl *ExportController) download(c *gin.Context, export func() (*service.ExportFile, error)) {
	log := middleware.GetLoggerFromContext(c)

	file, err := export()
	if err != nil {
		log.Error("Failed to export database", err, nil)
		apperrors.ParseAndRespond(c, err, "export")
		return
	}

	log.Info("Database exported", map[string]interface{}{
		"filename": file.Filename,
		"bytes":    len(file.Body),
	})

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

// Backup writes a JSON export to object storage on demand
// POST /api/v1/admin/backup
func (ctrl *ExportController) Backup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	key, err := ctrl.exports.Backup(c.Request.Context())
	if err != nil {
		log.Error("Failed to back up database", err, nil)
		apperrors.ParseAndRespond(c, err, "backup")
		return
	}
	if key == "" {
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.InternalStorageError, "Backup storage is not configured")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key": key,
	})
}
