package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/app/repository"
	"github.com/ikkim/certificate-validator/pkg/clock"
	"github.com/ikkim/certificate-validator/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const MessageExported = "📊 Database exported successfully!"

const (
	ContentTypeJSON = "application/json"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Sheet names and the certificate column order of the XLSX export. The seed
// command reads the same layout back.
const (
	SheetCertificates = "Certificates"
	SheetStatistics   = "Statistics"
	SheetRecent       = "Recent Verifications"
)

var CertificateColumns = []string{
	"certificate_id", "student_name", "roll_number", "course", "institution",
	"college", "year_of_passing", "grade", "type",
}

// ExportDocument is the full database dump.
type ExportDocument struct {
	Certificates        []model.Certificate        `json:"certificates"`
	Statistics          *model.VerificationStats   `json:"statistics"`
	RecentVerifications []model.RecentVerification `json:"recent_verifications"`
	ExportTimestamp     time.Time                  `json:"export_timestamp"`
}

// ExportFile is a downloadable attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// BackupStore receives scheduled export backups.
type BackupStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

type ExportService interface {
	Snapshot() (*ExportDocument, error)
	ExportJSON() (*ExportFile, error)
	ExportXLSX() (*ExportFile, error)
	// Backup writes a JSON export to the backup store and returns its key.
	Backup(ctx context.Context) (string, error)
}

type exportService struct {
	certRepo         repository.CertificateRepository
	verificationRepo repository.VerificationRepository
	notifications    NotificationService
	backups          BackupStore
	clock            clock.Clock
}

func NewExportService(
	certRepo repository.CertificateRepository,
	verificationRepo repository.VerificationRepository,
	notifications NotificationService,
	backups BackupStore,
	clk clock.Clock,
) ExportService {
	if clk == nil {
		clk = clock.New()
	}
	return &exportService{
		certRepo:         certRepo,
		verificationRepo: verificationRepo,
		notifications:    notifications,
		backups:          backups,
		clock:            clk,
	}
}

func (s *exportService) Snapshot() (*ExportDocument, error) {
	certs, err := s.certRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load certificates: %w", err)
	}
	stats, err := s.verificationRepo.GetStats()
	if err != nil {
		return nil, fmt.Errorf("failed to load statistics: %w", err)
	}
	recent, err := s.verificationRepo.ListRecent(model.MaxRecentVerifications)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent verifications: %w", err)
	}

	return &ExportDocument{
		Certificates:        certs,
		Statistics:          stats,
		RecentVerifications: recent,
		ExportTimestamp:     s.clock.Now().UTC(),
	}, nil
}

func (s *exportService) filename(ext string) string {
	return fmt.Sprintf("certificate_database_%s.%s", s.clock.Now().UTC().Format("2006-01-02"), ext)
}

func (s *exportService) marshalJSON() (*ExportFile, error) {
	doc, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return &ExportFile{Filename: s.filename("json"), ContentType: ContentTypeJSON, Body: body}, nil
}

func (s *exportService) ExportJSON() (*ExportFile, error) {
	file, err := s.marshalJSON()
	if err != nil {
		logger.Error("Failed to export database", err)
		return nil, err
	}

	logger.Info("Database exported", map[string]interface{}{
		"format": "json",
		"bytes":  len(file.Body),
	})
	s.notifications.Notify(MessageExported, model.SeveritySuccess)
	return file, nil
}

func (s *exportService) ExportXLSX() (*ExportFile, error) {
	doc, err := s.Snapshot()
	if err != nil {
		logger.Error("Failed to export database", err)
		return nil, err
	}

	body, err := buildWorkbook(doc)
	if err != nil {
		logger.Error("Failed to build workbook", err)
		return nil, err
	}

	logger.Info("Database exported", map[string]interface{}{
		"format": "xlsx",
		"bytes":  len(body),
	})
	s.notifications.Notify(MessageExported, model.SeveritySuccess)
	return &ExportFile{Filename: s.filename("xlsx"), ContentType: ContentTypeXLSX, Body: body}, nil
}

func buildWorkbook(doc *ExportDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCertificates); err != nil {
		return nil, err
	}
	header := make([]interface{}, len(CertificateColumns))
	for i, col := range CertificateColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetCertificates, "A1", &header); err != nil {
		return nil, err
	}
	for i, c := range doc.Certificates {
		row := []interface{}{
			c.CertificateID, c.StudentName, derefString(c.RollNumber), c.Course, c.Institution,
			derefString(c.College), c.YearOfPassing, c.Grade, c.Type,
		}
		if err := f.SetSheetRow(SheetCertificates, cellName(1, i+2), &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(SheetStatistics); err != nil {
		return nil, err
	}
	stats := doc.Statistics
	statRows := [][]interface{}{
		{"metric", "value"},
		{"total_verifications", stats.TotalVerifications},
		{"successful_verifications", stats.SuccessfulVerifications},
		{"failed_verifications", stats.FailedVerifications},
		{"fraud_detected", stats.FraudDetected},
		{"success_rate", stats.SuccessRate},
		{"fraud_rate", stats.FraudRate},
		{"export_timestamp", doc.ExportTimestamp.Format(time.RFC3339)},
	}
	for i := range statRows {
		if err := f.SetSheetRow(SheetStatistics, cellName(1, i+1), &statRows[i]); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(SheetRecent); err != nil {
		return nil, err
	}
	recentHeader := []interface{}{"student_name", "certificate_id", "status", "timestamp", "institution"}
	if err := f.SetSheetRow(SheetRecent, "A1", &recentHeader); err != nil {
		return nil, err
	}
	for i, r := range doc.RecentVerifications {
		row := []interface{}{r.StudentName, r.CertificateID, r.Status, r.Timestamp.Format("2006-01-02 15:04:05"), r.Institution}
		if err := f.SetSheetRow(SheetRecent, cellName(1, i+2), &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "A" + strconv.Itoa(row)
	}
	return name
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *exportService) Backup(ctx context.Context) (string, error) {
	if s.backups == nil {
		return "", nil
	}

	file, err := s.marshalJSON()
	if err != nil {
		return "", err
	}

	key := "backups/" + file.Filename
	if err := s.backups.Put(ctx, key, file.Body, file.ContentType); err != nil {
		logger.Error("Failed to upload export backup", err, map[string]interface{}{
			"key": key,
		})
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}

	logger.Info("Export backup uploaded", map[string]interface{}{
		"key":   key,
		"bytes": len(file.Body),
	})
	return key, nil
}
