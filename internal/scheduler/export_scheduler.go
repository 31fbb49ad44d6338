package scheduler

import (
	"context"
	"time"

	"github.com/ikkim/certificate-validator/internal/app/service"
	"github.com/ikkim/certificate-validator/pkg/logger"
	"github.com/robfig/cron/v3"
)

const backupTimeout = time.Minute

// ExportScheduler 데이터베이스 백업 스케줄러
type ExportScheduler struct {
	cron          *cron.Cron
	spec          string
	exportService service.ExportService
}

// NewExportScheduler 백업 스케줄러 생성
func NewExportScheduler(spec string, exportService service.ExportService) *ExportScheduler {
	return &ExportScheduler{
		cron:          cron.New(),
		spec:          spec,
		exportService: exportService,
	}
}

// Start 스케줄러 시작
func (s *ExportScheduler) Start() error {
	// 기본값 "0 2 * * *" = 매일 2시 0분
	_, err := s.cron.AddFunc(s.spec, s.RunBackup)
	if err != nil {
		logger.Error("Failed to add cron job for export backup", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Export scheduler started successfully", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// RunBackup uploads one JSON export.
func (s *ExportScheduler) RunBackup() {
	logger.Info("Starting scheduled export backup")

	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	key, err := s.exportService.Backup(ctx)
	if err != nil {
		logger.Error("Failed to run export backup from scheduler", err)
		return
	}

	logger.Info("Successfully ran export backup from scheduler", map[string]interface{}{
		"key": key,
	})
}

// Stop 스케줄러 중지
func (s *ExportScheduler) Stop() {
	logger.Info("Stopping export scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Export scheduler stopped")
}
