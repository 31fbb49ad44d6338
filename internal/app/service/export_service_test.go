package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ikkim/certificate-validator/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type memoryBackupStore struct {
	objects map[string][]byte
	err     error
}

func (m *memoryBackupStore) Put(_ context.Context, key string, body []byte, _ string) error {
	if m.err != nil {
		return m.err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = body
	return nil
}

func setupExportServiceTest(t *testing.T, backups BackupStore) (ExportService, NotificationService) {
	repos := setupSeededRepos(t)
	notifications, _ := newTestNotifications(nil)
	return NewExportService(repos.certificates, repos.verification, notifications, backups, clock.NewFake(testStart)), notifications
}

func TestExportService_ExportJSON(t *testing.T) {
	svc, notifications := setupExportServiceTest(t, nil)

	file, err := svc.ExportJSON()
	require.NoError(t, err)
	assert.Equal(t, "certificate_database_2025-09-21.json", file.Filename)
	assert.Equal(t, ContentTypeJSON, file.ContentType)
	assert.Equal(t, []string{MessageExported}, toastMessages(notifications))

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(file.Body, &doc))
	assert.Contains(t, doc, "certificates")
	assert.Contains(t, doc, "statistics")
	assert.Contains(t, doc, "recent_verifications")
	assert.Contains(t, doc, "export_timestamp")

	var decoded ExportDocument
	require.NoError(t, json.Unmarshal(file.Body, &decoded))
	assert.Len(t, decoded.Certificates, 14)
	assert.Len(t, decoded.RecentVerifications, 6)
	assert.Equal(t, int64(1547), decoded.Statistics.TotalVerifications)
	assert.True(t, testStart.Equal(decoded.ExportTimestamp))
}

func TestExportService_ExportXLSX(t *testing.T) {
	svc, notifications := setupExportServiceTest(t, nil)

	file, err := svc.ExportXLSX()
	require.NoError(t, err)
	assert.Equal(t, "certificate_database_2025-09-21.xlsx", file.Filename)
	assert.Equal(t, []string{MessageExported}, toastMessages(notifications))

	wb, err := excelize.OpenReader(bytes.NewReader(file.Body))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(SheetCertificates)
	require.NoError(t, err)
	require.Len(t, rows, 15)
	assert.Equal(t, CertificateColumns, rows[0])
	assert.Equal(t, "HS2024MA", rows[1][0])

	stats, err := wb.GetRows(SheetStatistics)
	require.NoError(t, err)
	assert.Equal(t, []string{"total_verifications", "1547"}, stats[1])

	recent, err := wb.GetRows(SheetRecent)
	require.NoError(t, err)
	assert.Len(t, recent, 7)
}

func TestExportService_Backup(t *testing.T) {
	store := &memoryBackupStore{}
	svc, notifications := setupExportServiceTest(t, store)

	key, err := svc.Backup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "backups/certificate_database_2025-09-21.json", key)
	assert.NotEmpty(t, store.objects[key])
	assert.Empty(t, notifications.Visible())
}

func TestExportService_BackupFailure(t *testing.T) {
	svc, _ := setupExportServiceTest(t, &memoryBackupStore{err: errors.New("bucket unavailable")})

	_, err := svc.Backup(context.Background())
	assert.Error(t, err)
}
