package service

import (
	"context"
	"testing"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/websocket"
	"github.com/ikkim/certificate-validator/pkg/clock"
	"github.com/ikkim/certificate-validator/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupVerificationServiceTest(t *testing.T) (VerificationService, testRepos, *recordingPublisher) {
	repos := setupSeededRepos(t)
	pub := &recordingPublisher{}
	svc := NewVerificationService(repos.certificates, repos.verification, util.NewRand(1), clock.NewFake(testStart), pub)
	return svc, repos, pub
}

func TestVerificationService_Classify(t *testing.T) {
	svc, _, _ := setupVerificationServiceTest(t)
	record := &model.Certificate{CertificateID: "1BG19C5098", StudentName: "SHREYAS K"}

	t.Run("not found", func(t *testing.T) {
		result := svc.Classify(&model.ExtractedData{StudentName: "X", CertificateID: "NOPE"}, nil)
		assert.Equal(t, model.StatusNotFound, result.Status)
		assert.Equal(t, 0.0, result.Confidence)
		assert.Equal(t, MessageNotFound, result.Message)
		assert.Nil(t, result.Certificate)
	})

	t.Run("verified ignores case and padding", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			result := svc.Classify(&model.ExtractedData{StudentName: "  shreyas k ", CertificateID: "1BG19C5098"}, record)
			assert.Equal(t, model.StatusVerified, result.Status)
			assert.GreaterOrEqual(t, result.Confidence, 95.0)
			assert.Less(t, result.Confidence, 100.0)
			assert.Equal(t, record, result.Certificate)
		}
	})

	t.Run("forged", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			result := svc.Classify(&model.ExtractedData{StudentName: "FAKE NAME", CertificateID: "1BG19C5098"}, record)
			assert.Equal(t, model.StatusForged, result.Status)
			assert.GreaterOrEqual(t, result.Confidence, 85.0)
			assert.Less(t, result.Confidence, 95.0)
			assert.Equal(t, MessageForged, result.Message)
		}
	})
}

func TestVerificationService_Verify(t *testing.T) {
	tests := []struct {
		name      string
		extracted model.ExtractedData
		status    model.VerificationStatus
		logStatus string
		bucket    func(s *model.VerificationStats) int64
	}{
		{
			name:      "verified",
			extracted: model.ExtractedData{StudentName: "KATHLEEN WHITE", CertificateID: "94052827560", Institution: "Indiana State University Faculty of Journalism"},
			status:    model.StatusVerified,
			logStatus: "verified",
			bucket:    func(s *model.VerificationStats) int64 { return s.SuccessfulVerifications },
		},
		{
			name:      "forged",
			extracted: model.ExtractedData{StudentName: "FAKE NAME", CertificateID: "1BG19C5098"},
			status:    model.StatusForged,
			logStatus: "forged",
			bucket:    func(s *model.VerificationStats) int64 { return s.FraudDetected },
		},
		{
			name:      "not found",
			extracted: model.ExtractedData{StudentName: "UNKNOWN PERSON", CertificateID: "FAKE42", Institution: "Unknown University"},
			status:    model.StatusNotFound,
			logStatus: "not_found",
			bucket:    func(s *model.VerificationStats) int64 { return s.FailedVerifications },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, pub := setupVerificationServiceTest(t)

			before, err := svc.GetStats()
			require.NoError(t, err)

			result, err := svc.Verify(context.Background(), &tt.extracted)
			require.NoError(t, err)
			assert.Equal(t, tt.status, result.Status)

			after, err := svc.GetStats()
			require.NoError(t, err)
			assert.Equal(t, before.TotalVerifications+1, after.TotalVerifications)
			assert.Equal(t, tt.bucket(before)+1, tt.bucket(after))
			assert.True(t, after.Consistent())

			recent, err := svc.ListRecent()
			require.NoError(t, err)
			require.Len(t, recent, 7)
			assert.Equal(t, tt.extracted.CertificateID, recent[0].CertificateID)
			assert.Equal(t, tt.logStatus, recent[0].Status)
			// the log keeps what was read off the document, even when empty
			assert.Equal(t, tt.extracted.Institution, recent[0].Institution)
			assert.True(t, testStart.Equal(recent[0].Timestamp))

			assert.Equal(t, 1, pub.Count(websocket.EventDataChanged))
		})
	}
}

func TestVerificationService_RecentLogIsCapped(t *testing.T) {
	svc, _, _ := setupVerificationServiceTest(t)

	for i := 0; i < 8; i++ {
		_, err := svc.Verify(context.Background(), &model.ExtractedData{StudentName: "AVERY DAVIS", CertificateID: "BA2026001"})
		require.NoError(t, err)
	}

	recent, err := svc.ListRecent()
	require.NoError(t, err)
	assert.Len(t, recent, model.MaxRecentVerifications)

	stats, err := svc.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1555), stats.TotalVerifications)
	assert.True(t, stats.Consistent())
}

func TestVerificationService_VerifyNil(t *testing.T) {
	svc, _, _ := setupVerificationServiceTest(t)

	_, err := svc.Verify(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidCertificate)
}
