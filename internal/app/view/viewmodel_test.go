package view

import (
	"testing"
	"time"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDashboard(t *testing.T) {
	stats := &model.VerificationStats{
		TotalVerifications:      1547,
		SuccessfulVerifications: 1405,
		FailedVerifications:     124,
		FraudDetected:           18,
	}
	stats.Recompute()
	recent := []model.RecentVerification{
		{StudentName: "UNKNOWN", CertificateID: "FAKE123", Status: "not_found", Institution: "Unknown",
			Timestamp: time.Date(2025, 9, 21, 14, 8, 45, 0, time.UTC)},
	}

	v := BuildDashboard(stats, recent)
	assert.Equal(t, "1,547", v.Stats.TotalVerifications)
	assert.Equal(t, "91%", v.Stats.SuccessRate)
	assert.Equal(t, "18", v.Stats.FraudDetected)
	assert.Equal(t, "1.2%", v.Stats.FraudRate)

	require.Len(t, v.Recent, 1)
	assert.Equal(t, "NOT FOUND", v.Recent[0].StatusLabel)
	assert.Equal(t, "not_found", v.Recent[0].StatusClass)
	assert.Equal(t, "9/21/2025, 2:08:45 PM", v.Recent[0].Timestamp)
	assert.Len(t, v.Trend.Labels, 9)
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "0", groupThousands(0))
	assert.Equal(t, "999", groupThousands(999))
	assert.Equal(t, "1,000", groupThousands(1000))
	assert.Equal(t, "1,234,567", groupThousands(1234567))
	assert.Equal(t, "-12,345", groupThousands(-12345))
}

func TestBuildAdminTableAndFilter(t *testing.T) {
	certs := []model.Certificate{
		{ID: 1, StudentName: "KATHLEEN WHITE", CertificateID: "94052827560", Institution: "Indiana State University"},
		{ID: 2, StudentName: "MICHAEL BROWN", CertificateID: "SU2023EE012", Institution: "Springfield University"},
		{ID: 3, StudentName: "AVERY DAVIS", CertificateID: "BA2026001", Institution: "Borcelle Academy"},
	}

	table := BuildAdminTable(certs)
	assert.Equal(t, 3, table.Count)
	assert.Equal(t, uint(2), table.Rows[1].ID)

	filtered := FilterCertificates(certs, "university")
	assert.Len(t, filtered, 2)
	assert.Len(t, FilterCertificates(certs, "su2023"), 1)
	assert.Len(t, certs, 3)
}

func TestBuildResultCard(t *testing.T) {
	tests := []struct {
		name   string
		result model.VerificationResult
		want   ResultCard
	}{
		{
			name: "verified",
			result: model.VerificationResult{
				Status: model.StatusVerified, Confidence: 97.345, Message: "ok",
				Certificate: &model.Certificate{StudentName: "MICHAEL BROWN"},
			},
			want: ResultCard{Class: "result-verified", Icon: "✅", Title: "Certificate VERIFIED", Message: "ok",
				Confidence: "97.3%", DatabaseMatch: "MICHAEL BROWN"},
		},
		{
			name: "forged",
			result: model.VerificationResult{
				Status: model.StatusForged, Confidence: 90, Message: "alert",
				Certificate: &model.Certificate{StudentName: "SHREYAS K"},
			},
			want: ResultCard{Class: "result-forged", Icon: "🚨", Title: "Certificate FORGED", Message: "alert",
				Confidence: "90.0%", DatabaseMatch: "SHREYAS K"},
		},
		{
			name:   "not found",
			result: model.VerificationResult{Status: model.StatusNotFound, Message: "missing"},
			want:   ResultCard{Class: "result-not-found", Icon: "❓", Title: "Certificate NOT FOUND", Message: "missing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildResultCard(&tt.result))
		})
	}
}

func TestBuildExtractedPanel(t *testing.T) {
	data := &model.ExtractedData{StudentName: "SHREYAS K", CertificateID: "1BG19C5098", RollNumber: model.StringPtr("1BG19C5098")}
	assert.Len(t, BuildExtractedPanel(data).Fields, 7)

	data.RollNumber = nil
	panel := BuildExtractedPanel(data)
	assert.Len(t, panel.Fields, 6)
	assert.Equal(t, "1BG19C5098", panel.CertificateID)
}

func TestBuildVerifyView(t *testing.T) {
	v := BuildVerifyView(model.UploadState{})
	assert.Nil(t, v.Result)

	v = BuildVerifyView(model.UploadState{Result: &model.VerificationResult{
		Status:    model.StatusNotFound,
		Extracted: &model.ExtractedData{StudentName: "UNKNOWN PERSON", CertificateID: "FAKE9999"},
	}})
	require.NotNil(t, v.Result)
	assert.Equal(t, "result-not-found", v.Result.Card.Class)
}

func TestBuildDetailModal(t *testing.T) {
	details := &service.CertificateDetails{
		Certificate:   &model.Certificate{StudentName: "SHREYAS K", CertificateID: "1BG19C5098", YearOfPassing: 2021, RollNumber: model.StringPtr("1BG19C5098")},
		BlockHash:     "0xabc",
		TransactionID: "0xdef",
		Timestamp:     time.Date(2025, 9, 21, 13, 45, 12, 0, time.UTC),
	}

	m := BuildDetailModal(details)
	assert.Len(t, m.Fields, 7)
	assert.Equal(t, Field{"Year", "2021"}, m.Fields[4])
	assert.Equal(t, []Field{
		{"Block Hash", "0xabc"},
		{"Transaction ID", "0xdef"},
		{"Timestamp", "9/21/2025, 1:45:12 PM"},
	}, m.Blockchain)
}

func TestBuildTabLinks(t *testing.T) {
	links := BuildTabLinks(model.TabAdmin)
	require.Len(t, links, 4)
	for _, l := range links {
		assert.Equal(t, l.Tab == model.TabAdmin, l.Active)
	}
}
