package controller

import (
	"net/http"
	"testing"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationController_Verify(t *testing.T) {
	tests := []struct {
		name       string
		data       model.ExtractedData
		wantStatus string
		wantClass  string
	}{
		{"verified", model.ExtractedData{StudentName: "kathleen white", CertificateID: "94052827560"}, "VERIFIED", "result-verified"},
		{"forged", model.ExtractedData{StudentName: "FAKE NAME", CertificateID: "1BG19C5098"}, "FORGED", "result-forged"},
		{"not found", model.ExtractedData{StudentName: "UNKNOWN PERSON", CertificateID: "FAKE1234"}, "NOT_FOUND", "result-not-found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupControllerTest(t)

			w := env.do(t, http.MethodPost, "/verifications", tt.data)

			require.Equal(t, http.StatusOK, w.Code)
			response := decode(t, w)
			assert.Equal(t, tt.wantStatus, response["result"].(map[string]interface{})["status"])
			card := response["view"].(map[string]interface{})["card"].(map[string]interface{})
			assert.Equal(t, tt.wantClass, card["class"])
		})
	}
}

func TestVerificationController_Verify_MissingFields(t *testing.T) {
	env := setupControllerTest(t)

	w := env.do(t, http.MethodPost, "/verifications", map[string]string{"student_name": "NO ID"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerificationController_RecentAndStats(t *testing.T) {
	env := setupControllerTest(t)

	w := env.do(t, http.MethodPost, "/verifications", model.ExtractedData{StudentName: "FAKE NAME", CertificateID: "1BG19C5098"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/verifications/recent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	recent := response["verifications"].([]interface{})
	require.NotEmpty(t, recent)
	assert.LessOrEqual(t, len(recent), model.MaxRecentVerifications)
	first := recent[0].(map[string]interface{})
	assert.Equal(t, "forged", first["status"])
	assert.Equal(t, "FAKE NAME", first["student_name"])

	w = env.do(t, http.MethodGet, "/verifications/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)["stats"].(map[string]interface{})
	assert.Equal(t, float64(1548), stats["total_verifications"])
	assert.Equal(t, float64(19), stats["fraud_detected"])
}
