package model

import (
	"math"
	"time"
)

// VerificationStatus is the outcome of matching an extraction against the store.
type VerificationStatus string

const (
	StatusVerified VerificationStatus = "VERIFIED"
	StatusForged   VerificationStatus = "FORGED"
	StatusNotFound VerificationStatus = "NOT_FOUND"
)

// LogStatus is the lower-case form stored in the recent verification log.
func (s VerificationStatus) LogStatus() string {
	switch s {
	case StatusVerified:
		return "verified"
	case StatusForged:
		return "forged"
	default:
		return "not_found"
	}
}

// VerificationResult is produced for every verification and never persisted.
type VerificationResult struct {
	Status      VerificationStatus `json:"status"`
	Confidence  float64            `json:"confidence"`
	Message     string             `json:"message"`
	Certificate *Certificate       `json:"certificate,omitempty"`
	Extracted   *ExtractedData     `json:"extracted_data"`
}

// RecentVerification is one entry of the bounded, most-recent-first log.
type RecentVerification struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	StudentName   string    `gorm:"type:varchar(128);not null" json:"student_name"`
	CertificateID string    `gorm:"type:varchar(64);not null;index" json:"certificate_id"`
	Status        string    `gorm:"type:varchar(20);not null" json:"status"`
	Timestamp     time.Time `gorm:"not null" json:"timestamp"`
	Institution   string    `gorm:"type:text" json:"institution"`
}

func (RecentVerification) TableName() string {
	return "recent_verifications"
}

// MaxRecentVerifications caps the recent verification log.
const MaxRecentVerifications = 10

// VerificationStats holds running counters. There is a single row.
type VerificationStats struct {
	ID                      uint      `gorm:"primarykey" json:"-"`
	UpdatedAt               time.Time `json:"-"`
	TotalVerifications      int64     `gorm:"not null;default:0" json:"total_verifications"`
	SuccessfulVerifications int64     `gorm:"not null;default:0" json:"successful_verifications"`
	FailedVerifications     int64     `gorm:"not null;default:0" json:"failed_verifications"`
	FraudDetected           int64     `gorm:"not null;default:0" json:"fraud_detected"`
	SuccessRate             float64   `gorm:"not null;default:0" json:"success_rate"`
	FraudRate               float64   `gorm:"not null;default:0" json:"fraud_rate"`
}

func (VerificationStats) TableName() string {
	return "verification_stats"
}

// StatsRowID is the primary key of the single stats row.
const StatsRowID = 1

// StatsColumn is the counter column an outcome increments.
func (s VerificationStatus) StatsColumn() string {
	switch s {
	case StatusVerified:
		return "successful_verifications"
	case StatusForged:
		return "fraud_detected"
	default:
		return "failed_verifications"
	}
}

// Apply counts one verification outcome and recomputes the rates.
func (s *VerificationStats) Apply(status VerificationStatus) {
	s.TotalVerifications++
	switch status {
	case StatusVerified:
		s.SuccessfulVerifications++
	case StatusForged:
		s.FraudDetected++
	default:
		s.FailedVerifications++
	}
	s.Recompute()
}

// Recompute derives success_rate as a whole percent and fraud_rate as a
// percent rounded to one decimal place.
func (s *VerificationStats) Recompute() {
	if s.TotalVerifications == 0 {
		s.SuccessRate, s.FraudRate = 0, 0
		return
	}
	total := float64(s.TotalVerifications)
	s.SuccessRate = math.Round(float64(s.SuccessfulVerifications) / total * 100)
	s.FraudRate = math.Round(float64(s.FraudDetected)/total*1000) / 10
}

// Consistent reports whether the outcome buckets add up to the total.
func (s *VerificationStats) Consistent() bool {
	return s.SuccessfulVerifications+s.FailedVerifications+s.FraudDetected == s.TotalVerifications
}
