package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/app/repository"
	"github.com/ikkim/certificate-validator/internal/websocket"
	"github.com/ikkim/certificate-validator/pkg/clock"
	"github.com/ikkim/certificate-validator/pkg/logger"
	"github.com/ikkim/certificate-validator/pkg/util"
	"gorm.io/gorm"
)

const (
	MessageNotFound = "Certificate ID not found in database. This certificate may be fraudulent."
	MessageVerified = "Certificate successfully verified! All details match our database records."
	MessageForged   = "SECURITY ALERT: Certificate ID exists but student name does not match. This appears to be a forged certificate."
)

type VerificationService interface {
	// Classify compares extracted data with the stored record, if any.
	// It does not touch the store.
	Classify(extracted *model.ExtractedData, record *model.Certificate) *model.VerificationResult
	// Verify looks the certificate up, classifies it and records the outcome.
	Verify(ctx context.Context, extracted *model.ExtractedData) (*model.VerificationResult, error)
	GetStats() (*model.VerificationStats, error)
	ListRecent() ([]model.RecentVerification, error)
}

type verificationService struct {
	certRepo         repository.CertificateRepository
	verificationRepo repository.VerificationRepository
	rand             util.Rand
	clock            clock.Clock
	publisher        EventPublisher
}

func NewVerificationService(
	certRepo repository.CertificateRepository,
	verificationRepo repository.VerificationRepository,
	r util.Rand,
	clk clock.Clock,
	publisher EventPublisher,
) VerificationService {
	if r == nil {
		r = util.DefaultRand()
	}
	if clk == nil {
		clk = clock.New()
	}
	return &verificationService{
		certRepo:         certRepo,
		verificationRepo: verificationRepo,
		rand:             r,
		clock:            clk,
		publisher:        publisherOrNoop(publisher),
	}
}

func (s *verificationService) Classify(extracted *model.ExtractedData, record *model.Certificate) *model.VerificationResult {
	if record == nil {
		return &model.VerificationResult{
			Status:     model.StatusNotFound,
			Confidence: 0,
			Message:    MessageNotFound,
			Extracted:  extracted,
		}
	}

	if normalizeName(extracted.StudentName) == normalizeName(record.StudentName) {
		return &model.VerificationResult{
			Status:      model.StatusVerified,
			Confidence:  util.RandomFloat(s.rand, 95, 100),
			Message:     MessageVerified,
			Certificate: record,
			Extracted:   extracted,
		}
	}

	return &model.VerificationResult{
		Status:      model.StatusForged,
		Confidence:  util.RandomFloat(s.rand, 85, 95),
		Message:     MessageForged,
		Certificate: record,
		Extracted:   extracted,
	}
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToUpper(name))
}

func (s *verificationService) Verify(ctx context.Context, extracted *model.ExtractedData) (*model.VerificationResult, error) {
	if extracted == nil {
		return nil, fmt.Errorf("verify: %w", ErrInvalidCertificate)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record, err := s.certRepo.FindByCertificateID(extracted.CertificateID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up certificate: %w", err)
		}
		record = nil
	}

	result := s.Classify(extracted, record)

	entry := &model.RecentVerification{
		StudentName:   extracted.StudentName,
		CertificateID: extracted.CertificateID,
		Status:        result.Status.LogStatus(),
		Timestamp:     s.clock.Now(),
		Institution:   extracted.Institution,
	}
	stats, err := s.verificationRepo.Record(entry, result.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to record verification: %w", err)
	}

	logger.Info("Certificate verified", map[string]interface{}{
		"certificate_id": extracted.CertificateID,
		"status":         result.Status,
		"confidence":     result.Confidence,
		"total":          stats.TotalVerifications,
	})
	s.publisher.Publish(websocket.EventDataChanged, map[string]interface{}{
		"statistics": stats,
		"recent":     entry,
	})
	return result, nil
}

func (s *verificationService) GetStats() (*model.VerificationStats, error) {
	return s.verificationRepo.GetStats()
}

func (s *verificationService) ListRecent() ([]model.RecentVerification, error) {
	return s.verificationRepo.ListRecent(model.MaxRecentVerifications)
}
