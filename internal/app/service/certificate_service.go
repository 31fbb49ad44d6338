package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/app/repository"
	"github.com/ikkim/certificate-validator/internal/websocket"
	"github.com/ikkim/certificate-validator/pkg/clock"
	"github.com/ikkim/certificate-validator/pkg/logger"
	"github.com/ikkim/certificate-validator/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCertificateNotFound    = errors.New("certificate not found")
	ErrDuplicateCertificateID = errors.New("certificate id already exists")
	ErrInvalidCertificate     = errors.New("invalid certificate")
)

const (
	MessageCertificateNotFound = "Certificate not found in database"
	MessageCertificateDeleted  = "🗑️ Certificate deleted!"
)

var certificateIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{2,63}$`)

// 연도 허용 범위
const (
	minYearOfPassing   = 1900
	yearOfPassingAhead = 10
)

// CertificateInput is the admin form for adding or editing a certificate.
type CertificateInput struct {
	CertificateID string  `json:"certificate_id" binding:"required"`
	StudentName   string  `json:"student_name" binding:"required"`
	RollNumber    *string `json:"roll_number"`
	Course        string  `json:"course" binding:"required"`
	Institution   string  `json:"institution" binding:"required"`
	College       *string `json:"college"`
	YearOfPassing int     `json:"year_of_passing" binding:"required"`
	Grade         string  `json:"grade" binding:"required"`
	Type          string  `json:"type"`
}

// CertificateDetails is a stored certificate plus simulated ledger data.
type CertificateDetails struct {
	Certificate   *model.Certificate `json:"certificate"`
	BlockHash     string             `json:"block_hash"`
	TransactionID string             `json:"transaction_id"`
	Timestamp     time.Time          `json:"timestamp"`
}

type CertificateService interface {
	List() ([]model.Certificate, error)
	// Search filters by name, certificate id or institution and reports the
	// match count as a toast.
	Search(query string) ([]model.Certificate, error)
	Get(id uint) (*model.Certificate, error)
	Create(input CertificateInput) (*model.Certificate, error)
	Update(id uint, input CertificateInput) (*model.Certificate, error)
	Delete(id uint) error
	Details(certificateID string) (*CertificateDetails, error)
}

type certificateService struct {
	certRepo      repository.CertificateRepository
	notifications NotificationService
	rand          util.Rand
	clock         clock.Clock
	publisher     EventPublisher
}

func NewCertificateService(
	certRepo repository.CertificateRepository,
	notifications NotificationService,
	r util.Rand,
	clk clock.Clock,
	publisher EventPublisher,
) CertificateService {
	if r == nil {
		r = util.DefaultRand()
	}
	if clk == nil {
		clk = clock.New()
	}
	return &certificateService{
		certRepo:      certRepo,
		notifications: notifications,
		rand:          r,
		clock:         clk,
		publisher:     publisherOrNoop(publisher),
	}
}

func (s *certificateService) List() ([]model.Certificate, error) {
	return s.certRepo.FindAll()
}

func (s *certificateService) Search(query string) ([]model.Certificate, error) {
	all, err := s.certRepo.FindAll()
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Certificate, 0, len(all))
	for i := range all {
		if all[i].MatchesQuery(query) {
			filtered = append(filtered, all[i])
		}
	}

	logger.Debug("Certificates searched", map[string]interface{}{
		"query":   query,
		"matches": len(filtered),
	})
	s.notifications.Notify(fmt.Sprintf("Found %d certificates 🔍", len(filtered)), model.SeverityInfo)
	return filtered, nil
}

func (s *certificateService) Get(id uint) (*model.Certificate, error) {
	cert, err := s.certRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	return cert, nil
}

func (s *certificateService) Create(input CertificateInput) (*model.Certificate, error) {
	cert, err := s.validate(input, 0)
	if err != nil {
		return nil, err
	}

	if err := s.certRepo.Create(cert); err != nil {
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}

	logger.Info("Certificate created", map[string]interface{}{
		"id":             cert.ID,
		"certificate_id": cert.CertificateID,
	})
	s.publisher.Publish(websocket.EventDataChanged, map[string]interface{}{"certificate": cert})
	s.notifications.Notify(fmt.Sprintf("➕ Certificate for %s added!", cert.StudentName), model.SeveritySuccess)
	return cert, nil
}

func (s *certificateService) Update(id uint, input CertificateInput) (*model.Certificate, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	cert, err := s.validate(input, id)
	if err != nil {
		return nil, err
	}
	cert.ID = existing.ID
	cert.CreatedAt = existing.CreatedAt

	if err := s.certRepo.Update(cert); err != nil {
		return nil, fmt.Errorf("failed to update certificate: %w", err)
	}

	logger.Info("Certificate updated", map[string]interface{}{
		"id":             cert.ID,
		"certificate_id": cert.CertificateID,
	})
	s.publisher.Publish(websocket.EventDataChanged, map[string]interface{}{"certificate": cert})
	s.notifications.Notify(fmt.Sprintf("✏️ Certificate for %s updated!", cert.StudentName), model.SeveritySuccess)
	return cert, nil
}

func (s *certificateService) Delete(id uint) error {
	if err := s.certRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCertificateNotFound
		}
		return fmt.Errorf("failed to delete certificate: %w", err)
	}

	logger.Info("Certificate deleted", map[string]interface{}{
		"id": id,
	})
	s.publisher.Publish(websocket.EventDataChanged, map[string]interface{}{"deleted_id": id})
	s.notifications.Notify(MessageCertificateDeleted, model.SeveritySuccess)
	return nil
}

func (s *certificateService) Details(certificateID string) (*CertificateDetails, error) {
	cert, err := s.certRepo.FindByCertificateID(certificateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.notifications.Notify(MessageCertificateNotFound, model.SeverityError)
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}

	return &CertificateDetails{
		Certificate:   cert,
		BlockHash:     "0x" + util.RandomHex(s.rand, 32),
		TransactionID: "0x" + util.RandomHex(s.rand, 32),
		Timestamp:     s.clock.Now(),
	}, nil
}

// validate normalises input and checks it. excludeID skips the record being
// edited in the duplicate check.
func (s *certificateService) validate(input CertificateInput, excludeID uint) (*model.Certificate, error) {
	cert := &model.Certificate{
		CertificateID: strings.TrimSpace(input.CertificateID),
		StudentName:   strings.ToUpper(strings.TrimSpace(input.StudentName)),
		RollNumber:    trimOptional(input.RollNumber),
		Course:        strings.TrimSpace(input.Course),
		Institution:   strings.TrimSpace(input.Institution),
		College:       trimOptional(input.College),
		YearOfPassing: input.YearOfPassing,
		Grade:         strings.TrimSpace(input.Grade),
		Type:          strings.TrimSpace(input.Type),
	}

	switch {
	case !certificateIDPattern.MatchString(cert.CertificateID):
		return nil, fmt.Errorf("%w: certificate_id must be 3-64 letters, digits, '-' or '_'", ErrInvalidCertificate)
	case cert.StudentName == "":
		return nil, fmt.Errorf("%w: student_name is required", ErrInvalidCertificate)
	case cert.Course == "":
		return nil, fmt.Errorf("%w: course is required", ErrInvalidCertificate)
	case cert.Institution == "":
		return nil, fmt.Errorf("%w: institution is required", ErrInvalidCertificate)
	case cert.Grade == "":
		return nil, fmt.Errorf("%w: grade is required", ErrInvalidCertificate)
	}

	maxYear := s.clock.Now().Year() + yearOfPassingAhead
	if cert.YearOfPassing < minYearOfPassing || cert.YearOfPassing > maxYear {
		return nil, fmt.Errorf("%w: year_of_passing must be between %d and %d", ErrInvalidCertificate, minYearOfPassing, maxYear)
	}

	exists, err := s.certRepo.ExistsByCertificateID(cert.CertificateID, excludeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCertificateID, cert.CertificateID)
	}
	return cert, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
