package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/app/repository"
	"github.com/ikkim/certificate-validator/pkg/logger"
	"github.com/ikkim/certificate-validator/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidShareToken = errors.New("invalid share token")
)

const MessageQRGenerated = "📱 QR Code generated successfully!"

// ShareLink is the payload encoded into a certificate's QR code.
type ShareLink struct {
	CertificateID string    `json:"certificate_id"`
	Token         string    `json:"token"`
	URL           string    `json:"url"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type ShareOptions struct {
	Secret  string
	Expiry  time.Duration
	BaseURL string
}

type ShareService interface {
	CreateLink(certificateID string) (*ShareLink, error)
	Resolve(token string) (*CertificateDetails, error)
}

type shareService struct {
	opts          ShareOptions
	certRepo      repository.CertificateRepository
	certificates  CertificateService
	notifications NotificationService
}

func NewShareService(
	opts ShareOptions,
	certRepo repository.CertificateRepository,
	certificates CertificateService,
	notifications NotificationService,
) ShareService {
	if opts.Expiry <= 0 {
		opts.Expiry = 30 * 24 * time.Hour
	}
	return &shareService{
		opts:          opts,
		certRepo:      certRepo,
		certificates:  certificates,
		notifications: notifications,
	}
}

func (s *shareService) CreateLink(certificateID string) (*ShareLink, error) {
	if _, err := s.certRepo.FindByCertificateID(certificateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.notifications.Notify(MessageCertificateNotFound, model.SeverityError)
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}

	token, claims, err := util.GenerateShareToken(certificateID, s.opts.Secret, s.opts.Expiry)
	if err != nil {
		return nil, err
	}

	link := &ShareLink{
		CertificateID: certificateID,
		Token:         token,
		URL:           strings.TrimRight(s.opts.BaseURL, "/") + "/api/v1/share/" + url.PathEscape(token),
		ExpiresAt:     claims.ExpiresAt.Time,
	}

	logger.Info("Share link generated", map[string]interface{}{
		"certificate_id": certificateID,
		"expires_at":     link.ExpiresAt,
	})
	s.notifications.Notify(MessageQRGenerated, model.SeveritySuccess)
	return link, nil
}

func (s *shareService) Resolve(token string) (*CertificateDetails, error) {
	claims, err := util.ValidateToken(token, s.opts.Secret)
	if err != nil {
		logger.Warn("Share token rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrInvalidShareToken, err)
	}
	return s.certificates.Details(claims.CertificateID)
}
