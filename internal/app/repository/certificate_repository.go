package repository

import (
	"errors"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/pkg/logger"
	"gorm.io/gorm"
)

type CertificateRepository interface {
	Create(certificate *model.Certificate) error
	FindAll() ([]model.Certificate, error)
	FindByID(id uint) (*model.Certificate, error)
	FindByCertificateID(certificateID string) (*model.Certificate, error)
	ExistsByCertificateID(certificateID string, excludeID uint) (bool, error)
	Update(certificate *model.Certificate) error
	Delete(id uint) error
	Count() (int64, error)
}

type certificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

func (r *certificateRepository) Create(certificate *model.Certificate) error {
	if err := r.db.Create(certificate).Error; err != nil {
		logger.Error("Failed to create certificate in database", err, map[string]interface{}{
			"certificate_id": certificate.CertificateID,
			"student_name":   certificate.StudentName,
		})
		return err
	}

	logger.Debug("Certificate created in database", map[string]interface{}{
		"id":             certificate.ID,
		"certificate_id": certificate.CertificateID,
	})
	return nil
}

// FindAll returns every certificate in admin-table order.
func (r *certificateRepository) FindAll() ([]model.Certificate, error) {
	var certificates []model.Certificate
	if err := r.db.Order("id ASC").Find(&certificates).Error; err != nil {
		logger.Error("Failed to list certificates", err)
		return nil, err
	}
	return certificates, nil
}

func (r *certificateRepository) FindByID(id uint) (*model.Certificate, error) {
	var certificate model.Certificate
	if err := r.db.First(&certificate, id).Error; err != nil {
		return nil, err
	}
	return &certificate, nil
}

// FindByCertificateID looks a certificate up by exact, case-sensitive id.
func (r *certificateRepository) FindByCertificateID(certificateID string) (*model.Certificate, error) {
	var certificate model.Certificate
	err := r.db.Where("certificate_id = ?", certificateID).First(&certificate).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to look up certificate", err, map[string]interface{}{
				"certificate_id": certificateID,
			})
		}
		return nil, err
	}
	return &certificate, nil
}

func (r *certificateRepository) ExistsByCertificateID(certificateID string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Certificate{}).Where("certificate_id = ?", certificateID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *certificateRepository) Update(certificate *model.Certificate) error {
	if err := r.db.Save(certificate).Error; err != nil {
		logger.Error("Failed to update certificate in database", err, map[string]interface{}{
			"id": certificate.ID,
		})
		return err
	}
	return nil
}

func (r *certificateRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Certificate{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete certificate", result.Error, map[string]interface{}{
			"id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *certificateRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Certificate{}).Count(&count).Error
	return count, err
}
