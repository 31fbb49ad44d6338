package repository

import (
	"errors"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VerificationRepository owns the statistics row and the recent verification log.
type VerificationRepository interface {
	GetStats() (*model.VerificationStats, error)
	SaveStats(stats *model.VerificationStats) error
	ListRecent(limit int) ([]model.RecentVerification, error)
	AppendRecent(entry *model.RecentVerification) error
	// Record applies status to the stats and prepends entry to the log,
	// trimming it to MaxRecentVerifications, in one transaction.
	Record(entry *model.RecentVerification, status model.VerificationStatus) (*model.VerificationStats, error)
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) GetStats() (*model.VerificationStats, error) {
	return loadStats(r.db)
}

func loadStats(db *gorm.DB) (*model.VerificationStats, error) {
	var stats model.VerificationStats
	err := db.First(&stats, model.StatsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.VerificationStats{ID: model.StatsRowID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *verificationRepository) SaveStats(stats *model.VerificationStats) error {
	stats.ID = model.StatsRowID
	return r.db.Save(stats).Error
}

// ListRecent returns the log most recent first.
func (r *verificationRepository) ListRecent(limit int) ([]model.RecentVerification, error) {
	if limit <= 0 || limit > model.MaxRecentVerifications {
		limit = model.MaxRecentVerifications
	}
	var entries []model.RecentVerification
	if err := r.db.Order("id DESC").Limit(limit).Find(&entries).Error; err != nil {
		logger.Error("Failed to list recent verifications", err)
		return nil, err
	}
	return entries, nil
}

func (r *verificationRepository) AppendRecent(entry *model.RecentVerification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return trimRecent(tx)
	})
}

func (r *verificationRepository) Record(entry *model.RecentVerification, status model.VerificationStatus) (*model.VerificationStats, error) {
	var stats *model.VerificationStats
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.VerificationStats{ID: model.StatsRowID}).Error; err != nil {
			return err
		}

		// 카운터는 DB에서 증가: 동시 검증끼리 덮어쓰지 않음
		column := status.StatsColumn()
		if err := tx.Model(&model.VerificationStats{}).
			Where("id = ?", model.StatsRowID).
			UpdateColumns(map[string]interface{}{
				"total_verifications": gorm.Expr("total_verifications + ?", 1),
				column:                gorm.Expr(column+" + ?", 1),
			}).Error; err != nil {
			return err
		}

		current, err := loadStats(tx)
		if err != nil {
			return err
		}
		current.Recompute()
		if err := tx.Model(&model.VerificationStats{}).
			Where("id = ?", model.StatsRowID).
			Updates(map[string]interface{}{
				"success_rate": current.SuccessRate,
				"fraud_rate":   current.FraudRate,
			}).Error; err != nil {
			return err
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		if err := trimRecent(tx); err != nil {
			return err
		}
		stats = current
		return nil
	})
	if err != nil {
		logger.Error("Failed to record verification", err, map[string]interface{}{
			"certificate_id": entry.CertificateID,
			"status":         status,
		})
		return nil, err
	}
	return stats, nil
}

// trimRecent evicts the oldest entries beyond MaxRecentVerifications.
func trimRecent(tx *gorm.DB) error {
	var keep []uint
	if err := tx.Model(&model.RecentVerification{}).
		Order("id DESC").
		Limit(model.MaxRecentVerifications).
		Pluck("id", &keep).Error; err != nil {
		return err
	}
	if len(keep) < model.MaxRecentVerifications {
		return nil
	}
	return tx.Where("id NOT IN ?", keep).Delete(&model.RecentVerification{}).Error
}
