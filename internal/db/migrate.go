package db

import (
	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table managed by AutoMigrate.
var Models = []interface{}{
	&model.Certificate{},
	&model.RecentVerification{},
	&model.VerificationStats{},
}

// Migrate runs database migrations
func Migrate() error {
	return MigrateDB(DB)
}

func MigrateDB(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	if err := db.AutoMigrate(Models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(Models),
	})
	return nil
}

// Seed loads the demo dataset into an empty database
func Seed() error {
	return SeedDB(DB)
}

func SeedDB(db *gorm.DB) error {
	logger.Info("Seeding initial data...")

	if err := seedCertificates(db); err != nil {
		logger.Error("Failed to seed certificates", err)
		return err
	}
	if err := seedStats(db); err != nil {
		logger.Error("Failed to seed verification stats", err)
		return err
	}
	if err := seedRecentVerifications(db); err != nil {
		logger.Error("Failed to seed recent verifications", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedCertificates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Certificate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Certificates already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	certificates := SeedCertificates()
	if err := db.Create(&certificates).Error; err != nil {
		return err
	}
	logger.Info("Certificates seeded", map[string]interface{}{
		"count": len(certificates),
	})
	return nil
}

func seedStats(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.VerificationStats{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	stats := SeedStats()
	return db.Create(&stats).Error
}

func seedRecentVerifications(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.RecentVerification{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	entries := SeedRecentVerifications()
	// inserted oldest first so that id order is recency order
	for i := len(entries) - 1; i >= 0; i-- {
		if err := db.Create(&entries[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
