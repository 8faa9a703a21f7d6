package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aydinlift/partsdesk-api/internal/config"
	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Maps unique violations to gorm.ErrDuplicatedKey; invoice numbering
		// relies on this for duplicate detection.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		&entity.Product{},
		&entity.Customer{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// SeedSampleProducts loads a small starter catalog on an empty database so a
// fresh install has something to search against.
func SeedSampleProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []entity.Product{
		{Code: "FLT-001", Name: "Hidrolik Filtre", Category: "Filtre", Brand: "Toyota", UnitPrice: mustDecimal("450.00")},
		{Code: "FLT-002", Name: "Yağ Filtresi", Category: "Filtre", Brand: "Linde", UnitPrice: mustDecimal("180.00")},
		{Code: "FRN-010", Name: "Fren Balatası Takımı", Category: "Fren", Brand: "Hyster", UnitPrice: mustDecimal("1250.00")},
		{Code: "LST-100", Name: "Çatal Lastiği 21x8-9", Category: "Lastik", Brand: "Trelleborg", UnitPrice: mustDecimal("3400.00")},
		{Code: "ZNC-050", Name: "Kaldırma Zinciri", Category: "Şanzıman", Brand: "Still", UnitPrice: mustDecimal("2150.00")},
	}

	if err := db.Create(&products).Error; err != nil {
		return err
	}
	log.Info().Int("count", len(products)).Msg("seeded sample products")
	return nil
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
