package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"herb-hand/config"
	"herb-hand/models"
)

// Open öffnet die Katalog-Datenbank für den konfigurierten Treiber.
func Open(cfg *config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// EnsureSchema legt die drei Katalog-Tabellen an, falls sie fehlen.
// Nur für Entwicklungs-Datenbanken und Tests; der Server migriert nie.
func EnsureSchema(db *gorm.DB) error {
	return db.AutoMigrate(&models.Herb{}, &models.Compound{}, &models.HerbCompound{})
}
