package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMemoryStore erstellt einen CatalogStore auf einer In-Memory-SQLite für Tests.
// Die Verbindung ist auf eins begrenzt, damit alle Abfragen dieselbe Datenbank sehen.
// Der Aufrufer schließt die Datenbank über CloseMemoryStore.
func NewMemoryStore() (*CatalogStore, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := EnsureSchema(db); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return NewCatalogStore(db), nil
}

// CloseMemoryStore schließt die Datenbank hinter einem Test-Store.
func CloseMemoryStore(s *CatalogStore) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
