package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"herb-hand/models"
)

// Snapshot ist der komplette Katalog in der Form der drei Tabellen.
// Dasselbe Format dient als Seed-Fixture und als S3-Export.
type Snapshot struct {
	Herbs     []models.Herb         `json:"herbs"`
	Compounds []models.Compound     `json:"phytochemicals"`
	Links     []models.HerbCompound `json:"herb_phytochemical"`
}

const importBatchSize = 500

// Export liest den gesamten Katalog.
func (s *CatalogStore) Export(ctx context.Context) (*Snapshot, error) {
	herbs, err := s.FindAllHerbs(ctx)
	if err != nil {
		return nil, err
	}
	compounds, err := s.FindAllCompounds(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.FindAllLinks(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Herbs: herbs, Compounds: compounds, Links: links}, nil
}

// Import schreibt einen Snapshot in einer Transaktion. Nur für Entwicklungs-Datenbanken.
func (s *CatalogStore) Import(ctx context.Context, snap *Snapshot) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(snap.Herbs) > 0 {
			if err := tx.CreateInBatches(&snap.Herbs, importBatchSize).Error; err != nil {
				return fmt.Errorf("import herbs: %w", err)
			}
		}
		if len(snap.Compounds) > 0 {
			if err := tx.CreateInBatches(&snap.Compounds, importBatchSize).Error; err != nil {
				return fmt.Errorf("import compounds: %w", err)
			}
		}
		if len(snap.Links) > 0 {
			if err := tx.CreateInBatches(&snap.Links, importBatchSize).Error; err != nil {
				return fmt.Errorf("import links: %w", err)
			}
		}
		return nil
	})
}
