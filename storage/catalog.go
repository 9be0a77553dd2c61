package storage

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"herb-hand/models"
)

// CatalogStore liest Pflanzen, Wirkstoffe und deren Verknüpfungen.
// Alle Methoden liefern eine leere Slice statt nil, wenn nichts passt.
// Es gibt kein ORDER BY: die Reihenfolge ist die des Stores.
type CatalogStore struct {
	DB *gorm.DB
}

// CatalogCounts fasst die Tabellengrößen zusammen.
type CatalogCounts struct {
	Herbs     int64
	Compounds int64
	Links     int64
}

// NewCatalogStore erstellt einen neuen CatalogStore.
func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{DB: db}
}

// FindHerbsByNameContains sucht Pflanzen, deren Name den Teilstring enthält (case-insensitive).
func (s *CatalogStore) FindHerbsByNameContains(ctx context.Context, substring string) ([]models.Herb, error) {
	herbs := []models.Herb{}
	err := s.DB.WithContext(ctx).
		Where(`LOWER(herb_name) LIKE ? ESCAPE '\'`, containsPattern(substring)).
		Find(&herbs).Error
	if err != nil {
		return nil, fmt.Errorf("find herbs by name: %w", err)
	}
	return herbs, nil
}

// FindCompoundsByNameContains sucht Wirkstoffe, deren Name den Teilstring enthält (case-insensitive).
func (s *CatalogStore) FindCompoundsByNameContains(ctx context.Context, substring string) ([]models.Compound, error) {
	compounds := []models.Compound{}
	err := s.DB.WithContext(ctx).
		Where(`LOWER(compound_name) LIKE ? ESCAPE '\'`, containsPattern(substring)).
		Find(&compounds).Error
	if err != nil {
		return nil, fmt.Errorf("find compounds by name: %w", err)
	}
	return compounds, nil
}

// FindLinksByHerbIDs liefert alle Kanten der gegebenen Pflanzen.
func (s *CatalogStore) FindLinksByHerbIDs(ctx context.Context, ids []uint) ([]models.HerbCompound, error) {
	return s.findLinks(ctx, "herb_id", ids)
}

// FindLinksByCompoundIDs liefert alle Kanten der gegebenen Wirkstoffe.
func (s *CatalogStore) FindLinksByCompoundIDs(ctx context.Context, ids []uint) ([]models.HerbCompound, error) {
	return s.findLinks(ctx, "compound_id", ids)
}

func (s *CatalogStore) findLinks(ctx context.Context, column string, ids []uint) ([]models.HerbCompound, error) {
	links := []models.HerbCompound{}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return links, nil
	}
	if err := s.DB.WithContext(ctx).Where(column+" IN ?", ids).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("find links by %s: %w", column, err)
	}
	return links, nil
}

// FindHerbsByIDs liefert die Pflanzen mit den gegebenen IDs.
func (s *CatalogStore) FindHerbsByIDs(ctx context.Context, ids []uint) ([]models.Herb, error) {
	herbs := []models.Herb{}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return herbs, nil
	}
	if err := s.DB.WithContext(ctx).Where("herb_id IN ?", ids).Find(&herbs).Error; err != nil {
		return nil, fmt.Errorf("find herbs by ids: %w", err)
	}
	return herbs, nil
}

// FindCompoundsByIDs liefert die Wirkstoffe mit den gegebenen IDs.
func (s *CatalogStore) FindCompoundsByIDs(ctx context.Context, ids []uint) ([]models.Compound, error) {
	compounds := []models.Compound{}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return compounds, nil
	}
	if err := s.DB.WithContext(ctx).Where("compound_id IN ?", ids).Find(&compounds).Error; err != nil {
		return nil, fmt.Errorf("find compounds by ids: %w", err)
	}
	return compounds, nil
}

// FindAllHerbs liefert den gesamten Pflanzenbestand.
func (s *CatalogStore) FindAllHerbs(ctx context.Context) ([]models.Herb, error) {
	herbs := []models.Herb{}
	if err := s.DB.WithContext(ctx).Find(&herbs).Error; err != nil {
		return nil, fmt.Errorf("find all herbs: %w", err)
	}
	return herbs, nil
}

// FindAllCompounds liefert alle Wirkstoffe.
func (s *CatalogStore) FindAllCompounds(ctx context.Context) ([]models.Compound, error) {
	compounds := []models.Compound{}
	if err := s.DB.WithContext(ctx).Find(&compounds).Error; err != nil {
		return nil, fmt.Errorf("find all compounds: %w", err)
	}
	return compounds, nil
}

// FindAllLinks liefert die komplette Verknüpfungstabelle.
func (s *CatalogStore) FindAllLinks(ctx context.Context) ([]models.HerbCompound, error) {
	links := []models.HerbCompound{}
	if err := s.DB.WithContext(ctx).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("find all links: %w", err)
	}
	return links, nil
}

// Counts zählt die Zeilen aller drei Tabellen.
func (s *CatalogStore) Counts(ctx context.Context) (CatalogCounts, error) {
	var counts CatalogCounts
	db := s.DB.WithContext(ctx)
	if err := db.Model(&models.Herb{}).Count(&counts.Herbs).Error; err != nil {
		return counts, fmt.Errorf("count herbs: %w", err)
	}
	if err := db.Model(&models.Compound{}).Count(&counts.Compounds).Error; err != nil {
		return counts, fmt.Errorf("count compounds: %w", err)
	}
	if err := db.Model(&models.HerbCompound{}).Count(&counts.Links).Error; err != nil {
		return counts, fmt.Errorf("count links: %w", err)
	}
	return counts, nil
}

// Ping prüft die Datenbankverbindung.
func (s *CatalogStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern baut ein LIKE-Muster, in dem Platzhalter der Eingabe wörtlich gelten.
func containsPattern(substring string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(substring)) + "%"
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
