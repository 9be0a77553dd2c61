package services

import (
	"context"

	"herb-hand/models"
)

// Catalog ist die Datenzugriffsschicht, die Lookup und Suche brauchen.
// storage.CatalogStore implementiert es.
type Catalog interface {
	FindHerbsByNameContains(ctx context.Context, substring string) ([]models.Herb, error)
	FindCompoundsByNameContains(ctx context.Context, substring string) ([]models.Compound, error)
	FindLinksByHerbIDs(ctx context.Context, ids []uint) ([]models.HerbCompound, error)
	FindLinksByCompoundIDs(ctx context.Context, ids []uint) ([]models.HerbCompound, error)
	FindHerbsByIDs(ctx context.Context, ids []uint) ([]models.Herb, error)
	FindCompoundsByIDs(ctx context.Context, ids []uint) ([]models.Compound, error)
	FindAllHerbs(ctx context.Context) ([]models.Herb, error)
	FindAllCompounds(ctx context.Context) ([]models.Compound, error)
}
