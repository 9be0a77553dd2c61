package services

import (
	"context"

	"go.uber.org/zap"

	"herb-hand/models"
)

// CompoundSummary ist ein Wirkstoff, eingebettet in einen Pflanzen-Eintrag.
type CompoundSummary struct {
	CompoundName string `json:"compound_name"`
	Function     string `json:"function"`
	CompoundType string `json:"compound_type"`
	SourceURL    string `json:"source_url"`
}

// HerbRecord ist eine Pflanze mit ihren verknüpften Wirkstoffen.
type HerbRecord struct {
	HerbName       string            `json:"herb_name"`
	ScientificName string            `json:"scientific_name"`
	Uses           string            `json:"uses"`
	Origin         string            `json:"origin"`
	SourceURL      string            `json:"source_url"`
	Phytochemicals []CompoundSummary `json:"phytochemicals"`
}

// HerbSummary ist eine Pflanze, eingebettet in einen Wirkstoff-Eintrag.
type HerbSummary struct {
	HerbName       string `json:"herb_name"`
	ScientificName string `json:"scientific_name"`
	Uses           string `json:"uses"`
	SourceURL      string `json:"source_url"`
}

// CompoundRecord ist ein Wirkstoff mit den Pflanzen, in denen er vorkommt.
type CompoundRecord struct {
	CompoundName      string        `json:"compound_name"`
	Function          string        `json:"function"`
	ChemicalStructure string        `json:"chemical_structure"`
	CompoundType      string        `json:"compound_type"`
	SourceURL         string        `json:"source_url"`
	RelatedHerbs      []HerbSummary `json:"related_herbs"`
}

// LookupService löst die n:m-Beziehung zwischen Pflanzen und Wirkstoffen auf.
type LookupService struct {
	Catalog Catalog
	Logger  *zap.Logger
}

// NewLookupService erstellt eine neue Instanz des LookupService.
func NewLookupService(catalog Catalog, logger *zap.Logger) *LookupService {
	return &LookupService{Catalog: catalog, Logger: logger}
}

// RelatedCompounds liefert die Wirkstoffe, die mit einer der Pflanzen verknüpft sind.
// Doppelte IDs erzeugen keine doppelten Zeilen.
func (s *LookupService) RelatedCompounds(ctx context.Context, herbIDs []uint) ([]models.Compound, error) {
	_, compounds, err := s.linkedCompounds(ctx, herbIDs)
	return compounds, err
}

// RelatedHerbs ist das Spiegelstück zu RelatedCompounds.
func (s *LookupService) RelatedHerbs(ctx context.Context, compoundIDs []uint) ([]models.Herb, error) {
	_, herbs, err := s.linkedHerbs(ctx, compoundIDs)
	return herbs, err
}

// LookupHerbs sucht Pflanzen per Teilstring und hängt jeder ihre eigenen Wirkstoffe an.
func (s *LookupService) LookupHerbs(ctx context.Context, name string) ([]HerbRecord, error) {
	herbs, err := s.Catalog.FindHerbsByNameContains(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(herbs) == 0 {
		return nil, ErrHerbNotFound
	}

	ids := make([]uint, 0, len(herbs))
	for _, h := range herbs {
		ids = append(ids, h.ID)
	}
	links, compounds, err := s.linkedCompounds(ctx, ids)
	if err != nil {
		return nil, err
	}

	s.Logger.Debug("Herb lookup resolved",
		zap.String("name", name),
		zap.Int("herbs", len(herbs)),
		zap.Int("links", len(links)),
		zap.Int("compounds", len(compounds)))
	return AssembleHerbs(herbs, links, compounds), nil
}

// LookupCompounds sucht Wirkstoffe per Teilstring und hängt jedem seine Pflanzen an.
func (s *LookupService) LookupCompounds(ctx context.Context, name string) ([]CompoundRecord, error) {
	compounds, err := s.Catalog.FindCompoundsByNameContains(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(compounds) == 0 {
		return nil, ErrCompoundNotFound
	}

	ids := make([]uint, 0, len(compounds))
	for _, c := range compounds {
		ids = append(ids, c.ID)
	}
	links, herbs, err := s.linkedHerbs(ctx, ids)
	if err != nil {
		return nil, err
	}

	s.Logger.Debug("Compound lookup resolved",
		zap.String("name", name),
		zap.Int("compounds", len(compounds)),
		zap.Int("links", len(links)),
		zap.Int("herbs", len(herbs)))
	return AssembleCompounds(compounds, links, herbs), nil
}

// linkedCompounds liefert die Kanten der Pflanzen und die referenzierten Wirkstoffe.
func (s *LookupService) linkedCompounds(ctx context.Context, herbIDs []uint) ([]models.HerbCompound, []models.Compound, error) {
	links, err := s.Catalog.FindLinksByHerbIDs(ctx, herbIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(links) == 0 {
		return links, []models.Compound{}, nil
	}

	ids := make([]uint, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.CompoundID)
	}
	compounds, err := s.Catalog.FindCompoundsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return links, compounds, nil
}

func (s *LookupService) linkedHerbs(ctx context.Context, compoundIDs []uint) ([]models.HerbCompound, []models.Herb, error) {
	links, err := s.Catalog.FindLinksByCompoundIDs(ctx, compoundIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(links) == 0 {
		return links, []models.Herb{}, nil
	}

	ids := make([]uint, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.HerbID)
	}
	herbs, err := s.Catalog.FindHerbsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return links, herbs, nil
}

// AssembleHerbs baut pro Pflanze die Liste der tatsächlich verknüpften Wirkstoffe.
// Die eingebettete Reihenfolge folgt der Reihenfolge der Kanten; Kanten ohne
// passenden Wirkstoff werden übersprungen.
func AssembleHerbs(herbs []models.Herb, links []models.HerbCompound, compounds []models.Compound) []HerbRecord {
	byID := make(map[uint]models.Compound, len(compounds))
	for _, c := range compounds {
		byID[c.ID] = c
	}

	perHerb := make(map[uint][]CompoundSummary)
	for _, l := range links {
		c, ok := byID[l.CompoundID]
		if !ok {
			continue
		}
		perHerb[l.HerbID] = append(perHerb[l.HerbID], CompoundSummary{
			CompoundName: c.Name,
			Function:     c.Function,
			CompoundType: c.CompoundType,
			SourceURL:    c.SourceURL,
		})
	}

	records := make([]HerbRecord, 0, len(herbs))
	for _, h := range herbs {
		phytochemicals := perHerb[h.ID]
		if phytochemicals == nil {
			phytochemicals = []CompoundSummary{}
		}
		records = append(records, HerbRecord{
			HerbName:       h.Name,
			ScientificName: h.ScientificName,
			Uses:           h.Uses,
			Origin:         h.Origin,
			SourceURL:      h.SourceURL,
			Phytochemicals: phytochemicals,
		})
	}
	return records
}

// AssembleCompounds ist das Spiegelstück zu AssembleHerbs.
func AssembleCompounds(compounds []models.Compound, links []models.HerbCompound, herbs []models.Herb) []CompoundRecord {
	byID := make(map[uint]models.Herb, len(herbs))
	for _, h := range herbs {
		byID[h.ID] = h
	}

	perCompound := make(map[uint][]HerbSummary)
	for _, l := range links {
		h, ok := byID[l.HerbID]
		if !ok {
			continue
		}
		perCompound[l.CompoundID] = append(perCompound[l.CompoundID], HerbSummary{
			HerbName:       h.Name,
			ScientificName: h.ScientificName,
			Uses:           h.Uses,
			SourceURL:      h.SourceURL,
		})
	}

	records := make([]CompoundRecord, 0, len(compounds))
	for _, c := range compounds {
		related := perCompound[c.ID]
		if related == nil {
			related = []HerbSummary{}
		}
		records = append(records, CompoundRecord{
			CompoundName:      c.Name,
			Function:          c.Function,
			ChemicalStructure: c.ChemicalStructure,
			CompoundType:      c.CompoundType,
			SourceURL:         c.SourceURL,
			RelatedHerbs:      related,
		})
	}
	return records
}
