package services

import (
	"context"
	"strings"

	"herb-hand/models"
)

// fakeCatalog hält den Katalog in Slices und gibt Zeilen in Einfügereihenfolge zurück.
type fakeCatalog struct {
	herbs     []models.Herb
	compounds []models.Compound
	links     []models.HerbCompound

	err       error
	linkCalls int
}

func (f *fakeCatalog) FindHerbsByNameContains(_ context.Context, substring string) ([]models.Herb, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Herb{}
	for _, h := range f.herbs {
		if strings.Contains(strings.ToLower(h.Name), strings.ToLower(substring)) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindCompoundsByNameContains(_ context.Context, substring string) ([]models.Compound, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Compound{}
	for _, c := range f.compounds {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(substring)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindLinksByHerbIDs(_ context.Context, ids []uint) ([]models.HerbCompound, error) {
	f.linkCalls++
	set := idSet(ids)
	out := []models.HerbCompound{}
	for _, l := range f.links {
		if _, ok := set[l.HerbID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindLinksByCompoundIDs(_ context.Context, ids []uint) ([]models.HerbCompound, error) {
	f.linkCalls++
	set := idSet(ids)
	out := []models.HerbCompound{}
	for _, l := range f.links {
		if _, ok := set[l.CompoundID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindHerbsByIDs(_ context.Context, ids []uint) ([]models.Herb, error) {
	set := idSet(ids)
	out := []models.Herb{}
	for _, h := range f.herbs {
		if _, ok := set[h.ID]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindCompoundsByIDs(_ context.Context, ids []uint) ([]models.Compound, error) {
	set := idSet(ids)
	out := []models.Compound{}
	for _, c := range f.compounds {
		if _, ok := set[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindAllHerbs(context.Context) ([]models.Herb, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Herb{}, f.herbs...), nil
}

func (f *fakeCatalog) FindAllCompounds(context.Context) ([]models.Compound, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Compound{}, f.compounds...), nil
}

func idSet(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		herbs: []models.Herb{
			{ID: 1, Name: "Turmeric", ScientificName: "Curcuma longa", Uses: "anti-inflammatory", Origin: "India", SourceURL: "https://example.org/turmeric"},
			{ID: 2, Name: "Ginger", ScientificName: "Zingiber officinale", Uses: "nausea relief", Origin: "Southeast Asia", SourceURL: "https://example.org/ginger"},
			{ID: 3, Name: "Holy Basil", ScientificName: "Ocimum tenuiflorum", Uses: "stress adaptogen", Origin: "India", SourceURL: "https://example.org/tulsi"},
		},
		compounds: []models.Compound{
			{ID: 1, Name: "Curcumin", Function: "anti-inflammatory", ChemicalStructure: "C21H20O6", CompoundType: "polyphenol", SourceURL: "https://example.org/curcumin"},
			{ID: 2, Name: "Gingerol", Function: "antiemetic", ChemicalStructure: "C17H26O4", CompoundType: "phenol", SourceURL: "https://example.org/gingerol"},
			{ID: 3, Name: "Eugenol", Function: "analgesic", ChemicalStructure: "C10H12O2", CompoundType: "phenylpropene", SourceURL: "https://example.org/eugenol"},
			{ID: 4, Name: "Shogaol", Function: "antioxidant", ChemicalStructure: "C17H24O3", CompoundType: "phenol", SourceURL: "https://example.org/shogaol"},
		},
		links: []models.HerbCompound{
			{HerbID: 1, CompoundID: 1},
			{HerbID: 2, CompoundID: 4},
			{HerbID: 2, CompoundID: 2},
			{HerbID: 3, CompoundID: 3},
			{HerbID: 1, CompoundID: 3},
		},
	}
}
