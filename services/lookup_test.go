package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"herb-hand/models"
)

func TestLookupHerbs(t *testing.T) {
	ctx := context.Background()

	t.Run("single match carries its own compounds", func(t *testing.T) {
		svc := NewLookupService(newFakeCatalog(), zap.NewNop())

		records, err := svc.LookupHerbs(ctx, "turmeric")
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, HerbRecord{
			HerbName:       "Turmeric",
			ScientificName: "Curcuma longa",
			Uses:           "anti-inflammatory",
			Origin:         "India",
			SourceURL:      "https://example.org/turmeric",
			Phytochemicals: []CompoundSummary{
				{CompoundName: "Curcumin", Function: "anti-inflammatory", CompoundType: "polyphenol", SourceURL: "https://example.org/curcumin"},
				{CompoundName: "Eugenol", Function: "analgesic", CompoundType: "phenylpropene", SourceURL: "https://example.org/eugenol"},
			},
		}, records[0])
	})

	t.Run("each herb gets exactly its linked compounds in link order", func(t *testing.T) {
		svc := NewLookupService(newFakeCatalog(), zap.NewNop())

		records, err := svc.LookupHerbs(ctx, "I")
		require.NoError(t, err)
		require.Len(t, records, 3)

		got := map[string][]string{}
		for _, r := range records {
			for _, c := range r.Phytochemicals {
				got[r.HerbName] = append(got[r.HerbName], c.CompoundName)
			}
		}
		assert.Equal(t, map[string][]string{
			"Turmeric":   {"Curcumin", "Eugenol"},
			"Ginger":     {"Shogaol", "Gingerol"},
			"Holy Basil": {"Eugenol"},
		}, got)
	})

	t.Run("herb without links has an empty list", func(t *testing.T) {
		catalog := newFakeCatalog()
		catalog.herbs = append(catalog.herbs, models.Herb{ID: 9, Name: "Moringa"})
		svc := NewLookupService(catalog, zap.NewNop())

		records, err := svc.LookupHerbs(ctx, "moringa")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.NotNil(t, records[0].Phytochemicals)
		assert.Empty(t, records[0].Phytochemicals)
	})

	t.Run("dangling link is skipped", func(t *testing.T) {
		catalog := newFakeCatalog()
		catalog.links = append(catalog.links, models.HerbCompound{HerbID: 3, CompoundID: 99})
		svc := NewLookupService(catalog, zap.NewNop())

		records, err := svc.LookupHerbs(ctx, "basil")
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Len(t, records[0].Phytochemicals, 1)
		assert.Equal(t, "Eugenol", records[0].Phytochemicals[0].CompoundName)
	})

	t.Run("no match", func(t *testing.T) {
		svc := NewLookupService(newFakeCatalog(), zap.NewNop())

		records, err := svc.LookupHerbs(ctx, "unicorn-root")
		assert.ErrorIs(t, err, ErrHerbNotFound)
		assert.Nil(t, records)
	})

	t.Run("store error is propagated", func(t *testing.T) {
		catalog := newFakeCatalog()
		catalog.err = errors.New("connection refused")
		svc := NewLookupService(catalog, zap.NewNop())

		_, err := svc.LookupHerbs(ctx, "turmeric")
		assert.EqualError(t, err, "connection refused")
	})
}

func TestLookupCompounds(t *testing.T) {
	ctx := context.Background()
	svc := NewLookupService(newFakeCatalog(), zap.NewNop())

	t.Run("mirror of herb lookup", func(t *testing.T) {
		records, err := svc.LookupCompounds(ctx, "EUGEN")
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, CompoundRecord{
			CompoundName:      "Eugenol",
			Function:          "analgesic",
			ChemicalStructure: "C10H12O2",
			CompoundType:      "phenylpropene",
			SourceURL:         "https://example.org/eugenol",
			RelatedHerbs: []HerbSummary{
				{HerbName: "Holy Basil", ScientificName: "Ocimum tenuiflorum", Uses: "stress adaptogen", SourceURL: "https://example.org/tulsi"},
				{HerbName: "Turmeric", ScientificName: "Curcuma longa", Uses: "anti-inflammatory", SourceURL: "https://example.org/turmeric"},
			},
		}, records[0])
	})

	t.Run("several matches", func(t *testing.T) {
		records, err := svc.LookupCompounds(ctx, "ol")
		require.NoError(t, err)

		got := map[string][]string{}
		for _, r := range records {
			got[r.CompoundName] = []string{}
			for _, h := range r.RelatedHerbs {
				got[r.CompoundName] = append(got[r.CompoundName], h.HerbName)
			}
		}
		assert.Equal(t, map[string][]string{
			"Gingerol": {"Ginger"},
			"Eugenol":  {"Holy Basil", "Turmeric"},
			"Shogaol":  {"Ginger"},
		}, got)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := svc.LookupCompounds(ctx, "unobtainium")
		assert.ErrorIs(t, err, ErrCompoundNotFound)
	})
}

func TestRelatedCompounds(t *testing.T) {
	ctx := context.Background()

	t.Run("empty id set", func(t *testing.T) {
		svc := NewLookupService(newFakeCatalog(), zap.NewNop())
		compounds, err := svc.RelatedCompounds(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, []models.Compound{}, compounds)
	})

	t.Run("ids without links", func(t *testing.T) {
		svc := NewLookupService(newFakeCatalog(), zap.NewNop())
		compounds, err := svc.RelatedCompounds(ctx, []uint{42, 43})
		require.NoError(t, err)
		assert.Equal(t, []models.Compound{}, compounds)
	})

	t.Run("duplicate ids do not duplicate rows", func(t *testing.T) {
		svc := NewLookupService(newFakeCatalog(), zap.NewNop())
		compounds, err := svc.RelatedCompounds(ctx, []uint{1, 1, 3})
		require.NoError(t, err)

		var names []string
		for _, c := range compounds {
			names = append(names, c.Name)
		}
		assert.ElementsMatch(t, []string{"Curcumin", "Eugenol"}, names)
	})
}

func TestRelatedHerbs(t *testing.T) {
	ctx := context.Background()
	svc := NewLookupService(newFakeCatalog(), zap.NewNop())

	herbs, err := svc.RelatedHerbs(ctx, []uint{})
	require.NoError(t, err)
	assert.Equal(t, []models.Herb{}, herbs)

	herbs, err = svc.RelatedHerbs(ctx, []uint{2, 4, 4})
	require.NoError(t, err)
	require.Len(t, herbs, 1)
	assert.Equal(t, "Ginger", herbs[0].Name)
}

func TestAssembleHerbsUsesIndexedLookup(t *testing.T) {
	herbs := []models.Herb{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	compounds := []models.Compound{{ID: 10, Name: "x"}, {ID: 11, Name: "y"}}
	links := []models.HerbCompound{
		{HerbID: 2, CompoundID: 11},
		{HerbID: 1, CompoundID: 10},
		{HerbID: 2, CompoundID: 10},
		{HerbID: 7, CompoundID: 10},
	}

	records := AssembleHerbs(herbs, links, compounds)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].HerbName)
	assert.Equal(t, []CompoundSummary{{CompoundName: "x"}}, records[0].Phytochemicals)
	assert.Equal(t, []CompoundSummary{{CompoundName: "y"}, {CompoundName: "x"}}, records[1].Phytochemicals)
}
