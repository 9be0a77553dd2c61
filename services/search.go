package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"herb-hand/models"
	"herb-hand/providers"
)

const (
	// DefaultTopN ist die maximale Anzahl an Suchergebnissen.
	DefaultTopN = 5
	// DefaultMinRelevance ist die Schwelle; nur Scores strikt darüber bleiben.
	DefaultMinRelevance = 0.2
)

// SearchResult ist ein gerankter Treffer der semantischen Suche.
type SearchResult struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Info      string `json:"info"`
	SourceURL string `json:"source_url"`
}

// SearchService baut die Kandidatenliste aus dem Katalog und lässt sie extern ranken.
type SearchService struct {
	Catalog      Catalog
	Reranker     providers.Reranker
	Logger       *zap.Logger
	TopN         int
	MinRelevance float64
}

// NewSearchService erstellt eine neue Instanz des SearchService.
func NewSearchService(catalog Catalog, reranker providers.Reranker, logger *zap.Logger, topN int, minRelevance float64) *SearchService {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &SearchService{
		Catalog:      catalog,
		Reranker:     reranker,
		Logger:       logger,
		TopN:         topN,
		MinRelevance: minRelevance,
	}
}

// Search rankt alle Pflanzen und Wirkstoffe gegen query.
// Ergebnisse behalten die Reihenfolge des Rerankers.
func (s *SearchService) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var (
		herbs     []models.Herb
		compounds []models.Compound
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		herbs, err = s.Catalog.FindAllHerbs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		compounds, err = s.Catalog.FindAllCompounds(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load search candidates: %w", err)
	}

	documents, meta := BuildCandidates(herbs, compounds)
	results := []SearchResult{}
	if len(documents) == 0 {
		return results, nil
	}

	log := s.Logger.With(zap.String("query", query), zap.Int("candidates", len(documents)))
	ranked, err := s.Reranker.Rerank(ctx, query, documents, s.TopN)
	if err != nil {
		log.Error("Rerank failed", zap.String("provider", s.Reranker.Name()), zap.Error(err))
		return nil, &ExternalServiceError{Provider: s.Reranker.Name(), Err: err}
	}

	for _, r := range ranked {
		if len(results) >= s.TopN {
			break
		}
		if r.RelevanceScore <= s.MinRelevance {
			continue
		}
		if r.Index < 0 || r.Index >= len(meta) {
			log.Warn("Reranker returned out-of-range index", zap.Int("index", r.Index))
			continue
		}
		results = append(results, meta[r.Index])
	}

	log.Info("Search completed", zap.Int("ranked", len(ranked)), zap.Int("results", len(results)))
	return results, nil
}

// BuildCandidates erzeugt die Dokumente für das Reranking und parallel dazu deren Metadaten.
// Pflanzen kommen zuerst, dann Wirkstoffe.
func BuildCandidates(herbs []models.Herb, compounds []models.Compound) ([]string, []SearchResult) {
	documents := make([]string, 0, len(herbs)+len(compounds))
	meta := make([]SearchResult, 0, len(herbs)+len(compounds))

	for _, h := range herbs {
		documents = append(documents, fmt.Sprintf("Herb: %s. Uses: %s. Origin: %s", h.Name, h.Uses, h.Origin))
		meta = append(meta, SearchResult{Type: "herb", Name: h.Name, Info: h.Uses, SourceURL: h.SourceURL})
	}
	for _, c := range compounds {
		documents = append(documents, fmt.Sprintf("Compound: %s. Function: %s. Type: %s", c.Name, c.Function, c.CompoundType))
		meta = append(meta, SearchResult{Type: "compound", Name: c.Name, Info: c.Function, SourceURL: c.SourceURL})
	}
	return documents, meta
}
