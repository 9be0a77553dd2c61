// Package mock stellt einen steuerbaren Reranker für Tests bereit.
package mock

import (
	"context"
	"sort"
	"strings"
	"sync"

	"herb-hand/providers"
)

// Reranker ist ein Test-Double für providers.Reranker.
type Reranker struct {
	// RerankFunc wird von Rerank aufgerufen, falls gesetzt.
	// Ohne RerankFunc bewertet Rerank per Wortüberlappung mit der Query.
	RerankFunc func(ctx context.Context, query string, documents []string, topN int) ([]providers.RerankResult, error)

	mu        sync.Mutex
	calls     int
	lastQuery string
	lastDocs  []string
	lastTopN  int
}

// NewReranker erstellt einen Mock mit deterministischem Standardverhalten.
func NewReranker() *Reranker {
	return &Reranker{}
}

// Name gibt den Namen des Providers zurück.
func (m *Reranker) Name() string {
	return "mock"
}

// Rerank zeichnet den Aufruf auf und liefert RerankFunc oder das Standard-Ranking.
func (m *Reranker) Rerank(ctx context.Context, query string, documents []string, topN int) ([]providers.RerankResult, error) {
	m.mu.Lock()
	m.calls++
	m.lastQuery = query
	m.lastDocs = append([]string(nil), documents...)
	m.lastTopN = topN
	m.mu.Unlock()

	if m.RerankFunc != nil {
		return m.RerankFunc(ctx, query, documents, topN)
	}
	return overlapRanking(query, documents, topN), nil
}

// Calls gibt die Anzahl der Rerank-Aufrufe zurück.
func (m *Reranker) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastRequest gibt Query, Dokumente und topN des letzten Aufrufs zurück.
func (m *Reranker) LastRequest() (string, []string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastQuery, m.lastDocs, m.lastTopN
}

// overlapRanking vergibt als Score den Anteil der Query-Wörter, die im Dokument vorkommen.
func overlapRanking(query string, documents []string, topN int) []providers.RerankResult {
	words := strings.Fields(strings.ToLower(query))
	var results []providers.RerankResult
	for i, doc := range documents {
		if len(words) == 0 {
			break
		}
		lower := strings.ToLower(doc)
		hits := 0
		for _, w := range words {
			if strings.Contains(lower, w) {
				hits++
			}
		}
		results = append(results, providers.RerankResult{Index: i, RelevanceScore: float64(hits) / float64(len(words))})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	if len(results) > topN {
		results = results[:topN]
	}
	return results
}
