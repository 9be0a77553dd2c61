package providers

import "context"

// RerankResult verweist auf ein Dokument der Eingabeliste und dessen Relevanz.
type RerankResult struct {
	Index          int
	RelevanceScore float64
}

// Reranker ist das Interface, das jeder Relevanz-Provider (z.B. Cohere) implementieren muss.
type Reranker interface {
	// Rerank bewertet documents gegen query und liefert höchstens topN Ergebnisse,
	// absteigend nach Relevanz sortiert.
	Rerank(ctx context.Context, query string, documents []string, topN int) ([]RerankResult, error)

	// Name gibt den eindeutigen Namen des Providers zurück (z.B. "cohere").
	Name() string
}
