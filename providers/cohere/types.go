package cohere

// RerankRequest ist der Body für POST /v1/rerank.
type RerankRequest struct {
	Model           string   `json:"model"`
	Query           string   `json:"query"`
	Documents       []string `json:"documents"`
	TopN            int      `json:"top_n"`
	ReturnDocuments bool     `json:"return_documents"`
}

// RerankResponse ist die Antwort der Rerank-API.
type RerankResponse struct {
	ID      string `json:"id"`
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
	Meta struct {
		BilledUnits struct {
			SearchUnits int `json:"search_units"`
		} `json:"billed_units"`
	} `json:"meta"`
}

// ErrorResponse ist der Fehler-Body der Cohere-API.
type ErrorResponse struct {
	Message string `json:"message"`
}
