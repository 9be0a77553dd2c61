package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"herb-hand/config"
	"herb-hand/providers"
)

const rerankPath = "/v1/rerank"

// Client implementiert das Reranker-Interface für die Cohere-API.
type Client struct {
	Config     *config.Config
	Logger     *zap.Logger
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

// NewClient erstellt einen neuen Cohere-Client.
// Bei COHERE_RATE_LIMIT_PER_MINUTE > 0 wartet jeder Aufruf auf ein Token.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	c := &Client{
		Config:     cfg,
		Logger:     logger.With(zap.String("provider", "cohere")),
		HTTPClient: &http.Client{Timeout: cfg.CohereTimeout},
	}
	if cfg.CohereRateLimitPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.CohereRateLimitPerMinute)), 1)
	}
	return c
}

// Name gibt den Namen des Providers zurück.
func (c *Client) Name() string {
	return "cohere"
}

// Rerank ruft die Rerank-API auf. Fehler werden nicht wiederholt.
func (c *Client) Rerank(ctx context.Context, query string, documents []string, topN int) ([]providers.RerankResult, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	body, err := json.Marshal(RerankRequest{
		Model:     c.Config.CohereRerankModel,
		Query:     query,
		Documents: documents,
		TopN:      topN,
	})
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(c.Config.CohereBaseURL, "/") + rerankPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Config.CohereAPIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log := c.Logger.With(zap.Int("documents", len(documents)), zap.Int("top_n", topN))
	log.Debug("Rufe Cohere Rerank API auf.")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var rr RerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("decode rerank response: %w", err)
	}

	results := make([]providers.RerankResult, 0, len(rr.Results))
	for _, r := range rr.Results {
		results = append(results, providers.RerankResult{Index: r.Index, RelevanceScore: r.RelevanceScore})
	}

	log.Debug("Cohere Rerank abgeschlossen", zap.Int("results", len(results)), zap.Int("search_units", rr.Meta.BilledUnits.SearchUnits))
	return results, nil
}

// decodeError baut aus einer Fehlerantwort einen Fehler mit Cohere's message-Feld.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var er ErrorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Message != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode, er.Message)
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode, text)
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
