package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"herb-hand/providers"
	"herb-hand/storage"
)

var (
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	rerankRequestsTotal *prometheus.CounterVec
	rerankDuration      prometheus.Histogram
	catalogRows         *prometheus.GaugeVec
)

func init() {
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	rerankRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rerank_requests_total",
			Help: "Total number of calls to the reranking provider by outcome.",
		},
		[]string{"provider", "outcome"},
	)
	rerankDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rerank_request_duration_seconds",
			Help:    "Latency of calls to the reranking provider.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)
	catalogRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_rows",
			Help: "Number of rows per catalog table.",
		},
		[]string{"table"},
	)
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, rerankRequestsTotal, rerankDuration, catalogRows)
}

// instrumentedReranker misst Dauer und Ergebnis jedes Rerank-Aufrufs.
type instrumentedReranker struct {
	providers.Reranker
}

func (r instrumentedReranker) Rerank(ctx context.Context, query string, documents []string, topN int) ([]providers.RerankResult, error) {
	start := time.Now()
	results, err := r.Reranker.Rerank(ctx, query, documents, topN)
	rerankDuration.Observe(time.Since(start).Seconds())

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	rerankRequestsTotal.WithLabelValues(r.Name(), outcome).Inc()
	return results, err
}

// refreshCatalogGauges aktualisiert die Tabellen-Gauges; läuft per Cron.
func refreshCatalogGauges(ctx context.Context, store *storage.CatalogStore, log *zap.Logger) {
	counts, err := store.Counts(ctx)
	if err != nil {
		log.Error("Catalog stats refresh failed", zap.Error(err))
		return
	}
	catalogRows.WithLabelValues("herbs").Set(float64(counts.Herbs))
	catalogRows.WithLabelValues("phytochemicals").Set(float64(counts.Compounds))
	catalogRows.WithLabelValues("herb_phytochemical").Set(float64(counts.Links))
	log.Debug("Catalog stats refreshed",
		zap.Int64("herbs", counts.Herbs),
		zap.Int64("phytochemicals", counts.Compounds),
		zap.Int64("links", counts.Links))
}
