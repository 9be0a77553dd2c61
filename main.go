package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"herb-hand/config"
	"herb-hand/providers/cohere"
	"herb-hand/services"
	"herb-hand/storage"
)

func main() {
	logging, err := newLogger()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Database Connection
	db, err := storage.Open(&cfg.Database)
	if err != nil {
		logging.Fatal("Failed to connect to catalog database", zap.Error(err))
	}
	logging.Info("Successfully connected to catalog database.", zap.String("driver", cfg.DBDriver))
	catalog := storage.NewCatalogStore(db)

	// Setup Services
	reranker := instrumentedReranker{Reranker: cohere.NewClient(cfg, logging)}
	lookupService := services.NewLookupService(catalog, logging)
	searchService := services.NewSearchService(catalog, reranker, logging, cfg.SearchTopN, cfg.SearchMinRelevance)
	logging.Info("Search policy loaded",
		zap.String("rerank_model", cfg.CohereRerankModel),
		zap.Int("top_n", cfg.SearchTopN),
		zap.Float64("min_relevance", cfg.SearchMinRelevance))

	// Setup Cron
	cronScheduler := cron.New()
	_, err = cronScheduler.AddFunc(cfg.CatalogStatsSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		refreshCatalogGauges(ctx, catalog, logging)
	})
	if err != nil {
		logging.Fatal("Invalid catalog stats schedule", zap.String("schedule", cfg.CatalogStatsSchedule), zap.Error(err))
	}
	cronScheduler.Start()
	go refreshCatalogGauges(context.Background(), catalog, logging)

	router := newRouter(lookupService, searchService, catalog, logging)

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info("Shutting down server...")

	<-cronScheduler.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server shutdown failed", zap.Error(err))
	}
}

// newLogger liefert im Debug-Modus einen Development-Logger, sonst Production.
func newLogger() (*zap.Logger, error) {
	if gin.Mode() == gin.DebugMode {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
