package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"herb-hand/services"
)

const (
	herbNotFoundDetail     = "Herb not found"
	compoundNotFoundDetail = "Compound not found"
	rerankErrorPrefix      = "Cohere error: "
	missingQueryDetail     = "query parameter 'q' is required"
	databaseErrorDetail    = "database error"
)

// Pinger meldet, ob der Katalog-Store erreichbar ist.
type Pinger interface {
	Ping(ctx context.Context) error
}

// newRouter baut die gin-Engine mit Middleware und allen Routen.
func newRouter(lookup *services.LookupService, search *services.SearchService, health Pinger, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(requestLogMiddleware(log))
	router.Use(metricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	setupHealthRoutes(router, health, log)
	setupHerbRoutes(router, lookup, log)
	setupPhytochemicalRoutes(router, lookup, log)
	setupSearchRoutes(router, search, log)

	return router
}

func setupHerbRoutes(router *gin.Engine, lookup *services.LookupService, log *zap.Logger) {
	router.GET("/herbs/:herb_name", func(c *gin.Context) {
		name := c.Param("herb_name")
		records, err := lookup.LookupHerbs(c.Request.Context(), name)
		if err != nil {
			if errors.Is(err, services.ErrHerbNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": herbNotFoundDetail})
				return
			}
			log.Error("Herb lookup failed", zap.String("herb_name", name), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": databaseErrorDetail})
			return
		}
		c.JSON(http.StatusOK, records)
	})
}

func setupPhytochemicalRoutes(router *gin.Engine, lookup *services.LookupService, log *zap.Logger) {
	router.GET("/phytochemicals/:compound_name", func(c *gin.Context) {
		name := c.Param("compound_name")
		records, err := lookup.LookupCompounds(c.Request.Context(), name)
		if err != nil {
			if errors.Is(err, services.ErrCompoundNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": compoundNotFoundDetail})
				return
			}
			log.Error("Compound lookup failed", zap.String("compound_name", name), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": databaseErrorDetail})
			return
		}
		c.JSON(http.StatusOK, records)
	})
}

func setupSearchRoutes(router *gin.Engine, search *services.SearchService, log *zap.Logger) {
	router.GET("/search", func(c *gin.Context) {
		q, ok := c.GetQuery("q")
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": missingQueryDetail})
			return
		}

		results, err := search.Search(c.Request.Context(), q)
		if err != nil {
			var extErr *services.ExternalServiceError
			if errors.As(err, &extErr) {
				c.JSON(http.StatusInternalServerError, gin.H{"detail": rerankErrorPrefix + extErr.Err.Error()})
				return
			}
			log.Error("Search failed", zap.String("q", q), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": databaseErrorDetail})
			return
		}
		c.JSON(http.StatusOK, results)
	})
}

func setupHealthRoutes(router *gin.Engine, health Pinger, log *zap.Logger) {
	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := health.Ping(ctx); err != nil {
			log.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
