package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Database enthält die Verbindungsparameter für den Katalog-Store.
type Database struct {
	// "postgres" in Produktion, "sqlite" für lokale Entwicklung
	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost     string `envconfig:"DB_HOST"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBPath     string `envconfig:"DB_PATH" default:"herbs.db"`
}

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	Database

	HTTPPort string `envconfig:"HTTP_PORT" default:"8000"`

	CohereAPIKey             string        `envconfig:"COHERE_API_KEY" required:"true"`
	CohereBaseURL            string        `envconfig:"COHERE_BASE_URL" default:"https://api.cohere.com"`
	CohereRerankModel        string        `envconfig:"COHERE_RERANK_MODEL" default:"rerank-english-v2.0"`
	CohereTimeout            time.Duration `envconfig:"COHERE_TIMEOUT" default:"30s"`
	CohereRateLimitPerMinute int           `envconfig:"COHERE_RATE_LIMIT_PER_MINUTE" default:"0"`

	// Such-Policy
	SearchTopN         int     `envconfig:"SEARCH_TOP_N" default:"5"`
	SearchMinRelevance float64 `envconfig:"SEARCH_MIN_RELEVANCE" default:"0.2"`

	CatalogStatsSchedule string `envconfig:"CATALOG_STATS_SCHEDULE" default:"@every 5m"`
}

// SnapshotConfig enthält die Parameter für den Katalog-Export nach S3.
type SnapshotConfig struct {
	S3Key    string `envconfig:"SNAPSHOT_S3_KEY" required:"true"`
	S3Secret string `envconfig:"SNAPSHOT_S3_SECRET" required:"true"`
	S3URL    string `envconfig:"SNAPSHOT_S3_URL" required:"true"`
	S3Region string `envconfig:"SNAPSHOT_S3_REGION" required:"true"`
	S3Bucket string `envconfig:"SNAPSHOT_S3_BUCKET" required:"true"`
	Keep     int    `envconfig:"SNAPSHOT_KEEP" default:"4"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (d *Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		d.DBHost, d.DBUser, d.DBPassword, d.DBName, d.DBPort, d.DBSSLMode)
}

// Validate prüft die treiberabhängigen Pflichtfelder.
func (d *Database) Validate() error {
	switch d.DBDriver {
	case "postgres":
		if d.DBHost == "" || d.DBUser == "" || d.DBName == "" {
			return fmt.Errorf("DB_HOST, DB_USER and DB_NAME are required for the postgres driver")
		}
	case "sqlite":
		if d.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", d.DBDriver)
	}
	return nil
}

// Validate prüft die Konfiguration des Servers.
func (c *Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	// required:"true" lässt eine gesetzte, aber leere Variable durch
	if c.CohereAPIKey == "" {
		return fmt.Errorf("COHERE_API_KEY must not be empty")
	}
	if c.SearchTopN <= 0 {
		return fmt.Errorf("SEARCH_TOP_N must be positive, got %d", c.SearchTopN)
	}
	if c.SearchMinRelevance < 0 || c.SearchMinRelevance > 1 {
		return fmt.Errorf("SEARCH_MIN_RELEVANCE must be within [0, 1], got %g", c.SearchMinRelevance)
	}
	return nil
}

// Validate prüft die Aufbewahrungsregel der Exporte.
func (c *SnapshotConfig) Validate() error {
	if c.Keep < 0 {
		return fmt.Errorf("SNAPSHOT_KEEP must not be negative, got %d", c.Keep)
	}
	return nil
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadDatabase lädt nur die Datenbank-Parameter; herbctl braucht keinen Cohere-Key.
func LoadDatabase() (*Database, error) {
	_ = godotenv.Load()
	var d Database
	if err := envconfig.Process("", &d); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadSnapshot lädt die S3-Konfiguration für herbctl export.
func LoadSnapshot() (*SnapshotConfig, error) {
	_ = godotenv.Load()
	var c SnapshotConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
