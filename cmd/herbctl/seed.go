package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"herb-hand/config"
	"herb-hand/storage"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a JSON fixture into a development catalog",
	Long: `Creates the herbs, phytochemicals and herb_phytochemical tables if they are
missing and inserts the rows of the fixture. Intended for local databases only.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "fixture file (required)")
	_ = seedCmd.MarkFlagRequired("file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	snap, err := readFixture(seedFile)
	if err != nil {
		return err
	}

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := storage.Open(dbCfg)
	if err != nil {
		return err
	}
	if err := storage.EnsureSchema(db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	store := storage.NewCatalogStore(db)
	if err := store.Import(cmd.Context(), snap); err != nil {
		return err
	}

	logger.Info("Catalog seeded",
		zap.String("file", seedFile),
		zap.Int("herbs", len(snap.Herbs)),
		zap.Int("phytochemicals", len(snap.Compounds)),
		zap.Int("links", len(snap.Links)))
	return nil
}

func readFixture(path string) (*storage.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	var snap storage.Snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return &snap, nil
}
