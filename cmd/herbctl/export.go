package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"herb-hand/config"
	"herb-hand/storage"
)

var exportDryRun bool

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a catalog snapshot to S3",
	Long: `Reads herbs, phytochemicals and links, uploads them as gzipped JSON and
deletes the oldest snapshots beyond SNAPSHOT_KEEP.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "encode the snapshot without uploading")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := storage.Open(dbCfg)
	if err != nil {
		return err
	}
	store := storage.NewCatalogStore(db)

	snap, err := store.Export(ctx)
	if err != nil {
		return err
	}
	data, err := storage.EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	key := storage.SnapshotKey(time.Now())
	log := logger.With(zap.String("key", key), zap.Int("bytes", len(data)))

	if exportDryRun {
		log.Info("Dry run, snapshot not uploaded",
			zap.Int("herbs", len(snap.Herbs)),
			zap.Int("phytochemicals", len(snap.Compounds)),
			zap.Int("links", len(snap.Links)))
		return nil
	}

	s3Cfg, err := config.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("load snapshot config: %w", err)
	}
	client, err := storage.NewS3Client(ctx, s3Cfg)
	if err != nil {
		return fmt.Errorf("create s3 client: %w", err)
	}

	link, err := storage.UploadSnapshot(ctx, client, s3Cfg, key, data)
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}
	log.Info("Snapshot uploaded", zap.String("link", link))

	deleted, err := storage.RotateSnapshots(ctx, client, s3Cfg, logger)
	if err != nil {
		return fmt.Errorf("rotate snapshots: %w", err)
	}
	log.Info("Snapshot rotation finished", zap.Int("deleted", deleted), zap.Int("keep", s3Cfg.Keep))
	return nil
}
