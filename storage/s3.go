package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"herb-hand/config"
)

// SnapshotPrefix ist der Schlüssel-Präfix aller Katalog-Exporte im Bucket.
const SnapshotPrefix = "catalog-"

// ObjectStore ist der Teil des S3-Clients, den der Export braucht.
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// NewS3Client erstellt einen S3-Client für einen S3-kompatiblen Endpoint.
func NewS3Client(ctx context.Context, cfg *config.SnapshotConfig) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.S3URL,
				SigningRegion:     cfg.S3Region,
				HostnameImmutable: true,
			}, nil
		},
	)
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3Key, cfg.S3Secret, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// SnapshotKey gibt den Objektschlüssel für einen Export zum Zeitpunkt t zurück.
func SnapshotKey(t time.Time) string {
	return fmt.Sprintf("%s%s.json.gz", SnapshotPrefix, t.UTC().Format("2006-01-02T15-04-05Z"))
}

// EncodeSnapshot serialisiert einen Snapshot als gzip-komprimiertes JSON.
func EncodeSnapshot(snap *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gz).Encode(snap); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UploadSnapshot lädt einen kodierten Snapshot hoch und gibt den Link zurück.
func UploadSnapshot(ctx context.Context, client ObjectStore, cfg *config.SnapshotConfig, key string, data []byte) (string, error) {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(cfg.S3Bucket),
		Key:             aws.String(key),
		Body:            bytes.NewReader(data),
		ContentType:     aws.String("application/json"),
		ContentEncoding: aws.String("gzip"),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(cfg.S3URL, "/"), cfg.S3Bucket, key), nil
}

// RotateSnapshots löscht die ältesten Exporte, sodass höchstens keep übrig bleiben.
// Gibt die Anzahl gelöschter Objekte zurück.
func RotateSnapshots(ctx context.Context, client ObjectStore, cfg *config.SnapshotConfig, log *zap.Logger) (int, error) {
	if cfg.Keep < 0 {
		return 0, fmt.Errorf("snapshot keep must not be negative, got %d", cfg.Keep)
	}

	var objects []types.Object
	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(cfg.S3Bucket),
		Prefix: aws.String(SnapshotPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		objects = append(objects, page.Contents...)
	}

	if len(objects) <= cfg.Keep {
		log.Debug("No snapshot rotation needed", zap.Int("snapshots", len(objects)), zap.Int("keep", cfg.Keep))
		return 0, nil
	}

	sort.Slice(objects, func(i, j int) bool {
		return aws.ToTime(objects[i].LastModified).After(aws.ToTime(objects[j].LastModified))
	})

	deleted := 0
	for _, obj := range objects[cfg.Keep:] {
		key := aws.ToString(obj.Key)
		log.Info("Deleting old snapshot", zap.String("key", key))
		_, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(cfg.S3Bucket),
			Key:    obj.Key,
		})
		if err != nil {
			log.Warn("Failed to delete snapshot", zap.String("key", key), zap.Error(err))
			continue
		}
		deleted++
	}

	return deleted, nil
}
