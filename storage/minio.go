package storage

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gracefm/config"
	"gracefm/logger"
)

var minioClient *minio.Client

// InitMinio connects to the object store and makes sure the snapshot bucket
// exists. Snapshot storage is optional; an empty endpoint disables it.
func InitMinio(cfg *config.Config) error {
	if cfg.MinioEndpoint == "" {
		return fmt.Errorf("MinIO endpoint not configured")
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return fmt.Errorf("create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		logger.Info("snapshot bucket created", logger.String("bucket", cfg.MinioBucket))
	}

	minioClient = client
	return nil
}

// GetMinioClient returns the shared client, nil when snapshots are disabled.
func GetMinioClient() *minio.Client {
	return minioClient
}

// UploadSnapshot copies the local aggregate document into the bucket under a
// timestamped object name and returns that name.
func UploadSnapshot(ctx context.Context, cfg *config.Config, localPath string) (string, error) {
	if minioClient == nil {
		return "", fmt.Errorf("MinIO client not initialized")
	}

	objectName := fmt.Sprintf("snapshots/%s-%s", path.Base(localPath), time.Now().UTC().Format("20060102T150405Z"))
	info, err := minioClient.FPutObject(ctx, cfg.MinioBucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	logger.Info("snapshot uploaded",
		logger.String("object", objectName),
		logger.Int64("size", info.Size))
	return objectName, nil
}

// DownloadSnapshot fetches a snapshot object into a local file.
func DownloadSnapshot(ctx context.Context, cfg *config.Config, objectName, localPath string) error {
	if minioClient == nil {
		return fmt.Errorf("MinIO client not initialized")
	}

	if err := minioClient.FGetObject(ctx, cfg.MinioBucket, objectName, localPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("download snapshot: %w", err)
	}

	logger.Info("snapshot downloaded",
		logger.String("object", objectName),
		logger.String("path", localPath))
	return nil
}
