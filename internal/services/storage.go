package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"foodshare/internal/config"
	"foodshare/internal/utils"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService MinIO-backed object storage for donation images
type StorageService struct {
	client     *minio.Client
	bucket     string
	publicBase string
	logger     utils.Logger
}

// NewStorageService connects to MinIO and makes sure the bucket exists
func NewStorageService(cfg *config.Config) (*StorageService, error) {
	logger := utils.GetLogger()
	cli, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKeyID, cfg.MinIO.SecretAccessKey, ""),
		Secure: cfg.MinIO.UseSSL,
	})
	if err != nil {
		logger.Error("init minio client failed", "error", err.Error())
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	exists, err := cli.BucketExists(ctx, cfg.MinIO.Bucket)
	if err != nil {
		logger.Error("check bucket failed", "bucket", cfg.MinIO.Bucket, "error", err.Error())
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.MinIO.Bucket, minio.MakeBucketOptions{}); err != nil {
			logger.Error("create bucket failed", "bucket", cfg.MinIO.Bucket, "error", err.Error())
			return nil, err
		}
		logger.Info("bucket created", "bucket", cfg.MinIO.Bucket)
	}

	return &StorageService{
		client:     cli,
		bucket:     cfg.MinIO.Bucket,
		publicBase: strings.TrimRight(cfg.Assets.PublicBaseURL, "/"),
		logger:     logger,
	}, nil
}

// PutObject uploads reader under objectPath and returns its public URL
func (s *StorageService) PutObject(ctx context.Context, objectPath, contentType string, reader io.Reader, size int64) (string, error) {
	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	}
	if _, err := s.client.PutObject(ctx, s.bucket, objectPath, reader, size, opts); err != nil {
		s.logger.Error("put object failed", "bucket", s.bucket, "object", objectPath, "error", err.Error())
		return "", err
	}
	return s.PublicURL(objectPath), nil
}

// RemoveObject deletes an object
func (s *StorageService) RemoveObject(ctx context.Context, objectPath string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectPath, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Error("remove object failed", "object", objectPath, "error", err.Error())
		return err
	}
	return nil
}

// HealthCheck verifies the bucket is reachable
func (s *StorageService) HealthCheck(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %s missing", s.bucket)
	}
	return nil
}

// PublicURL public address of an object
func (s *StorageService) PublicURL(objectPath string) string {
	return s.publicBase + "/" + objectPath
}
