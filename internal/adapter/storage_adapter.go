package adapter

import (
	"EnvWatchAPI/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StorageAdapter uploads report images to an S3-compatible bucket. With a nil
// client (no credentials) it reports unconfigured and the workflow substitutes
// a placeholder URL instead of calling out.
type StorageAdapter struct {
	client       *s3.Client
	bucket       string
	region       string
	publicDomain string
	folder       string
}

func NewStorageAdapter(cfg *config.AppConfig, s3Client *s3.Client) *StorageAdapter {
	return &StorageAdapter{
		client:       s3Client,
		bucket:       cfg.S3Bucket,
		region:       cfg.S3Region,
		publicDomain: cfg.S3PublicDomain,
		folder:       cfg.S3Folder,
	}
}

func (s *StorageAdapter) Configured() bool {
	return s.client != nil
}

func (s *StorageAdapter) StoreFromReader(ctx context.Context, reader io.Reader, contentType string, name string) error {
	if s.client == nil {
		return errors.New("s3 client is not initialized")
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(name)),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *StorageAdapter) Delete(ctx context.Context, name string) error {
	if s.client == nil {
		return errors.New("s3 client is not initialized")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(name)),
	})
	return err
}

func (s *StorageAdapter) PublicURL(name string) string {
	if s.publicDomain != "" {
		return fmt.Sprintf("%s/%s", s.publicDomain, s.objectKey(name))
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, s.objectKey(name))
}

func (s *StorageAdapter) objectKey(name string) string {
	return filepath.ToSlash(filepath.Join(s.folder, name))
}
