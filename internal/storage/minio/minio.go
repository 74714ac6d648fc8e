// Package minio implements storage.AvatarStorage on top of a MinIO or
// S3-compatible bucket.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"ottify/internal/storage"
)

// Config carries the bucket connection and upload policy settings.
type Config struct {
	Endpoint            string
	AccessKey           string
	SecretKey           string
	Bucket              string
	PresignTTL          time.Duration
	PublicBaseURL       string
	MaxSizeBytes        int64
	AllowedContentTypes []string
}

// AvatarStorage is the MinIO adapter for profile photo uploads.
type AvatarStorage struct {
	cfg    Config
	client *mclient.Client
}

var _ storage.AvatarStorage = (*AvatarStorage)(nil)

// New creates the MinIO client, normalizing a scheme-prefixed endpoint,
// and fails fast when the target bucket does not exist.
func New(ctx context.Context, cfg Config) (*AvatarStorage, error) {
	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")
	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("minio bucket %q does not exist", cfg.Bucket)
	}

	return &AvatarStorage{cfg: cfg, client: client}, nil
}
