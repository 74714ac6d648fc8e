package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrAvatarNotFound means the object key does not exist in the bucket.
	ErrAvatarNotFound = errors.New("avatar not found")
	// ErrInvalidUpload means the upload violates size or content-type limits.
	ErrInvalidUpload = errors.New("invalid upload")
)

// UploadInfo describes a presigned PUT upload handed to the client.
type UploadInfo struct {
	UploadURL      string            `json:"upload_url"`
	AvatarKey      string            `json:"avatar_key"`
	Expires        time.Duration     `json:"expires"`
	RequiredHeader map[string]string `json:"required_header"`
}

// AvatarStorage is the contract for profile photo uploads: issue a
// presigned PUT URL, then confirm the upload actually happened and
// resolve its public URL.
type AvatarStorage interface {
	AvatarUploadURL(ctx context.Context, userID uint, contentType string, contentLength int64) (*UploadInfo, error)
	CheckAvatarUpload(ctx context.Context, userID uint, key string) (publicURL string, err error)
}
