package minio

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"

	"ottify/internal/storage"
)

// AvatarUploadURL issues a presigned PUT URL for a profile photo. The
// object key is "avatars/<userID>/<uuid>.<ext>"; the returned headers
// must be sent with the PUT and are re-checked on confirmation.
func (s *AvatarStorage) AvatarUploadURL(ctx context.Context, userID uint, contentType string, contentLength int64) (*storage.UploadInfo, error) {
	if contentLength <= 0 || contentLength > s.cfg.MaxSizeBytes {
		return nil, storage.ErrInvalidUpload
	}
	if !allowedContentType(s.cfg.AllowedContentTypes, contentType) {
		return nil, storage.ErrInvalidUpload
	}

	var ext string
	switch contentType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/webp":
		ext = ".webp"
	}

	key := path.Join("avatars", fmt.Sprintf("%d", userID), uuid.NewString()+ext)

	u, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, key, s.cfg.PresignTTL)
	if err != nil {
		return nil, fmt.Errorf("presign avatar upload: %w", err)
	}

	return &storage.UploadInfo{
		UploadURL: u.String(),
		AvatarKey: key,
		Expires:   s.cfg.PresignTTL,
		RequiredHeader: map[string]string{
			"Content-Type":   contentType,
			"Content-Length": fmt.Sprintf("%d", contentLength),
		},
	}, nil
}

// CheckAvatarUpload confirms the object exists under the user's prefix
// and still satisfies the size and type limits, then resolves its public
// URL. An empty PublicBaseURL yields an empty URL.
func (s *AvatarStorage) CheckAvatarUpload(ctx context.Context, userID uint, key string) (string, error) {
	prefix := fmt.Sprintf("avatars/%d/", userID)
	if !strings.HasPrefix(key, prefix) {
		return "", storage.ErrInvalidUpload
	}

	info, err := s.client.StatObject(ctx, s.cfg.Bucket, key, mclient.StatObjectOptions{})
	if err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
			return "", storage.ErrAvatarNotFound
		}
		return "", fmt.Errorf("stat avatar object: %w", err)
	}

	if info.Size <= 0 || info.Size > s.cfg.MaxSizeBytes {
		return "", storage.ErrInvalidUpload
	}
	if ct := info.ContentType; ct != "" && !allowedContentType(s.cfg.AllowedContentTypes, ct) {
		return "", storage.ErrInvalidUpload
	}

	if s.cfg.PublicBaseURL == "" {
		return "", nil
	}
	return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key, nil
}

func allowedContentType(allow []string, contentType string) bool {
	for _, a := range allow {
		if a == contentType {
			return true
		}
	}
	return false
}
