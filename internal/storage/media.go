// Package storage wraps the object-storage provider that holds all
// binary assets. The rest of the system only ever sees public URLs.
package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/anikettiwarime/VideoTube/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Asset folders inside the bucket.
const (
	FolderAvatars    = "avatars"
	FolderCovers     = "covers"
	FolderThumbnails = "thumbnails"
	FolderVideos     = "videos"
)

type MediaStore interface {
	// UploadLocalFile uploads a local file into folder and returns its
	// public URL. The local file is removed in both success and
	// failure paths.
	UploadLocalFile(ctx context.Context, localPath, folder string) (string, error)

	// Delete removes the asset a public URL points at. Best-effort:
	// a missing object is not an error.
	Delete(ctx context.Context, folder, url string) error
}

type minioStore struct {
	client         *minio.Client
	bucket         string
	publicEndpoint string
}

func NewMediaStore(ctx context.Context, cfg config.StorageConfig) (MediaStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &minioStore{
		client:         client,
		bucket:         cfg.Bucket,
		publicEndpoint: strings.TrimRight(cfg.PublicEndpoint, "/"),
	}, nil
}

func (s *minioStore) UploadLocalFile(ctx context.Context, localPath, folder string) (string, error) {
	defer os.Remove(localPath)

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open upload file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat upload file: %w", err)
	}

	ext := filepath.Ext(localPath)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := folder + "/" + uuid.New().String() + ext

	if _, err := s.client.PutObject(ctx, s.bucket, objectName, file, info.Size(),
		minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.publicEndpoint + "/" + s.bucket + "/" + objectName, nil
}

func (s *minioStore) Delete(ctx context.Context, folder, url string) error {
	objectName := objectNameFromURL(folder, url)
	if objectName == "" {
		return nil
	}

	if _, err := s.client.StatObject(ctx, s.bucket, objectName, minio.StatObjectOptions{}); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("failed to check object existence: %w", err)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// objectNameFromURL derives the stored object name from the trailing
// path segment of a public URL.
func objectNameFromURL(folder, url string) string {
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx == len(url)-1 {
		return ""
	}
	return folder + "/" + url[idx+1:]
}
