// Package storage provides the S3-compatible object store for candidate
// resumes. Applications hold opaque file keys; access goes through
// presigned URLs only.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"hireflow_backend/platform/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// UploadURLTTL bounds how long a candidate can use an upload link.
const UploadURLTTL = 15 * time.Minute

// resumeContentTypes are the document types accepted for resumes.
var resumeContentTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"text/plain": ".txt",
}

// PresignedUpload carries an upload URL and the key the object will live
// under.
type PresignedUpload struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ResumeStore is a MinIO-backed object store pinned to the resume bucket.
type ResumeStore struct {
	client      *minio.Client
	bucket      string
	maxFileSize int64
}

// NewResumeStore creates the store from MinIO configuration.
func NewResumeStore(cfg config.MinIOConfig) (*ResumeStore, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("minio is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &ResumeStore{
		client:      client,
		bucket:      cfg.GetMinioBucketResumes(),
		maxFileSize: cfg.GetMinIOMaxFileSize(),
	}, nil
}

// EnsureBucket creates the resume bucket if it does not exist.
func (s *ResumeStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// PresignUpload validates the document and returns a presigned PUT URL
// under a fresh opaque key. The original file name never becomes part of
// the key.
func (s *ResumeStore) PresignUpload(ctx context.Context, contentType string, sizeBytes int64) (*PresignedUpload, error) {
	ext, err := s.validate(contentType, sizeBytes)
	if err != nil {
		return nil, err
	}

	fileKey := path.Join("resumes", uuid.New().String()+ext)
	presigned, err := s.client.PresignedPutObject(ctx, s.bucket, fileKey, UploadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &PresignedUpload{
		URL:       presigned.String(),
		FileKey:   fileKey,
		ExpiresAt: time.Now().Add(UploadURLTTL),
	}, nil
}

// PresignDownload returns a presigned GET URL for a stored resume.
func (s *ResumeStore) PresignDownload(ctx context.Context, fileKey string, ttl time.Duration) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, fileKey, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return presigned.String(), nil
}

// Delete removes a stored resume.
func (s *ResumeStore) Delete(ctx context.Context, fileKey string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, fileKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object %s: %w", fileKey, err)
	}
	return nil
}

func (s *ResumeStore) validate(contentType string, sizeBytes int64) (string, error) {
	normalized := strings.TrimSpace(strings.ToLower(strings.Split(contentType, ";")[0]))
	ext, ok := resumeContentTypes[normalized]
	if !ok {
		return "", fmt.Errorf("content type %q is not allowed for resumes", contentType)
	}
	if sizeBytes <= 0 {
		return "", fmt.Errorf("file size must be greater than 0")
	}
	if sizeBytes > s.maxFileSize {
		return "", fmt.Errorf("file size %d exceeds maximum of %d bytes", sizeBytes, s.maxFileSize)
	}
	return ext, nil
}
