package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/minutes-dashboard/internal/domain/entities"
	"github.com/johnquangdev/minutes-dashboard/pkg/config"
)

// MinutesArchive stores immutable JSON snapshots of approved minutes in
// object storage, one object per minutes record.
type MinutesArchive struct {
	client *minio.Client
	bucket string
}

// NewMinutesArchive creates the archive client and ensures the bucket exists
func NewMinutesArchive(cfg *config.StorageConfig) (*MinutesArchive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	archive := &MinutesArchive{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	ctx := context.Background()
	if err := archive.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return archive, nil
}

// ensureBucket creates the archive bucket if it does not exist. Snapshots are
// private; access goes through presigned URLs only.
func (a *MinutesArchive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// objectName builds the archive key for a minutes record
func objectName(m *entities.Minutes) string {
	return fmt.Sprintf("minutes/%s/%s.json", m.MeetingID, m.ID)
}

// Archive uploads a JSON snapshot of the minutes, retrying transient upload
// failures with exponential backoff. It returns the object name.
func (a *MinutesArchive) Archive(ctx context.Context, m *entities.Minutes) (string, error) {
	payload, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal minutes: %w", err)
	}

	name := objectName(m)
	uploadFn := func() error {
		_, err := a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
			ContentType: "application/json",
		})
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 30 * time.Second
	bo.MaxInterval = 10 * time.Second

	if err := backoff.Retry(uploadFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("failed to archive minutes after retries: %w", err)
	}

	return name, nil
}

// SnapshotURL returns a presigned URL for downloading an archived snapshot
func (a *MinutesArchive) SnapshotURL(ctx context.Context, name string, expiry time.Duration) (string, error) {
	url, err := a.client.PresignedGetObject(ctx, a.bucket, name, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}
