// Package s3 archives monthly CSV exports in an S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Archive keeps a copy of each export so the office can re-download past
// months without regenerating them.
type Archive struct {
	bucket         string
	client         *minio.Client
	logger         *slog.Logger
	bucketInitOnce sync.Once
	bucketInitErr  error
}

// NewArchive configures the uploader against the provided endpoint.
func NewArchive(endpoint string, useSSL bool, accessKey, secretKey, bucket string, logger *slog.Logger) (*Archive, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("s3: endpoint is required")
	}
	if bucket = strings.TrimSpace(bucket); bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}
	client, err := minio.New(hostOf(endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(accessKey), strings.TrimSpace(secretKey), ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3: create client: %w", err)
	}
	return &Archive{bucket: bucket, client: client, logger: logger}, nil
}

// Put stores one export under the given key (e.g. "schedules/2026-08.csv").
func (a *Archive) Put(ctx context.Context, key string, data []byte) error {
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" {
		return errors.New("s3: object key is required")
	}
	if err := a.ensureBucket(ctx); err != nil {
		return err
	}
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/csv; charset=utf-8"})
	if err != nil {
		return fmt.Errorf("s3: put %s: %w", key, err)
	}
	if a.logger != nil {
		a.logger.Info("export archived", "bucket", a.bucket, "key", key, "bytes", len(data))
	}
	return nil
}

func (a *Archive) ensureBucket(ctx context.Context) error {
	a.bucketInitOnce.Do(func() {
		exists, err := a.client.BucketExists(ctx, a.bucket)
		if err != nil {
			a.bucketInitErr = fmt.Errorf("s3: check bucket: %w", err)
			return
		}
		if exists {
			return
		}
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			a.bucketInitErr = fmt.Errorf("s3: create bucket: %w", err)
		}
	})
	return a.bucketInitErr
}

func hostOf(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return endpoint
}
