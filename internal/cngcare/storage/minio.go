package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/pkg/log"
	"github.com/Afox1/cngcare/pkg/options"
)

const pdfContentType = "application/pdf"

var _ core.ReportArchive = (*minioArchive)(nil)

type minioArchive struct {
	client     *minio.Client
	bucketName string
	urlExpiry  time.Duration
}

// NewMinIOArchive creates a report archive on an S3 compatible store.
func NewMinIOArchive(opts *options.S3Options) (core.ReportArchive, error) {
	minioOpts := &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	}

	client, err := minio.New(opts.Endpoint, minioOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioArchive{
		client:     client,
		bucketName: opts.BucketName,
		urlExpiry:  opts.URLExpiry,
	}, nil
}

func (a *minioArchive) CheckBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		log.Info("Bucket does not exist, creating...", "bucket", a.bucketName)
		if err := a.client.MakeBucket(ctx, a.bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Store uploads a report and returns a presigned download URL for it.
func (a *minioArchive) Store(ctx context.Context, key string, content []byte) (string, error) {
	_, err := a.client.PutObject(ctx, a.bucketName, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType:        pdfContentType,
		ContentDisposition: `attachment; filename="CNG_Report.pdf"`,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	presignedURL, err := a.client.PresignedGetObject(ctx, a.bucketName, key, a.urlExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned url: %w", err)
	}

	return presignedURL.String(), nil
}
