// Package storage archives rendered submission documents to S3. Archival
// is best effort; failures are reported to the caller for logging but
// never change the outcome of a submission.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

type uploaderAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Archiver writes documents under a fixed key prefix in one bucket.
type Archiver struct {
	uploader uploaderAPI
	bucket   string
	prefix   string
	logger   *zap.Logger
}

// NewArchiver builds an archiver on top of an S3 client.
func NewArchiver(client *s3.Client, bucket, prefix string, logger *zap.Logger) *Archiver {
	return &Archiver{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
		logger:   logger,
	}
}

// Archive stores one document. The returned error is informational only.
func (a *Archiver) Archive(ctx context.Context, key, contentType string, data []byte) error {
	fullKey := path.Join(a.prefix, key)
	_, err := a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(fullKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s to s3://%s: %w", fullKey, a.bucket, err)
	}

	a.logger.Info("Document archived",
		zap.String("bucket", a.bucket),
		zap.String("key", fullKey),
		zap.Int("bytes", len(data)))
	return nil
}
