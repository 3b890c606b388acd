package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUploader struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &manager.UploadOutput{}, nil
}

func TestArchiveUploadsUnderPrefix(t *testing.T) {
	fake := &fakeUploader{}
	a := &Archiver{uploader: fake, bucket: "luvix-onboarding", prefix: "submissions", logger: zap.NewNop()}

	err := a.Archive(context.Background(), "Acme_Retail.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "luvix-onboarding", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "submissions/Acme_Retail.pdf", aws.ToString(fake.input.Key))
	assert.Equal(t, "application/pdf", aws.ToString(fake.input.ContentType))

	body, _ := io.ReadAll(fake.input.Body)
	assert.Equal(t, []byte("%PDF"), body)
}

func TestArchiveWrapsError(t *testing.T) {
	fake := &fakeUploader{err: errors.New("access denied")}
	a := &Archiver{uploader: fake, bucket: "luvix-onboarding", prefix: "submissions", logger: zap.NewNop()}

	err := a.Archive(context.Background(), "doc.pdf", "application/pdf", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://luvix-onboarding")
}
