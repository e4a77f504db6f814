package s3_adapter

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestImageStorage_Upload(t *testing.T) {
	putter := &fakePutter{}
	storage := &ImageStorage{client: putter, bucket: "addisnest-images", publicBaseURL: "https://cdn.addisnest.com"}

	url, err := storage.Upload(context.Background(), "properties/a/b.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.addisnest.com/properties/a/b.png", url)
	assert.Equal(t, "addisnest-images", *putter.input.Bucket)
	assert.Equal(t, "image/png", *putter.input.ContentType)
	assert.Equal(t, []byte("png-bytes"), putter.body)
}

func TestImageStorage_UploadError(t *testing.T) {
	storage := &ImageStorage{client: &fakePutter{err: errors.New("AccessDenied")}, bucket: "b", publicBaseURL: "https://b"}

	_, err := storage.Upload(context.Background(), "k", "image/png", []byte("x"))
	assert.Error(t, err)
}

func TestNewImageStorage_RequiresBucket(t *testing.T) {
	_, err := NewImageStorage(context.Background(), "", "eu-west-1", "")
	assert.Error(t, err)
}
