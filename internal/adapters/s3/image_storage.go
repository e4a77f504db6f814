package s3_adapter

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/port"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageStorage кладет изображения объявлений в S3 бакет.
type ImageStorage struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
}

// NewImageStorage загружает AWS конфигурацию по стандартной цепочке (env, shared config, IAM роль).
func NewImageStorage(ctx context.Context, bucket, region, publicBaseURL string) (*ImageStorage, error) {
	if bucket == "" || region == "" {
		return nil, fmt.Errorf("s3 adapter: bucket and region are required")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &ImageStorage{
		client:        s3.NewFromConfig(cfg),
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *ImageStorage) Upload(ctx context.Context, key string, contentType string, body []byte) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "S3ImageStorage",
		"bucket":    s.bucket,
		"key":       key,
	})

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Failed to upload image to S3", err, nil)
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	logger.Debug("Image uploaded", port.Fields{"size": len(body)})
	return s.publicBaseURL + "/" + key, nil
}
