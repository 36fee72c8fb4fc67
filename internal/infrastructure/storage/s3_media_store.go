package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"topspot/internal/config"
	"topspot/internal/domain"
	"topspot/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadBytes = 5 << 20

var ErrMissingBucket = errors.New("missing S3_BUCKET")

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3MediaStore uploads images under <folder>/<uuid>.<ext> and returns the
// public URL of the object.
type S3MediaStore struct {
	client  putter
	bucket  string
	baseURL string
	logger  *zap.Logger
}

var _ interfaces.IMediaStore = (*S3MediaStore)(nil)

func NewS3MediaStore(awsCfg aws.Config, cfg config.S3Config, logger *zap.Logger) (*S3MediaStore, error) {
	if cfg.Bucket == "" {
		return nil, ErrMissingBucket
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3MediaStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
		logger:  logger.Named("media.s3"),
	}, nil
}

func (s *S3MediaStore) Upload(ctx context.Context, folder string, data []byte) (string, error) {
	if len(data) > maxUploadBytes {
		return "", domain.New(domain.KindInvalidInput, "FILE_TOO_LARGE", "file exceeds 5MB")
	}
	contentType := http.DetectContentType(data)
	ext, ok := extensions[contentType]
	if !ok {
		return "", domain.New(domain.KindInvalidInput, "UNSUPPORTED_MEDIA_TYPE", "only jpeg, png, gif and webp images are accepted")
	}

	key := strings.Trim(folder, "/") + "/" + uuid.NewString() + ext
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("put object failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("s3 upload: %w", err)
	}
	s.logger.Info("put object success", zap.String("key", key), zap.Int("bytes", len(data)))
	return s.baseURL + "/" + key, nil
}

func publicBaseURL(cfg config.S3Config) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}
