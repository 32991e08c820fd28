package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"github.com/embercoffee/contact-service/internal/config"
)

// ErrBucketNotFound indicates the attachment bucket does not exist or is
// unreachable, as opposed to a transient upload failure.
var ErrBucketNotFound = errors.New("attachment bucket not found")

const keyPrefix = "contacts/"

// AttachmentStore uploads binary payloads and returns their public URL.
type AttachmentStore interface {
	Upload(ctx context.Context, data []byte, contentType, ext string) (string, error)
}

// S3AttachmentStore implements AttachmentStore on an S3-compatible bucket.
type S3AttachmentStore struct {
	client        *s3.Client
	bucket        string
	region        string
	publicBaseURL string
}

// NewS3AttachmentStore creates the store. Endpoint is optional and enables
// path-style addressing for MinIO-compatible stores.
func NewS3AttachmentStore(ctx context.Context, cfg config.StorageConfig) (*S3AttachmentStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3AttachmentStore{
		client:        client,
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload stores the payload under a collision-resistant generated name and
// returns its publicly retrievable URL.
func (s *S3AttachmentStore) Upload(ctx context.Context, data []byte, contentType, ext string) (string, error) {
	key := objectKey(ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		// PutObject has no modeled NoSuchBucket type; the code only shows up
		// on the generic API error.
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchBucket" {
			return "", ErrBucketNotFound
		}
		return "", fmt.Errorf("put object: %w", err)
	}

	return s.publicURL(key), nil
}

func (s *S3AttachmentStore) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// objectKey builds contacts/<unix-ms>-<token>.<ext>.
func objectKey(ext string) string {
	token := strings.Split(uuid.NewString(), "-")[0]
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s%d-%s.%s", keyPrefix, time.Now().UnixMilli(), token, ext)
}
