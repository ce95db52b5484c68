package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	appconfig "github.com/farrelzna/Zhourt-URLShortner/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores an object and returns its public URL. QR images for
// short links go through this boundary.
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

type S3Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Uploader(ctx context.Context, cfg appconfig.Config) (*S3Uploader, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 bucket not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &S3Uploader{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %q: %w", name, err)
	}
	return u.objectURL(name), nil
}

func (u *S3Uploader) objectURL(name string) string {
	return u.publicURL + "/" + strings.TrimPrefix(name, "/")
}
