package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/local-avatar-api/internal/config"
	"github.com/rs/zerolog"
)

// s3Presigner hands out presigned GET URLs for objects in an S3-compatible bucket.
type s3Presigner struct {
	bucket  string
	ttl     time.Duration
	presign *s3.PresignClient
	log     zerolog.Logger
}

func newS3Presigner(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (*s3Presigner, error) {
	sdkCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 client configuration: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	log.Info().
		Str("bucket", cfg.BucketName).
		Dur("ttl", ttl).
		Msg("S3 presigner initialized")

	return &s3Presigner{
		bucket:  cfg.BucketName,
		ttl:     ttl,
		presign: s3.NewPresignClient(client),
		log:     log,
	}, nil
}

// URL presigns a download of key.
func (p *s3Presigner) URL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	resp, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		p.log.Error().Err(err).Str("key", key).Msg("Failed to presign avatar download")
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}

	return resp.URL, nil
}
