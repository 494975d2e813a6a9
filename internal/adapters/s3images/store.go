// Package s3images adapts S3-compatible object storage to the image store
// collaborator contract: upload a buffer, get a public URL back; delete a
// set of URLs best-effort.
package s3images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ZaidAr98/PropTrack/internal/adapters/observability"
)

const keyPrefix = "properties/"

type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional, for DO Spaces / R2 / MinIO
	AccessKeyID     string
	SecretAccessKey string
}

type Store struct {
	client *s3.Client
	cfg    Config
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	return &Store{client: client, cfg: cfg}, nil
}

// Upload stores one image under a fresh key and returns its public URL.
func (s *Store) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	key := keyPrefix + uuid.NewString() + extFor(contentType)

	start := time.Now()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	observability.ObserveImageStore("upload", err, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return PublicURL(s.cfg, key), nil
}

// DeleteMany removes each URL's object independently. One failed delete does
// not stop the rest; the aggregated error is returned for logging only.
func (s *Store) DeleteMany(ctx context.Context, urls []string) error {
	var errs []error
	for _, u := range urls {
		key, ok := KeyFromURL(s.cfg, u)
		if !ok {
			log.Warn().Str("url", u).Msg("image url not recognized; skipping delete")
			continue
		}
		start := time.Now()
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    aws.String(key),
		})
		observability.ObserveImageStore("delete", err, time.Since(start))
		if err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// PublicURL builds the public URL for a stored key.
func PublicURL(cfg Config, key string) string {
	if cfg.Endpoint != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
		return fmt.Sprintf("https://%s.%s/%s", cfg.Bucket, host, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", cfg.Bucket, cfg.Region, key)
}

// KeyFromURL recovers the object key from a public URL produced by
// PublicURL. Foreign URLs (seed data, hand-entered links) report false.
func KeyFromURL(cfg Config, u string) (string, bool) {
	idx := strings.Index(u, "/"+keyPrefix)
	if idx < 0 {
		return "", false
	}
	return u[idx+1:], true
}

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
