package mediahost

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"vidhub/internal/config"
)

// Asset is what the host hands back for a stored object. AssetID is the
// object key; it is the only handle needed to delete the object later.
type Asset struct {
	URL     string
	AssetID string
}

// Client stores media on an S3-compatible host (AWS S3 or MinIO via a custom
// endpoint).
type Client struct {
	api        *s3.Client
	bucket     string
	publicBase string
}

func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is not configured")
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
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := cfg.MediaPublicBase
	if publicBase == "" {
		if cfg.S3Endpoint != "" {
			publicBase = strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
		} else {
			publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
		}
	}

	return &Client{api: api, bucket: cfg.S3Bucket, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

// Upload stores data under a fresh date-partitioned key and returns the
// public URL plus the key for later deletion.
func (c *Client) Upload(ctx context.Context, data []byte, contentType string) (Asset, error) {
	key := newObjectKey()

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Asset{}, fmt.Errorf("put object %s: %w", key, err)
	}

	return Asset{URL: c.publicBase + "/" + key, AssetID: key}, nil
}

// Delete removes the object behind assetID. S3 deletes are idempotent: a
// missing key is not an error, and neither is an empty id.
func (c *Client) Delete(ctx context.Context, assetID string) error {
	if assetID == "" {
		return nil
	}
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(assetID),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", assetID, err)
	}
	return nil
}

func newObjectKey() string {
	d := time.Now()
	return fmt.Sprintf("media/%d/%02d/%02d/%s", d.Year(), d.Month(), d.Day(), uuid.NewString())
}
