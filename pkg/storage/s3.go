// Package storage archives computed labels in an S3-compatible bucket (MinIO
// in development). Objects are immutable JSON documents keyed by item code
// and label id.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/ghuser/bomlabel/pkg/config"
)

// ErrObjectNotFound is returned by Get when the key does not exist.
var ErrObjectNotFound = errors.New("storage: object not found")

// Config holds explicit construction parameters.
type Config struct {
	Endpoint        string // optional; set for MinIO
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// HTTPClient overrides the SDK transport. Tests use it to fake S3.
	HTTPClient *http.Client
}

// ConfigFromApp maps the MinIO settings of the application config.
func ConfigFromApp(cfg *config.Config) Config {
	return Config{
		Endpoint:        cfg.MinioEndpoint,
		Region:          cfg.MinioRegion,
		Bucket:          cfg.MinioBucket,
		AccessKeyID:     cfg.MinioRootUser,
		SecretAccessKey: cfg.MinioRootPassword,
	}
}

// LabelArchive writes label documents to a single bucket.
type LabelArchive struct {
	client *s3.Client
	bucket string
}

// NewLabelArchive builds an S3 client for cfg. Path-style addressing is
// enabled whenever a custom endpoint is set, which MinIO requires.
func NewLabelArchive(ctx context.Context, cfg Config) (*LabelArchive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		if cfg.HTTPClient != nil {
			o.HTTPClient = cfg.HTTPClient
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})
	return &LabelArchive{client: client, bucket: cfg.Bucket}, nil
}

// LabelKey is the object key for one computed label.
func LabelKey(itemCode, labelID string) string {
	return path.Join("labels", itemCode, labelID+".json")
}

// EnsureBucket creates the bucket when it does not exist yet.
func (a *LabelArchive) EnsureBucket(ctx context.Context) error {
	if _, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: &a.bucket}); err == nil {
		return nil
	}
	_, err := a.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: &a.bucket})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("storage: create bucket %s: %w", a.bucket, err)
	}
	return nil
}

// Put stores body under key as application/json. Existing objects are overwritten;
// label ids are unique so this only happens on event redelivery.
func (a *LabelArchive) Put(ctx context.Context, key string, body []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &a.bucket,
		Key:           &key,
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("storage: put %s: %w", key, err)
	}
	return nil
}

// Get returns the object stored under key.
func (a *LabelArchive) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &a.bucket, Key: &key})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("storage: get %s: %w", key, err)
	}
	defer out.Body.Close() //nolint:errcheck
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	return data, nil
}

// Ping checks that the bucket is reachable.
func (a *LabelArchive) Ping(ctx context.Context) error {
	if _, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: &a.bucket}); err != nil {
		return fmt.Errorf("storage: head bucket %s: %w", a.bucket, err)
	}
	return nil
}
