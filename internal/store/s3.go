package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/cornerstone-church/site/internal/submission"
)

// S3Client is the subset of *s3.Client used by S3.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3 stores one object per submission under
// <prefix>/<category>/<20-digit unix nanos>-<id>.json, so a lexicographic
// listing is append order.
type S3 struct {
	client S3Client
	bucket string
	prefix string

	locks categoryLocks
	mu    sync.Mutex
	last  map[string]int64
}

// S3Option configures NewS3.
type S3Option func(*s3Options)

type s3Options struct {
	client S3Client
}

// WithS3Client uses a pre-configured client instead of loading AWS config.
func WithS3Client(c S3Client) S3Option {
	return func(o *s3Options) {
		o.client = c
	}
}

// NewS3 builds a store for cfg.Bucket. Static credentials are used when both
// keys are set; otherwise the default AWS credential chain applies.
func NewS3(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: S3_BUCKET and S3_REGION are required", ErrInvalidConfig)
	}

	o := &s3Options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		awsOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOpts = append(awsOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}

		awsCfg, err := config.LoadDefaultConfig(ctx, awsOpts...)
		if err != nil {
			return nil, fmt.Errorf("%w: load aws config: %v", ErrInvalidConfig, err)
		}

		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	return &S3{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		last:   make(map[string]int64),
	}, nil
}

func (s *S3) categoryPrefix(category string) string {
	if s.prefix == "" {
		return category + "/"
	}
	return s.prefix + "/" + category + "/"
}

// stamp returns a strictly increasing nanosecond stamp per category so keys
// written by this process sort in append order even if the clock stalls.
func (s *S3) stamp(category string, n int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if last := s.last[category]; n <= last {
		n = last + 1
	}
	s.last[category] = n
	return n
}

// Append writes s as a new object. Keys this process writes to a category
// never go backwards, even when timestamps collide.
func (s *S3) Append(ctx context.Context, category string, sub submission.Submission) (submission.Submission, error) {
	if err := checkCategory(category); err != nil {
		return submission.Submission{}, err
	}

	unlock := s.locks.lock(category)
	defer unlock()

	raw, err := json.Marshal(sub)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("encode submission: %w", err)
	}

	key := fmt.Sprintf("%s%020d-%s.json", s.categoryPrefix(category), s.stamp(category, sub.CreatedAt.UnixNano()), sub.ID)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return submission.Submission{}, classifyS3Error(err, "put submission")
	}
	return sub, nil
}

// List reads every object under the category prefix in key order.
func (s *S3) List(ctx context.Context, category string) ([]submission.Submission, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}

	var keys []string
	pages := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.categoryPrefix(category)),
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, classifyS3Error(err, "list submissions")
		}
		for _, obj := range page.Contents {
			if key := aws.ToString(obj.Key); strings.HasSuffix(key, ".json") {
				keys = append(keys, key)
			}
		}
	}

	out := make([]submission.Submission, 0, len(keys))
	for _, key := range keys {
		sub, err := s.get(ctx, key)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

func (s *S3) get(ctx context.Context, key string) (submission.Submission, error) {
	obj, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return submission.Submission{}, classifyS3Error(err, "get submission")
	}
	defer obj.Body.Close()

	raw, err := io.ReadAll(obj.Body)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("read %s: %w", key, err)
	}

	var sub submission.Submission
	if err := json.Unmarshal(raw, &sub); err != nil {
		return submission.Submission{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return sub, nil
}

func classifyS3Error(err error, operation string) error {
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, operation)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied":
			return fmt.Errorf("%w: %s", ErrAccessDenied, operation)
		case "NoSuchBucket":
			return fmt.Errorf("%w: %s", ErrBucketNotFound, operation)
		case "SlowDown", "ServiceUnavailable", "RequestTimeout":
			return fmt.Errorf("%w: %s: %v", ErrUnavailable, operation, err)
		default:
			return fmt.Errorf("%s failed (code: %s): %w", operation, apiErr.ErrorCode(), err)
		}
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}
