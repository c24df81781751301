package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// objectAPI is the subset of *s3.Client the stores use.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type S3Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL overrides URL derivation, e.g. a CDN in front of the bucket.
	PublicBaseURL string
	Timeout       time.Duration
}

type S3Store struct {
	provider   Provider
	api        objectAPI
	bucket     string
	region     string
	endpoint   string
	publicBase string
	log        *zap.Logger
}

// CustomS3Store is an S3-compatible bucket configured from the settings table.
type CustomS3Store struct{ *S3Store }

func NewS3Store(opts S3Options, log *zap.Logger) *S3Store {
	return newS3Store(ProviderS3, opts, log)
}

func NewCustomS3Store(opts S3Options, log *zap.Logger) (*CustomS3Store, error) {
	if strings.TrimSpace(opts.AccessKeyID) == "" || strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("%w: s3_access_key_id and s3_bucket are required", ErrNotConfigured)
	}
	return &CustomS3Store{newS3Store(ProviderS3Custom, opts, log)}, nil
}

func newS3Store(p Provider, opts S3Options, log *zap.Logger) *S3Store {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	cfg, err := awsConfig(context.Background(), opts)
	if err != nil {
		log.Warn("aws default config unavailable, requests will be unsigned", zap.Error(err))
		cfg = aws.Config{Region: opts.Region, HTTPClient: &http.Client{Timeout: opts.Timeout}}
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			// most S3-compatible services (MinIO, R2, Spaces) only do path-style
			o.UsePathStyle = true
		}
	})
	return &S3Store{
		provider:   p,
		api:        client,
		bucket:     opts.Bucket,
		region:     opts.Region,
		endpoint:   strings.TrimRight(opts.Endpoint, "/"),
		publicBase: strings.TrimRight(opts.PublicBaseURL, "/"),
		log:        log.With(zap.String("provider", string(p))),
	}
}

// awsConfig signs with the static keys when set, otherwise with the SDK
// default chain (environment, shared files, container or instance role).
func awsConfig(ctx context.Context, opts S3Options) (aws.Config, error) {
	httpClient := &http.Client{Timeout: opts.Timeout}
	if opts.AccessKeyID != "" {
		return aws.Config{
			Region:      opts.Region,
			HTTPClient:  httpClient,
			Credentials: credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		}, nil
	}
	return config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithHTTPClient(httpClient),
	)
}

func (s *S3Store) Provider() Provider { return s.provider }

// CreateFolder makes no network call: S3 folders are key prefixes.
func (s *S3Store) CreateFolder(_ context.Context, clientName, nationalID string) (Folder, error) {
	return Folder{ID: FolderToken(FolderName(clientName, nationalID))}, nil
}

func (s *S3Store) Upload(ctx context.Context, fileName string, content []byte, mimeType, folder string) (string, error) {
	key := ObjectKey(folder, fileName)
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentType:   aws.String(mimeType),
		ContentLength: aws.Int64(int64(len(content))),
	})
	if err != nil {
		s.log.Warn("s3 put failed", zap.String("key", key), zap.Error(err))
		return "", &ProviderError{Provider: s.provider, Op: "upload", Message: s3Message(err), Err: err}
	}
	s.log.Info("s3 object stored", zap.String("key", key), zap.Int("bytes", len(content)))
	return s.objectURL(key), nil
}

func (s *S3Store) Ping(ctx context.Context) error {
	if _, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return &ProviderError{Provider: s.provider, Op: "ping", Message: s3Message(err), Err: err}
	}
	return nil
}

func (s *S3Store) objectURL(key string) string {
	escaped := escapeKey(key)
	switch {
	case s.publicBase != "":
		return s.publicBase + "/" + escaped
	case s.endpoint != "":
		return s.endpoint + "/" + s.bucket + "/" + escaped
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
	}
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func s3Message(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.ErrorMessage(); msg != "" {
			return apiErr.ErrorCode() + ": " + msg
		}
		return apiErr.ErrorCode()
	}
	return err.Error()
}
