package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/text-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ObjectGetter is the part of the S3 client used to fetch documents
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Settings selects the AWS credentials and endpoint used for s3:// documents
type S3Settings struct {
	Profile   string
	Region    string
	Endpoint  string
	PathStyle bool
}

// S3Source reads documents addressed as s3://bucket/key
type S3Source struct {
	newClient func(ctx context.Context) (ObjectGetter, error)

	mu     sync.Mutex
	client ObjectGetter
}

// NewS3Source wraps an existing client
func NewS3Source(client ObjectGetter) *S3Source {
	return &S3Source{
		newClient: func(context.Context) (ObjectGetter, error) { return client, nil },
	}
}

// NewS3SourceFromSettings defers AWS configuration loading until the first s3:// document is opened
func NewS3SourceFromSettings(settings S3Settings) *S3Source {
	return NewLazyS3Source(func(context.Context) (S3Settings, error) {
		return settings, nil
	})
}

// NewLazyS3Source resolves its settings only when an s3:// document is opened,
// so a broken S3 profile does not affect other sources.
func NewLazyS3Source(resolve func(ctx context.Context) (S3Settings, error)) *S3Source {
	return &S3Source{
		newClient: func(ctx context.Context) (ObjectGetter, error) {
			settings, err := resolve(ctx)
			if err != nil {
				return nil, err
			}
			return NewS3Client(ctx, settings)
		},
	}
}

// NewS3Client builds an S3 client from the default AWS configuration chain
func NewS3Client(ctx context.Context, settings S3Settings) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if settings.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(settings.Profile))
	}
	if settings.Region != "" {
		opts = append(opts, config.WithRegion(settings.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
		}
		o.UsePathStyle = settings.PathStyle
	}), nil
}

func (s *S3Source) Open(ctx context.Context, uri string) (*domain.Document, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, unavailable(uri, err)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, unavailable(uri, err)
	}

	zerolog.Ctx(ctx).Debug().Str("bucket", bucket).Str("key", key).Msg("fetching object")

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, unavailable(uri, err)
	}
	defer out.Body.Close()

	return ReadDocument(uri, out.Body)
}

// getClient builds the client on first use. Failures are not cached, the next
// Open retries with its own context.
func (s *S3Source) getClient(ctx context.Context) (ObjectGetter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}
	client, err := s.newClient(ctx)
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}

// ParseS3URI splits s3://bucket/key into its bucket and key
func ParseS3URI(uri string) (bucket, key string, err error) {
	if Scheme(uri) != SchemeS3 {
		return "", "", fmt.Errorf("not an s3 uri: %s", uri)
	}
	bucket, key, found := strings.Cut(trimScheme(uri, SchemeS3), "/")
	if !found || bucket == "" || key == "" {
		return "", "", errors.New("expected s3://bucket/key")
	}
	return bucket, key, nil
}
