package source

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjectGetter struct {
	mock.Mock
}

func (m *mockObjectGetter) GetObject(
	ctx context.Context,
	params *s3.GetObjectInput,
	optFns ...func(*s3.Options),
) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri    string
		bucket string
		key    string
		valid  bool
	}{
		{uri: "s3://docs/intro.txt", bucket: "docs", key: "intro.txt", valid: true},
		{uri: "s3://docs/nested/path/a.md", bucket: "docs", key: "nested/path/a.md", valid: true},
		{uri: "s3://docs", valid: false},
		{uri: "s3://docs/", valid: false},
		{uri: "s3:///key", valid: false},
		{uri: "docs/intro.txt", valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.uri, func(t *testing.T) {
			bucket, key, err := ParseS3URI(tc.uri)
			if !tc.valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.bucket, bucket)
			assert.Equal(t, tc.key, key)
		})
	}
}

func TestS3Source_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		client := new(mockObjectGetter)
		client.On("GetObject", mock.Anything, &s3.GetObjectInput{
			Bucket: aws.String("docs"),
			Key:    aws.String("intro.txt"),
		}).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader("Hello.\n\nWorld!\n")),
		}, nil)

		doc, err := NewS3Source(client).Open(ctx, "s3://docs/intro.txt")
		require.NoError(t, err)
		assert.Equal(t, "s3://docs/intro.txt", doc.Name)
		assert.Equal(t, []string{"Hello.\n", "\n", "World!\n"}, doc.Lines)
		client.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		client := new(mockObjectGetter)
		client.On("GetObject", mock.Anything, mock.Anything).
			Return(nil, errors.New("NoSuchKey"))

		_, err := NewS3Source(client).Open(ctx, "s3://docs/missing.txt")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInputUnavailable)
		assert.Contains(t, err.Error(), "s3://docs/missing.txt")
	})

	t.Run("malformed uri", func(t *testing.T) {
		client := new(mockObjectGetter)
		_, err := NewS3Source(client).Open(ctx, "s3://docs")
		assert.ErrorIs(t, err, ErrInputUnavailable)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything)
	})

	t.Run("failed client construction is retried", func(t *testing.T) {
		client := new(mockObjectGetter)
		client.On("GetObject", mock.Anything, mock.Anything).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader("retry")),
		}, nil)

		calls := 0
		src := &S3Source{newClient: func(ctx context.Context) (ObjectGetter, error) {
			calls++
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return client, nil
		}}

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := src.Open(cancelled, "s3://docs/a.txt")
		assert.ErrorIs(t, err, context.Canceled)

		doc, err := src.Open(ctx, "s3://docs/a.txt")
		require.NoError(t, err)
		assert.Equal(t, "retry", doc.Text())

		_, _ = src.Open(ctx, "s3://docs/b.txt")
		assert.Equal(t, 2, calls, "a built client is reused")
	})

	t.Run("settings resolved on first open", func(t *testing.T) {
		resolved := false
		src := NewLazyS3Source(func(context.Context) (S3Settings, error) {
			resolved = true
			return S3Settings{}, errors.New("profile prod not found")
		})
		assert.False(t, resolved)

		_, err := src.Open(ctx, "s3://docs/a.txt")
		assert.True(t, resolved)
		assert.ErrorIs(t, err, ErrInputUnavailable)
		assert.ErrorContains(t, err, "profile prod not found")
	})

	t.Run("client construction failure", func(t *testing.T) {
		src := &S3Source{newClient: func(context.Context) (ObjectGetter, error) {
			return nil, errors.New("no credentials")
		}}
		_, err := src.Open(ctx, "s3://docs/a.txt")
		assert.ErrorIs(t, err, ErrInputUnavailable)
		assert.Contains(t, err.Error(), "no credentials")
	})
}
