package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/nexhire/nexhire/pkg/fsx"
)

// S3FileSystem implementa fsx.FileSystem sobre un bucket de S3.
type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3FileSystem(client *s3.Client, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (s *S3FileSystem) key(path string) string {
	return s.prefix + strings.TrimPrefix(path, "/")
}

func (s *S3FileSystem) Write(ctx context.Context, path string, data []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fsx.ErrWriteFailed().WithDetail("path", path).WithDetail("error", err.Error())
	}
	return nil
}

func (s *S3FileSystem) Read(ctx context.Context, path string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fsx.ErrFileNotFound().WithDetail("path", path)
		}
		return nil, fsx.ErrReadFailed().WithDetail("path", path).WithDetail("error", err.Error())
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fsx.ErrReadFailed().WithDetail("path", path).WithDetail("error", err.Error())
	}
	return data, nil
}

func (s *S3FileSystem) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fsx.ErrReadFailed().WithDetail("path", path).WithDetail("error", err.Error())
	}
	return true, nil
}

func (s *S3FileSystem) Delete(ctx context.Context, path string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	}); err != nil {
		return fsx.ErrWriteFailed().WithDetail("path", path).WithDetail("error", err.Error())
	}
	return nil
}
