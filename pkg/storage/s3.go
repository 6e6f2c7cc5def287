package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/JaimeStill/ems-backend/pkg/lifecycle"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/docker/go-units"
)

// ObjectAPI is the subset of the S3 client used by the object store.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type objectStore struct {
	client  ObjectAPI
	bucket  string
	prefix  string
	maxSize int64
	logger  *slog.Logger
}

// NewS3 creates a store that keeps blobs as objects in bucket, under prefix.
func NewS3(client ObjectAPI, bucket, prefix string, maxSize int64, logger *slog.Logger) System {
	return &objectStore{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		maxSize: maxSize,
		logger:  logger.With("system", "storage", "backend", BackendS3),
	}
}

// NewS3Client builds an S3 client from cfg. Without static credentials the
// client signs nothing, which suits public or locally emulated buckets.
func NewS3Client(cfg *S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.UsePathStyle,
		Credentials:  aws.AnonymousCredentials{},
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKeyID != "" {
		creds := aws.Credentials{
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			Source:          "ems-config",
		}
		opts.Credentials = aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return creds, nil
		})
	}
	return s3.New(opts)
}

func (o *objectStore) Start(lc *lifecycle.Coordinator) error {
	o.logger.Info("starting storage system", "bucket", o.bucket, "prefix", o.prefix)

	lc.OnStartup(func() {
		_, err := o.client.HeadBucket(lc.Context(), &s3.HeadBucketInput{Bucket: aws.String(o.bucket)})
		if err != nil {
			o.logger.Error("bucket not reachable", "bucket", o.bucket, "error", err)
			return
		}
		o.logger.Info("bucket verified")
	})

	return nil
}

func (o *objectStore) Store(ctx context.Context, key string, data []byte) error {
	k, err := o.key(key)
	if err != nil {
		return err
	}

	if o.maxSize > 0 && int64(len(data)) > o.maxSize {
		return fmt.Errorf("%w: %s > %s", ErrTooLarge,
			units.HumanSize(float64(len(data))), units.HumanSize(float64(o.maxSize)))
	}

	_, err = o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(o.bucket),
		Key:           aws.String(k),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return mapObjectError(err, "put object")
	}

	o.logger.Debug("blob stored", "key", k, "size", units.HumanSize(float64(len(data))))
	return nil
}

func (o *objectStore) Retrieve(ctx context.Context, key string) ([]byte, error) {
	k, err := o.key(key)
	if err != nil {
		return nil, err
	}

	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(k),
	})
	if err != nil {
		return nil, mapObjectError(err, "get object")
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	return data, nil
}

func (o *objectStore) Delete(ctx context.Context, key string) error {
	k, err := o.key(key)
	if err != nil {
		return err
	}

	_, err = o.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(k),
	})
	if err != nil && !errors.Is(mapObjectError(err, ""), ErrNotFound) {
		return mapObjectError(err, "delete object")
	}
	return nil
}

func (o *objectStore) Exists(ctx context.Context, key string) (bool, error) {
	k, err := o.key(key)
	if err != nil {
		return false, err
	}

	_, err = o.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(k),
	})
	if err != nil {
		mapped := mapObjectError(err, "head object")
		if errors.Is(mapped, ErrNotFound) {
			return false, nil
		}
		return false, mapped
	}
	return true, nil
}

// key validates a blob key and returns the object key under the store prefix.
func (o *objectStore) key(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	if o.prefix == "" {
		return cleaned, nil
	}
	return o.prefix + "/" + cleaned, nil
}

func mapObjectError(err error, op string) error {
	var (
		noKey    *types.NoSuchKey
		notFound *types.NotFound
	)
	switch {
	case errors.As(err, &noKey), errors.As(err, &notFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
