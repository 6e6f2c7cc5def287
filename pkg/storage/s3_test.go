package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/JaimeStill/ems-backend/pkg/lifecycle"
	"github.com/JaimeStill/ems-backend/pkg/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeBucket struct {
	mu      sync.Mutex
	name    string
	objects map[string][]byte
}

func newFakeBucket(name string) *fakeBucket {
	return &fakeBucket{name: name, objects: make(map[string][]byte)}
}

func (b *fakeBucket) check(bucket *string) error {
	if aws.ToString(bucket) != b.name {
		return &types.NoSuchBucket{}
	}
	return nil
}

func (b *fakeBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if err := b.check(in.Bucket); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.objects[aws.ToString(in.Key)] = data
	b.mu.Unlock()
	return &s3.PutObjectOutput{}, nil
}

func (b *fakeBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if err := b.check(in.Bucket); err != nil {
		return nil, err
	}
	b.mu.Lock()
	data, ok := b.objects[aws.ToString(in.Key)]
	b.mu.Unlock()
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (b *fakeBucket) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if err := b.check(in.Bucket); err != nil {
		return nil, err
	}
	b.mu.Lock()
	_, ok := b.objects[aws.ToString(in.Key)]
	b.mu.Unlock()
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (b *fakeBucket) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if err := b.check(in.Bucket); err != nil {
		return nil, err
	}
	b.mu.Lock()
	delete(b.objects, aws.ToString(in.Key))
	b.mu.Unlock()
	return &s3.DeleteObjectOutput{}, nil
}

func (b *fakeBucket) HeadBucket(_ context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if err := b.check(in.Bucket); err != nil {
		return nil, err
	}
	return &s3.HeadBucketOutput{}, nil
}

func newObjectStore(t *testing.T, bucket *fakeBucket, maxSize int64) storage.System {
	t.Helper()

	sys := storage.NewS3(bucket, "ems-archive", "runs/", maxSize, testLogger())
	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	lc.WaitForStartup()
	return sys
}

func TestS3_RoundTrip(t *testing.T) {
	bucket := newFakeBucket("ems-archive")
	sys := newObjectStore(t, bucket, 0)
	ctx := context.Background()

	if err := sys.Store(ctx, "site-a/run.json", []byte(`{"cost":[1]}`)); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
	if _, ok := bucket.objects["runs/site-a/run.json"]; !ok {
		t.Fatalf("object keys = %v, want prefixed key", bucket.objects)
	}

	got, err := sys.Retrieve(ctx, "site-a/run.json")
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if string(got) != `{"cost":[1]}` {
		t.Errorf("Retrieve() = %s", got)
	}

	ok, err := sys.Exists(ctx, "site-a/run.json")
	if err != nil || !ok {
		t.Errorf("Exists() = %v, %v; want true", ok, err)
	}

	if err := sys.Delete(ctx, "site-a/run.json"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	ok, err = sys.Exists(ctx, "site-a/run.json")
	if err != nil || ok {
		t.Errorf("Exists() after delete = %v, %v; want false", ok, err)
	}
}

func TestS3_Errors(t *testing.T) {
	sys := newObjectStore(t, newFakeBucket("ems-archive"), 4)
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{
			name: "missing key",
			run: func() error {
				_, err := sys.Retrieve(ctx, "absent.json")
				return err
			},
			want: storage.ErrNotFound,
		},
		{
			name: "traversal",
			run:  func() error { return sys.Store(ctx, "../escape", []byte("x")) },
			want: storage.ErrInvalidKey,
		},
		{
			name: "absolute",
			run:  func() error { return sys.Store(ctx, "/etc/passwd", []byte("x")) },
			want: storage.ErrInvalidKey,
		},
		{
			name: "too large",
			run:  func() error { return sys.Store(ctx, "big", []byte("12345")) },
			want: storage.ErrTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestS3_DeleteMissingIsNoop(t *testing.T) {
	sys := newObjectStore(t, newFakeBucket("ems-archive"), 0)
	if err := sys.Delete(context.Background(), "never-stored"); err != nil {
		t.Errorf("Delete() = %v, want nil", err)
	}
}

func TestOpen_SelectsBackend(t *testing.T) {
	fsCfg := &storage.Config{BasePath: t.TempDir()}
	if err := fsCfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if _, err := storage.Open(fsCfg, testLogger()); err != nil {
		t.Errorf("Open(filesystem) failed: %v", err)
	}

	s3Cfg := &storage.Config{Backend: storage.BackendS3, S3: storage.S3Config{Bucket: "ems-archive"}}
	if err := s3Cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if _, err := storage.Open(s3Cfg, testLogger()); err != nil {
		t.Errorf("Open(s3) failed: %v", err)
	}

	if _, err := storage.Open(&storage.Config{Backend: "tape"}, testLogger()); err == nil {
		t.Error("Open(tape) succeeded, want error")
	}
}
