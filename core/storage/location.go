package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Scheme prefixes locations that live in object storage.
const Scheme = "s3://"

// Location addresses one object.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return Scheme + l.Bucket + "/" + l.Key
}

// ParseLocation splits an s3://bucket/key string. ok is false for local paths.
func ParseLocation(raw string) (loc Location, ok bool, err error) {
	if !strings.HasPrefix(raw, Scheme) {
		return Location{}, false, nil
	}
	rest := strings.TrimPrefix(raw, Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return Location{}, true, fmt.Errorf("invalid storage location %q, want s3://bucket/key", raw)
	}
	return Location{Bucket: bucket, Key: key}, true, nil
}

// IsRemote reports whether raw addresses object storage.
func IsRemote(raw string) bool {
	return strings.HasPrefix(raw, Scheme)
}

// Download copies the object at loc into a file under dir and returns its path.
func Download(ctx context.Context, client Client, loc Location, dir string) (string, error) {
	reader, err := client.GetObject(ctx, loc.Bucket, loc.Key, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", loc, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	target := filepath.Join(dir, filepath.Base(loc.Key))
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", target, err)
	}

	if _, err := io.Copy(out, reader); err != nil {
		_ = out.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("failed to download %s: %w", loc, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", target, err)
	}
	return target, nil
}

// Upload stores the local file src at loc.
func Upload(ctx context.Context, client Client, src string, loc Location, contentType string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	_, err = client.PutObject(ctx, loc.Bucket, loc.Key, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", loc, err)
	}
	return nil
}

// CheckBucket verifies that the bucket of loc is reachable and exists.
func CheckBucket(ctx context.Context, client Client, loc Location) error {
	exists, err := client.BucketExists(ctx, loc.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", loc.Bucket)
	}
	return nil
}
