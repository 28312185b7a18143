package storage_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"listing-merge/core/storage"
	"listing-merge/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		raw     string
		want    storage.Location
		remote  bool
		wantErr bool
	}{
		{raw: "./datasets/facebook_dataset.csv"},
		{raw: "s3://exports/google_dataset.csv", want: storage.Location{Bucket: "exports", Key: "google_dataset.csv"}, remote: true},
		{raw: "s3://exports/2024/05/website.csv", want: storage.Location{Bucket: "exports", Key: "2024/05/website.csv"}, remote: true},
		{raw: "s3://exports", remote: true, wantErr: true},
		{raw: "s3:///key.csv", remote: true, wantErr: true},
		{raw: "s3://exports/dir/", remote: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			loc, remote, err := storage.ParseLocation(tt.raw)
			assert.Equal(t, tt.remote, remote)
			assert.Equal(t, tt.remote, storage.IsRemote(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc)
		})
	}

	assert.Equal(t, "s3://exports/a.csv", storage.Location{Bucket: "exports", Key: "a.csv"}.String())
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	loc := storage.Location{Bucket: "exports", Key: "2024/google_dataset.csv"}

	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", ctx, "exports", "2024/google_dataset.csv", mock.Anything).
			Return(io.NopCloser(strings.NewReader("name,city\n")), nil)

		dir := filepath.Join(t.TempDir(), "staging")
		path, err := storage.Download(ctx, client, loc, dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "google_dataset.csv"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "name,city\n", string(data))
		client.AssertExpectations(t)
	})

	t.Run("GetFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", ctx, "exports", "2024/google_dataset.csv", mock.Anything).
			Return(nil, errors.New("access denied"))

		_, err := storage.Download(ctx, client, loc, t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	src := filepath.Join(t.TempDir(), "merged.csv")
	require.NoError(t, os.WriteFile(src, []byte("company_name\nAcme\n"), 0o644))
	loc := storage.Location{Bucket: "results", Key: "merged.csv"}

	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", ctx, "results", "merged.csv", mock.Anything, int64(18),
			mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "text/csv" })).
			Return(minio.UploadInfo{}, nil)

		require.NoError(t, storage.Upload(ctx, client, src, loc, "text/csv"))
		client.AssertExpectations(t)
	})

	t.Run("PutFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", ctx, "results", "merged.csv", mock.Anything, int64(18), mock.Anything).
			Return(minio.UploadInfo{}, errors.New("quota exceeded"))

		err := storage.Upload(ctx, client, src, loc, "text/csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "s3://results/merged.csv")
	})

	t.Run("MissingFile", func(t *testing.T) {
		err := storage.Upload(ctx, new(mocks.Client), filepath.Join(t.TempDir(), "nope.csv"), loc, "text/csv")
		assert.Error(t, err)
	})
}

func TestCheckBucket(t *testing.T) {
	ctx := context.Background()
	loc := storage.Location{Bucket: "exports", Key: "a.csv"}

	client := new(mocks.Client)
	client.On("BucketExists", ctx, "exports").Return(true, nil).Once()
	assert.NoError(t, storage.CheckBucket(ctx, client, loc))

	client.On("BucketExists", ctx, "exports").Return(false, nil).Once()
	assert.ErrorContains(t, storage.CheckBucket(ctx, client, loc), "does not exist")

	client.On("BucketExists", ctx, "exports").Return(false, errors.New("dial tcp")).Once()
	assert.ErrorContains(t, storage.CheckBucket(ctx, client, loc), "dial tcp")
}
