// Package storage provides access to object storage for remote datasets.
//
// It wraps the MinIO Go client so that inputs, dataset archives and the merged
// output may live in S3 or a self-hosted MinIO instance. Such locations are
// written as s3://bucket/key; everything else is a local path.
//
// # Client Interface
//
// The Client interface abstracts the underlying provider, making it easy to
// mock storage interactions in unit tests (see core/storage/mocks).
//
// # Operations
//
//   - Download: copies an object into a local working directory.
//   - Upload: stores a local file (the merged output) as an object.
//   - CheckBucket: verifies the bucket of a location exists.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	loc, remote, err := storage.ParseLocation("s3://exports/google_dataset.csv")
//	path, err := storage.Download(ctx, client, loc, workDir)
package storage
