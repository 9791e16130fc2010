// Package storage wraps the MinIO Go client for the object storage image backend.
//
// The Client interface covers only what the catalog needs (bucket checks,
// stat, upload and download) so it can be mocked in unit tests; see
// core/storage/mocks. Works with AWS S3 and self-hosted MinIO.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
