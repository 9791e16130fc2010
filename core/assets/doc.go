// Package assets caches remote images under a managed root.
//
// Acquire derives a deterministic file name from a stable key, returns the
// existing path when that name is already cached, and otherwise streams the
// remote content into the Store. There is no invalidation: once cached an
// image is kept as is.
//
// Two Store backends exist:
//
//   - FileStore: a directory on an afero filesystem (OS in production, memory in tests).
//   - BucketStore: an S3 compatible bucket through core/storage.
package assets
