package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"brainrot-catalog/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
)

const (
	BackendFilesystem = "filesystem"
	BackendBucket     = "bucket"
)

// ErrNotFound is returned by Open when the named asset is not cached.
var ErrNotFound = errors.New("asset not found")

// Store is a flat namespace of cached images under one managed root.
type Store interface {
	// Exists reports whether name is already cached.
	Exists(ctx context.Context, name string) (bool, error)
	// Write streams r into name. size may be -1 when unknown.
	Write(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	// Open returns the cached content of name.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Path returns the public path stored on records for name.
	Path(name string) string
}

// NameOf returns the file name of a stored public image path.
func NameOf(publicPath string) string {
	return path.Base(publicPath)
}

// ValidName reports whether name is a plain file name that cannot escape the asset root.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}

func publicPath(prefix, name string) string {
	return strings.TrimRight(prefix, "/") + "/" + name
}

// FileStore keeps images in a directory of an afero filesystem.
type FileStore struct {
	fs     afero.Fs
	root   string
	prefix string
}

// NewFileStore returns a store rooted at root on fs.
func NewFileStore(fs afero.Fs, root, prefix string) *FileStore {
	return &FileStore{fs: fs, root: root, prefix: prefix}
}

func (s *FileStore) Exists(_ context.Context, name string) (bool, error) {
	ok, err := afero.Exists(s.fs, filepath.Join(s.root, name))
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
	return ok, nil
}

// Write copies r into a temporary file and renames it into place, so a
// failed download never leaves a partial file under the final name.
func (s *FileStore) Write(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	if err := s.fs.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("create asset root: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, s.root, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := s.fs.Rename(tmpName, filepath.Join(s.root, name)); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := s.fs.Open(filepath.Join(s.root, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *FileStore) Path(name string) string { return publicPath(s.prefix, name) }

// BucketStore keeps images as objects in an S3 compatible bucket.
type BucketStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketStore returns a store backed by bucket.
func NewBucketStore(client storage.Client, bucket, prefix string) *BucketStore {
	return &BucketStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *BucketStore) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
	return true, nil
}

func (s *BucketStore) Write(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}

func (s *BucketStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	ok, err := s.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
}

func (s *BucketStore) Path(name string) string { return publicPath(s.prefix, name) }

// NewStore builds the configured backend. The bucket backend creates its bucket when missing.
func NewStore(ctx context.Context, cfg Config, storageCfg storage.Config) (Store, error) {
	switch cfg.Backend {
	case BackendFilesystem, "":
		return NewFileStore(afero.NewOsFs(), cfg.Root, cfg.PublicPrefix), nil
	case BackendBucket:
		client, err := storage.NewClient(storageCfg)
		if err != nil {
			return nil, err
		}
		if err := storage.EnsureBucket(ctx, client, storageCfg.Bucket, storageCfg.Region); err != nil {
			return nil, err
		}
		return NewBucketStore(client, storageCfg.Bucket, cfg.PublicPrefix), nil
	default:
		return nil, fmt.Errorf("unknown asset backend %q", cfg.Backend)
	}
}
