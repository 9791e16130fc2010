package assets

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"brainrot-catalog/core/storage"
	"brainrot-catalog/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(afero.NewMemMapFs(), "/data/images", "/images/")

	ok, err := s.Exists(ctx, "a.png")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Open(ctx, "a.png")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Write(ctx, "a.png", strings.NewReader("img"), 3, "image/png"))

	ok, err = s.Exists(ctx, "a.png")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Open(ctx, "a.png")
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "img", string(data))

	assert.Equal(t, "/images/a.png", s.Path("a.png"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestFileStore_WriteFailureCleansUp(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewFileStore(fs, "/images", "/images")

	err := s.Write(context.Background(), "b.png", failingReader{}, -1, "")
	assert.ErrorContains(t, err, "connection reset")

	entries, err := afero.ReadDir(fs, "/images")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBucketStore(t *testing.T) {
	ctx := context.Background()

	t.Run("ExistsMissing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", ctx, "imgs", "a.png", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

		ok, err := NewBucketStore(client, "imgs", "/images").Exists(ctx, "a.png")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ExistsError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", ctx, "imgs", "a.png", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, errors.New("timeout"))

		_, err := NewBucketStore(client, "imgs", "/images").Exists(ctx, "a.png")
		assert.ErrorContains(t, err, "stat a.png")
	})

	t.Run("Write", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", ctx, "imgs", "a.png", mock.Anything, int64(3), minio.PutObjectOptions{ContentType: "image/png"}).
			Return(minio.UploadInfo{}, nil)

		s := NewBucketStore(client, "imgs", "/images")
		require.NoError(t, s.Write(ctx, "a.png", strings.NewReader("img"), 3, "image/png"))
		client.AssertExpectations(t)
		assert.Equal(t, "/images/a.png", s.Path("a.png"))
	})

	t.Run("OpenMissing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", ctx, "imgs", "gone.png", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

		_, err := NewBucketStore(client, "imgs", "/images").Open(ctx, "gone.png")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNewStore_UnknownBackend(t *testing.T) {
	_, err := NewStore(context.Background(), Config{Backend: "ftp"}, storage.Config{})
	assert.ErrorContains(t, err, "unknown asset backend")
}
