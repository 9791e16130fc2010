package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newImageServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG fake"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAcquirer(fs afero.Fs) *Acquirer {
	store := NewFileStore(fs, "/images", "/images")
	return NewAcquirer(store, Config{DownloadTimeoutSeconds: 5, UserAgent: "test"}, zap.NewNop())
}

func TestAcquire_DownloadsOnce(t *testing.T) {
	var hits int32
	srv := newImageServer(t, &hits)
	fs := afero.NewMemMapFs()
	a := newTestAcquirer(fs)
	ctx := context.Background()

	p1, err := a.Acquire(ctx, srv.URL+"/icon.png", "badge_7_tung_sahur")
	require.NoError(t, err)
	p2, err := a.Acquire(ctx, srv.URL+"/icon.png", "badge_7_tung_sahur")
	require.NoError(t, err)

	assert.Equal(t, "/images/badge_7_tung_sahur.png", p1)
	assert.Equal(t, p1, p2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	data, err := afero.ReadFile(fs, "/images/badge_7_tung_sahur.png")
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG fake", string(data))
}

func TestAcquire_ConcurrentCallsCollapse(t *testing.T) {
	var hits int32
	srv := newImageServer(t, &hits)
	a := newTestAcquirer(afero.NewMemMapFs())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := a.Acquire(context.Background(), srv.URL+"/icon.png", "same key")
			assert.NoError(t, err)
			assert.Equal(t, "/images/same_key.png", p)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestAcquire_EmptyReference(t *testing.T) {
	fs := afero.NewMemMapFs()
	a := newTestAcquirer(fs)

	p, err := a.Acquire(context.Background(), "  ", "anything")
	assert.NoError(t, err)
	assert.Empty(t, p)

	exists, _ := afero.DirExists(fs, "/images")
	assert.False(t, exists)
}

func TestAcquire_FailureLeavesNoFile(t *testing.T) {
	var hits int32
	srv := newImageServer(t, &hits)
	fs := afero.NewMemMapFs()
	a := newTestAcquirer(fs)

	p, err := a.Acquire(context.Background(), srv.URL+"/missing.png", "ghost")
	assert.ErrorContains(t, err, "unexpected status 404")
	assert.Empty(t, p)

	entries, _ := afero.ReadDir(fs, "/images")
	assert.Empty(t, entries)
}

func TestAcquire_UnreachableHost(t *testing.T) {
	a := newTestAcquirer(afero.NewMemMapFs())
	p, err := a.Acquire(context.Background(), "http://127.0.0.1:1/icon.png", "nobody")
	assert.Error(t, err)
	assert.Empty(t, p)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "badge_1_a_b.png", FileName("badge_1_a b", "https://tr.rbxcdn.com/abc/150/150/Image/Png"))
	assert.Equal(t, "tralalero.jpg", FileName("Tralalero", "https://static.wikia.nocookie.net/x/Tralalero.JPG"))
	assert.Equal(t, "image.webp", FileName("!!!", "https://cdn/x.webp?cb=1"))
}

func TestStableKey(t *testing.T) {
	a := StableKey("Cappuccino Assassino")
	b := StableKey("cappuccino-assassino")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, StableKey("Cappuccino Assassino"))
	assert.Regexp(t, `^cappuccino_assassino_[0-9a-f]{8}$`, a)
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("badge_1.png"))
	assert.False(t, ValidName("../etc/passwd"))
	assert.False(t, ValidName("a/b.png"))
	assert.False(t, ValidName(`a\b.png`))
	assert.False(t, ValidName(".."))
	assert.False(t, ValidName(""))
	assert.Equal(t, "x.png", NameOf(filepath.ToSlash("/images/x.png")))
}
