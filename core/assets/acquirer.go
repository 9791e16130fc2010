package assets

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"brainrot-catalog/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

// Acquirer resolves remote image references to cached assets.
// A cached asset is never downloaded again, even if the remote content changed.
type Acquirer struct {
	store     Store
	client    *http.Client
	userAgent string
	log       *zap.Logger
	group     singleflight.Group
}

// NewAcquirer creates an acquirer writing into store.
func NewAcquirer(store Store, cfg Config, log *zap.Logger) *Acquirer {
	timeout := cfg.DownloadTimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &Acquirer{
		store:     store,
		client:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
		userAgent: cfg.UserAgent,
		log:       log,
	}
}

// Store returns the backing asset store.
func (a *Acquirer) Store() Store { return a.store }

// Acquire returns the public path of the asset for remoteRef, downloading it
// when it is not cached under the name derived from stableKey. An empty
// remoteRef yields "" without side effects. On failure it returns "" and
// the error; nothing is left under the final name.
func (a *Acquirer) Acquire(ctx context.Context, remoteRef, stableKey string) (string, error) {
	if strings.TrimSpace(remoteRef) == "" {
		return "", nil
	}
	name := FileName(stableKey, remoteRef)

	v, err, _ := a.group.Do(name, func() (any, error) {
		exists, err := a.store.Exists(ctx, name)
		if err != nil {
			return "", err
		}
		if exists {
			a.log.Debug("Image already cached", zap.String("file", name))
			return a.store.Path(name), nil
		}
		if err := a.download(ctx, remoteRef, name); err != nil {
			return "", err
		}
		a.log.Debug("Image downloaded", zap.String("file", name), zap.String("url", remoteRef))
		return a.store.Path(name), nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (a *Acquirer) download(ctx context.Context, remoteRef, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteRef, nil)
	if err != nil {
		return fmt.Errorf("build image request: %w", err)
	}
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", remoteRef, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %d", remoteRef, resp.StatusCode)
	}

	return a.store.Write(ctx, name, resp.Body, resp.ContentLength, resp.Header.Get("Content-Type"))
}

// FileName derives the deterministic cache file name for stableKey. The
// extension comes from the remote reference when it is a known image type.
func FileName(stableKey, remoteRef string) string {
	base := utils.Slug(stableKey)
	if base == "" {
		base = "image"
	}
	return base + extension(remoteRef)
}

func extension(remoteRef string) string {
	p := remoteRef
	if u, err := url.Parse(remoteRef); err == nil {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	if imageExtensions[ext] {
		return ext
	}
	return ".png"
}

// StableKey builds a cache key from a display name alone. The hash of the
// raw name keeps names that slug identically apart.
func StableKey(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return fmt.Sprintf("%s_%08x", utils.Slug(name), h.Sum32())
}
