package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"brainrot-catalog/core/ratelimit"
	"brainrot-catalog/core/reconcile"

	"go.uber.org/zap"
)

// ErrListingUnavailable means the first listing page could not be fetched.
// It is the only fatal error of a sweep.
var ErrListingUnavailable = errors.New("source listing unavailable")

// Raw is one source specific record as listed by a fetcher.
type Raw struct {
	// Name is the provisional display name, used in logs and failure reports.
	Name string
	// Payload is the fetcher's own representation.
	Payload any
}

// Page is one listing page.
type Page struct {
	Records []Raw
	// Next is the continuation cursor, empty on the last page.
	Next string
}

// Resolved is a normalized record plus the image to acquire for it.
type Resolved struct {
	Record reconcile.Record
	// ImageRef is the remote image URL, empty when the source has none.
	ImageRef string
	// ImageKey is the stable cache key for the image.
	ImageKey string
}

// Fetcher lists and normalizes records from one source.
type Fetcher interface {
	// Source names the fetcher; it is stored as the record data source.
	Source() string
	// FetchPage returns the listing page at cursor; "" is the first page.
	FetchPage(ctx context.Context, cursor string) (Page, error)
	// Resolve normalizes one listed record.
	Resolve(ctx context.Context, raw Raw) (Resolved, error)
}

// Pacer is implemented by fetchers that want a pause between records.
type Pacer interface {
	Pace(ctx context.Context) error
}

// PageLimit is implemented by fetchers with a configured page cap.
type PageLimit interface {
	MaxPages() int
}

// Sweep collects every page of f. A failure on the first page is fatal and
// wraps ErrListingUnavailable; a later failure ends pagination and returns
// what was collected. Pagination also stops on an empty or repeated cursor
// and after maxPages pages when maxPages is positive.
func Sweep(ctx context.Context, f Fetcher, maxPages int, log *zap.Logger) ([]Raw, error) {
	var (
		records []Raw
		cursor  string
		pages   int
		seen    = map[string]struct{}{}
	)

	for {
		page, err := f.FetchPage(ctx, cursor)
		if err != nil {
			if pages == 0 {
				return nil, fmt.Errorf("%w: %s: %w", ErrListingUnavailable, f.Source(), err)
			}
			log.Warn("Pagination aborted, keeping partial listing",
				zap.String("source", f.Source()),
				zap.Int("pages", pages),
				zap.Int("records", len(records)),
				zap.Error(err))
			return records, nil
		}

		pages++
		records = append(records, page.Records...)
		log.Debug("Fetched listing page",
			zap.String("source", f.Source()),
			zap.Int("page", pages),
			zap.Int("records", len(page.Records)))

		if page.Next == "" {
			return records, nil
		}
		if _, dup := seen[page.Next]; dup {
			log.Warn("Repeated cursor, stopping pagination", zap.String("source", f.Source()), zap.String("cursor", page.Next))
			return records, nil
		}
		if maxPages > 0 && pages >= maxPages {
			log.Warn("Page limit reached", zap.String("source", f.Source()), zap.Int("max_pages", maxPages))
			return records, nil
		}
		seen[page.Next] = struct{}{}
		cursor = page.Next
	}
}

// client performs rate limited GET requests.
type client struct {
	http      *http.Client
	limiter   *ratelimit.Limiter
	userAgent string
}

func newClient(timeoutSeconds, delayMS int, userAgent string) *client {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}
	return &client{
		http:      &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
		limiter:   ratelimit.FromMillis(delayMS),
		userAgent: userAgent,
	}
}

// get waits for the limiter and returns the body of a 200 response.
func (c *client) get(ctx context.Context, url, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}
