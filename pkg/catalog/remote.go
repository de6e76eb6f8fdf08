package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fixturelab/planogram/pkg/errors"
	"github.com/fixturelab/planogram/pkg/httputil"
	"github.com/fixturelab/planogram/pkg/observability"
)

// RemoteTTL is how long fetched remote catalogs stay fresh in the HTTP cache.
const RemoteTTL = 24 * time.Hour

// Fetcher retrieves hosted product catalogs over HTTP. Responses are cached
// by URL and transient failures are retried with backoff.
type Fetcher struct {
	client *http.Client
	cache  *httputil.Cache
}

// NewFetcher creates a fetcher. A nil cache disables response caching; a
// nil client uses http.DefaultClient.
func NewFetcher(client *http.Client, cache *httputil.Cache) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if cache != nil {
		cache = cache.Namespace("catalog:")
	}
	return &Fetcher{client: client, cache: cache}
}

// Fetch downloads and parses a JSON catalog from url. Cached responses are
// served without a network round trip until they expire.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Catalog, error) {
	var entries []Entry

	if f.cache != nil {
		if ok, err := f.cache.Get(url, &entries); ok && err == nil {
			return New(entries)
		}
	}

	body, err := f.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse remote catalog %s", url)
	}

	if f.cache != nil {
		_ = f.cache.Set(url, entries)
	}

	return New(entries)
}

// fetch performs the HTTP GET with retry. Network errors, 5xx responses,
// and 429 responses are retried; other failures return immediately.
func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	err := httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "build request for %s", url)
		}

		observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
		start := time.Now()

		resp, err := f.client.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()

		observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path,
			resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode == http.StatusOK:
			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return &httputil.RetryableError{Err: err}
			}
			return nil
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return &httputil.RetryableError{
				Err: errors.New(errors.ErrCodeInvalidCatalog, "fetch %s: status %d", url, resp.StatusCode),
			}
		default:
			return errors.New(errors.ErrCodeInvalidCatalog, "fetch %s: status %d", url, resp.StatusCode)
		}
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
