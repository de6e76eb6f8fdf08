// Package httputil provides HTTP utilities for remote resource clients.
//
// # Overview
//
// This package provides infrastructure for fetching remote resources such
// as hosted product catalogs:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/planogram/)
// with configurable TTL. This speeds up repeated operations and reduces
// load on catalog hosts.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24 * time.Hour)
//	var data []byte
//	if ok, _ := cache.Get("catalog:"+url, &data); !ok {
//	    data = fetchFromHost()
//	    cache.Set("catalog:"+url, data) // Store for later
//	}
//
// Cache keys should be namespaced by source to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Wrap transient failures in [RetryableError] so Retry knows to attempt
// the operation again:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := http.Get(url)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    // ... handle response ...
//	    return nil
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/planogram/
//   - Default TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `planogram cache clear` or by deleting
// the cache directory.
package httputil
