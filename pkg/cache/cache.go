// Package cache provides content-addressed memoization for expensive
// pipeline stages.
//
// Validation and export are pure functions of a snapshot, so their results
// can be keyed by a content hash of the serialized layout plus the options
// that shaped the computation. The Cache interface abstracts the byte
// store; the Keyer builds the keys.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Default TTLs per pipeline stage. Conflict sets are cheap to recompute,
// export documents less so.
const (
	TTLConflicts = 1 * time.Hour
	TTLExport    = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ExportKeyOpts are the option fields that shape an export document and
// therefore participate in its cache key.
type ExportKeyOpts struct {
	FrameBorder  float64 `json:"frameBorder"`
	Gap          float64 `json:"gap"`
	HeaderHeight float64 `json:"headerHeight"`
	FooterHeight float64 `json:"footerHeight"`
	Scale        float64 `json:"scale"`
}

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	// ConflictKey generates a key for conflict-set caching.
	ConflictKey(layoutHash string) string

	// ExportKey generates a key for export-document caching.
	ExportKey(layoutHash string, opts ExportKeyOpts) string
}

// DefaultKeyer builds keys of the form "stage:hash(parts...)".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) ConflictKey(layoutHash string) string {
	return hashKey("conflicts", layoutHash)
}

func (k *DefaultKeyer) ExportKey(layoutHash string, opts ExportKeyOpts) string {
	return hashKey("export", layoutHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
