package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g.
// when several stores or fixture programs share one cache backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ConflictKey generates a prefixed key for conflict-set caching.
func (k *ScopedKeyer) ConflictKey(layoutHash string) string {
	return k.prefix + k.inner.ConflictKey(layoutHash)
}

// ExportKey generates a prefixed key for export-document caching.
func (k *ScopedKeyer) ExportKey(layoutHash string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(layoutHash, opts)
}
