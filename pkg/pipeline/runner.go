package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fixturelab/planogram/pkg/cache"
	"github.com/fixturelab/planogram/pkg/export"
	"github.com/fixturelab/planogram/pkg/layout"
	"github.com/fixturelab/planogram/pkg/observability"
	"github.com/fixturelab/planogram/pkg/validate"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → validate → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	l, err := r.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Layout = l
	result.Stats.ItemCount = l.ItemCount()

	data, err := layout.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("serialize layout: %w", err)
	}
	result.LayoutHash = cache.Hash(data)

	r.Logger.Info("loaded layout",
		"compartments", len(l.Compartments),
		"items", result.Stats.ItemCount)
	observability.Pipeline().OnLoadComplete(ctx, len(l.Compartments), result.Stats.ItemCount)

	// Stage 2: Validate
	observability.Pipeline().OnValidateStart(ctx, result.Stats.ItemCount)
	conflictStart := time.Now()
	conflicts, conflictHit, err := r.ConflictsWithCacheInfo(ctx, l, result.LayoutHash, opts)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	result.Conflicts = conflicts
	result.Stats.ConflictTime = time.Since(conflictStart)
	result.CacheInfo.ConflictHit = conflictHit
	observability.Pipeline().OnValidateComplete(ctx, len(conflicts), result.Stats.ConflictTime, nil)

	r.Logger.Info("validated layout",
		"conflicts", len(conflicts),
		"duration", result.Stats.ConflictTime)

	// Stage 3: Export
	observability.Pipeline().OnExportStart(ctx, opts.Scale)
	exportStart := time.Now()
	doc, exportHit, err := r.ExportWithCacheInfo(ctx, l, result.LayoutHash, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Document = doc
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit
	observability.Pipeline().OnExportComplete(ctx, result.Stats.ExportTime, nil)

	r.Logger.Info("exported document",
		"scale", opts.Scale,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Load resolves the snapshot from the options: a supplied layout is used
// as-is, a draft blob goes through normalization.
func (r *Runner) Load(opts Options) (layout.Layout, error) {
	if opts.Layout != nil {
		return *opts.Layout, nil
	}
	return layout.ParseDraft(opts.Draft)
}

// ConflictsWithCacheInfo computes the conflict set with caching and
// returns cache hit info.
func (r *Runner) ConflictsWithCacheInfo(ctx context.Context, l layout.Layout, layoutHash string, opts Options) (validate.Set, bool, error) {
	cacheKey := r.Keyer.ConflictKey(layoutHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached validate.Set
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "conflicts")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "conflicts")

	conflicts := validate.FindConflicts(l)

	if data, err := json.Marshal(conflicts); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLConflicts)
		observability.Cache().OnCacheSet(ctx, "conflicts", len(data))
	}

	return conflicts, false, nil // Cache miss
}

// Conflicts is a convenience wrapper that discards the cache hit info.
func (r *Runner) Conflicts(ctx context.Context, l layout.Layout, opts Options) (validate.Set, error) {
	data, err := layout.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("serialize layout: %w", err)
	}
	set, _, err := r.ConflictsWithCacheInfo(ctx, l, cache.Hash(data), opts)
	return set, err
}

// ExportWithCacheInfo transforms the snapshot with caching and returns
// cache hit info.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, l layout.Layout, layoutHash string, opts Options) (export.Document, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return export.Document{}, false, err
	}
	cacheKey := r.Keyer.ExportKey(layoutHash, opts.ExportKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached export.Document
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "export")
				return cached, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "export")

	doc, err := export.Transform(l, opts.ExportConfig(l))
	if err != nil {
		return export.Document{}, false, err
	}

	if data, err := json.Marshal(doc); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLExport)
		observability.Cache().OnCacheSet(ctx, "export", len(data))
	}

	return doc, false, nil // Cache miss
}

// Export is a convenience wrapper that discards the cache hit info.
func (r *Runner) Export(ctx context.Context, l layout.Layout, opts Options) (export.Document, error) {
	data, err := layout.Marshal(l)
	if err != nil {
		return export.Document{}, fmt.Errorf("serialize layout: %w", err)
	}
	doc, _, err := r.ExportWithCacheInfo(ctx, l, cache.Hash(data), opts)
	return doc, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
