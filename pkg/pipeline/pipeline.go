// Package pipeline provides the load → validate → export pipeline for
// planogram layouts.
//
// This package implements the complete draft-to-document flow used by the
// CLI, the API, and batch tooling. By centralizing this logic, all entry
// points share one caching and validation behavior.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse a draft blob (legacy or canonical) into a layout.
//  2. Validate: Compute the conflict set for the snapshot.
//  3. Export: Transform the snapshot into an absolute-coordinate document.
//
// Each stage can be run independently or as part of the complete pipeline.
// Validation and export results are memoized by a content hash of the
// serialized layout.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Draft:       blob,
//	    FrameBorder: 16,
//	    Scale:       2,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc := result.Document
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fixturelab/planogram/pkg/cache"
	"github.com/fixturelab/planogram/pkg/export"
	"github.com/fixturelab/planogram/pkg/layout"
	"github.com/fixturelab/planogram/pkg/validate"
)

// Frame defaults applied when options leave them zero.
const (
	DefaultFrameBorder  = 16.0
	DefaultHeaderHeight = 40.0
	DefaultFooterHeight = 20.0
	DefaultScale        = 1.0
)

// Options contains all configuration for the export pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options: exactly one of Draft or Layout is set. A non-nil
	// Layout skips the load stage.
	Draft  []byte         `json:"draft,omitempty"`
	Layout *layout.Layout `json:"layout,omitempty"`

	// Export options
	FrameBorder  float64 `json:"frame_border,omitempty"`
	Gap          float64 `json:"gap,omitempty"`
	HeaderHeight float64 `json:"header_height,omitempty"`
	FooterHeight float64 `json:"footer_height,omitempty"`
	Scale        float64 `json:"scale,omitempty"`

	// Refresh bypasses cached results and overwrites them.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the normalized snapshot the stages ran over.
	Layout layout.Layout

	// LayoutHash is the content hash of the canonical layout.
	LayoutHash string

	// Conflicts is the conflict set for the snapshot.
	Conflicts validate.Set

	// Document is the export output.
	Document export.Document

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount    int
	ConflictTime time.Duration
	ExportTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ConflictHit bool // Whether the conflict set came from cache
	ExportHit   bool // Whether the export document came from cache
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Draft) == 0 && o.Layout == nil {
		return fmt.Errorf("draft or layout is required")
	}
	if o.FrameBorder == 0 {
		o.FrameBorder = DefaultFrameBorder
	}
	if o.HeaderHeight == 0 {
		o.HeaderHeight = DefaultHeaderHeight
	}
	if o.FooterHeight == 0 {
		o.FooterHeight = DefaultFooterHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return fmt.Errorf("scale must be positive, got %v", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ExportConfig builds the export frame config for a loaded layout. The
// compartment list mirrors the snapshot, so export cannot desynchronize
// unless a caller supplies its own config.
func (o *Options) ExportConfig(l layout.Layout) export.Config {
	comps := make([]layout.Compartment, len(l.Compartments))
	for i, c := range l.Compartments {
		comps[i] = layout.Compartment{ID: c.ID, Width: c.Width, Height: c.Height}
	}
	return export.Config{
		Compartments: comps,
		FrameBorder:  o.FrameBorder,
		Gap:          o.Gap,
		HeaderHeight: o.HeaderHeight,
		FooterHeight: o.FooterHeight,
		Scale:        o.Scale,
	}
}

// ExportKeyOpts returns cache key options for export caching.
func (o *Options) ExportKeyOpts() cache.ExportKeyOpts {
	return cache.ExportKeyOpts{
		FrameBorder:  o.FrameBorder,
		Gap:          o.Gap,
		HeaderHeight: o.HeaderHeight,
		FooterHeight: o.FooterHeight,
		Scale:        o.Scale,
	}
}
