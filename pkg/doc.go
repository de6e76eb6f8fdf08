// Package pkg provides the core libraries for planogram layout editing.
//
// # Overview
//
// Planogram arranges retail products into shelf layouts across cooler doors
// and other fixture compartments, validates placement rules, and exports
// pixel-exact coordinate documents for downstream tooling. The pkg directory
// is organized into five main areas:
//
//  1. [layout] - The canonical data model (compartments, rows, stacks, items)
//  2. [editor] - Transactional editing with bounded undo/redo
//  3. [validate] / [geometry] / [export] - The read-model pipeline stages
//  4. [store] / [cache] - Persistence and result caching backends
//  5. [catalog] - Product definitions that mint placeable items
//
// # Architecture
//
// The typical data flow through planogram:
//
//	Template/Draft
//	       ↓
//	  [layout] package (normalize to canonical snapshots)
//	       ↓
//	  [editor] package (atomic actions + undo/redo history)
//	       ↓
//	  [validate] package (advisory conflict detection)
//	       ↓
//	  [geometry] + [export] packages (absolute pixel coordinates)
//	       ↓
//	  JSON document / structure diagram output
//
// # Quick Start
//
// Load a draft, find conflicts, and export it:
//
//	import (
//	    "context"
//	    "github.com/fixturelab/planogram/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Draft: blob,
//	    Scale: 2,
//	})
//	// result.Conflicts flags misplaced items; result.Document holds
//	// the absolute-coordinate export.
//
// # Main Packages
//
// ## Data Model and Editing
//
// [layout] - Immutable layout snapshots with deep Clone and structural Equal.
// Normalizes both the legacy single-compartment draft shape and the canonical
// multi-compartment shape, and instantiates TOML fixture templates.
//
// [editor] - Sessions apply atomic actions (insert, move, stack, remove,
// resize, replace) over snapshots with linear, bounded undo/redo history.
//
// [catalog] - Product entries keyed by SKU, loaded from TOML/JSON files or
// fetched from hosted catalogs with retry and response caching.
//
// ## Pipeline Stages
//
// [validate] - Pure conflict detection over one snapshot: height overflow,
// disallowed classifications, and width overflow with right-to-left
// whole-stack attribution. Conflicts are advisory; items are never removed.
//
// [geometry] - Row bounds, stack offsets, and bottom-aligned item boxes
// within a compartment, plus frame-level compartment offset composition.
//
// [export] - Transforms a snapshot into the absolute-coordinate document:
// frame borders, header band, shelf-edge inset, per-corner rounding after
// scaling.
//
// [pipeline] - Orchestrates load → validate → export with content-hash
// caching via [cache].
//
// ## Infrastructure
//
// [store] - Draft persistence backends: memory (testing), file (CLI),
// Redis and MongoDB (API deployments).
//
// [cache] - Result caching keyed by layout content hash with per-stage TTLs.
//
// [httputil] - HTTP response caching and retry with exponential backoff for
// remote catalog fetching.
//
// [observability] - Optional hooks for pipeline, cache, and HTTP events
// without hard backend dependencies.
//
// ## Visualization
//
// [render/structure] - Graphviz containment-tree diagrams with conflicted
// items outlined in red.
package pkg
