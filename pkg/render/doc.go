// Package render provides visualization rendering for layouts.
//
// # Overview
//
// This package contains the rendering surface that turns layout snapshots
// into visual outputs:
//
//   - Structure diagrams (in [structure] subpackage)
//
// # Structure Diagrams
//
// The [structure] subpackage renders the containment tree (compartments,
// rows, stacks, items) as a directed diagram using Graphviz. Conflicted
// items are outlined in red so problem placements stand out at a glance.
//
//	dot := structure.ToDOT(l, conflicts, structure.Options{})
//	svg, err := structure.RenderSVG(dot)
//	png, err := structure.RenderPNG(dot)
//
// [structure]: github.com/fixturelab/planogram/pkg/render/structure
package render
