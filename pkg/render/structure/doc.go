// Package structure renders the containment tree of a layout snapshot as a
// diagram for debugging and review.
//
// # Overview
//
// This package produces a directed tree visualization using Graphviz:
// layout → compartments → rows → stacks → items. It is a diagnostic
// surface, not the export path; the boxes here show structure, not
// physical geometry.
//
// # Usage
//
// Convert a layout to DOT format, then render:
//
//	dot := structure.ToDOT(l, conflicts, structure.Options{Detailed: true})
//	svg, err := structure.RenderSVG(dot)
//	png, err := structure.RenderPNG(dot)
//
// Items present in the conflict set are drawn with a red outline so a
// reviewer can spot violations without reading the validator output.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering.
package structure
