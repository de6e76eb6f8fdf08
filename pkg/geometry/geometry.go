// Package geometry resolves compartment-local coordinates for a layout
// snapshot and composes absolute horizontal offsets across compartments.
//
// All functions are pure: they read a snapshot and return plain values.
// Boxes are compartment-local until a compartment offset is added by the
// caller, and unscaled until the export layer applies its scale factor.
package geometry

import (
	"github.com/fixturelab/planogram/pkg/layout"
)

// Box is an axis-aligned bounding box. Top is smaller than Bottom: the
// coordinate system grows downward, matching raster image conventions.
type Box struct {
	Left   float64 `json:"left" bson:"left"`
	Top    float64 `json:"top" bson:"top"`
	Right  float64 `json:"right" bson:"right"`
	Bottom float64 `json:"bottom" bson:"bottom"`
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// Translate returns the box shifted by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{Left: b.Left + dx, Top: b.Top + dy, Right: b.Right + dx, Bottom: b.Bottom + dy}
}

// Bounds is a half-open vertical interval [Start, End).
type Bounds struct {
	Start float64
	End   float64
}

// RowBounds returns one vertical interval per row, in row order. Rows stack
// top-to-bottom with zero gap, and each row occupies exactly its MaxHeight
// regardless of how tall its content actually is.
func RowBounds(c layout.Compartment) []Bounds {
	out := make([]Bounds, len(c.Rows))
	y := 0.0
	for i, row := range c.Rows {
		out[i] = Bounds{Start: y, End: y + row.MaxHeight}
		y += row.MaxHeight
	}
	return out
}

// StackOffsets returns the left x coordinate of every stack in the row:
// the cumulative sum of base widths with one unit gap after each stack
// except the last.
func StackOffsets(row layout.Row) []float64 {
	out := make([]float64, len(row.Stacks))
	x := 0.0
	for i, stack := range row.Stacks {
		out[i] = x
		x += stack.BaseWidth() + layout.UnitGap
	}
	return out
}

// ItemBox computes the compartment-local box of one item. Items are
// bottom-aligned within their row: heightBelow is the summed height of the
// items underneath it in the same stack (zero for the base).
func ItemBox(it layout.Item, stackX float64, row Bounds, heightBelow float64) Box {
	bottom := row.End - heightBelow
	return Box{
		Left:   stackX,
		Top:    bottom - it.Height,
		Right:  stackX + it.Width,
		Bottom: bottom,
	}
}
