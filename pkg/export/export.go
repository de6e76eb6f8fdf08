// Package export transforms a layout snapshot into a scaled,
// absolute-coordinate document for downstream computer-vision tooling.
//
// Transform is pure and stateless: the same snapshot and config always
// yield the same document. Boxes in the output must align with a
// separately rendered raster image, so coordinates are absolute within
// the framed fixture and each corner is rounded independently after
// scaling to avoid cumulative drift.
package export

import (
	"math"

	"github.com/fixturelab/planogram/pkg/errors"
	"github.com/fixturelab/planogram/pkg/geometry"
	"github.com/fixturelab/planogram/pkg/layout"
)

// ShelfEdgeInset is the fixed vertical allowance for the shelf lip at the
// top of the content area, matching the renderer's band.
const ShelfEdgeInset = 4.0

// Config describes the physical frame the layout is rendered into. The
// compartment list is ordered left-to-right and supplies the dimensions
// used for offset composition; a layout compartment absent from it is a
// desynchronization and fails the export.
type Config struct {
	Compartments []layout.Compartment `json:"compartments"`
	FrameBorder  float64              `json:"frameBorder"`
	Gap          float64              `json:"gap"`
	HeaderHeight float64              `json:"headerHeight"`
	FooterHeight float64              `json:"footerHeight"`
	Scale        float64              `json:"scale"` // 0 means 1
}

// Document is the export output consumed by external tooling.
type Document struct {
	Compartments map[string]CompartmentExport `json:"compartments"`
	Dimensions   Dimensions                   `json:"dimensions"`
}

// CompartmentExport groups one compartment's rows into sections.
type CompartmentExport struct {
	Sections []Section `json:"sections"`
}

// Section is one row of products, positioned top-to-bottom.
type Section struct {
	Position int       `json:"position"`
	Products []Product `json:"products"`
}

// Product is one placed base item with its absolute box and any items
// stacked above it, each carrying its own independently rounded box.
type Product struct {
	SKU     string       `json:"sku"`
	Box     geometry.Box `json:"box"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Stacked []Product    `json:"stacked,omitempty"`
}

// Dimensions is the total framed size of the document at the applied scale.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
}

// Transform converts a snapshot into an absolute-coordinate document. Each
// compartment's horizontal offset is applied exactly once, every row
// contributes one section even when empty, and all coordinates and sizes
// are multiplied by the config scale before per-corner rounding.
//
// The only failure mode is a layout compartment missing from the config;
// empty rows and compartments are valid output, not errors.
func Transform(l layout.Layout, cfg Config) (Document, error) {
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	yOffset := cfg.FrameBorder + cfg.HeaderHeight + ShelfEdgeInset

	doc := Document{Compartments: make(map[string]CompartmentExport, len(l.Compartments))}
	for _, comp := range l.Compartments {
		idx := configIndex(cfg, comp.ID)
		if idx < 0 {
			return Document{}, errors.New(errors.ErrCodeInvalidCompartmentConfig,
				"compartment %q not present in export config", comp.ID)
		}
		xOffset := geometry.OffsetFor(idx, cfg.Compartments, cfg.FrameBorder, cfg.Gap)
		doc.Compartments[comp.ID] = exportCompartment(comp, xOffset, yOffset, scale)
	}

	w, h := geometry.FrameSize(cfg.Compartments, cfg.FrameBorder, cfg.Gap, cfg.HeaderHeight, cfg.FooterHeight)
	doc.Dimensions = Dimensions{
		Width:  math.Round(w * scale),
		Height: math.Round(h * scale),
		Scale:  scale,
	}
	return doc, nil
}

func configIndex(cfg Config, id string) int {
	for i, c := range cfg.Compartments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func exportCompartment(comp layout.Compartment, xOffset, yOffset, scale float64) CompartmentExport {
	bounds := geometry.RowBounds(comp)
	sections := make([]Section, len(comp.Rows))
	for i, row := range comp.Rows {
		sections[i] = Section{
			Position: i,
			Products: exportRow(row, bounds[i], xOffset, yOffset, scale),
		}
	}
	return CompartmentExport{Sections: sections}
}

func exportRow(row layout.Row, bounds geometry.Bounds, xOffset, yOffset, scale float64) []Product {
	offsets := geometry.StackOffsets(row)
	products := make([]Product, 0, len(row.Stacks))
	for si, stack := range row.Stacks {
		if len(stack.Items) == 0 {
			continue
		}

		base := exportItem(stack.Items[0], offsets[si], bounds, 0, xOffset, yOffset, scale)
		heightBelow := stack.Items[0].Height
		for _, it := range stack.Items[1:] {
			base.Stacked = append(base.Stacked,
				exportItem(it, offsets[si], bounds, heightBelow, xOffset, yOffset, scale))
			heightBelow += it.Height
		}
		products = append(products, base)
	}
	return products
}

// exportItem computes the local box, applies the compartment offset once,
// scales, then rounds each corner independently. Deltas between corners
// are never propagated through rounding, so drift cannot accumulate down
// a stack.
func exportItem(it layout.Item, stackX float64, bounds geometry.Bounds, heightBelow, xOffset, yOffset, scale float64) Product {
	box := geometry.ItemBox(it, stackX, bounds, heightBelow).Translate(xOffset, yOffset)
	return Product{
		SKU: it.SKU,
		Box: geometry.Box{
			Left:   math.Round(box.Left * scale),
			Top:    math.Round(box.Top * scale),
			Right:  math.Round(box.Right * scale),
			Bottom: math.Round(box.Bottom * scale),
		},
		Width:  math.Round(it.Width * scale),
		Height: math.Round(it.Height * scale),
	}
}
