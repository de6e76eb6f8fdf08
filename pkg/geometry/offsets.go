package geometry

import (
	"github.com/fixturelab/planogram/pkg/layout"
)

// OffsetFor returns the absolute horizontal offset of compartment i when
// compartments are framed left-to-right. The first compartment sits one
// frame border in; each earlier compartment contributes its content width
// plus both of its frame borders, and each boundary crossed adds one
// inter-compartment gap.
func OffsetFor(i int, comps []layout.Compartment, frameBorder, gap float64) float64 {
	offset := frameBorder
	for j := 0; j < i && j < len(comps); j++ {
		offset += comps[j].Width + 2*frameBorder
	}
	return offset + float64(i)*gap
}

// FrameSize returns the total framed width and height of the layout: every
// compartment's content width plus its two frame borders and the gaps
// between compartments; vertically the tallest compartment plus its frame
// borders and the fixed header and footer bands.
func FrameSize(comps []layout.Compartment, frameBorder, gap, headerHeight, footerHeight float64) (width, height float64) {
	for _, c := range comps {
		width += c.Width + 2*frameBorder
		if c.Height > height {
			height = c.Height
		}
	}
	if n := len(comps); n > 1 {
		width += float64(n-1) * gap
	}
	height += 2*frameBorder + headerHeight + footerHeight
	return width, height
}
