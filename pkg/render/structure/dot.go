package structure

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/fixturelab/planogram/pkg/layout"
	"github.com/fixturelab/planogram/pkg/validate"
)

// Options configures structure diagram rendering.
type Options struct {
	// Detailed includes dimensions and classifications in node labels.
	// When false, only identifiers are shown.
	Detailed bool
}

// ToDOT converts a layout snapshot to Graphviz DOT format. Conflicted
// items (per the supplied set, which may be nil) are outlined in red.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(l layout.Layout, conflicts validate.Set, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph planogram {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	buf.WriteString("  \"layout\" [label=\"layout\", fillcolor=lightgrey];\n")
	for _, comp := range l.Compartments {
		compNode := "comp:" + comp.ID
		fmt.Fprintf(&buf, "  %q [label=%q];\n", compNode, compLabel(comp, opts.Detailed))
		fmt.Fprintf(&buf, "  \"layout\" -> %q;\n", compNode)

		for _, row := range comp.Rows {
			rowNode := compNode + "/" + row.ID
			fmt.Fprintf(&buf, "  %q [label=%q];\n", rowNode, rowLabel(row, opts.Detailed))
			fmt.Fprintf(&buf, "  %q -> %q;\n", compNode, rowNode)

			for si, stack := range row.Stacks {
				stackNode := fmt.Sprintf("%s/stack-%d", rowNode, si)
				fmt.Fprintf(&buf, "  %q [label=\"stack %d\"];\n", stackNode, si)
				fmt.Fprintf(&buf, "  %q -> %q;\n", rowNode, stackNode)

				for _, it := range stack.Items {
					attrs := []string{fmt.Sprintf("label=%q", itemLabel(it, opts.Detailed))}
					if conflicts.Has(it.ID) {
						attrs = append(attrs, "color=red", "penwidth=2", "fontcolor=red")
					}
					fmt.Fprintf(&buf, "  %q [%s];\n", "item:"+it.ID, strings.Join(attrs, ", "))
					fmt.Fprintf(&buf, "  %q -> %q;\n", stackNode, "item:"+it.ID)
				}
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func compLabel(c layout.Compartment, detailed bool) string {
	if !detailed {
		return c.ID
	}
	return fmt.Sprintf("%s\n%g x %g", c.ID, c.Width, c.Height)
}

func rowLabel(r layout.Row, detailed bool) string {
	if !detailed {
		return r.ID
	}
	allowed := "all"
	if len(r.Allowed) > 0 {
		allowed = strings.Join(r.Allowed, ",")
	}
	return fmt.Sprintf("%s\ncap: %g maxH: %g\nallowed: %s", r.ID, r.Capacity, r.MaxHeight, allowed)
}

func itemLabel(it layout.Item, detailed bool) string {
	name := it.SKU
	if name == "" {
		name = it.ID
	}
	if !detailed {
		return name
	}
	return fmt.Sprintf("%s\n%s %gx%g", name, it.Classification, it.Width, it.Height)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG, nil)
}

func render(dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg element so the diagram scales to its
// container instead of Graphviz's point-based size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
