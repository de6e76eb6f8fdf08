package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

// =============================================================================
// Snapshot Semantics
// =============================================================================

// Clone returns a deep copy of the layout. Published snapshots are immutable
// by convention; every edit clones first and mutates the copy, so validators
// and exporters can read a snapshot without locking.
func (l Layout) Clone() Layout {
	out := Layout{Compartments: make([]Compartment, len(l.Compartments))}
	for i, c := range l.Compartments {
		cc := c
		cc.Rows = make([]Row, len(c.Rows))
		for j, r := range c.Rows {
			rr := r
			rr.Allowed = slices.Clone(r.Allowed)
			rr.Stacks = make([]Stack, len(r.Stacks))
			for k, s := range r.Stacks {
				rr.Stacks[k] = Stack{Items: slices.Clone(s.Items)}
			}
			cc.Rows[j] = rr
		}
		out.Compartments[i] = cc
	}
	return out
}

// Equal reports structural equality of two layouts, including compartment
// and row order.
func (l Layout) Equal(other Layout) bool {
	if len(l.Compartments) != len(other.Compartments) {
		return false
	}
	for i, c := range l.Compartments {
		oc := other.Compartments[i]
		if c.ID != oc.ID || c.Width != oc.Width || c.Height != oc.Height || len(c.Rows) != len(oc.Rows) {
			return false
		}
		for j, r := range c.Rows {
			or := oc.Rows[j]
			if r.ID != or.ID || r.Capacity != or.Capacity || r.MaxHeight != or.MaxHeight {
				return false
			}
			if !slices.Equal(r.Allowed, or.Allowed) {
				return false
			}
			if len(r.Stacks) != len(or.Stacks) {
				return false
			}
			for k, s := range r.Stacks {
				if !slices.Equal(s.Items, or.Stacks[k].Items) {
					return false
				}
			}
		}
	}
	return true
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal converts a layout to pretty-printed JSON bytes in the canonical
// multi-compartment form. Compartment and row order is preserved.
func Marshal(l Layout) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return buf.Bytes(), nil
}

// Write writes a layout as JSON to an io.Writer.
func Write(l Layout, w io.Writer) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes a layout to a JSON file at path.
func WriteFile(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(l, f)
}

// ReadFile reads a draft blob from a JSON file and normalizes it to the
// canonical layout form. Both legacy single-compartment and canonical
// multi-compartment shapes are accepted; see ParseDraft.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseDraft(data)
}
