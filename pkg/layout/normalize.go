package layout

import (
	"encoding/json"
	"slices"

	"github.com/fixturelab/planogram/pkg/errors"
)

// LegacyCompartmentID is the compartment ID assigned when normalizing a
// legacy single-compartment draft, which carried no compartment identity.
const LegacyCompartmentID = "door-1"

// =============================================================================
// Draft Normalization
// =============================================================================
//
// Persisted drafts arrive in one of two shapes:
//
//   - canonical: {"compartments": [{"id": ..., "rows": [...]}, ...]}
//   - legacy:    {"width": ..., "height": ..., "rows": {"row-1": {...}, ...}}
//
// The legacy shape predates multi-compartment fixtures: one implicit door,
// rows keyed by ID, camelCase field names. ParseDraft normalizes both to the
// canonical Layout so downstream code never branches on compartment count.

// legacyDraft is the pre-multi-compartment persisted shape.
type legacyDraft struct {
	Width  float64              `json:"width"`
	Height float64              `json:"height"`
	Rows   map[string]legacyRow `json:"rows"`
}

type legacyRow struct {
	Capacity  float64       `json:"capacity"`
	MaxHeight float64       `json:"maxHeight"`
	Allowed   []string      `json:"allowedTypes"`
	Stacks    []legacyStack `json:"stacks"`
}

type legacyStack struct {
	Items []legacyItem `json:"items"`
}

type legacyItem struct {
	ID        string  `json:"id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Stackable bool    `json:"stackable"`
}

// ParseDraft decodes a persisted draft blob in either the legacy
// single-compartment shape or the canonical multi-compartment shape and
// returns the canonical Layout. The shape is detected by the presence of a
// top-level "compartments" key.
func ParseDraft(data []byte) (Layout, error) {
	var probe struct {
		Compartments json.RawMessage `json:"compartments"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidDraft, err, "draft is not valid JSON")
	}

	if probe.Compartments != nil {
		var l Layout
		if err := json.Unmarshal(data, &l); err != nil {
			return Layout{}, errors.Wrap(errors.ErrCodeInvalidDraft, err, "malformed canonical draft")
		}
		if err := validateLayout(l); err != nil {
			return Layout{}, err
		}
		return l, nil
	}

	var legacy legacyDraft
	if err := json.Unmarshal(data, &legacy); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidDraft, err, "malformed legacy draft")
	}
	l := normalizeLegacy(legacy)
	if err := validateLayout(l); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// normalizeLegacy wraps a legacy draft in a single synthetic compartment.
// Legacy rows are keyed by ID with no explicit order, so they are sorted by
// key for a deterministic top-to-bottom sequence.
func normalizeLegacy(d legacyDraft) Layout {
	comp := Compartment{
		ID:     LegacyCompartmentID,
		Width:  d.Width,
		Height: d.Height,
	}

	ids := make([]string, 0, len(d.Rows))
	for id := range d.Rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		lr := d.Rows[id]
		row := Row{
			ID:        id,
			Capacity:  lr.Capacity,
			MaxHeight: lr.MaxHeight,
			Allowed:   lr.Allowed,
		}
		for _, ls := range lr.Stacks {
			items := make([]Item, len(ls.Items))
			for i, li := range ls.Items {
				items[i] = Item{
					ID:             li.ID,
					SKU:            li.SKU,
					Name:           li.Name,
					Classification: li.Type,
					Width:          li.Width,
					Height:         li.Height,
					Stackable:      li.Stackable,
				}
			}
			row.Stacks = append(row.Stacks, Stack{Items: items})
		}
		comp.Rows = append(comp.Rows, row)
	}

	return Layout{Compartments: []Compartment{comp}}
}

// validateLayout rejects structurally unusable layouts: duplicate or empty
// compartment/row identifiers. Dimensional overflow is deliberately not
// rejected here; pre-existing overflow in a draft is flagged by the
// validator, never silently corrected.
func validateLayout(l Layout) error {
	compSeen := make(map[string]struct{}, len(l.Compartments))
	for _, c := range l.Compartments {
		if c.ID == "" {
			return errors.New(errors.ErrCodeInvalidDraft, "compartment with empty ID")
		}
		if _, dup := compSeen[c.ID]; dup {
			return errors.New(errors.ErrCodeInvalidDraft, "duplicate compartment ID %q", c.ID)
		}
		compSeen[c.ID] = struct{}{}

		rowSeen := make(map[string]struct{}, len(c.Rows))
		for _, r := range c.Rows {
			if r.ID == "" {
				return errors.New(errors.ErrCodeInvalidDraft, "compartment %q: row with empty ID", c.ID)
			}
			if _, dup := rowSeen[r.ID]; dup {
				return errors.New(errors.ErrCodeInvalidDraft, "compartment %q: duplicate row ID %q", c.ID, r.ID)
			}
			rowSeen[r.ID] = struct{}{}
		}
	}
	return nil
}
