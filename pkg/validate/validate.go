// Package validate detects dimensional and placement-rule conflicts in a
// layout snapshot.
//
// Conflicts are advisory: already-placed items that violate a constraint
// are flagged for visual marking, never removed or corrected. FindConflicts
// is a pure function of one snapshot: it is idempotent, holds no state,
// and may run concurrently with other readers of the same snapshot.
//
// Each compartment is checked independently and the results unioned; a
// conflict in one compartment never suppresses or amplifies one in another.
package validate

import (
	"slices"

	"github.com/fixturelab/planogram/pkg/layout"
)

// Reason classifies why an item is in conflict.
type Reason string

// Conflict reasons.
const (
	// ReasonHeight marks every item of a stack whose summed height exceeds
	// the row's max height.
	ReasonHeight Reason = "height"

	// ReasonType marks an item whose classification the row does not allow.
	ReasonType Reason = "type"

	// ReasonWidth marks every item of a stack consumed by the right-to-left
	// overflow walk when the row's width budget is exceeded.
	ReasonWidth Reason = "width"
)

// Set maps conflicted item IDs to their reasons.
type Set map[string][]Reason

// Has reports whether the item is flagged for any reason.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// HasReason reports whether the item is flagged for the given reason.
func (s Set) HasReason(id string, r Reason) bool {
	return slices.Contains(s[id], r)
}

// IDs returns the flagged item IDs, sorted for deterministic output.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s Set) add(id string, r Reason) {
	if !slices.Contains(s[id], r) {
		s[id] = append(s[id], r)
	}
}

// FindConflicts computes the conflict set for a snapshot. Three rules are
// applied per row in every compartment:
//
//   - Height: a stack whose items sum past the row's MaxHeight flags every
//     item in that stack.
//   - Type: an item whose classification the row disallows is flagged;
//     blank placeholders are exempt (but still count for height and width).
//   - Width: when Σ(base widths) + gaps exceeds the row's capacity, stacks
//     are consumed right-to-left until the remainder fits, flagging every
//     item of each consumed stack. Marking is whole-stack only.
func FindConflicts(l layout.Layout) Set {
	out := make(Set)
	for _, comp := range l.Compartments {
		for _, row := range comp.Rows {
			checkHeights(out, row)
			checkTypes(out, row)
			checkWidth(out, row)
		}
	}
	return out
}

func checkHeights(out Set, row layout.Row) {
	for _, stack := range row.Stacks {
		if stack.TotalHeight() > row.MaxHeight {
			for _, it := range stack.Items {
				out.add(it.ID, ReasonHeight)
			}
		}
	}
}

func checkTypes(out Set, row layout.Row) {
	for _, stack := range row.Stacks {
		for _, it := range stack.Items {
			if it.IsPlaceholder() {
				continue
			}
			if !row.Allows(it.Classification) {
				out.add(it.ID, ReasonType)
			}
		}
	}
}

// checkWidth walks stacks right-to-left, flagging whole stacks until the
// remaining width fits the capacity. Removing a stack frees its base width
// plus the gap on its left boundary (while another stack remains).
func checkWidth(out Set, row layout.Row) {
	remaining := row.UsedWidth()
	if remaining <= row.Capacity {
		return
	}
	for i := len(row.Stacks) - 1; i >= 0 && remaining > row.Capacity; i-- {
		for _, it := range row.Stacks[i].Items {
			out.add(it.ID, ReasonWidth)
		}
		remaining -= row.Stacks[i].BaseWidth()
		if i > 0 {
			remaining -= layout.UnitGap
		}
	}
}
