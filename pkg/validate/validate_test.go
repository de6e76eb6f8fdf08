package validate

import (
	"testing"

	"github.com/fixturelab/planogram/pkg/layout"
)

func item(id, class string, w, h float64) layout.Item {
	return layout.Item{ID: id, SKU: "sku-" + id, Classification: class, Width: w, Height: h, Stackable: true}
}

func stack(items ...layout.Item) layout.Stack {
	return layout.Stack{Items: items}
}

func single(comp string, row layout.Row) layout.Layout {
	return layout.Layout{Compartments: []layout.Compartment{
		{ID: comp, Width: 673, Height: 900, Rows: []layout.Row{row}},
	}}
}

func TestWidthOverflowFlagsRightmostStack(t *testing.T) {
	// Two stacks of base widths 60 and 45 in a row of capacity 100:
	// 60 + 45 + 1 = 106 overflows, and removing the rightmost stack
	// (freeing 45 + gap) brings the total to 60, which fits.
	l := single("door-1", layout.Row{
		ID: "row-1", Capacity: 100, MaxHeight: 300,
		Stacks: []layout.Stack{
			stack(item("a", "soda", 60, 120)),
			stack(item("b", "soda", 45, 120)),
		},
	})

	got := FindConflicts(l)
	if got.Has("a") {
		t.Errorf("leftmost stack should not be flagged, got %v", got.IDs())
	}
	if !got.HasReason("b", ReasonWidth) {
		t.Errorf("rightmost stack should carry a width conflict, got %v", got)
	}

	// Dropping the flagged stack clears the conflict set.
	l.Compartments[0].Rows[0].Stacks = l.Compartments[0].Rows[0].Stacks[:1]
	if got := FindConflicts(l); len(got) != 0 {
		t.Errorf("expected no conflicts after removal, got %v", got.IDs())
	}
}

func TestWidthOverflowConsumesWholeStacks(t *testing.T) {
	// Capacity 100 with bases 50, 40, 30: total 50+40+30+2 = 122. Dropping
	// the rightmost stack leaves 50+40+1 = 91 which fits, so only the last
	// stack is consumed, and every item in it is flagged.
	l := single("door-1", layout.Row{
		ID: "row-1", Capacity: 100, MaxHeight: 300,
		Stacks: []layout.Stack{
			stack(item("a", "soda", 50, 100)),
			stack(item("b", "soda", 40, 100)),
			stack(item("c", "soda", 30, 100), item("d", "soda", 25, 100)),
		},
	})

	got := FindConflicts(l)
	for _, id := range []string{"c", "d"} {
		if !got.HasReason(id, ReasonWidth) {
			t.Errorf("item %q should be width-flagged, got %v", id, got)
		}
	}
	for _, id := range []string{"a", "b"} {
		if got.Has(id) {
			t.Errorf("item %q should not be flagged, got %v", id, got)
		}
	}
}

func TestWidthOverflowWalksMultipleStacks(t *testing.T) {
	// Capacity 100 with bases 90, 40, 30: total 162. Dropping the rightmost
	// (30 + gap) leaves 131, still over; dropping the next (40 + gap) leaves
	// 90. Both right stacks flagged, the left one clean.
	l := single("door-1", layout.Row{
		ID: "row-1", Capacity: 100, MaxHeight: 300,
		Stacks: []layout.Stack{
			stack(item("a", "soda", 90, 100)),
			stack(item("b", "soda", 40, 100)),
			stack(item("c", "soda", 30, 100)),
		},
	})

	got := FindConflicts(l)
	if got.Has("a") || !got.HasReason("b", ReasonWidth) || !got.HasReason("c", ReasonWidth) {
		t.Errorf("expected b and c flagged only, got %v", got)
	}
}

func TestHeightOverflowFlagsWholeStack(t *testing.T) {
	// 80 + 90 = 170 exceeds max height 150; both items flagged.
	l := single("door-1", layout.Row{
		ID: "row-1", Capacity: 500, MaxHeight: 150,
		Stacks: []layout.Stack{
			stack(item("a", "soda", 60, 80), item("b", "soda", 55, 90)),
			stack(item("c", "soda", 60, 140)),
		},
	})

	got := FindConflicts(l)
	for _, id := range []string{"a", "b"} {
		if !got.HasReason(id, ReasonHeight) {
			t.Errorf("item %q should be height-flagged, got %v", id, got)
		}
	}
	if got.Has("c") {
		t.Errorf("stack within max height should not be flagged, got %v", got)
	}
}

func TestTypeConflicts(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		it      layout.Item
		want    bool
	}{
		{"disallowed classification", []string{"soda"}, item("x", "snack", 40, 100), true},
		{"allowed classification", []string{"soda", "snack"}, item("x", "snack", 40, 100), false},
		{"wildcard allows any", []string{layout.AllowAll}, item("x", "snack", 40, 100), false},
		{"empty list allows any", nil, item("x", "snack", 40, 100), false},
		{"placeholder exempt", []string{"soda"}, item("x", layout.ClassificationBlank, 40, 100), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := single("door-1", layout.Row{
				ID: "row-1", Capacity: 500, MaxHeight: 300, Allowed: tt.allowed,
				Stacks: []layout.Stack{stack(tt.it)},
			})
			got := FindConflicts(l).HasReason("x", ReasonType)
			if got != tt.want {
				t.Errorf("type conflict = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConflictsUnionAcrossCompartments(t *testing.T) {
	l := layout.Layout{Compartments: []layout.Compartment{
		{ID: "door-1", Width: 673, Height: 900, Rows: []layout.Row{{
			ID: "row-1", Capacity: 50, MaxHeight: 300,
			Stacks: []layout.Stack{
				stack(item("a", "soda", 40, 100)),
				stack(item("b", "soda", 40, 100)),
			},
		}}},
		{ID: "door-2", Width: 500, Height: 900, Rows: []layout.Row{{
			ID: "row-1", Capacity: 500, MaxHeight: 90,
			Stacks: []layout.Stack{stack(item("c", "soda", 40, 120))},
		}}},
	}}

	got := FindConflicts(l)
	if !got.HasReason("b", ReasonWidth) {
		t.Errorf("door-1 overflow missing, got %v", got)
	}
	if !got.HasReason("c", ReasonHeight) {
		t.Errorf("door-2 height conflict missing, got %v", got)
	}
	if got.Has("a") {
		t.Errorf("item a should be clean, got %v", got)
	}
}

func TestMultipleReasonsOnOneItem(t *testing.T) {
	// A disallowed item in an over-tall stack in an over-wide row collects
	// all three reasons.
	l := single("door-1", layout.Row{
		ID: "row-1", Capacity: 30, MaxHeight: 100, Allowed: []string{"soda"},
		Stacks: []layout.Stack{stack(item("x", "snack", 40, 120))},
	})

	got := FindConflicts(l)
	for _, r := range []Reason{ReasonHeight, ReasonType, ReasonWidth} {
		if !got.HasReason("x", r) {
			t.Errorf("missing reason %q, got %v", r, got["x"])
		}
	}
}

func TestFindConflictsIsIdempotent(t *testing.T) {
	l := single("door-1", layout.Row{
		ID: "row-1", Capacity: 100, MaxHeight: 150,
		Stacks: []layout.Stack{
			stack(item("a", "soda", 60, 80), item("b", "soda", 55, 90)),
			stack(item("c", "soda", 45, 100)),
		},
	})
	snap := l.Clone()

	first := FindConflicts(l)
	second := FindConflicts(l)
	if len(first) != len(second) {
		t.Fatalf("conflict set changed between runs: %v vs %v", first.IDs(), second.IDs())
	}
	for id := range first {
		if !second.Has(id) {
			t.Errorf("item %q missing on second run", id)
		}
	}
	if !snap.Equal(l) {
		t.Error("FindConflicts mutated the layout")
	}
}

func TestEmptyLayoutHasNoConflicts(t *testing.T) {
	if got := FindConflicts(layout.Layout{}); len(got) != 0 {
		t.Errorf("expected empty set, got %v", got.IDs())
	}
	l := single("door-1", layout.Row{ID: "row-1", Capacity: 100, MaxHeight: 150})
	if got := FindConflicts(l); len(got) != 0 {
		t.Errorf("expected empty set for empty row, got %v", got.IDs())
	}
}
