package layout

import (
	"testing"

	"github.com/fixturelab/planogram/pkg/errors"
)

func TestParseDraftCanonical(t *testing.T) {
	blob := []byte(`{
		"compartments": [
			{"id": "door-1", "width": 673, "height": 900, "rows": [
				{"id": "row-1", "capacity": 650, "max_height": 220, "stacks": [
					{"items": [{"id": "i1", "sku": "s1", "classification": "soda", "width": 60, "height": 120}]}
				]}
			]},
			{"id": "door-2", "width": 500, "height": 900, "rows": []}
		]
	}`)

	l, err := ParseDraft(blob)
	if err != nil {
		t.Fatalf("ParseDraft: %v", err)
	}
	if len(l.Compartments) != 2 {
		t.Fatalf("compartments = %d, want 2", len(l.Compartments))
	}
	if l.Compartments[0].ID != "door-1" || l.Compartments[1].ID != "door-2" {
		t.Errorf("compartment order not preserved: %v, %v", l.Compartments[0].ID, l.Compartments[1].ID)
	}
	row := l.Compartment("door-1").Row("row-1")
	if row == nil || len(row.Stacks) != 1 {
		t.Fatal("row-1 not normalized")
	}
	if got := row.Stacks[0].Base().Classification; got != "soda" {
		t.Errorf("classification = %q, want soda", got)
	}
}

func TestParseDraftLegacy(t *testing.T) {
	blob := []byte(`{
		"width": 673,
		"height": 900,
		"rows": {
			"row-2": {"capacity": 600, "maxHeight": 180, "allowedTypes": ["water"], "stacks": []},
			"row-1": {"capacity": 650, "maxHeight": 220, "allowedTypes": ["soda"], "stacks": [
				{"items": [{"id": "i1", "sku": "s1", "type": "soda", "width": 60, "height": 120, "stackable": true}]}
			]}
		}
	}`)

	l, err := ParseDraft(blob)
	if err != nil {
		t.Fatalf("ParseDraft: %v", err)
	}
	if len(l.Compartments) != 1 {
		t.Fatalf("compartments = %d, want 1", len(l.Compartments))
	}
	comp := l.Compartments[0]
	if comp.ID != LegacyCompartmentID {
		t.Errorf("compartment ID = %q, want %q", comp.ID, LegacyCompartmentID)
	}
	if comp.Width != 673 || comp.Height != 900 {
		t.Errorf("dimensions = %vx%v, want 673x900", comp.Width, comp.Height)
	}
	// Legacy rows are keyed by ID; normalization sorts for determinism.
	if comp.Rows[0].ID != "row-1" || comp.Rows[1].ID != "row-2" {
		t.Errorf("row order = %v, %v, want row-1, row-2", comp.Rows[0].ID, comp.Rows[1].ID)
	}
	it := comp.Rows[0].Stacks[0].Base()
	if it.Classification != "soda" || !it.Stackable {
		t.Errorf("legacy item fields not mapped: %+v", it)
	}
}

func TestParseDraftErrors(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"NotJSON", `{{`},
		{"EmptyCompartmentID", `{"compartments": [{"id": "", "rows": []}]}`},
		{"DuplicateCompartmentID", `{"compartments": [{"id": "d", "rows": []}, {"id": "d", "rows": []}]}`},
		{"DuplicateRowID", `{"compartments": [{"id": "d", "rows": [{"id": "r"}, {"id": "r"}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDraft([]byte(tt.blob))
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.GetCode(err) != errors.ErrCodeInvalidDraft {
				t.Errorf("code = %q, want INVALID_DRAFT", errors.GetCode(err))
			}
		})
	}
}

func TestParseDraftPreservesOverflow(t *testing.T) {
	// A draft with pre-existing overflow loads without error; the validator
	// reports it later rather than the parser correcting it.
	blob := []byte(`{
		"compartments": [{"id": "d", "width": 100, "height": 300, "rows": [
			{"id": "r", "capacity": 50, "max_height": 100, "stacks": [
				{"items": [{"id": "i1", "sku": "s", "classification": "soda", "width": 90, "height": 50}]}
			]}
		]}]
	}`)

	l, err := ParseDraft(blob)
	if err != nil {
		t.Fatalf("ParseDraft: %v", err)
	}
	row := l.Compartment("d").Row("r")
	if row.UsedWidth() != 90 {
		t.Errorf("UsedWidth = %v, want 90 (overflow preserved)", row.UsedWidth())
	}
}
