package geometry

import (
	"testing"

	"github.com/fixturelab/planogram/pkg/layout"
)

func item(w, h float64) layout.Item {
	return layout.Item{ID: "x", SKU: "sku-x", Classification: "soda", Width: w, Height: h}
}

func TestRowBounds(t *testing.T) {
	c := layout.Compartment{
		ID: "door-1", Width: 673, Height: 900,
		Rows: []layout.Row{
			{ID: "row-1", Capacity: 200, MaxHeight: 220},
			{ID: "row-2", Capacity: 200, MaxHeight: 180},
			{ID: "row-3", Capacity: 200, MaxHeight: 250},
		},
	}

	got := RowBounds(c)
	want := []Bounds{{0, 220}, {220, 400}, {400, 650}}
	if len(got) != len(want) {
		t.Fatalf("got %d bounds, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d bounds = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRowBoundsIgnoresContentHeight(t *testing.T) {
	// An over-tall stack does not stretch its row.
	c := layout.Compartment{ID: "door-1", Rows: []layout.Row{{
		ID: "row-1", Capacity: 200, MaxHeight: 100,
		Stacks: []layout.Stack{{Items: []layout.Item{item(50, 300)}}},
	}}}
	got := RowBounds(c)
	if got[0] != (Bounds{0, 100}) {
		t.Errorf("bounds = %+v, want {0 100}", got[0])
	}
}

func TestStackOffsets(t *testing.T) {
	row := layout.Row{
		ID: "row-1", Capacity: 300,
		Stacks: []layout.Stack{
			{Items: []layout.Item{item(60, 120)}},
			{Items: []layout.Item{item(45, 120), item(40, 100)}},
			{Items: []layout.Item{item(30, 120)}},
		},
	}

	got := StackOffsets(row)
	want := []float64{0, 61, 107} // 60+gap, then 61+45+gap
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stack %d offset = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestItemBoxBottomAligned(t *testing.T) {
	row := Bounds{Start: 220, End: 400}

	base := ItemBox(item(60, 120), 61, row, 0)
	if base != (Box{Left: 61, Top: 280, Right: 121, Bottom: 400}) {
		t.Errorf("base box = %+v", base)
	}

	// Stacked item sits on top of the 120-tall base.
	above := ItemBox(item(50, 80), 61, row, 120)
	if above != (Box{Left: 61, Top: 200, Right: 111, Bottom: 280}) {
		t.Errorf("stacked box = %+v", above)
	}
	if above.Bottom != base.Top {
		t.Errorf("stacked item should rest on the base: %v != %v", above.Bottom, base.Top)
	}
}

func TestBoxHelpers(t *testing.T) {
	b := Box{Left: 10, Top: 20, Right: 70, Bottom: 140}
	if b.Width() != 60 || b.Height() != 120 {
		t.Errorf("width/height = %v/%v", b.Width(), b.Height())
	}
	moved := b.Translate(5, -10)
	if moved != (Box{Left: 15, Top: 10, Right: 75, Bottom: 130}) {
		t.Errorf("translated = %+v", moved)
	}
}

func TestOffsetForTwoDoors(t *testing.T) {
	// Two 673-wide compartments, frame border 16, no gap: the second door
	// starts at 16 + 673 + 32 = 721.
	comps := []layout.Compartment{
		{ID: "door-1", Width: 673, Height: 900},
		{ID: "door-2", Width: 673, Height: 900},
	}

	if got := OffsetFor(0, comps, 16, 0); got != 16 {
		t.Errorf("offset 0 = %v, want 16", got)
	}
	if got := OffsetFor(1, comps, 16, 0); got != 721 {
		t.Errorf("offset 1 = %v, want 721", got)
	}
}

func TestOffsetMonotonicity(t *testing.T) {
	comps := []layout.Compartment{
		{ID: "a", Width: 400}, {ID: "b", Width: 673}, {ID: "c", Width: 250}, {ID: "d", Width: 500},
	}
	for _, gap := range []float64{0, 8, 24} {
		for i := 0; i < len(comps)-1; i++ {
			lo := OffsetFor(i, comps, 16, gap)
			hi := OffsetFor(i+1, comps, 16, gap)
			if hi <= lo+comps[i].Width {
				t.Errorf("gap %v: offset %d (%v) not past compartment %d (%v + %v)",
					gap, i+1, hi, i, lo, comps[i].Width)
			}
		}
	}
}

func TestFrameSize(t *testing.T) {
	comps := []layout.Compartment{
		{ID: "door-1", Width: 673, Height: 900},
		{ID: "door-2", Width: 673, Height: 850},
	}

	w, h := FrameSize(comps, 16, 10, 40, 20)
	if wantW := 673 + 32 + 673 + 32 + 10.0; w != wantW {
		t.Errorf("width = %v, want %v", w, wantW)
	}
	if wantH := 900 + 32 + 40 + 20.0; h != wantH {
		t.Errorf("height = %v, want %v", h, wantH)
	}
}
