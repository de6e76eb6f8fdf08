package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/fixturelab/planogram/pkg/cache"
	"github.com/fixturelab/planogram/pkg/layout"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func pipelineLayout() *layout.Layout {
	return &layout.Layout{Compartments: []layout.Compartment{
		{ID: "door-1", Width: 673, Height: 900, Rows: []layout.Row{
			{ID: "row-1", Capacity: 100, MaxHeight: 220, Stacks: []layout.Stack{
				{Items: []layout.Item{{ID: "i1", SKU: "cola", Classification: "soda", Width: 60, Height: 120}}},
				{Items: []layout.Item{{ID: "i2", SKU: "water", Classification: "water", Width: 45, Height: 150}}},
			}},
		}},
	}}
}

func TestExecuteFromLayout(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, quietLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{Layout: pipelineLayout()})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.ItemCount != 2 {
		t.Errorf("item count = %d, want 2", result.Stats.ItemCount)
	}
	if result.LayoutHash == "" {
		t.Error("layout hash should be set")
	}
	// 60 + 45 + 1 = 106 > 100: the rightmost stack is in conflict.
	if !result.Conflicts.Has("i2") || result.Conflicts.Has("i1") {
		t.Errorf("conflicts = %v, want only i2", result.Conflicts.IDs())
	}
	if len(result.Document.Compartments["door-1"].Sections) != 1 {
		t.Error("document should hold one section for door-1")
	}
}

func TestExecuteFromLegacyDraft(t *testing.T) {
	blob := []byte(`{
		"width": 673, "height": 900,
		"rows": {
			"row-1": {"capacity": 200, "maxHeight": 220, "stacks": [
				{"items": [{"id": "i1", "sku": "cola", "type": "soda", "width": 60, "height": 120}]}
			]}
		}
	}`)

	r := NewRunner(cache.NewNullCache(), nil, quietLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{Draft: blob})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := result.Layout.Compartments[0].ID; got != layout.LegacyCompartmentID {
		t.Errorf("legacy draft compartment = %q, want %q", got, layout.LegacyCompartmentID)
	}
	if len(result.Conflicts) != 0 {
		t.Errorf("expected clean layout, got %v", result.Conflicts.IDs())
	}
}

func TestExecuteCachesStages(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, quietLogger())
	defer r.Close()

	opts := Options{Layout: pipelineLayout()}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.ConflictHit || first.CacheInfo.ExportHit {
		t.Error("first run must miss the cache")
	}

	second, err := r.Execute(context.Background(), Options{Layout: pipelineLayout()})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.ConflictHit || !second.CacheInfo.ExportHit {
		t.Errorf("second run should hit both caches, got %+v", second.CacheInfo)
	}
	if second.LayoutHash != first.LayoutHash {
		t.Error("identical layouts must hash identically")
	}

	// Refresh bypasses cached results.
	refreshed, err := r.Execute(context.Background(), Options{Layout: pipelineLayout(), Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if refreshed.CacheInfo.ConflictHit || refreshed.CacheInfo.ExportHit {
		t.Error("refresh must bypass the cache")
	}
}

func TestExecuteScaleChangesExportKey(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, quietLogger())
	defer r.Close()

	if _, err := r.Execute(context.Background(), Options{Layout: pipelineLayout()}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	scaled, err := r.Execute(context.Background(), Options{Layout: pipelineLayout(), Scale: 2})
	if err != nil {
		t.Fatalf("scaled Execute: %v", err)
	}
	if scaled.CacheInfo.ExportHit {
		t.Error("different scale must not reuse the cached document")
	}
	if !scaled.CacheInfo.ConflictHit {
		t.Error("conflict set is scale-independent and should hit")
	}
}

func TestOptionsValidation(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err == nil {
		t.Error("empty options should be rejected")
	}

	o = Options{Layout: pipelineLayout()}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.FrameBorder != DefaultFrameBorder || o.Scale != DefaultScale {
		t.Errorf("defaults not applied: %+v", o)
	}

	neg := Options{Layout: pipelineLayout(), Scale: -1}
	if err := neg.ValidateAndSetDefaults(); err == nil {
		t.Error("negative scale should be rejected")
	}
}
