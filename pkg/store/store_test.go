package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixturelab/planogram/pkg/layout"
)

func testLayout() layout.Layout {
	return layout.Layout{Compartments: []layout.Compartment{
		{ID: "door-1", Width: 673, Height: 900, Rows: []layout.Row{
			{ID: "row-1", Capacity: 200, MaxHeight: 220, Stacks: []layout.Stack{
				{Items: []layout.Item{{
					ID: "i1", SKU: "cola", Classification: "soda", Width: 60, Height: 120, Stackable: true,
				}}},
			}},
		}},
	}}
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	file, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   file,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			d := NewDraft("summer reset", testLayout())
			require.NoError(t, s.Set(ctx, d))

			got, err := s.Get(ctx, d.ID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, d.ID, got.ID)
			assert.Equal(t, "summer reset", got.Name)
			assert.True(t, d.Layout.Equal(got.Layout))
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			got, err := s.Get(ctx, "no-such-draft")
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			old := NewDraft("old", testLayout())
			old.CreatedAt = old.CreatedAt.Add(-time.Hour)
			old.UpdatedAt = old.UpdatedAt.Add(-time.Hour)
			newer := NewDraft("newer", testLayout())

			require.NoError(t, s.Set(ctx, old))
			require.NoError(t, s.Set(ctx, newer))

			list, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "newer", list[0].Name)
			assert.Equal(t, "old", list[1].Name)
		})
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			d := NewDraft("doomed", testLayout())
			require.NoError(t, s.Set(ctx, d))
			require.NoError(t, s.Delete(ctx, d.ID))

			got, err := s.Get(ctx, d.ID)
			require.NoError(t, err)
			assert.Nil(t, got)

			// Deleting a missing draft is not an error.
			assert.NoError(t, s.Delete(ctx, d.ID))
		})
	}
}

func TestMemoryStoreIsolatesSnapshots(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	d := NewDraft("shared", testLayout())
	require.NoError(t, s.Set(ctx, d))

	// Mutating the caller's copy must not leak into the store.
	d.Layout.Compartments[0].Rows[0].Stacks = nil

	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, got.Layout.Compartments[0].Rows[0].Stacks, 1)

	// Mutating a retrieved copy must not leak either.
	got.Layout.Compartments[0].Rows[0].Stacks = nil
	again, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, again.Layout.Compartments[0].Rows[0].Stacks, 1)
}

func TestNewDraftGeneratesUniqueIDs(t *testing.T) {
	a := NewDraft("a", testLayout())
	b := NewDraft("b", testLayout())
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}
