// Package store provides draft persistence for layout snapshots.
//
// This package defines the Store interface for saving work-in-progress
// layouts, with implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI usage
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage for durable collections
//
// A Draft wraps one canonical layout snapshot with identity and
// timestamps. Drafts round-trip through ParseDraft, so a blob written by
// an older single-compartment client is normalized on load.
package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fixturelab/planogram/pkg/layout"
)

// Draft is one persisted layout snapshot.
type Draft struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name" bson:"name"`
	Layout    layout.Layout `json:"layout" bson:"layout"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}

// NewDraft wraps a snapshot in a fresh draft with a generated ID.
func NewDraft(name string, l layout.Layout) *Draft {
	now := time.Now().UTC()
	return &Draft{
		ID:        uuid.NewString(),
		Name:      name,
		Layout:    l.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the modification timestamp.
func (d *Draft) Touch() {
	d.UpdatedAt = time.Now().UTC()
}

// Store is the interface for draft storage backends.
type Store interface {
	// Get retrieves a draft by ID.
	// Returns nil, nil if the draft doesn't exist.
	Get(ctx context.Context, id string) (*Draft, error)

	// Set stores a draft, overwriting any previous version.
	Set(ctx context.Context, draft *Draft) error

	// List returns all drafts, newest first.
	List(ctx context.Context) ([]*Draft, error)

	// Delete removes a draft. Deleting a missing draft is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// sortDrafts orders drafts newest first, breaking ties by ID for
// deterministic listings.
func sortDrafts(drafts []*Draft) {
	sort.Slice(drafts, func(i, j int) bool {
		if !drafts[i].UpdatedAt.Equal(drafts[j].UpdatedAt) {
			return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt)
		}
		return drafts[i].ID < drafts[j].ID
	})
}
