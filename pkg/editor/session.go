// Package editor implements the transactional editing core: atomic actions
// over immutable layout snapshots with linear, bounded undo/redo history.
//
// # Transaction model
//
// Every edit goes through Session.Apply: the current snapshot is cloned,
// the action is applied to the clone, and on success the clone is published
// as a new history entry. A failed action returns an error naming the
// violated constraint and leaves both the layout and the history untouched.
//
// # History
//
// History is linear and append-only with a bounded size. Applying an edit
// while the cursor sits behind the newest entry truncates the redo tail;
// once the bound is exceeded the oldest entries are evicted. Undo and redo
// clamp at the ends as no-ops. The (entries, cursor) pair is updated under
// one mutex so no reader ever observes a truncated entry list paired with a
// stale cursor.
package editor

import (
	"sync"
	"time"

	"github.com/fixturelab/planogram/pkg/layout"
)

// HistoryEntry is one immutable layout snapshot plus the action that
// produced it.
type HistoryEntry struct {
	Layout layout.Layout
	Action ActionType // empty for the initial snapshot
	At     time.Time
}

// Session owns the evolving edit state: the history entries and the cursor
// into them. It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	policy  Policy
	entries []HistoryEntry
	cursor  int
}

// NewSession starts a session from an initial layout (typically a template
// instantiation or a normalized draft). The initial snapshot is entry zero.
func NewSession(initial layout.Layout, policy Policy) *Session {
	if policy.HistoryLimit <= 0 {
		policy.HistoryLimit = DefaultHistoryLimit
	}
	return &Session{
		policy: policy,
		entries: []HistoryEntry{
			{Layout: initial.Clone(), At: time.Now()},
		},
	}
}

// Apply executes one atomic action. On success it publishes a new snapshot,
// advances the cursor, and returns the new layout. On failure the session
// is unchanged and the error names the violated constraint.
//
// Returned snapshots are shared and must be treated as read-only; call
// Clone before mutating.
func (s *Session) Apply(a Action) (layout.Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.entries[s.cursor].Layout.Clone()
	if err := applyAction(&next, a, s.policy); err != nil {
		return layout.Layout{}, err
	}

	// Any new edit truncates entries beyond the cursor.
	s.entries = append(s.entries[:s.cursor+1], HistoryEntry{
		Layout: next,
		Action: a.Type,
		At:     time.Now(),
	})
	s.cursor++

	// Bounded history: evict the oldest entries.
	if len(s.entries) > s.policy.HistoryLimit {
		excess := len(s.entries) - s.policy.HistoryLimit
		s.entries = append([]HistoryEntry(nil), s.entries[excess:]...)
		s.cursor -= excess
	}

	return next, nil
}

// Undo moves the cursor one entry back and returns that snapshot. At the
// oldest entry it is a no-op returning the current snapshot.
func (s *Session) Undo() layout.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor > 0 {
		s.cursor--
	}
	return s.entries[s.cursor].Layout
}

// Redo moves the cursor one entry forward and returns that snapshot. At the
// newest entry it is a no-op returning the current snapshot.
func (s *Session) Redo() layout.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < len(s.entries)-1 {
		s.cursor++
	}
	return s.entries[s.cursor].Layout
}

// Current returns the snapshot at the cursor.
func (s *Session) Current() layout.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.cursor].Layout
}

// CanUndo reports whether an undo would move the cursor.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor > 0
}

// CanRedo reports whether a redo would move the cursor.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor < len(s.entries)-1
}

// HistoryLen returns the number of history entries.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cursor returns the current cursor position (0 = oldest entry).
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Reset discards all history and restarts the session from the given
// layout, e.g. on a template switch.
func (s *Session) Reset(initial layout.Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = []HistoryEntry{{Layout: initial.Clone(), At: time.Now()}}
	s.cursor = 0
}

// Policy returns the session's placement policy.
func (s *Session) Policy() Policy { return s.policy }
