package editor

import (
	"github.com/fixturelab/planogram/pkg/errors"
	"github.com/fixturelab/planogram/pkg/layout"
)

// =============================================================================
// Actions - Atomic Edit Operations
// =============================================================================

// ActionType identifies an edit operation.
type ActionType string

// Supported edit operations.
const (
	ActionInsert  ActionType = "insert"  // place a new stack in a row
	ActionMove    ActionType = "move"    // relocate a stack or item
	ActionStack   ActionType = "stack"   // push an item onto an existing stack
	ActionRemove  ActionType = "remove"  // remove an item or a whole stack
	ActionResize  ActionType = "resize"  // change an item's dimensions
	ActionReplace ActionType = "replace" // swap an item in place
)

// Location addresses a position inside a layout. Compartment is always
// explicit; there is no default compartment. Stack indexes a slot within
// the row and Item indexes a level within the stack (0 = base).
type Location struct {
	Compartment string `json:"compartment" bson:"compartment"`
	Row         string `json:"row" bson:"row"`
	Stack       int    `json:"stack" bson:"stack"`
	Item        int    `json:"item,omitempty" bson:"item,omitempty"`
}

// Action is one atomic edit. The fields used depend on Type:
//
//   - insert:  At (Stack = insertion index), Item
//   - move:    At (source), To (destination), WholeStack
//   - stack:   At (target stack), Item
//   - remove:  At, WholeStack
//   - resize:  At (item level), Width, Height
//   - replace: At (item level), Item
//
// Actions are JSON-serializable so edit scripts and the HTTP surface can
// carry them verbatim.
type Action struct {
	Type       ActionType   `json:"type" bson:"type"`
	At         Location     `json:"at" bson:"at"`
	To         *Location    `json:"to,omitempty" bson:"to,omitempty"`
	Item       *layout.Item `json:"item,omitempty" bson:"item,omitempty"`
	Width      float64      `json:"width,omitempty" bson:"width,omitempty"`
	Height     float64      `json:"height,omitempty" bson:"height,omitempty"`
	WholeStack bool         `json:"whole_stack,omitempty" bson:"whole_stack,omitempty"`
}

// =============================================================================
// Policy - Explicit Placement Knobs
// =============================================================================

// Policy controls placement-rule enforcement. The stacking order question
// (auto-sorted pyramid vs. authored order) is an explicit knob rather than
// an assumption.
type Policy struct {
	// EnforceTypes rejects insertions whose classification the row does not
	// allow. When false, misplaced items are accepted and flagged by the
	// validator instead.
	EnforceTypes bool

	// AllowMixedStacks permits stacking items of differing classifications.
	// Placeholders are exempt from the mix check either way.
	AllowMixedStacks bool

	// AutoSort keeps stacks in pyramid order (non-increasing width) by
	// inserting stacked items at their sorted position. When false, stacked
	// items go on top as authored.
	AutoSort bool

	// HistoryLimit bounds the history; the oldest entries are evicted once
	// it is exceeded. Zero means DefaultHistoryLimit.
	HistoryLimit int
}

// DefaultHistoryLimit bounds history when Policy.HistoryLimit is zero.
const DefaultHistoryLimit = 100

// DefaultPolicy returns the standard editing policy: type enforcement on,
// mixed stacks off, authored stacking order.
func DefaultPolicy() Policy {
	return Policy{
		EnforceTypes:     true,
		AllowMixedStacks: false,
		AutoSort:         false,
		HistoryLimit:     DefaultHistoryLimit,
	}
}

// =============================================================================
// Target Resolution
// =============================================================================

// resolveRow returns the row addressed by loc, or INVALID_TARGET if the
// compartment or row does not exist.
func resolveRow(l *layout.Layout, loc Location) (*layout.Row, error) {
	comp := l.Compartment(loc.Compartment)
	if comp == nil {
		return nil, errors.New(errors.ErrCodeInvalidTarget, "compartment %q does not exist", loc.Compartment)
	}
	row := comp.Row(loc.Row)
	if row == nil {
		return nil, errors.New(errors.ErrCodeInvalidTarget, "row %q in compartment %q does not exist", loc.Row, loc.Compartment)
	}
	return row, nil
}

// resolveStack returns the stack addressed by loc.
func resolveStack(l *layout.Layout, loc Location) (*layout.Row, *layout.Stack, error) {
	row, err := resolveRow(l, loc)
	if err != nil {
		return nil, nil, err
	}
	if loc.Stack < 0 || loc.Stack >= len(row.Stacks) {
		return nil, nil, errors.New(errors.ErrCodeInvalidTarget,
			"stack %d out of range in %s/%s", loc.Stack, loc.Compartment, loc.Row)
	}
	return row, &row.Stacks[loc.Stack], nil
}

// resolveItem returns the item addressed by loc.
func resolveItem(l *layout.Layout, loc Location) (*layout.Row, *layout.Stack, *layout.Item, error) {
	row, stack, err := resolveStack(l, loc)
	if err != nil {
		return nil, nil, nil, err
	}
	if loc.Item < 0 || loc.Item >= len(stack.Items) {
		return nil, nil, nil, errors.New(errors.ErrCodeInvalidTarget,
			"item %d out of range in %s/%s stack %d", loc.Item, loc.Compartment, loc.Row, loc.Stack)
	}
	return row, stack, &stack.Items[loc.Item], nil
}
