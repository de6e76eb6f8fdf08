package editor

import (
	"slices"

	"github.com/fixturelab/planogram/pkg/errors"
	"github.com/fixturelab/planogram/pkg/layout"
)

// applyAction mutates l in place according to a. It is called on a private
// clone, so a returned error leaves the published snapshot untouched.
//
// Capacity is enforced on the paths that add horizontal footprint (insert,
// move, replace, base-widening stacking). Resize never rejects: dimensional
// overflow introduced by resizing is reported by the validator instead.
func applyAction(l *layout.Layout, a Action, p Policy) error {
	switch a.Type {
	case ActionInsert:
		return applyInsert(l, a, p)
	case ActionMove:
		return applyMove(l, a, p)
	case ActionStack:
		return applyStack(l, a, p)
	case ActionRemove:
		return applyRemove(l, a)
	case ActionResize:
		return applyResize(l, a)
	case ActionReplace:
		return applyReplace(l, a, p)
	default:
		return errors.New(errors.ErrCodeInvalidAction, "unknown action type %q", a.Type)
	}
}

func applyInsert(l *layout.Layout, a Action, p Policy) error {
	if a.Item == nil {
		return errors.New(errors.ErrCodeInvalidAction, "insert requires an item")
	}
	row, err := resolveRow(l, a.At)
	if err != nil {
		return err
	}

	if p.EnforceTypes && !row.Allows(a.Item.Classification) {
		return errors.New(errors.ErrCodeTypeMismatch,
			"classification %q not allowed in row %q", a.Item.Classification, row.ID)
	}

	if err := checkCapacity(row, a.Item.Width, true); err != nil {
		return err
	}

	idx := a.At.Stack
	if idx < 0 || idx > len(row.Stacks) {
		idx = len(row.Stacks)
	}
	row.Stacks = slices.Insert(row.Stacks, idx, layout.Stack{Items: []layout.Item{*a.Item}})
	return nil
}

func applyMove(l *layout.Layout, a Action, p Policy) error {
	if a.To == nil {
		return errors.New(errors.ErrCodeInvalidAction, "move requires a destination")
	}

	var moved layout.Stack
	if a.WholeStack {
		srcRow, stack, err := resolveStack(l, a.At)
		if err != nil {
			return err
		}
		moved = *stack
		srcRow.Stacks = slices.Delete(srcRow.Stacks, a.At.Stack, a.At.Stack+1)
	} else {
		srcRow, stack, item, err := resolveItem(l, a.At)
		if err != nil {
			return err
		}
		moved = layout.Stack{Items: []layout.Item{*item}}
		stack.Items = slices.Delete(stack.Items, a.At.Item, a.At.Item+1)
		if len(stack.Items) == 0 {
			srcRow.Stacks = slices.Delete(srcRow.Stacks, a.At.Stack, a.At.Stack+1)
		}
	}

	dstRow, err := resolveRow(l, *a.To)
	if err != nil {
		return err
	}

	if p.EnforceTypes {
		for _, it := range moved.Items {
			if !dstRow.Allows(it.Classification) {
				return errors.New(errors.ErrCodeTypeMismatch,
					"classification %q not allowed in row %q", it.Classification, dstRow.ID)
			}
		}
	}

	if err := checkCapacity(dstRow, moved.BaseWidth(), true); err != nil {
		return err
	}

	idx := a.To.Stack
	if idx < 0 || idx > len(dstRow.Stacks) {
		idx = len(dstRow.Stacks)
	}
	dstRow.Stacks = slices.Insert(dstRow.Stacks, idx, moved)
	return nil
}

func applyStack(l *layout.Layout, a Action, p Policy) error {
	if a.Item == nil {
		return errors.New(errors.ErrCodeInvalidAction, "stack requires an item")
	}
	row, stack, err := resolveStack(l, a.At)
	if err != nil {
		return err
	}
	if len(stack.Items) == 0 {
		return errors.New(errors.ErrCodeInvalidTarget, "cannot stack onto an empty stack")
	}

	base := stack.Base()
	if !base.Stackable && !base.IsPlaceholder() {
		return errors.New(errors.ErrCodeNotStackable, "base item %q is not stackable", base.SKU)
	}
	if !p.AllowMixedStacks && !a.Item.IsPlaceholder() && !base.IsPlaceholder() &&
		a.Item.Classification != base.Classification {
		return errors.New(errors.ErrCodeTypeMismatch,
			"cannot stack %q onto %q", a.Item.Classification, base.Classification)
	}
	if p.EnforceTypes && !row.Allows(a.Item.Classification) {
		return errors.New(errors.ErrCodeTypeMismatch,
			"classification %q not allowed in row %q", a.Item.Classification, row.ID)
	}

	oldBase := stack.BaseWidth()
	if p.AutoSort {
		// Pyramid order: insert at the first position whose item is
		// narrower, keeping widths non-increasing base to top.
		pos := len(stack.Items)
		for i, it := range stack.Items {
			if it.Width < a.Item.Width {
				pos = i
				break
			}
		}
		stack.Items = slices.Insert(stack.Items, pos, *a.Item)
	} else {
		stack.Items = append(stack.Items, *a.Item)
	}

	// Auto-sorting can widen the base; the stack then occupies more of the
	// row's width budget and must re-pass the capacity check. The row
	// already reflects the mutation here, so compare directly. The mutated
	// clone is discarded by the caller on error, so no unwind is needed.
	if stack.BaseWidth() > oldBase && row.UsedWidth() > row.Capacity {
		return errors.New(errors.ErrCodeCapacityExceeded,
			"row %q: widened base exceeds capacity %.0f", row.ID, row.Capacity)
	}
	return nil
}

func applyRemove(l *layout.Layout, a Action) error {
	if a.WholeStack {
		row, _, err := resolveStack(l, a.At)
		if err != nil {
			return err
		}
		row.Stacks = slices.Delete(row.Stacks, a.At.Stack, a.At.Stack+1)
		return nil
	}

	row, stack, _, err := resolveItem(l, a.At)
	if err != nil {
		return err
	}
	stack.Items = slices.Delete(stack.Items, a.At.Item, a.At.Item+1)
	if len(stack.Items) == 0 {
		row.Stacks = slices.Delete(row.Stacks, a.At.Stack, a.At.Stack+1)
	}
	return nil
}

func applyResize(l *layout.Layout, a Action) error {
	if a.Width <= 0 || a.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidAction, "resize dimensions must be positive")
	}
	_, _, item, err := resolveItem(l, a.At)
	if err != nil {
		return err
	}
	item.Width = a.Width
	item.Height = a.Height
	return nil
}

func applyReplace(l *layout.Layout, a Action, p Policy) error {
	if a.Item == nil {
		return errors.New(errors.ErrCodeInvalidAction, "replace requires an item")
	}
	row, stack, item, err := resolveItem(l, a.At)
	if err != nil {
		return err
	}

	if p.EnforceTypes && !row.Allows(a.Item.Classification) {
		return errors.New(errors.ErrCodeTypeMismatch,
			"classification %q not allowed in row %q", a.Item.Classification, row.ID)
	}

	// Replacing the base with a wider item grows the stack footprint.
	if a.At.Item == 0 {
		if grown := a.Item.Width - stack.BaseWidth(); grown > 0 {
			if err := checkCapacity(row, grown, false); err != nil {
				return err
			}
		}
	}

	*item = *a.Item
	return nil
}

// checkCapacity verifies that adding addedWidth of base footprint keeps the
// row within its width budget. newBoundary charges the unit gap a new stack
// boundary costs in a non-empty row; in-place growth adds none.
func checkCapacity(row *layout.Row, addedWidth float64, newBoundary bool) error {
	used := row.UsedWidth()
	total := used + addedWidth
	if newBoundary && len(row.Stacks) > 0 {
		total += layout.UnitGap
	}
	if total > row.Capacity {
		return errors.New(errors.ErrCodeCapacityExceeded,
			"row %q: %.0f of %.0f used, cannot fit %.0f more", row.ID, used, row.Capacity, addedWidth)
	}
	return nil
}
