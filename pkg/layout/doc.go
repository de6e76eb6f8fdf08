// Package layout defines the editable planogram data model: items placed in
// stacks, stacks arranged in rows, rows mounted in compartments, and
// compartments ordered left-to-right into a fixture layout.
//
// # Snapshot model
//
// A Layout value is treated as an immutable snapshot once published. Edits
// go through pkg/editor, which clones the current snapshot, mutates the
// copy, and publishes the result as a new history entry. Validators,
// geometry resolvers, and exporters are pure functions over one snapshot,
// so concurrent readers need no locking.
//
// # Canonical form
//
// Persisted drafts exist in two shapes: a legacy single-compartment form
// and the canonical multi-compartment form. ParseDraft normalizes both at
// the ingestion boundary; everything downstream operates on the canonical
// Layout and never branches on compartment count.
//
// # Templates
//
// A fixture template (LoadTemplate) names the compartments and row slots of
// a physical fixture. Instantiate produces the empty layout a session
// starts from.
package layout
