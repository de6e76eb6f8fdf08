package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fixturelab/planogram/pkg/layout"
	"github.com/fixturelab/planogram/pkg/pipeline"
	"github.com/fixturelab/planogram/pkg/validate"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "validate [draft.json]",
		Short: "Report placement and dimension conflicts in a draft",
		Long: `Report placement and dimension conflicts in a draft.

The draft may be in the legacy single-compartment shape or the canonical
multi-compartment shape; both are normalized before validation. Conflicts
are advisory: items are flagged, never removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read draft %s: %w", args[0], err)
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			l, err := runner.Load(pipeline.Options{Draft: blob})
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			set, err := runner.Conflicts(cmd.Context(), l, pipeline.Options{Layout: &l})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Validated %d items", l.ItemCount()))

			printConflicts(l, set)
			if len(set) > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// printConflicts lists every flagged item with its reasons, grouped by
// compartment and row.
func printConflicts(l layout.Layout, set validate.Set) {
	if len(set) == 0 {
		printSuccess("No conflicts")
		printStats(len(l.Compartments), l.ItemCount(), 0, false)
		return
	}

	printWarning("%d conflicted items", len(set))
	for _, comp := range l.Compartments {
		for _, row := range comp.Rows {
			for _, stack := range row.Stacks {
				for _, it := range stack.Items {
					reasons, ok := set[it.ID]
					if !ok {
						continue
					}
					name := it.SKU
					if name == "" {
						name = it.ID
					}
					printDetail("%s/%s  %s  %s",
						comp.ID, row.ID, StyleConflict.Render(name), formatReasons(reasons))
				}
			}
		}
	}
	printStats(len(l.Compartments), l.ItemCount(), len(set), false)
}

func formatReasons(reasons []validate.Reason) string {
	out := make([]string, len(reasons))
	for i, r := range reasons {
		out[i] = string(r)
	}
	s := out[0]
	for _, r := range out[1:] {
		s += ", " + r
	}
	return s
}
