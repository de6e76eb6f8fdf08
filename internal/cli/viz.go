package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fixturelab/planogram/pkg/pipeline"
	"github.com/fixturelab/planogram/pkg/render/structure"
	"github.com/fixturelab/planogram/pkg/validate"
)

// vizCommand creates the viz command for rendering the structure diagram.
func (c *CLI) vizCommand() *cobra.Command {
	var (
		output      string
		format      string
		detailed    bool
		noConflicts bool
	)

	cmd := &cobra.Command{
		Use:   "viz [draft.json]",
		Short: "Render the layout structure as a diagram",
		Long: `Render the layout structure as a diagram.

The diagram shows the containment tree (compartments, rows, stacks,
items) rather than physical geometry. Conflicted items are outlined in
red unless --no-conflicts is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read draft %s: %w", args[0], err)
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			l, err := runner.Load(pipeline.Options{Draft: blob})
			if err != nil {
				return err
			}

			var set validate.Set
			if !noConflicts {
				set, err = runner.Conflicts(cmd.Context(), l, pipeline.Options{Layout: &l})
				if err != nil {
					return err
				}
			}

			dot := structure.ToDOT(l, set, structure.Options{Detailed: detailed})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "png":
				data, err = structure.RenderPNG(dot)
			case "svg":
				data, err = structure.RenderSVG(dot)
			default:
				return fmt.Errorf("invalid format %q (must be svg, png, or dot)", format)
			}
			if err != nil {
				return fmt.Errorf("render diagram: %w", err)
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], ".json") + "." + format
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write diagram: %w", err)
			}
			printSuccess("Rendered structure diagram")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <draft>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, or dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include dimensions and classifications in labels")
	cmd.Flags().BoolVar(&noConflicts, "no-conflicts", false, "skip conflict highlighting")

	return cmd
}
