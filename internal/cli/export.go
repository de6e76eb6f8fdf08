package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fixturelab/planogram/pkg/pipeline"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "export [draft.json]",
		Short: "Transform a draft into the absolute-coordinate export document",
		Long: `Transform a draft into the absolute-coordinate export document.

Every placed item is resolved to a pixel box within the framed fixture,
scaled by --scale, with compartment offsets composed from the frame
border and inter-compartment gap. Results are cached by content hash.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read draft %s: %w", args[0], err)
			}
			opts.Draft = blob
			opts.Refresh = refresh

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(cmd.Context(), "Exporting...")
			spinner.Start()

			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				spinner.StopWithError("Export failed")
				return err
			}
			spinner.Stop()

			data, err := json.MarshalIndent(result.Document, "", "  ")
			if err != nil {
				return fmt.Errorf("serialize document: %w", err)
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], ".json") + ".export.json"
			}
			if output == "-" {
				fmt.Println(string(data))
			} else {
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("write document: %w", err)
				}
				printSuccess("Exported document")
				printFile(output)
			}

			printStats(len(result.Layout.Compartments), result.Stats.ItemCount,
				len(result.Conflicts), result.CacheInfo.ExportHit)
			if len(result.Conflicts) > 0 {
				printWarning("Document contains %d conflicted items", len(result.Conflicts))
				printNextStep("Inspect them", fmt.Sprintf("%s validate %s", appName, args[0]))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <draft>.export.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass and overwrite cached results")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "coordinate scale factor (default 1)")
	cmd.Flags().Float64Var(&opts.FrameBorder, "frame-border", 0, "frame border thickness")
	cmd.Flags().Float64Var(&opts.Gap, "gap", 0, "gap between compartments")
	cmd.Flags().Float64Var(&opts.HeaderHeight, "header", 0, "header band height")
	cmd.Flags().Float64Var(&opts.FooterHeight, "footer", 0, "footer band height")

	return cmd
}
