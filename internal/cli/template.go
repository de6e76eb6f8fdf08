package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fixturelab/planogram/pkg/layout"
)

// starterTemplate is written by "template init" as a working starting point.
const starterTemplate = `name = "double-door-cooler"

[[compartment]]
id = "door-1"
width = 673
height = 900

[[compartment.row]]
id = "row-1"
capacity = 650
max_height = 220
allowed = ["all"]

[[compartment.row]]
id = "row-2"
capacity = 650
max_height = 200
allowed = ["soda", "water"]

[[compartment]]
id = "door-2"
width = 673
height = 900

[[compartment.row]]
id = "row-1"
capacity = 650
max_height = 220
allowed = ["all"]
`

// templateCommand creates the template inspection command.
func (c *CLI) templateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Inspect fixture templates and scaffold new ones",
	}

	cmd.AddCommand(c.templateShowCommand())
	cmd.AddCommand(c.templateInitCommand())

	return cmd
}

// templateShowCommand creates the "template show" subcommand.
func (c *CLI) templateShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [template.toml]",
		Short: "Validate a fixture template and print its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := layout.LoadTemplate(args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(t.Name))
			for _, comp := range t.Compartments {
				printKeyValue(comp.ID, fmt.Sprintf("%g x %g", comp.Width, comp.Height))
				for _, row := range comp.Rows {
					allowed := "all"
					if len(row.Allowed) > 0 {
						allowed = strings.Join(row.Allowed, ", ")
					}
					printDetail("%s  capacity %g  max height %g  allowed: %s",
						row.ID, row.Capacity, row.MaxHeight, allowed)
				}
			}

			printNewline()
			printSuccess("Template is valid")
			printNextStep("Start editing", fmt.Sprintf("%s edit --template %s", appName, args[0]))
			return nil
		},
	}
}

// templateInitCommand creates the "template init" subcommand.
func (c *CLI) templateInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [file]",
		Short: "Write a starter fixture template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := os.WriteFile(path, []byte(starterTemplate), 0644); err != nil {
				return fmt.Errorf("write template: %w", err)
			}
			printSuccess("Wrote starter template")
			printFile(path)
			return nil
		},
	}
}
