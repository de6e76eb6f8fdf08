package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fixturelab/planogram/pkg/editor"
	"github.com/fixturelab/planogram/pkg/layout"
)

// editCommand creates the interactive edit command.
func (c *CLI) editCommand() *cobra.Command {
	var (
		template  string
		output    string
		allowAny  bool
		autoSort  bool
		mixStacks bool
	)

	cmd := &cobra.Command{
		Use:   "edit [draft.json]",
		Short: "Edit a layout interactively in the terminal",
		Long: `Edit a layout interactively in the terminal.

The session starts from a draft file or from --template. Every edit is
an atomic transaction over the current snapshot with bounded undo/redo.
Conflicted items are highlighted in place as you edit. On quit the final
snapshot is written back to the draft file (or --output).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var draft string
			if len(args) == 1 {
				draft = args[0]
			}
			if draft == "" && template == "" {
				return fmt.Errorf("provide a draft file or --template")
			}

			initial, err := initialLayout(template, draft)
			if err != nil {
				return err
			}

			if output == "" {
				output = draft
			}
			if output == "" {
				return fmt.Errorf("--output is required when starting from a template")
			}

			policy := editor.DefaultPolicy()
			policy.EnforceTypes = !allowAny
			policy.AutoSort = autoSort
			policy.AllowMixedStacks = mixStacks

			session := editor.NewSession(initial, policy)

			program := tea.NewProgram(NewEditorModel(session))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("run editor: %w", err)
			}

			final := session.Current()
			if err := layout.WriteFile(final, output); err != nil {
				return fmt.Errorf("save draft: %w", err)
			}

			printSuccess("Saved layout")
			printFile(output)
			printStats(len(final.Compartments), final.ItemCount(), 0, false)
			printNextStep("Validate it", fmt.Sprintf("%s validate %s", appName, output))
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "fixture template to instantiate (TOML)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to save the layout to (default: the draft file)")
	cmd.Flags().BoolVar(&allowAny, "allow-any", false, "accept misplaced items instead of rejecting them")
	cmd.Flags().BoolVar(&autoSort, "auto-sort", false, "keep stacks in pyramid order automatically")
	cmd.Flags().BoolVar(&mixStacks, "mixed-stacks", false, "permit stacking differing classifications")

	return cmd
}
