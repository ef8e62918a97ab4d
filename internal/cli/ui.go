package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhaller/donorscreen/internal/tui"
)

func newUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ui",
		Aliases: []string{"form"},
		Short:   "Launch the interactive screening form",
		Long:    "Launch a terminal form for entering donor details and evaluating eligibility interactively.",
		Example: `  donorscreen ui`,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := tui.NewForm()
			if err := form.Run(); err != nil {
				return fmt.Errorf("UI error: %w", err)
			}
			return nil
		},
	}

	return cmd
}
