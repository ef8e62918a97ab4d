package cli

import (
	"github.com/spf13/cobra"

	"github.com/dhaller/donorscreen/internal/config"
)

// NewRootCmd creates the top-level donorscreen CLI command with all
// subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donorscreen",
		Short: "Blood donor eligibility screening",
		Long: `Donorscreen estimates total blood volume (Nadler's formula) and checks
the standard whole-blood eligibility criteria: age, weight, hemoglobin,
and the interval since the last donation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cfg := config.DefaultConfig()
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", cfg.Output.Format, "Output format: table|json|yaml")

	cmd.AddCommand(
		newEvaluateCmd(),
		newScreenCmd(),
		newInitCmd(),
		newUICmd(),
	)

	return cmd
}
