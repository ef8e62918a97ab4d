package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dhaller/donorscreen/pkg/donor"
)

func newEvaluateCmd() *cobra.Command {
	var in donor.Input

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a single donor",
		Long: `Evaluate one donor from command-line flags.

Input validation errors (unknown units, malformed dates, missing values)
abort the command; an ineligible donor is reported in the verdict, not as
an error.`,
		Example: `  donorscreen evaluate --age 30 --gender Female --weight 65 --height 165 --hemoglobin 13.0
  donorscreen evaluate --name donor-17 --age 42 --gender male --weight 143 --weight-unit lbs --height 65 --height-unit inches --hemoglobin 14.2 --last-donation 2026-06-01
  donorscreen evaluate --age 30 --gender other --weight 70 --height 175 --hemoglobin 13.5 -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := donor.New(in)
			if err != nil {
				return err
			}
			res := ev.Evaluate()

			if outputFormat == "json" || outputFormat == "yaml" {
				return printResult(res)
			}
			printVerdict(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.DonorNameOrID, "name", "", "Donor name or ID (optional)")
	cmd.Flags().IntVar(&in.Age, "age", 0, "Age in years")
	cmd.Flags().StringVar(&in.Gender, "gender", "", "Gender: male|female|other")
	cmd.Flags().Float64Var(&in.Weight, "weight", 0, "Body weight")
	cmd.Flags().StringVar(&in.WeightUnit, "weight-unit", donor.UnitKg, "Weight unit: kg|lbs")
	cmd.Flags().Float64Var(&in.Height, "height", 0, "Height")
	cmd.Flags().StringVar(&in.HeightUnit, "height-unit", donor.UnitCm, "Height unit: cm|inches")
	cmd.Flags().Float64Var(&in.Hemoglobin, "hemoglobin", 0, "Hemoglobin in g/dL")
	cmd.Flags().StringVar(&in.LastDonation, "last-donation", "", "Last donation date (YYYY-MM-DD, optional)")

	for _, name := range []string{"age", "gender", "weight", "height", "hemoglobin"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// printVerdict renders a human-readable verdict block for a single donor.
func printVerdict(res donor.Result) {
	if res.Eligible {
		color.New(color.FgGreen, color.Bold).Println(res.EligibilityStatus)
	} else {
		color.New(color.FgRed, color.Bold).Println(res.EligibilityStatus)
	}
	fmt.Println(strings.Repeat("-", 50))

	if res.DonorNameOrID != "" {
		fmt.Printf("Donor:                    %s\n", res.DonorNameOrID)
	}
	fmt.Printf("Est. total blood volume:  %.3f L\n", res.TotalBloodVolumeL)
	fmt.Printf("Max draw volume:          %d mL\n", res.MaxDrawVolumeML)
	if res.DaysSinceLastDonation != nil {
		fmt.Printf("Days since last donation: %d\n", *res.DaysSinceLastDonation)
	}

	if len(res.Reasons) > 0 {
		fmt.Println()
		color.New(color.Bold).Println("Reasons:")
		for _, r := range res.Reasons {
			fmt.Printf("  - %s\n", r)
		}
	}
}
