package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const donorsTemplate = `# Donor records for donorscreen.
# Each YAML document (separated by ---) is one donor.
name: donor-001
age: 30
gender: Female
weight: 65
weightUnit: kg
height: 165
heightUnit: cm
hemoglobin: 13.0
lastDonation: "%s"
---
name: donor-002
age: 42
gender: Male
weight: 170
weightUnit: lbs
height: 70
heightUnit: inches
hemoglobin: 14.5
`

func newInitCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter donor file",
		Long: `Create a donor file template in the current directory.

The generated file contains two sample donor records that you can
customize and screen with 'donorscreen screen -f'.`,
		Example: `  donorscreen init
  donorscreen init --output-file clinic.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			// The sample donation date stays 90 days in the past so the
			// template never trips the future-date check.
			lastDonation := time.Now().AddDate(0, 0, -90).Format("2006-01-02")
			content := fmt.Sprintf(donorsTemplate, lastDonation)

			outputPath := filepath.Join(cwd, outputFile)
			if _, err := os.Stat(outputPath); err == nil {
				return fmt.Errorf("file %s already exists. Use a different name with --output-file", outputFile)
			}

			if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing donor file: %w", err)
			}

			bold := color.New(color.FgCyan, color.Bold)
			bold.Println("Donor file created!")
			fmt.Println()
			fmt.Printf("  File: %s\n", outputPath)
			fmt.Println()

			color.New(color.Bold).Println("Next steps:")
			fmt.Println("  1. Review and customize the donor records:")
			fmt.Printf("     vi %s\n", outputFile)
			fmt.Println()
			fmt.Println("  2. Screen the donors:")
			fmt.Printf("     donorscreen screen -f %s\n", outputFile)
			fmt.Println()
			fmt.Println("  3. Or evaluate interactively:")
			fmt.Println("     donorscreen ui")

			return nil
		},
	}

	cmd.Flags().StringVar(&outputFile, "output-file", "donors.yaml", "Output filename")

	return cmd
}
