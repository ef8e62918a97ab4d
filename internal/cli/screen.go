package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dhaller/donorscreen/internal/config"
	"github.com/dhaller/donorscreen/pkg/donor"
	"github.com/dhaller/donorscreen/pkg/manifest"
)

func newScreenCmd() *cobra.Command {
	var (
		files    []string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Screen donors from YAML files",
		Long: `Evaluate every donor record in one or more YAML donor files.

Records that fail input validation are logged and skipped; the remaining
records are still evaluated. The command exits non-zero when any record
was invalid.`,
		Example: `  donorscreen screen -f donors.yaml
  donorscreen screen -f clinic-a.yaml -f clinic-b.yaml
  donorscreen screen -f donors.yaml -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(files) == 0 {
				return fmt.Errorf("at least one donor file required: donorscreen screen -f donors.yaml")
			}

			cfg := config.DefaultConfig()
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			logger, err := config.NewLogger(cfg.Log)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer logger.Sync()

			var inputs []donor.Input
			for _, f := range files {
				records, err := manifest.ParseFile(f)
				if err != nil {
					return err
				}
				logger.Debug("parsed donor file", zap.String("file", f), zap.Int("records", len(records)))
				inputs = append(inputs, records...)
			}

			results := make([]donor.Result, 0, len(inputs))
			invalid := 0
			for i, in := range inputs {
				// Anonymous records get a generated reference so report rows
				// stay distinguishable.
				if in.DonorNameOrID == "" {
					in.DonorNameOrID = "donor-" + uuid.NewString()[:8]
				}

				ev, err := donor.New(in)
				if err != nil {
					invalid++
					logger.Warn("skipping invalid donor record",
						zap.Int("record", i+1),
						zap.String("donor", in.DonorNameOrID),
						zap.Error(err))
					continue
				}
				results = append(results, ev.Evaluate())
			}

			if err := printResultList(results); err != nil {
				return err
			}

			if outputFormat != "json" && outputFormat != "yaml" {
				printSummary(results, invalid)
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d records failed validation", invalid, len(inputs))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&files, "filename", "f", nil, "Donor file(s) to screen")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")

	return cmd
}

func printSummary(results []donor.Result, invalid int) {
	eligible := 0
	for _, res := range results {
		if res.Eligible {
			eligible++
		}
	}
	ineligible := len(results) - eligible

	fmt.Println()
	fmt.Printf("Screened %d donors (", len(results))
	parts := []string{
		color.GreenString("%d eligible", eligible),
		color.RedString("%d ineligible", ineligible),
	}
	if invalid > 0 {
		parts = append(parts, color.YellowString("%d invalid skipped", invalid))
	}
	for i, p := range parts {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Print(p)
	}
	fmt.Println(")")
}
