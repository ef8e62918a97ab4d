package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/dhaller/donorscreen/pkg/donor"
)

// outputFormat is set by the root command's -o flag.
// Supported values: "table" (default), "json", "yaml".
var outputFormat string

// printTable writes tabular data to stdout using aligned columns.
func printTable(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// printJSON writes the value as pretty-printed JSON to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printYAML writes the value as YAML to stdout.
func printYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

// printResult emits a single evaluation as one object (or one table row).
func printResult(res donor.Result) error {
	switch outputFormat {
	case "json":
		return printJSON(res)
	case "yaml":
		return printYAML(res)
	default:
		printTable(resultHeaders(), [][]string{resultToRow(res)})
		return nil
	}
}

// printResultList emits a batch of evaluations; JSON and YAML output is
// always a list, even for a single result.
func printResultList(results []donor.Result) error {
	switch outputFormat {
	case "json":
		return printJSON(results)
	case "yaml":
		return printYAML(results)
	default:
		rows := make([][]string, 0, len(results))
		for _, res := range results {
			rows = append(rows, resultToRow(res))
		}
		printTable(resultHeaders(), rows)
		return nil
	}
}

func resultHeaders() []string {
	return []string{"DONOR", "STATUS", "TBV-L", "MAX-DRAW-ML", "DAYS-SINCE", "REASONS"}
}

func resultToRow(res donor.Result) []string {
	name := res.DonorNameOrID
	if name == "" {
		name = "<unnamed>"
	}
	days := "<none>"
	if res.DaysSinceLastDonation != nil {
		days = strconv.Itoa(*res.DaysSinceLastDonation)
	}
	reasons := "<none>"
	if len(res.Reasons) > 0 {
		reasons = strings.Join(res.Reasons, "; ")
	}
	return []string{
		name,
		colorVerdict(res.Eligible),
		fmt.Sprintf("%.3f", res.TotalBloodVolumeL),
		strconv.Itoa(res.MaxDrawVolumeML),
		days,
		reasons,
	}
}

// colorVerdict returns a colored eligible/ineligible marker for table cells.
func colorVerdict(eligible bool) string {
	if eligible {
		return color.GreenString("Eligible")
	}
	return color.RedString("Ineligible")
}
