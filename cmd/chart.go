package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chartloom/chartloom-cli/internal/chart"
	"github.com/chartloom/chartloom-cli/internal/classify"
	"github.com/chartloom/chartloom-cli/internal/dataset"
	"github.com/chartloom/chartloom-cli/internal/utils"
)

var (
	chtColumns    []string
	chtKind       string
	chtBinWidth   float64
	chtX          string
	chtY          string
	chtTheme      string
	chtOutput     string
	chtMaxRows    int
	chtDelimiter  string
	chtSheetName  string
	chtSheetIndex int
)

var chartCmd = &cobra.Command{
	Use:   "chart <file>",
	Short: "Build a chart specification from a column selection",
	Long: `Builds a declarative chart spec (JSON) from one or two columns of a
dataset. Column types drive the shape of the data: categorical columns are
aggregated into frequencies, numeric columns are binned or summarized, and
mixed pairs become grouped aggregates.

An invalid selection (for example a pie chart over a numeric column) is
reported as a warning, not an error.`,
	Example: `  chartloom chart sales.csv --columns region --kind pie
  chartloom chart sales.csv --columns price --kind histogram --bin-width 50
  chartloom chart sales.csv --columns region,revenue --kind bar --theme Viridis
  chartloom chart sales.csv --columns height,weight --kind scatter -o spec.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(args[0], chtMaxRows, chtDelimiter, chtSheetName, chtSheetIndex)
		if err != nil {
			return err
		}
		spec, err := buildChartSpec(t, classify.ClassifyTable(t))
		if err != nil {
			var rej *chart.RejectionError
			if errors.As(err, &rej) {
				fmt.Fprintf(os.Stderr, "⚠ %s\n", rej.Reason)
				return nil
			}
			return err
		}
		b, err := utils.PrettyJSON(spec)
		if err != nil {
			return err
		}
		if chtOutput != "" {
			if err := utils.SafeWriteFile(chtOutput, b); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(os.Stderr, "✓ Wrote chart spec to %s\n", chtOutput)
			return nil
		}
		fmt.Println(string(b))
		return nil
	},
}

// buildChartSpec assembles the chart request from the shared chart flags.
func buildChartSpec(t *dataset.Table, types *classify.TypeMap) (*chart.Spec, error) {
	if len(chtColumns) == 0 {
		return nil, fmt.Errorf("--columns is required (one or two column names)")
	}
	kind, err := chart.ParseKind(chtKind)
	if err != nil {
		return nil, err
	}
	theme := chtTheme
	if theme == "" && cfg != nil {
		theme = cfg.DefaultTheme
	}
	binWidth := chtBinWidth
	if binWidth == 0 && cfg != nil {
		binWidth = cfg.DefaultBinWidth
	}
	return chart.Build(t, types, chart.Request{
		Columns:  chtColumns,
		Kind:     kind,
		BinWidth: binWidth,
		X:        chtX,
		Y:        chtY,
		Theme:    theme,
	})
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&chtColumns, "columns", nil, "one or two column names (comma-separated)")
	cmd.Flags().StringVar(&chtKind, "kind", "bar", "chart kind: bar|line|pie|box|histogram|scatter")
	cmd.Flags().Float64Var(&chtBinWidth, "bin-width", 0, "bin width for numeric single-column charts (0 = derived)")
	cmd.Flags().StringVar(&chtX, "x", "", "x axis column for two-column charts")
	cmd.Flags().StringVar(&chtY, "y", "", "y axis column for two-column charts")
	cmd.Flags().StringVar(&chtTheme, "theme", "", "color theme name (see 'chartloom themes')")
	cmd.Flags().IntVar(&chtMaxRows, "max-rows", 0, "maximum rows to load (0 = config default)")
	cmd.Flags().StringVar(&chtDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab' (default: by extension)")
	cmd.Flags().StringVar(&chtSheetName, "sheet", "", "XLSX sheet name")
	cmd.Flags().IntVar(&chtSheetIndex, "sheet-index", 0, "XLSX sheet index (1-based)")
}

func init() {
	addChartFlags(chartCmd)
	chartCmd.Flags().StringVarP(&chtOutput, "output", "o", "", "write the chart spec to a file instead of stdout")
	rootCmd.AddCommand(chartCmd)
}
