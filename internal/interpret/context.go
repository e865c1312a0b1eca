// Package interpret assembles dataset and chart context into prompts for an
// AI runtime and returns its natural-language reading of a chart. It sits at
// the collaborator boundary: failures here surface as errors the CLI renders
// as messages, and never feed back into classification or chart building.
package interpret

import (
	"fmt"
	"strings"

	"github.com/chartloom/chartloom-cli/internal/classify"
	"github.com/chartloom/chartloom-cli/internal/dataset"
	"github.com/chartloom/chartloom-cli/internal/utils"
)

// contextTokenLimit caps the dataset context so prompts stay well inside
// model context windows.
const contextTokenLimit = 6000

const sampleRowCount = 3

// distinctPreviewLimit: categorical columns with at most this many distinct
// values get them listed in full.
const distinctPreviewLimit = 10

// DatasetContext renders a structured text summary of the dataset: shape,
// per-column type with range or distinct preview, missing totals and a few
// sample rows. This is all the AI collaborator sees of the data.
func DatasetContext(t *dataset.Table, types *classify.TypeMap, description string) string {
	var b strings.Builder
	b.WriteString("[DATASET OVERVIEW]\n")
	if t.Name != "" {
		fmt.Fprintf(&b, "Dataset: %s\n", t.Name)
	}
	fmt.Fprintf(&b, "Rows: %d\n", t.NumRows())
	fmt.Fprintf(&b, "Columns: %d\n", t.NumCols())
	if description != "" {
		fmt.Fprintf(&b, "Description (provided by user): %s\n", description)
	}

	b.WriteString("\n[COLUMNS]\n")
	for _, ct := range types.Columns() {
		col, _ := t.Column(ct.Name)
		fmt.Fprintf(&b, "- %s: %s", ct.Name, ct.Tag)
		if ct.Tag.Numeric() {
			if vals, _ := col.Numbers(); len(vals) > 0 {
				minVal, maxVal := vals[0], vals[0]
				for _, v := range vals[1:] {
					if v < minVal {
						minVal = v
					}
					if v > maxVal {
						maxVal = v
					}
				}
				fmt.Fprintf(&b, " (range: %.2f to %.2f)", minVal, maxVal)
			}
		} else {
			distinct := col.Distinct()
			fmt.Fprintf(&b, " (%d unique values)", len(distinct))
			if len(distinct) > 0 && len(distinct) <= distinctPreviewLimit {
				fmt.Fprintf(&b, " - values: %s", strings.Join(distinct, ", "))
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n[MISSING VALUES]\nTotal missing cells: %d\n", t.MissingTotal())

	if samples := t.SampleRows(sampleRowCount); len(samples) > 0 {
		fmt.Fprintf(&b, "\n[SAMPLE ROWS] (first %d)\n", len(samples))
		header := make([]string, 0, t.NumCols())
		for _, c := range t.Columns() {
			header = append(header, c.Name)
		}
		b.WriteString("| " + strings.Join(header, " | ") + " |\n")
		b.WriteString("| " + strings.Repeat("--- | ", len(header)) + "\n")
		for _, row := range samples {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = safeCell(v)
			}
			b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		}
	}
	return utils.TruncateToTokenLimit(b.String(), contextTokenLimit)
}

func safeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "/")
	if len(s) > 80 {
		s = s[:77] + "..."
	}
	return s
}
