package interpret

import (
	"fmt"
	"math"
	"strings"

	"github.com/chartloom/chartloom-cli/internal/classify"
	"github.com/chartloom/chartloom-cli/internal/dataset"
)

// ChartSummary produces a chart-specific data summary to accompany the
// dataset context: frequency tables for categorical columns, basic statistics
// for numeric ones, and a correlation when two numeric columns are selected.
func ChartSummary(t *dataset.Table, types *classify.TypeMap, cols []string) string {
	var b strings.Builder
	switch len(cols) {
	case 1:
		summarizeColumn(&b, t, types, cols[0])
	case 2:
		fmt.Fprintf(&b, "Relationship between %s and %s:\n", cols[0], cols[1])
		xTag, _ := types.Tag(cols[0])
		yTag, _ := types.Tag(cols[1])
		if xTag.Numeric() && yTag.Numeric() {
			if r, ok := pearson(t, cols[0], cols[1]); ok {
				fmt.Fprintf(&b, "Correlation coefficient: %.3f\n", r)
			}
		}
		for _, name := range cols {
			summarizeColumn(&b, t, types, name)
		}
	}
	return b.String()
}

func summarizeColumn(b *strings.Builder, t *dataset.Table, types *classify.TypeMap, name string) {
	col, ok := t.Column(name)
	if !ok {
		return
	}
	tag, _ := types.Tag(name)
	if !tag.Numeric() {
		distinct := col.Distinct()
		fmt.Fprintf(b, "Value distribution for %s (%d distinct):\n", name, len(distinct))
		counts := map[string]int{}
		for _, s := range col.Strings() {
			counts[s]++
		}
		limit := len(distinct)
		if limit > 10 {
			limit = 10
		}
		for _, v := range distinct[:limit] {
			fmt.Fprintf(b, "  %s: %d\n", v, counts[v])
		}
		if len(distinct) > limit {
			fmt.Fprintf(b, "  ... and %d more categories\n", len(distinct)-limit)
		}
		return
	}
	vals, _ := col.Numbers()
	if len(vals) == 0 {
		fmt.Fprintf(b, "%s: no non-missing values\n", name)
		return
	}
	minVal, maxVal, mean, std := stats(vals)
	fmt.Fprintf(b, "Statistical summary for %s:\n", name)
	fmt.Fprintf(b, "  count: %d, min: %.4g, max: %.4g, mean: %.4g, std: %.4g\n",
		len(vals), minVal, maxVal, mean, std)
}

func stats(vals []float64) (minVal, maxVal, mean, std float64) {
	minVal, maxVal = vals[0], vals[0]
	var m2 float64
	for i, v := range vals {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
		// Welford update.
		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)
	}
	if len(vals) > 1 {
		std = math.Sqrt(m2 / float64(len(vals)-1))
	}
	return minVal, maxVal, mean, std
}

// pearson computes the correlation over rows where both cells are numeric.
func pearson(t *dataset.Table, xName, yName string) (float64, bool) {
	xCol, ok := t.Column(xName)
	if !ok {
		return 0, false
	}
	yCol, ok := t.Column(yName)
	if !ok {
		return 0, false
	}
	var n, sumX, sumY, sumXX, sumYY, sumXY float64
	for i := range xCol.Values {
		xv, yv := xCol.Values[i], yCol.Values[i]
		if xv.Missing || yv.Missing || !xv.IsNum || !yv.IsNum {
			continue
		}
		n++
		sumX += xv.Num
		sumY += yv.Num
		sumXX += xv.Num * xv.Num
		sumYY += yv.Num * yv.Num
		sumXY += xv.Num * yv.Num
	}
	if n < 2 {
		return 0, false
	}
	denom := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denom == 0 {
		return 0, false
	}
	r := (n*sumXY - sumX*sumY) / denom
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}
