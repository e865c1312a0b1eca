// Package chart turns a classified table and a user selection into a fully
// resolved, renderer-agnostic chart spec. Structurally unsupported requests
// come back as a RejectionError rather than a hard failure.
package chart

import (
	"fmt"

	"github.com/chartloom/chartloom-cli/internal/classify"
	"github.com/chartloom/chartloom-cli/internal/dataset"
)

// Build resolves a chart request against a table and its column types. The
// decision is a finite switch on (selection count, type tags, kind); every
// unsupported cell of that table returns a RejectionError.
func Build(t *dataset.Table, types *classify.TypeMap, req Request) (*Spec, error) {
	switch len(req.Columns) {
	case 1:
	case 2:
	default:
		return nil, reject("select 1 or 2 columns, got %d", len(req.Columns))
	}
	for _, name := range req.Columns {
		if _, ok := t.Column(name); !ok {
			return nil, reject("column %q not found in dataset", name)
		}
	}

	var (
		spec *Spec
		err  error
	)
	if len(req.Columns) == 1 {
		spec, err = buildSingle(t, types, req)
	} else {
		spec, err = buildPair(t, types, req)
	}
	if err != nil {
		return nil, err
	}
	spec.Columns = req.Columns
	applyTheme(spec, req.Theme)
	return spec, nil
}

func buildSingle(t *dataset.Table, types *classify.TypeMap, req Request) (*Spec, error) {
	name := req.Columns[0]
	col, _ := t.Column(name)
	tag, _ := types.Tag(name)

	if tag == classify.Categorical {
		switch req.Kind {
		case KindBar, KindLine:
			labels, counts := frequency(col)
			return &Spec{
				Mark:   req.Kind,
				Title:  fmt.Sprintf("%s of %s", req.Kind.displayName(), name),
				X:      Axis{Title: name, Labels: labels},
				Y:      Axis{Title: "Count"},
				Series: []Series{{Name: "Count", Values: counts}},
			}, nil
		case KindPie:
			labels, counts := frequency(col)
			total := 0.0
			for _, c := range counts {
				total += c
			}
			props := make([]float64, len(counts))
			for i, c := range counts {
				props[i] = c / total
			}
			return &Spec{
				Mark:   KindPie,
				Title:  fmt.Sprintf("Pie Chart of %s", name),
				X:      Axis{Title: name, Labels: labels},
				Series: []Series{{Name: "Proportion", Values: props}},
			}, nil
		default:
			return nil, reject("%s is not supported for categorical column %q", req.Kind.displayName(), name)
		}
	}

	// Numeric column.
	vals, _ := col.Numbers()
	if len(vals) == 0 {
		return nil, reject("column %q has no non-missing values", name)
	}
	if req.Kind == KindPie {
		return nil, reject("pie charts require a categorical column; %q is %s", name, tag)
	}

	minVal, maxVal := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	width := req.BinWidth
	if width == 0 {
		width = DefaultWidth(minVal, maxVal)
	}
	if width < 0 {
		return nil, reject("bin width must be positive, got %g", width)
	}

	switch req.Kind {
	case KindBar, KindLine:
		bins, err := ComputeBins(vals, width)
		if err != nil {
			return nil, err
		}
		counts := AggregateBins(vals, bins)
		labels := make([]string, len(counts))
		series := make([]float64, len(counts))
		for i, bc := range counts {
			labels[i] = bc.Label()
			series[i] = float64(bc.Count)
		}
		return &Spec{
			Mark:   req.Kind,
			Title:  fmt.Sprintf("%s of %s (bin width %g)", req.Kind.displayName(), name, width),
			X:      Axis{Title: fmt.Sprintf("%s (range)", name), Labels: labels},
			Y:      Axis{Title: "Count"},
			Series: []Series{{Name: "Count", Values: series}},
		}, nil
	case KindBox:
		bins, err := ComputeBins(vals, width)
		if err != nil {
			return nil, err
		}
		sample := ExpandMidpoints(AggregateBins(vals, bins))
		stats, err := FiveNumber(sample)
		if err != nil {
			return nil, err
		}
		return &Spec{
			Mark:  KindBox,
			Title: fmt.Sprintf("Box Plot of %s (bin width %g)", name, width),
			Y:     Axis{Title: fmt.Sprintf("%s (binned)", name)},
			Box:   &stats,
		}, nil
	case KindHistogram:
		return &Spec{
			Mark:    KindHistogram,
			Title:   fmt.Sprintf("Histogram of %s (bin width %g)", name, width),
			X:       Axis{Title: name, Values: vals},
			Y:       Axis{Title: "Count"},
			NumBins: NumBins(minVal, maxVal, width),
		}, nil
	default:
		return nil, reject("%s is not supported for a single numeric column", req.Kind.displayName())
	}
}

func buildPair(t *dataset.Table, types *classify.TypeMap, req Request) (*Spec, error) {
	xName, yName := req.X, req.Y
	if xName == "" && yName == "" {
		xName, yName = req.Columns[0], req.Columns[1]
	}
	if xName == "" || yName == "" {
		return nil, reject("two-column charts need both x and y axis columns")
	}
	if xName == yName {
		return nil, reject("x and y must be different columns")
	}
	xCol, ok := t.Column(xName)
	if !ok {
		return nil, reject("column %q not found in dataset", xName)
	}
	yCol, ok := t.Column(yName)
	if !ok {
		return nil, reject("column %q not found in dataset", yName)
	}
	xTag, _ := types.Tag(xName)
	yTag, _ := types.Tag(yName)

	switch req.Kind {
	case KindScatter:
		return rawPairSpec(KindScatter, xCol, yCol, xTag, yTag,
			fmt.Sprintf("Scatter Plot: %s vs %s", yName, xName)), nil
	case KindBar, KindLine:
		if xTag == classify.Categorical && yTag.Numeric() {
			labels, means := groupMean(xCol, yCol)
			return &Spec{
				Mark:   req.Kind,
				Title:  fmt.Sprintf("Average %s by %s", yName, xName),
				X:      Axis{Title: xName, Labels: labels},
				Y:      Axis{Title: fmt.Sprintf("Mean %s", yName)},
				Series: []Series{{Name: fmt.Sprintf("Mean %s", yName), Values: means}},
			}, nil
		}
		if req.Kind == KindBar && xTag == classify.Categorical && yTag == classify.Categorical {
			labels, series := pairCounts(xCol, yCol)
			return &Spec{
				Mark:   KindBar,
				Title:  fmt.Sprintf("Count by %s and %s", xName, yName),
				X:      Axis{Title: xName, Labels: labels},
				Y:      Axis{Title: "Count"},
				Series: series,
			}, nil
		}
		// Any other combination plots raw values directly.
		return rawPairSpec(req.Kind, xCol, yCol, xTag, yTag,
			fmt.Sprintf("%s: %s vs %s", req.Kind.displayName(), yName, xName)), nil
	default:
		return nil, reject("%s requires exactly one column", req.Kind.displayName())
	}
}

// frequency builds the value-frequency table of a column, ordered by
// distinct value.
func frequency(col *dataset.Column) (labels []string, counts []float64) {
	labels = col.Distinct()
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		idx[l] = i
	}
	counts = make([]float64, len(labels))
	for _, s := range col.Strings() {
		counts[idx[s]]++
	}
	return labels, counts
}

// groupMean aggregates y by mean grouped by distinct x value. Rows count only
// when the x cell is non-missing and the y cell is numeric.
func groupMean(xCol, yCol *dataset.Column) (labels []string, means []float64) {
	sums := map[string]float64{}
	counts := map[string]int{}
	for i := range xCol.Values {
		xv, yv := xCol.Values[i], yCol.Values[i]
		if xv.Missing || yv.Missing || !yv.IsNum {
			continue
		}
		key := xv.String()
		sums[key] += yv.Num
		counts[key]++
	}
	labels = make([]string, 0, len(sums))
	for k := range sums {
		labels = append(labels, k)
	}
	dataset.SortValues(labels)
	means = make([]float64, len(labels))
	for i, l := range labels {
		means[i] = sums[l] / float64(counts[l])
	}
	return labels, means
}

// pairCounts groups rows by the (x, y) pair and encodes the y column's
// distinct values as series, one count vector per series aligned to the x
// labels.
func pairCounts(xCol, yCol *dataset.Column) (labels []string, series []Series) {
	labels = xCol.Distinct()
	xIdx := make(map[string]int, len(labels))
	for i, l := range labels {
		xIdx[l] = i
	}
	yVals := yCol.Distinct()
	counts := make(map[string][]float64, len(yVals))
	for _, y := range yVals {
		counts[y] = make([]float64, len(labels))
	}
	for i := range xCol.Values {
		xv, yv := xCol.Values[i], yCol.Values[i]
		if xv.Missing || yv.Missing {
			continue
		}
		counts[yv.String()][xIdx[xv.String()]]++
	}
	series = make([]Series, len(yVals))
	for i, y := range yVals {
		series[i] = Series{Name: y, Values: counts[y]}
	}
	return labels, series
}

// rawPairSpec plots paired values with no aggregation. A row contributes only
// when both cells are non-missing. Numeric columns become value axes,
// categorical columns label axes.
func rawPairSpec(kind Kind, xCol, yCol *dataset.Column, xTag, yTag classify.TypeTag, title string) *Spec {
	s := &Spec{
		Mark:  kind,
		Title: title,
		X:     Axis{Title: xCol.Name},
		Y:     Axis{Title: yCol.Name},
	}
	for i := range xCol.Values {
		xv, yv := xCol.Values[i], yCol.Values[i]
		if xv.Missing || yv.Missing {
			continue
		}
		if xTag.Numeric() {
			s.X.Values = append(s.X.Values, xv.Num)
		} else {
			s.X.Labels = append(s.X.Labels, xv.String())
		}
		if yTag.Numeric() {
			s.Y.Values = append(s.Y.Values, yv.Num)
		} else {
			s.Y.Labels = append(s.Y.Labels, yv.String())
		}
	}
	return s
}
