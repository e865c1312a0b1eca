// Package classify infers a semantic type tag per table column. The tags
// drive which chart kinds and aggregations the spec builder allows.
package classify

import (
	"math"

	"github.com/chartloom/chartloom-cli/internal/dataset"
)

// TypeTag is the semantic type of a column.
type TypeTag string

const (
	Categorical       TypeTag = "Categorical"
	NumericDiscrete   TypeTag = "Numeric (Discrete)"
	NumericContinuous TypeTag = "Numeric (Continuous)"
)

// Numeric reports whether the tag is one of the numeric variants.
func (t TypeTag) Numeric() bool {
	return t == NumericDiscrete || t == NumericContinuous
}

// discreteDistinctLimit: all-integral columns with fewer distinct values than
// this are tagged discrete rather than continuous.
const discreteDistinctLimit = 20

// Classify maps a column to its type tag. It is total and deterministic: any
// column that is not purely numeric falls back to Categorical, and the result
// depends only on the set of non-missing values.
//
// A numeric column whose distinct values are a subset of {0, 1} is tagged
// Categorical as a binary-indicator heuristic. This also catches a genuine
// 0/1 numeric measurement; that behavior is intentional and kept as-is.
func Classify(col *dataset.Column) TypeTag {
	vals, allNumeric := col.Numbers()
	if len(vals) == 0 {
		// Entirely missing, or no values at all.
		return Categorical
	}
	if !allNumeric {
		return Categorical
	}

	distinct := make(map[float64]struct{}, len(vals))
	for _, v := range vals {
		distinct[v] = struct{}{}
	}

	binary := true
	for v := range distinct {
		if v != 0 && v != 1 {
			binary = false
			break
		}
	}
	if binary {
		return Categorical
	}

	for _, v := range vals {
		if !isIntegral(v) {
			return NumericContinuous
		}
	}
	if len(distinct) < discreteDistinctLimit {
		return NumericDiscrete
	}
	return NumericContinuous
}

// isIntegral is an exact check: no tolerance, so the result does not depend
// on how the source happened to format the number.
func isIntegral(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v == math.Trunc(v)
}

// ColumnType pairs a column name with its inferred tag.
type ColumnType struct {
	Name string
	Tag  TypeTag
}

// TypeMap holds per-column tags in table column order.
type TypeMap struct {
	cols []ColumnType
	tags map[string]TypeTag
}

// ClassifyTable classifies every column independently, preserving the
// table's column order in the result.
func ClassifyTable(t *dataset.Table) *TypeMap {
	m := &TypeMap{tags: make(map[string]TypeTag, t.NumCols())}
	for _, c := range t.Columns() {
		tag := Classify(c)
		m.cols = append(m.cols, ColumnType{Name: c.Name, Tag: tag})
		m.tags[c.Name] = tag
	}
	return m
}

// Columns returns the classified columns in table order.
func (m *TypeMap) Columns() []ColumnType { return m.cols }

// Tag looks up the tag for a column name.
func (m *TypeMap) Tag(name string) (TypeTag, bool) {
	t, ok := m.tags[name]
	return t, ok
}
