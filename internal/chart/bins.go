package chart

import (
	"errors"
	"fmt"
)

// Interval is one half-open bin [Lower, Upper). The final bin of a partition
// is closed on both ends so the column maximum lands in it.
type Interval struct {
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Closed bool    `json:"closed"`
}

// Label renders the bin as "lower-upper" with two decimals.
func (iv Interval) Label() string {
	return fmt.Sprintf("%.2f-%.2f", iv.Lower, iv.Upper)
}

// Midpoint returns the bin center, used when a chart kind needs raw-like
// values reconstructed from bins.
func (iv Interval) Midpoint() float64 { return (iv.Lower + iv.Upper) / 2 }

// Contains reports interval membership per the half-open convention.
func (iv Interval) Contains(v float64) bool {
	if v < iv.Lower {
		return false
	}
	if iv.Closed {
		return v <= iv.Upper
	}
	return v < iv.Upper
}

// DefaultWidth suggests a bin width for a value range: a tenth of the range,
// or 1 when the range is zero (constant column).
func DefaultWidth(minVal, maxVal float64) float64 {
	w := (maxVal - minVal) / 10
	if w <= 0 {
		return 1
	}
	return w
}

// ComputeBins partitions [min(values), max(values)] into contiguous intervals
// of the given width. The final boundary is forced to the exact maximum so
// floating-point drift cannot produce a stray zero-width trailing bin. A
// zero-range input yields a single closed interval.
func ComputeBins(values []float64, width float64) ([]Interval, error) {
	if len(values) == 0 {
		return nil, errors.New("no values to bin")
	}
	if width <= 0 {
		return nil, fmt.Errorf("bin width must be positive, got %g", width)
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if minVal == maxVal {
		return []Interval{{Lower: minVal, Upper: maxVal, Closed: true}}, nil
	}
	var bins []Interval
	for cur := minVal; cur < maxVal; cur += width {
		bins = append(bins, Interval{Lower: cur, Upper: cur + width})
	}
	last := &bins[len(bins)-1]
	last.Upper = maxVal
	last.Closed = true
	return bins, nil
}

// BinCount is one bin with its member count.
type BinCount struct {
	Interval
	Count int `json:"count"`
}

// AggregateBins counts values per bin, keeping zero-count bins so the result
// does not misrepresent gaps in the distribution. Output order follows the
// bins, which are ascending by lower bound.
func AggregateBins(values []float64, bins []Interval) []BinCount {
	out := make([]BinCount, len(bins))
	for i, b := range bins {
		out[i].Interval = b
	}
	for _, v := range values {
		for i := range out {
			if out[i].Contains(v) {
				out[i].Count++
				break
			}
		}
	}
	return out
}

// ExpandMidpoints rebuilds a synthetic sample from binned counts: each bin's
// midpoint repeated count times.
func ExpandMidpoints(counts []BinCount) []float64 {
	var out []float64
	for _, bc := range counts {
		mid := bc.Midpoint()
		for i := 0; i < bc.Count; i++ {
			out = append(out, mid)
		}
	}
	return out
}

// NumBins returns the histogram bin count for a range and width, at least 1.
func NumBins(minVal, maxVal, width float64) int {
	n := int((maxVal - minVal) / width)
	if n < 1 {
		return 1
	}
	return n
}
