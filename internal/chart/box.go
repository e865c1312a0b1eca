package chart

import (
	"errors"
	"math"
	"sort"
)

// BoxStats positions a box glyph: whisker ends, quartiles and median, plus
// the points outside the 1.5×IQR fences.
type BoxStats struct {
	Min      float64   `json:"min"`
	Q1       float64   `json:"q1"`
	Median   float64   `json:"median"`
	Q3       float64   `json:"q3"`
	Max      float64   `json:"max"`
	Outliers []float64 `json:"outliers,omitempty"`
}

// FiveNumber computes the five-number summary of a sample. Whisker ends are
// the most extreme values inside the 1.5×IQR fences; values beyond them are
// reported as outliers, ascending.
func FiveNumber(values []float64) (BoxStats, error) {
	if len(values) == 0 {
		return BoxStats{}, errors.New("no values for box summary")
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := BoxStats{
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
	}
	iqr := s.Q3 - s.Q1
	loFence := s.Q1 - 1.5*iqr
	hiFence := s.Q3 + 1.5*iqr

	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	for _, v := range sorted {
		if v < loFence || v > hiFence {
			s.Outliers = append(s.Outliers, v)
			continue
		}
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	// All values outside the fences cannot happen (the median is always
	// inside), but keep the summary well-formed regardless.
	if math.IsInf(s.Min, 1) {
		s.Min, s.Max = s.Median, s.Median
	}
	return s, nil
}

// quantile interpolates linearly between order statistics of a sorted sample.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
