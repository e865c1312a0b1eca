package chart

import (
	"fmt"
	"strings"
)

// Kind is a requested visual encoding.
type Kind string

const (
	KindBar       Kind = "bar"
	KindLine      Kind = "line"
	KindPie       Kind = "pie"
	KindBox       Kind = "box"
	KindHistogram Kind = "histogram"
	KindScatter   Kind = "scatter"
)

// ParseKind normalizes user input such as "Bar Chart" or "scatter plot".
func ParseKind(s string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.TrimSuffix(n, " chart")
	n = strings.TrimSuffix(n, " plot")
	switch n {
	case "bar":
		return KindBar, nil
	case "line":
		return KindLine, nil
	case "pie":
		return KindPie, nil
	case "box":
		return KindBox, nil
	case "histogram", "hist":
		return KindHistogram, nil
	case "scatter":
		return KindScatter, nil
	}
	return "", fmt.Errorf("unknown chart kind %q (bar|line|pie|box|histogram|scatter)", s)
}

// displayName is used in titles and warnings.
func (k Kind) displayName() string {
	switch k {
	case KindBar:
		return "Bar Chart"
	case KindLine:
		return "Line Chart"
	case KindPie:
		return "Pie Chart"
	case KindBox:
		return "Box Plot"
	case KindHistogram:
		return "Histogram"
	case KindScatter:
		return "Scatter Plot"
	}
	return string(k)
}

// DisplayName returns the human-readable chart kind name.
func (k Kind) DisplayName() string { return k.displayName() }

// Axis describes one spec axis: categorical axes carry labels, numeric axes
// carry values.
type Axis struct {
	Title  string    `json:"title,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`
}

// Series is one plotted value sequence, aligned to the x axis.
type Series struct {
	Name   string    `json:"name,omitempty"`
	Values []float64 `json:"values"`
}

// Color carries the resolved theme variant for the renderer. Mode is one of
// "default", "sequential" or "qualitative".
type Color struct {
	Mode   string   `json:"mode"`
	Scale  string   `json:"scale,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

// Spec is a fully resolved, renderer-agnostic chart descriptor. It is built
// fresh per request and handed straight to a renderer.
type Spec struct {
	Mark    Kind      `json:"mark"`
	Title   string    `json:"title"`
	Columns []string  `json:"columns"`
	X       Axis      `json:"x"`
	Y       Axis      `json:"y"`
	Series  []Series  `json:"series,omitempty"`
	Box     *BoxStats `json:"box,omitempty"`
	NumBins int       `json:"num_bins,omitempty"`
	Color   Color     `json:"color"`
}

// multiCategory reports whether the chart encodes multiple categories in
// color (pie slices or more than one series). Theme application keys on it.
func (s *Spec) multiCategory() bool {
	return s.Mark == KindPie || len(s.Series) > 1
}

// Request describes one user chart selection.
type Request struct {
	// Columns are the selected column names, one or two.
	Columns []string
	Kind    Kind
	// BinWidth applies to numeric single-column charts; 0 picks a default.
	BinWidth float64
	// X and Y assign axes for two-column charts. Empty means Columns order.
	X, Y string
	// Theme is a color theme name; unknown names fall back to the default
	// palette.
	Theme string
}

// RejectionError marks a structurally unsupported chart/column combination.
// It is an expected outcome the caller renders as a warning, distinct from a
// hard failure.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string { return "invalid selection: " + e.Reason }

func reject(format string, args ...any) error {
	return &RejectionError{Reason: fmt.Sprintf(format, args...)}
}
