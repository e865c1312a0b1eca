package chart

import (
	"sort"
	"strings"
)

// ThemeVariant distinguishes how a named theme resolves to colors.
type ThemeVariant string

const (
	// VariantPassthrough leaves the renderer's default palette in place.
	VariantPassthrough ThemeVariant = "passthrough"
	// VariantSequential names a continuous color scale.
	VariantSequential ThemeVariant = "sequential"
	// VariantQualitative carries an ordered discrete color sequence.
	VariantQualitative ThemeVariant = "qualitative"
)

// Theme is one resolved color theme entry.
type Theme struct {
	Name    string
	Variant ThemeVariant
	// Scale is set for sequential themes.
	Scale string
	// Colors is set for qualitative themes.
	Colors []string
}

// The theme table replaces per-chart-kind conditional chains: every consumer
// looks the name up here and switches on the variant.
var themes = map[string]Theme{
	"default": {Name: "Default", Variant: VariantPassthrough},

	"viridis": {Name: "Viridis", Variant: VariantSequential, Scale: "viridis"},
	"plasma":  {Name: "Plasma", Variant: VariantSequential, Scale: "plasma"},
	"inferno": {Name: "Inferno", Variant: VariantSequential, Scale: "inferno"},
	"magma":   {Name: "Magma", Variant: VariantSequential, Scale: "magma"},
	"blues":   {Name: "Blues", Variant: VariantSequential, Scale: "blues"},
	"reds":    {Name: "Reds", Variant: VariantSequential, Scale: "reds"},
	"greens":  {Name: "Greens", Variant: VariantSequential, Scale: "greens"},
	"purples": {Name: "Purples", Variant: VariantSequential, Scale: "purples"},
	"oranges": {Name: "Oranges", Variant: VariantSequential, Scale: "oranges"},
	"turbo":   {Name: "Turbo", Variant: VariantSequential, Scale: "turbo"},

	"rainbow": {Name: "Rainbow", Variant: VariantQualitative, Colors: []string{
		"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
		"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
	}},
	"pastel": {Name: "Pastel", Variant: VariantQualitative, Colors: []string{
		"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6", "#ffffcc",
		"#e5d8bd", "#fddaec", "#f2f2f2",
	}},
	"bold": {Name: "Bold", Variant: VariantQualitative, Colors: []string{
		"#7f3c8d", "#11a579", "#3969ac", "#f2b701", "#e73f74", "#80ba5a",
		"#e68310", "#008695", "#cf1c90", "#f97b72", "#4b4b8f", "#a5aa99",
	}},
	"vivid": {Name: "Vivid", Variant: VariantQualitative, Colors: []string{
		"#e58606", "#5d69b1", "#52bca3", "#99c945", "#cc61b0", "#24796c",
		"#daa51b", "#2f8ac4", "#764e9f", "#ed645a", "#cc3a8e", "#a5aa99",
	}},
	"safe": {Name: "Safe", Variant: VariantQualitative, Colors: []string{
		"#88ccee", "#cc6677", "#ddcc77", "#117733", "#332288", "#aa4499",
		"#44aa99", "#999933", "#882255", "#661100", "#6699cc", "#888888",
	}},
}

// LookupTheme resolves a theme name, case-insensitive. Unknown names fall
// back to the default passthrough theme.
func LookupTheme(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return themes["default"]
}

// Themes returns the theme table entries sorted by display name.
func Themes() []Theme {
	out := make([]Theme, 0, len(themes))
	for _, t := range themes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// applyTheme layers the resolved theme onto a computed spec. The choice of
// encoding depends only on the chart shape: multi-category charts get a
// discrete sequence, single-series charts a continuous scale. Theme
// application never alters axes or aggregation.
func applyTheme(s *Spec, name string) {
	t := LookupTheme(name)
	switch t.Variant {
	case VariantSequential:
		s.Color = Color{Mode: "sequential", Scale: t.Scale}
	case VariantQualitative:
		if s.multiCategory() {
			s.Color = Color{Mode: "qualitative", Colors: t.Colors}
		} else {
			// Single-series chart: one color from the sequence is enough.
			s.Color = Color{Mode: "qualitative", Colors: t.Colors[:1]}
		}
	default:
		s.Color = Color{Mode: "default"}
	}
}
