package interpret

import (
	"fmt"
	"strings"
)

const systemRole = "You are an expert data analyst."

// interpretationPrompt combines dataset context, chart metadata and the
// chart-specific summary into a single analysis request.
func interpretationPrompt(chartTitle, chartKind string, cols []string, datasetCtx, chartSummary string) string {
	var b strings.Builder
	b.WriteString("Analyze and interpret the following chart based on the provided context.\n\n")
	b.WriteString(datasetCtx)
	b.WriteString("\n[CHART]\n")
	fmt.Fprintf(&b, "Chart type: %s\n", chartKind)
	fmt.Fprintf(&b, "Title: %s\n", chartTitle)
	fmt.Fprintf(&b, "Columns visualized: %s\n", strings.Join(cols, ", "))
	if chartSummary != "" {
		b.WriteString("\n[CHART DATA SUMMARY]\n")
		b.WriteString(chartSummary)
	}
	b.WriteString(`
Provide an interpretation covering:

1. **Data patterns & trends**: what patterns, trends or relationships does the data show?
2. **Key insights**: the most important things this visualization reveals.
3. **Statistical observations**: distribution, outliers, correlations.
4. **Domain implications**: what the findings might mean given the dataset description.
5. **Data quality notes**: missing values or other issues worth flagging.
6. **Recommendations**: follow-up analyses or actions.

Be specific and analytical. Focus on what the data says in the context of the
described domain rather than describing what the chart looks like.
`)
	return b.String()
}

// recommendationPrompt asks for follow-up visualizations for a dataset.
func recommendationPrompt(datasetCtx string) string {
	var b strings.Builder
	b.WriteString("Based on the following dataset, suggest 3-5 visualizations or analyses that would provide valuable insight:\n\n")
	b.WriteString(datasetCtx)
	b.WriteString(`
For each suggestion give:
1. The chart kind and column combination.
2. Why it would be useful.
3. What insight it might reveal for this specific dataset.

Format the response as a bulleted list with brief explanations.
`)
	return b.String()
}
