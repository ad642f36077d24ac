package recommend

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
)

// metricLabels holds the display names for the standard metrics. Metrics
// without a label render under their raw name.
var metricLabels = map[domain.Metric]string{
	domain.MetricCostOfLiving:  "Cost of Living (inverted)",
	domain.MetricQualityOfLife: "Quality of Life",
	domain.MetricSafety:        "Safety",
	domain.MetricHealthcare:    "Healthcare",
	domain.MetricClimate:       "Climate",
	domain.MetricJobMarket:     "Job Market",
	domain.MetricEnglish:       "English Proficiency",
	domain.MetricVisaEase:      "Visa Accessibility",
	domain.MetricTax:           "Tax Friendliness",
}

// MetricLabel returns the display label for m, falling back to the raw
// metric name.
func MetricLabel(m domain.Metric) string {
	if label, ok := metricLabels[m]; ok {
		return label
	}
	return string(m)
}

const explainWidth = 60

// Explain renders one recommendation as text: the country, its total score
// against the maximum the weights can attain, the per-metric contributions
// in descending order, and the key statistics a reader checks first.
// Rendering only; nothing here feeds back into scoring or ranking.
func Explain(rec domain.Recommendation) string {
	var b strings.Builder

	rule := strings.Repeat("=", explainWidth)
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Country: %s\n", rec.Country.Name)
	fmt.Fprintf(&b, "Overall Score: %.2f%s\n", rec.Score, denominator(rec.MaxScore))
	b.WriteString(rule + "\n")

	b.WriteString("\nScore Breakdown:\n")
	b.WriteString(strings.Repeat("-", explainWidth) + "\n")
	for _, row := range sortedBreakdown(rec.Breakdown) {
		fmt.Fprintf(&b, "  %-44s %8.2f\n", MetricLabel(row.metric), row.contribution)
	}

	b.WriteString("\nKey Statistics:\n")
	b.WriteString(strings.Repeat("-", explainWidth) + "\n")
	writeKeyStatistics(&b, rec.Country)

	return b.String()
}

// denominator renders the attainable ceiling ("/100" for weights summing to
// 1). Degenerate weight sets with no positive ceiling get a bare score. The
// ceiling is rounded to two decimals so float summation order never leaks
// into the rendering.
func denominator(maxScore float64) string {
	if maxScore <= 0 {
		return ""
	}
	rounded := math.Round(maxScore*100) / 100
	return "/" + strconv.FormatFloat(rounded, 'f', -1, 64)
}

type breakdownRow struct {
	metric       domain.Metric
	contribution float64
}

func sortedBreakdown(breakdown map[domain.Metric]float64) []breakdownRow {
	rows := make([]breakdownRow, 0, len(breakdown))
	for m, v := range breakdown {
		rows = append(rows, breakdownRow{metric: m, contribution: v})
	}
	// Ties break by name so rendering stays deterministic.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].contribution != rows[j].contribution {
			return rows[i].contribution > rows[j].contribution
		}
		return rows[i].metric < rows[j].metric
	})
	return rows
}

func writeKeyStatistics(b *strings.Builder, c domain.Country) {
	if v, ok := c.MetricValue(domain.MetricCostOfLiving); ok {
		fmt.Fprintf(b, "  %-24s %g/100 (lower is cheaper)\n", "Cost of Living Index:", v)
	}
	if v, ok := c.MetricValue(domain.MetricSafety); ok {
		fmt.Fprintf(b, "  %-24s %g/100\n", "Safety Index:", v)
	}
	if v, ok := c.MetricValue(domain.MetricHealthcare); ok {
		fmt.Fprintf(b, "  %-24s %g/100\n", "Healthcare Index:", v)
	}
	if v, ok := c.MetricValue(domain.MetricInternetSpeed); ok {
		fmt.Fprintf(b, "  %-24s %g Mbps\n", "Internet Speed:", v)
	}
	if c.ExpatCommunity != "" {
		fmt.Fprintf(b, "  %-24s %s\n", "Expat Community:", c.ExpatCommunity)
	}
}
