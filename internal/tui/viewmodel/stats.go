package viewmodel

import (
	"strings"

	"github.com/Veraticus/sortbin/internal/statistics"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// BarRow is one horizontal bar of the distribution chart.
type BarRow struct {
	CategoryView
	Bar         string
	PercentText string
	Count       int
}

// DistributionBars scales the chart slices to width cells, relative to the
// largest category.
func DistributionBars(chart statistics.ChartData, width int) []BarRow {
	rows := make([]BarRow, 0, len(chart.Slices))
	for _, s := range chart.Slices {
		count := max(s.Count, 0)
		filled := 0
		if chart.MaxCount > 0 && width > 0 {
			filled = min(count*width/chart.MaxCount, width)
		}
		if count > 0 && filled == 0 && width > 0 {
			filled = 1
		}
		rows = append(rows, BarRow{
			CategoryView: NewCategoryView(s.Name),
			Bar:          strings.Repeat("█", filled),
			PercentText:  s.PercentText,
			Count:        count,
		})
	}
	return rows
}

// Sparkline renders trend counts as one block character per point.
func Sparkline(points []statistics.TrendPoint) string {
	if len(points) == 0 {
		return ""
	}

	peak := 0
	for _, p := range points {
		peak = max(peak, p.Count)
	}

	var b strings.Builder
	for _, p := range points {
		level := 0
		if peak > 0 && p.Count > 0 {
			level = min(p.Count*(len(sparkLevels)-1)/peak, len(sparkLevels)-1)
		}
		b.WriteRune(sparkLevels[level])
	}
	return b.String()
}
