package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/statistics"
	"github.com/Veraticus/sortbin/internal/tui/themes"
	"github.com/Veraticus/sortbin/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// StatsStatus is the aggregator state the statistics panel renders.
type StatsStatus struct {
	Timeframe model.Timeframe
	Error     string
	Chart     statistics.ChartData
	HasData   bool
	Loading   bool
}

// StatsPanelModel displays aggregate statistics.
type StatsPanelModel struct {
	theme themes.Theme
	width int
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	return StatsPanelModel{theme: theme, width: 80}
}

// Resize updates the component size.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
}

// View renders the stats panel.
func (m StatsPanelModel) View(status StatsStatus) string {
	sections := []string{
		m.theme.Title.Render("Classification Statistics"),
		m.renderSelector(status.Timeframe),
		"",
	}

	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	switch {
	case !status.HasData && status.Loading:
		sections = append(sections, muted.Render("Loading statistics..."))
	case !status.HasData && status.Error != "":
		sections = append(sections, m.theme.StatusError.Render(status.Error))
	case !status.HasData:
		sections = append(sections, muted.Render(statistics.MsgEmpty))
	case status.Chart.Empty:
		sections = append(sections, muted.Render(statistics.MsgEmpty))
		sections = append(sections, m.renderFooter(status)...)
	default:
		sections = append(sections,
			m.theme.Bold.Render(fmt.Sprintf("Total classifications: %d", status.Chart.Total)),
			"",
			m.renderDistribution(status.Chart),
		)
		if trend := m.renderTrend(status.Chart); trend != "" {
			sections = append(sections, "", trend)
		}
		sections = append(sections, m.renderFooter(status)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m StatsPanelModel) renderFooter(status StatsStatus) []string {
	switch {
	case status.Loading:
		return []string{"", lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Refreshing...")}
	case status.Error != "":
		return []string{"", m.theme.StatusError.Render(status.Error)}
	default:
		return nil
	}
}

func (m StatsPanelModel) renderSelector(active model.Timeframe) string {
	keys := map[model.Timeframe]string{
		model.TimeframeWeek:  "w",
		model.TimeframeMonth: "m",
		model.TimeframeAll:   "a",
	}

	var parts []string
	for _, tf := range model.Timeframes() {
		label := fmt.Sprintf("[%s] %s", keys[tf], tf.Label())
		if tf == active {
			parts = append(parts, m.theme.Selected.Padding(0, 1).Render(label))
		} else {
			parts = append(parts, m.theme.Normal.Padding(0, 1).Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderDistribution renders one bar per category.
func (m StatsPanelModel) renderDistribution(chart statistics.ChartData) string {
	title := m.theme.Subtitle.Render("Distribution")
	barWidth := min(max(m.width-40, 10), 40)

	lines := []string{title}
	for _, row := range viewmodel.DistributionBars(chart, barWidth) {
		lines = append(lines, fmt.Sprintf("%s %-12s %s %4d  %s",
			row.Icon,
			viewmodel.TruncateString(row.DisplayName, 12),
			lipgloss.NewStyle().Foreground(themes.MaterialColour(row.Name)).Width(barWidth).Render(row.Bar),
			row.Count,
			row.PercentText,
		))
	}
	return strings.Join(lines, "\n")
}

// renderTrend renders the trend sparkline with its first and last labels.
func (m StatsPanelModel) renderTrend(chart statistics.ChartData) string {
	if len(chart.Trend) == 0 {
		return ""
	}

	title := "Daily Trend"
	if !chart.Timeframe.Daily() {
		title = "Monthly Trend"
	}

	first, last := chart.Trend[0], chart.Trend[len(chart.Trend)-1]
	spark := lipgloss.NewStyle().Foreground(m.theme.Primary).Render(viewmodel.Sparkline(chart.Trend))
	labels := fmt.Sprintf("%s → %s (peak %d)", first.Tick, last.Tick, chart.MaxTrend)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Subtitle.Render(title),
		spark,
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(labels),
	)
}
