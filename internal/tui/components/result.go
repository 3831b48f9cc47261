package components

import (
	"fmt"

	"github.com/Veraticus/sortbin/internal/tui/themes"
	"github.com/Veraticus/sortbin/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// RenderResult renders a classification result with one bar per class.
func RenderResult(theme themes.Theme, view viewmodel.ResultView, width int) string {
	headline := fmt.Sprintf("%s %s",
		view.Predicted.Icon,
		themes.Material(view.Predicted.Name).Render(view.Predicted.DisplayName),
	)
	confidence := fmt.Sprintf("Confidence: %s (%s)",
		theme.Bold.Render(view.ConfidenceText),
		view.ConfidenceLevel,
	)

	barWidth := min(max(width-36, 10), 40)
	lines := []string{
		theme.Title.Render("Classification Result"),
		headline,
		theme.Normal.Render(confidence),
		"",
		theme.Subtitle.Render("All scores"),
	}

	for _, s := range view.Scores {
		marker := "  "
		if s.Predicted {
			marker = "▸ "
		}
		bar := viewmodel.GetConfidenceBar(s.Probability, barWidth)
		lines = append(lines, fmt.Sprintf("%s%-12s %s %8s",
			marker,
			viewmodel.TruncateString(s.DisplayName, 12),
			lipgloss.NewStyle().Foreground(themes.MaterialColour(s.Name)).Render(bar),
			s.PercentText,
		))
	}

	if view.PredictedMissing {
		lines = append(lines, "", theme.StatusWarning.Render(
			fmt.Sprintf("The service did not score %s.", view.Predicted.DisplayName)))
	}
	if view.Predicted.Known {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Muted).Render(
			fmt.Sprintf("Press 4 to learn how to recycle %s.", view.Predicted.Name)))
	}

	return theme.RoundedBox.Width(max(width-4, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
