package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/sortbin/internal/session"
	"github.com/Veraticus/sortbin/internal/tui/components"
	"github.com/Veraticus/sortbin/internal/tui/viewmodel"
	"github.com/Veraticus/sortbin/internal/upload"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	body := m.renderBody()
	if m.showHelp {
		body = m.renderHelp()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		"",
		body,
		"",
		m.renderStatusBar(),
	)
}

// renderHeader renders the brand and one tab per view.
func (m Model) renderHeader() string {
	brand := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("♻ sortbin")

	active := m.session.View()
	tabs := make([]string, 0, len(session.Views()))
	for i, v := range session.Views() {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if v == active {
			tabs = append(tabs, m.theme.Selected.Padding(0, 1).Render(label))
		} else {
			tabs = append(tabs, m.theme.Normal.Padding(0, 1).Render(label))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, brand, "  ", strings.Join(tabs, " "))
}

func (m Model) bodyTop() int {
	return lipgloss.Height(m.renderHeader()) + 1
}

func (m Model) renderBody() string {
	switch m.session.View() {
	case session.ViewHistory:
		return m.historyPanel.View(m.historyStatus())
	case session.ViewStatistics:
		return m.statsPanel.View(m.statsStatus())
	case session.ViewReference:
		return m.referencePanel.View(components.ReferenceStatus{
			Error:   errorText(m.catalog.Err()),
			Loading: m.catalog.Loading(),
			Loaded:  m.catalog.Loaded(),
		})
	default:
		return m.renderHome()
	}
}

func (m Model) uploadStatus() components.UploadStatus {
	status := components.UploadStatus{
		Error:    errorText(m.workflow.Err()),
		State:    m.workflow.State(),
		Dragging: m.workflow.Dragging(),
	}
	if _, preview, ok := m.workflow.Selected(); ok {
		status.Preview = &preview
	}
	return status
}

func (m Model) dropZoneHeight() int {
	return lipgloss.Height(m.uploadPanel.View(m.uploadStatus()))
}

func (m Model) renderHome() string {
	sections := []string{m.uploadPanel.View(m.uploadStatus())}

	if m.healthChecked && m.healthErr != nil {
		sections = append(sections, "", m.theme.StatusWarning.Render(
			"Classification service unreachable: "+errorText(m.healthErr)))
	}

	if result, ok := m.session.Result(); ok {
		sections = append(sections, "", components.RenderResult(m.theme, viewmodel.NewResultView(result), m.width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) historyStatus() components.HistoryStatus {
	status := components.HistoryStatus{
		Error:   errorText(m.history.Err()),
		Loading: m.history.Loading(),
		Loaded:  m.history.Loaded(),
		Empty:   m.history.Empty(),
		Busy:    m.history.Mutating(),
	}
	if c := m.history.Confirmation(); c.Pending() {
		status.Prompt = c.Prompt()
	}
	return status
}

func (m Model) statsStatus() components.StatsStatus {
	status := components.StatsStatus{
		Timeframe: m.stats.Timeframe(),
		Error:     errorText(m.stats.Err()),
		Loading:   m.stats.Loading(),
	}
	if chart, ok := m.stats.Chart(); ok {
		status.Chart = chart
		status.HasData = true
	}
	return status
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	title := m.theme.Title.Render("sortbin - Help")
	footer := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press ? or Esc to close help")

	return m.theme.BorderedBox.
		Width(max(m.width-4, 40)).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			"",
			m.help.View(m.keymap),
			"",
			footer,
		))
}

// statusHints returns the key hints relevant to the current view.
func (m Model) statusHints() []viewmodel.KeyBinding {
	view := m.session.View()
	inputEmpty := m.uploadPanel.Value() == ""
	confirming := view == session.ViewHistory && m.history.Confirmation().Pending()

	return viewmodel.ActiveKeyBindings([]viewmodel.KeyBinding{
		{Key: "y/n", Description: "confirm/cancel", IsActive: confirming},
		{Key: "Enter", Description: "select", IsActive: view == session.ViewHome && !inputEmpty},
		{Key: "Ctrl+S", Description: "classify", IsActive: view == session.ViewHome && m.workflow.CanSubmit()},
		{Key: "Esc", Description: "clear", IsActive: view == session.ViewHome && inputEmpty && m.workflow.State() != upload.StateIdle},
		{Key: "d/D", Description: "delete/clear", IsActive: view == session.ViewHistory && !confirming},
		{Key: "w/m/a", Description: "timeframe", IsActive: view == session.ViewStatistics},
		{Key: "Enter", Description: "details", IsActive: view == session.ViewReference},
		{Key: "r", Description: "refresh", IsActive: view != session.ViewHome && !confirming},
		{Key: "Tab", Description: "next view", IsActive: !confirming},
		{Key: "?", Description: "help", IsActive: view != session.ViewHome || inputEmpty},
	})
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	left := m.session.View().Title()

	hints := make([]string, 0, 8)
	for _, kb := range m.statusHints() {
		hints = append(hints, fmt.Sprintf("%s %s", kb.Key, kb.Description))
	}
	right := strings.Join(hints, " · ")

	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)

	return fmt.Sprintf("%s%s%s",
		m.theme.StatusInfo.Render(left),
		strings.Repeat(" ", spacing),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(right),
	)
}
