package components

import (
	"fmt"

	"github.com/Veraticus/sortbin/internal/history"
	"github.com/Veraticus/sortbin/internal/tui/themes"
	"github.com/Veraticus/sortbin/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HistoryStatus is the manager state the history panel renders.
type HistoryStatus struct {
	Error   string
	Prompt  string
	Loading bool
	Loaded  bool
	Empty   bool
	Busy    bool
}

// HistoryPanelModel lists past classifications.
type HistoryPanelModel struct {
	theme  themes.Theme
	rows   []viewmodel.HistoryRow
	table  table.Model
	width  int
	height int
}

// NewHistoryPanelModel creates an empty history table.
func NewHistoryPanelModel(theme themes.Theme) HistoryPanelModel {
	t := table.New(
		table.WithColumns(historyColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	// Apply theme
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	// d and u are history actions, not half-page scrolling.
	km := table.DefaultKeyMap()
	km.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	km.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	t.KeyMap = km

	return HistoryPanelModel{theme: theme, table: t, width: 80, height: 10}
}

func historyColumns(width int) []table.Column {
	fixed := 14 + 10 + 18 + 8
	return []table.Column{
		{Title: "Material", Width: 14},
		{Title: "Image", Width: max(width-fixed, 12)},
		{Title: "Confidence", Width: 10},
		{Title: "Date", Width: 18},
	}
}

// SetRows replaces the rows, keeping the cursor in range.
func (m *HistoryPanelModel) SetRows(rows []viewmodel.HistoryRow) {
	m.rows = rows

	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, table.Row{
			r.Icon + " " + r.DisplayName,
			r.ImageName,
			r.ConfidenceText,
			r.CreatedText,
		})
	}
	m.table.SetRows(tableRows)

	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Selected returns the row under the cursor.
func (m HistoryPanelModel) Selected() (viewmodel.HistoryRow, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.rows) {
		return viewmodel.HistoryRow{}, false
	}
	return m.rows[c], true
}

// Update handles navigation.
func (m HistoryPanelModel) Update(msg tea.Msg) (HistoryPanelModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Resize updates the component size.
func (m *HistoryPanelModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(historyColumns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(max(height-6, 3))
}

// View renders the panel.
func (m HistoryPanelModel) View(status HistoryStatus) string {
	title := m.theme.Title.Render("Classification History")
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var body string
	switch {
	case status.Loading && !status.Loaded:
		body = muted.Render("Loading history...")
	case status.Error != "" && len(m.rows) == 0:
		body = m.theme.StatusError.Render(status.Error)
	case status.Empty:
		body = muted.Render(history.MsgEmpty)
	default:
		body = m.table.View()
		if status.Error != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.theme.StatusError.Render(status.Error))
		}
	}

	sections := []string{title, body}
	if status.Prompt != "" {
		sections = append(sections, "", m.renderConfirm(status.Prompt))
	} else if status.Busy {
		sections = append(sections, "", m.theme.StatusInfo.Render("Applying..."))
	} else if len(m.rows) > 0 {
		sections = append(sections, "", muted.Render(fmt.Sprintf("%d entries", len(m.rows))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m HistoryPanelModel) renderConfirm(prompt string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Warning).
		Padding(0, 1).
		Render(fmt.Sprintf("%s  %s",
			m.theme.StatusWarning.Render(prompt),
			m.theme.Normal.Render("[y] confirm  [n] cancel"),
		))
}
