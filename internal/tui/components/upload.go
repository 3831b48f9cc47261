package components

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Veraticus/sortbin/internal/tui/themes"
	"github.com/Veraticus/sortbin/internal/tui/viewmodel"
	"github.com/Veraticus/sortbin/internal/upload"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// UploadStatus is the workflow state the upload panel renders.
type UploadStatus struct {
	Preview  *upload.Preview
	Error    string
	State    upload.State
	Dragging bool
}

// UploadPanelModel is the drop target and path input of the home view.
type UploadPanelModel struct {
	theme   themes.Theme
	input   textinput.Model
	spinner spinner.Model
	width   int
	animate bool
}

// NewUploadPanelModel creates the upload panel. Without animation the cursor
// does not blink and the spinner does not tick.
func NewUploadPanelModel(theme themes.Theme, animate bool) UploadPanelModel {
	input := textinput.New()
	input.Placeholder = "Type or drop an image path…"
	input.Prompt = "› "
	input.CharLimit = 4096
	input.PromptStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	if !animate {
		input.Cursor.SetMode(cursor.CursorStatic)
	}
	input.Focus()

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
	)

	return UploadPanelModel{
		theme:   theme,
		input:   input,
		spinner: spin,
		width:   60,
		animate: animate,
	}
}

// Init starts cursor blinking.
func (m UploadPanelModel) Init() tea.Cmd {
	if !m.animate {
		return nil
	}
	return textinput.Blink
}

// Update handles messages.
func (m UploadPanelModel) Update(msg tea.Msg) (UploadPanelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Paste {
			path := CleanDroppedPath(string(msg.Runes))
			return m, func() tea.Msg { return FileDroppedMsg{Path: path} }
		}
		if msg.Type == tea.KeyEnter {
			path := CleanDroppedPath(m.input.Value())
			m.input.Reset()
			return m, func() tea.Msg { return PathEnteredMsg{Path: path} }
		}

	case spinner.TickMsg:
		if !m.animate {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// StartSpinner returns the command that animates the submitting indicator.
func (m UploadPanelModel) StartSpinner() tea.Cmd {
	if !m.animate {
		return nil
	}
	return m.spinner.Tick
}

// Value returns the typed path.
func (m UploadPanelModel) Value() string {
	return m.input.Value()
}

// Resize updates the component size.
func (m *UploadPanelModel) Resize(width int) {
	m.width = width
	m.input.Width = max(width-8, 10)
}

// View renders the panel.
func (m UploadPanelModel) View(status UploadStatus) string {
	border := m.theme.Border
	if status.Dragging {
		border = m.theme.Primary
	}

	lines := []string{
		m.theme.Bold.Render("Drop an image here or type its path"),
		m.input.View(),
	}

	if status.Preview != nil {
		lines = append(lines, "", m.renderPreview(*status.Preview))
	}

	switch {
	case status.State == upload.StateSubmitting:
		indicator := "…"
		if m.animate {
			indicator = m.spinner.View()
		}
		lines = append(lines, "", fmt.Sprintf("%s %s", indicator, m.theme.StatusInfo.Render("Classifying...")))
	case status.Error != "":
		lines = append(lines, "", m.theme.StatusError.Render(status.Error))
	case status.Preview != nil:
		lines = append(lines, "", m.theme.StatusPending.Render("Press Enter to classify"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2).
		Width(max(m.width-4, 20))

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m UploadPanelModel) renderPreview(p upload.Preview) string {
	details := []string{p.Format, viewmodel.FormatSize(p.Size)}
	if dims := p.Dimensions(); dims != "" {
		details = append(details, dims)
	}
	return fmt.Sprintf("%s %s  %s",
		m.theme.StatusSuccess.Render("✓"),
		m.theme.Normal.Render(viewmodel.TruncateString(p.Name, max(m.width-30, 12))),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(nonEmpty(details), " · ")),
	)
}

// CleanDroppedPath normalises what a terminal pastes when a file is
// dropped: surrounding quotes, backslash-escaped spaces and file:// URLs.
func CleanDroppedPath(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "file://") {
		if u, err := url.Parse(s); err == nil {
			s = u.Path
		}
	}
	return strings.ReplaceAll(s, `\ `, " ")
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
