package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/tui/themes"
	"github.com/Veraticus/sortbin/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ReferenceStatus is the catalog state the reference panel renders.
type ReferenceStatus struct {
	Error   string
	Loading bool
	Loaded  bool
}

// ReferencePanelModel lists the environmental-impact cards.
type ReferencePanelModel struct {
	theme  themes.Theme
	cards  []viewmodel.ReferenceCard
	up     key.Binding
	down   key.Binding
	cursor int
	width  int
}

// NewReferencePanelModel creates an empty reference panel.
func NewReferencePanelModel(theme themes.Theme) ReferencePanelModel {
	return ReferencePanelModel{
		theme: theme,
		width: 80,
		up:    key.NewBinding(key.WithKeys("up", "k")),
		down:  key.NewBinding(key.WithKeys("down", "j")),
	}
}

// SetCards replaces the cards, keeping the cursor in range.
func (m *ReferencePanelModel) SetCards(cards []viewmodel.ReferenceCard) {
	m.cards = cards
	if m.cursor >= len(cards) {
		m.cursor = max(len(cards)-1, 0)
	}
}

// Current returns the id of the card under the cursor.
func (m ReferencePanelModel) Current() (model.EntryID, bool) {
	if m.cursor < 0 || m.cursor >= len(m.cards) {
		return "", false
	}
	return m.cards[m.cursor].ID, true
}

// Focus moves the cursor to the card for material.
func (m *ReferencePanelModel) Focus(material string) bool {
	for i, c := range m.cards {
		if strings.EqualFold(c.Name, strings.TrimSpace(material)) {
			m.cursor = i
			return true
		}
	}
	return false
}

// Update handles navigation.
func (m ReferencePanelModel) Update(msg tea.Msg) (ReferencePanelModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.down):
			if m.cursor < len(m.cards)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

// Resize updates the component size.
func (m *ReferencePanelModel) Resize(width int) {
	m.width = width
}

// CardAt returns the card rendered at row, counted from the top of the panel.
func (m ReferencePanelModel) CardAt(row int) (viewmodel.ReferenceCard, bool) {
	index := row - lipgloss.Height(m.header())
	if index < 0 || index >= len(m.cards) {
		return viewmodel.ReferenceCard{}, false
	}
	return m.cards[index], true
}

func (m ReferencePanelModel) header() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Environmental Impact Information"),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Learn about the environmental impact of different materials and how to recycle them properly"),
		"",
	)
}

// View renders the panel.
func (m ReferencePanelModel) View(status ReferenceStatus) string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	sections := []string{m.header()}

	switch {
	case status.Loading && !status.Loaded:
		return lipgloss.JoinVertical(lipgloss.Left, append(sections, muted.Render("Loading environmental data..."))...)
	case status.Error != "" && len(m.cards) == 0:
		return lipgloss.JoinVertical(lipgloss.Left, append(sections, m.theme.StatusError.Render(status.Error))...)
	}

	var selected *viewmodel.ReferenceCard
	for i, c := range m.cards {
		sections = append(sections, m.renderCard(c, i == m.cursor))
		if c.Selected {
			selected = &m.cards[i]
		}
	}

	if selected != nil {
		sections = append(sections, "", m.renderDetail(*selected))
	} else if len(m.cards) > 0 {
		sections = append(sections, "", muted.Render("Press Enter for more details"))
	}
	if status.Error != "" {
		sections = append(sections, "", m.theme.StatusError.Render(status.Error))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ReferencePanelModel) renderCard(c viewmodel.ReferenceCard, focused bool) string {
	cursor := "  "
	if focused {
		cursor = lipgloss.NewStyle().Foreground(m.theme.Primary).Render("▸ ")
	}

	name := themes.Material(c.Name).Render(fmt.Sprintf("%-10s", c.DisplayName))
	if c.Selected {
		name = themes.Material(c.Name).Underline(true).Render(fmt.Sprintf("%-10s", c.DisplayName))
	}

	return fmt.Sprintf("%s%s %s  Decomposition: %-16s Recycling: %-6s CO2: %s",
		cursor,
		c.Icon,
		name,
		c.DecompositionTime,
		themes.Material(c.Name).Render(c.RecyclingRateText),
		c.CO2Text,
	)
}

func (m ReferencePanelModel) renderDetail(c viewmodel.ReferenceCard) string {
	width := max(m.width-6, 20)
	body := lipgloss.JoinVertical(lipgloss.Left,
		themes.Material(c.Name).Render(c.DisplayName+" - Detailed Information"),
		"",
		m.theme.Bold.Render("Did You Know?"),
		m.theme.Normal.Width(width).Render(c.FunFact),
		"",
		m.theme.Bold.Render("Recycling Tips"),
		m.theme.Normal.Width(width).Render(c.Tips),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(themes.MaterialColour(c.Name)).
		PaddingLeft(2).
		Render(body)
}
