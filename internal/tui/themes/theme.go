package themes

import (
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Selected      lipgloss.Style
	StatusPending lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	RoundedBox    lipgloss.Style
	BorderedBox   lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Background    lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
}

// palette is the handful of colours a theme is derived from.
type palette struct {
	primary    lipgloss.Color
	onPrimary  lipgloss.Color
	success    lipgloss.Color
	warning    lipgloss.Color
	errorc     lipgloss.Color
	info       lipgloss.Color
	background lipgloss.Color
	foreground lipgloss.Color
	subtext    lipgloss.Color
	border     lipgloss.Color
	muted      lipgloss.Color
}

func newTheme(p palette) Theme {
	status := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}

	return Theme{
		Primary:    p.primary,
		Muted:      p.muted,
		Border:     p.border,
		Background: p.background,
		Error:      p.errorc,
		Warning:    p.warning,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.foreground).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(p.subtext).MarginBottom(1),
		Normal:   lipgloss.NewStyle().Foreground(p.foreground),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(p.foreground),
		Selected: lipgloss.NewStyle().Background(p.primary).Foreground(p.onPrimary).Bold(true),

		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.border).
			Padding(1, 2),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 2),

		StatusSuccess: status(p.success),
		StatusWarning: status(p.warning),
		StatusError:   status(p.errorc),
		StatusInfo:    status(p.info),
		StatusPending: lipgloss.NewStyle().Foreground(p.muted).Italic(true),
	}
}

// Default is the recycling-green theme.
var Default = newTheme(palette{
	primary:    lipgloss.Color("#16a34a"),
	onPrimary:  lipgloss.Color("#fafafa"),
	success:    lipgloss.Color("#10b981"),
	warning:    lipgloss.Color("#f59e0b"),
	errorc:     lipgloss.Color("#ef4444"),
	info:       lipgloss.Color("#3b82f6"),
	background: lipgloss.Color("#1a1a1a"),
	foreground: lipgloss.Color("#fafafa"),
	subtext:    lipgloss.Color("#a3a3a3"),
	border:     lipgloss.Color("#404040"),
	muted:      lipgloss.Color("#737373"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    lipgloss.Color("#cba6f7"),
	onPrimary:  lipgloss.Color("#1e1e2e"),
	success:    lipgloss.Color("#a6e3a1"),
	warning:    lipgloss.Color("#f9e2af"),
	errorc:     lipgloss.Color("#f38ba8"),
	info:       lipgloss.Color("#89dceb"),
	background: lipgloss.Color("#1e1e2e"),
	foreground: lipgloss.Color("#cdd6f4"),
	subtext:    lipgloss.Color("#a6adc8"),
	border:     lipgloss.Color("#45475a"),
	muted:      lipgloss.Color("#6c7086"),
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// Names lists the selectable theme names.
func Names() []string {
	return []string{"default", "catppuccin-mocha"}
}

// MaterialColour returns the chart colour of a material class.
func MaterialColour(name string) lipgloss.Color {
	return lipgloss.Color(model.ColourFor(name))
}

// Material returns the style used for a material name or bar.
func Material(name string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MaterialColour(name)).Bold(true)
}
