package themes

import (
	"testing"

	"github.com/Veraticus/sortbin/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Primary, GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, Default.Primary, GetTheme("default").Primary)
	assert.Equal(t, Default.Primary, GetTheme("no-such-theme").Primary)
	assert.Len(t, Names(), 2)
}

func TestThemesDeriveFromPalette(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			th := GetTheme(name)
			assert.Equal(t, th.Primary, th.Selected.GetBackground())
			assert.Equal(t, th.Error, th.StatusError.GetForeground())
			assert.Equal(t, th.Warning, th.StatusWarning.GetForeground())
			assert.Equal(t, th.Muted, th.StatusPending.GetForeground())
			assert.Equal(t, th.Border, th.RoundedBox.GetBorderTopForeground())
			assert.True(t, th.StatusSuccess.GetBold())
		})
	}
}

func TestMaterialColour(t *testing.T) {
	tests := []struct {
		name string
		want lipgloss.Color
	}{
		{name: "plastic", want: lipgloss.Color("#FF6384")},
		{name: "Cardboard", want: lipgloss.Color("#FF8042")},
		{name: "styrofoam", want: lipgloss.Color(model.FallbackColour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaterialColour(tt.name))
			assert.Equal(t, tt.want, Material(tt.name).GetForeground())
		})
	}
}
