package session

import (
	"testing"

	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ service.ResultSink = (*Controller)(nil)

func TestController_ResultSurvivesNavigation(t *testing.T) {
	c := NewController()

	_, ok := c.Result()
	assert.False(t, ok)
	assert.Equal(t, ViewHome, c.View())

	c.SetResult(model.ClassificationResult{PredictedClass: "metal", Confidence: 0.9})

	for _, v := range []View{ViewHistory, ViewStatistics, ViewReference, ViewHome} {
		require.True(t, c.Navigate(v))
		result, ok := c.Result()
		require.True(t, ok)
		assert.Equal(t, "metal", result.PredictedClass)
	}

	c.SetResult(model.ClassificationResult{PredictedClass: "paper"})
	result, _ := c.Result()
	assert.Equal(t, "paper", result.PredictedClass)
}

func TestController_OnNavigate(t *testing.T) {
	type transition struct{ from, to View }
	var seen []transition

	c := NewController(WithOnNavigate(func(from, to View) {
		seen = append(seen, transition{from, to})
	}))

	assert.True(t, c.Navigate(ViewStatistics))
	assert.False(t, c.Navigate(ViewStatistics), "re-selecting the active view is not a transition")
	assert.False(t, c.Navigate(View(42)))
	assert.True(t, c.Navigate(ViewHome))

	assert.Equal(t, []transition{{ViewHome, ViewStatistics}, {ViewStatistics, ViewHome}}, seen)
}

func TestController_NextPrevWrap(t *testing.T) {
	c := NewController()

	assert.Equal(t, ViewHistory, c.Next())
	assert.Equal(t, ViewStatistics, c.Next())
	assert.Equal(t, ViewReference, c.Next())
	assert.Equal(t, ViewHome, c.Next())
	assert.Equal(t, ViewReference, c.Prev())
	assert.Equal(t, ViewReference, c.View())
}

func TestParseView(t *testing.T) {
	tests := []struct {
		input   string
		want    View
		wantErr bool
	}{
		{input: "home", want: ViewHome},
		{input: "History", want: ViewHistory},
		{input: " statistics ", want: ViewStatistics},
		{input: "reference", want: ViewReference},
		{input: "settings", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseView(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestView_Title(t *testing.T) {
	assert.Equal(t, "Classify", ViewHome.Title())
	assert.Equal(t, "Environmental Impact", ViewReference.Title())
	assert.Equal(t, "view(9)", View(9).String())
}
