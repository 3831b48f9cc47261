package viewmodel

import (
	"testing"
	"time"

	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classes(scores []ScoreView) []string {
	out := make([]string, 0, len(scores))
	for _, s := range scores {
		out = append(out, s.Name)
	}
	return out
}

func percents(scores []ScoreView) []string {
	out := make([]string, 0, len(scores))
	for _, s := range scores {
		out = append(out, s.PercentText)
	}
	return out
}

func TestNewResultView_RanksAndFormats(t *testing.T) {
	result := model.ClassificationResult{
		PredictedClass: "plastic",
		Confidence:     0.7,
		AllScores: model.Scores{
			{Class: "glass", Probability: 0.1},
			{Class: "plastic", Probability: 0.7},
			{Class: "paper", Probability: 0.2},
		},
	}

	view := NewResultView(result)

	assert.Equal(t, []string{"plastic", "paper", "glass"}, classes(view.Scores))
	assert.Equal(t, []string{"70.00%", "20.00%", "10.00%"}, percents(view.Scores))
	assert.Equal(t, "Plastic", view.Predicted.DisplayName)
	assert.Equal(t, "♻️", view.Predicted.Icon)
	assert.Equal(t, "#FF6384", view.Predicted.Colour)
	assert.Equal(t, "70.00%", view.ConfidenceText)
	assert.Equal(t, "Medium", view.ConfidenceLevel)
	assert.True(t, view.Scores[0].Predicted)
	assert.False(t, view.Scores[1].Predicted)
	assert.False(t, view.PredictedMissing)

	top, ok := view.Top()
	require.True(t, ok)
	assert.Equal(t, "plastic", top.Name)
}

func TestNewResultView_StableTies(t *testing.T) {
	result := model.ClassificationResult{
		PredictedClass: "metal",
		AllScores: model.Scores{
			{Class: "paper", Probability: 0.25},
			{Class: "metal", Probability: 0.5},
			{Class: "cardboard", Probability: 0.25},
			{Class: "glass", Probability: 0.25},
		},
	}

	view := NewResultView(result)
	assert.Equal(t, []string{"metal", "paper", "cardboard", "glass"}, classes(view.Scores))
}

func TestNewResultView_DegradesGracefully(t *testing.T) {
	tests := []struct {
		name        string
		result      model.ClassificationResult
		wantMissing bool
		wantColours []string
	}{
		{
			name: "predicted class absent from scores",
			result: model.ClassificationResult{
				PredictedClass: "metal",
				AllScores:      model.Scores{{Class: "paper", Probability: 0.6}},
			},
			wantMissing: true,
			wantColours: []string{"#0088FE"},
		},
		{
			name: "unknown category",
			result: model.ClassificationResult{
				PredictedClass: "styrofoam",
				AllScores: model.Scores{
					{Class: "styrofoam", Probability: 0.8},
					{Class: "glass", Probability: 0.2},
				},
			},
			wantColours: []string{model.FallbackColour, "#00C49F"},
		},
		{
			name:        "no scores at all",
			result:      model.ClassificationResult{PredictedClass: "glass"},
			wantMissing: true,
			wantColours: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewResultView(tt.result)
			assert.Equal(t, tt.wantMissing, view.PredictedMissing)

			colours := make([]string, 0, len(view.Scores))
			for _, s := range view.Scores {
				colours = append(colours, s.Colour)
			}
			assert.Equal(t, tt.wantColours, colours)
		})
	}
}

func TestNewResultView_DoesNotMutateInput(t *testing.T) {
	scores := model.Scores{
		{Class: "glass", Probability: 0.1},
		{Class: "plastic", Probability: 0.9},
	}
	NewResultView(model.ClassificationResult{PredictedClass: "plastic", AllScores: scores})
	assert.Equal(t, "glass", scores[0].Class)
}

func TestNewCategoryView(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantName  string
		wantIcon  string
		wantKnown bool
	}{
		{name: "known", input: "cardboard", wantName: "Cardboard", wantIcon: "📦", wantKnown: true},
		{name: "mixed case", input: "GLASS", wantName: "Glass", wantIcon: "🥤", wantKnown: true},
		{name: "unknown", input: "styrofoam", wantName: "Styrofoam", wantIcon: "🗑️"},
		{name: "empty", input: "", wantName: "Unknown", wantIcon: "🗑️"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewCategoryView(tt.input)
			assert.Equal(t, tt.wantName, view.DisplayName)
			assert.Equal(t, tt.wantIcon, view.Icon)
			assert.Equal(t, tt.wantKnown, view.Known)
		})
	}
}

func TestNewHistoryRows(t *testing.T) {
	created := model.Timestamp{Time: time.Date(2025, time.March, 4, 9, 5, 0, 0, time.Local)}
	entries := []model.HistoryEntry{
		{ID: "9", PredictedClass: "paper", ImageName: "receipt\n.png", Confidence: 0.876, CreatedAt: created},
		{ID: "2", PredictedClass: "metal", ImageName: "can.jpg", Confidence: 1},
	}

	rows := NewHistoryRows(entries)

	require.Len(t, rows, 2)
	assert.Equal(t, model.EntryID("9"), rows[0].ID)
	assert.Equal(t, "04/03/2025, 09:05", rows[0].CreatedText)
	assert.Equal(t, "87.60%", rows[0].ConfidenceText)
	assert.Equal(t, "receipt .png", rows[0].ImageName)
	assert.Equal(t, "Paper", rows[0].DisplayName)
	assert.Equal(t, "-", rows[1].CreatedText)
	assert.Equal(t, "100.00%", rows[1].ConfidenceText)
}

func TestNewReferenceCards(t *testing.T) {
	materials := []model.ReferenceMaterial{
		{ID: "1", Material: "plastic", RecyclingRate: 9, CO2PerKg: 6.0, DecompositionTime: "450 years"},
		{ID: "2", Material: "glass", RecyclingRate: 27.5, CO2PerKg: 0.85},
	}

	cards := NewReferenceCards(materials, "2")

	require.Len(t, cards, 2)
	assert.Equal(t, "9%", cards[0].RecyclingRateText)
	assert.Equal(t, "6 kg CO2 per kg", cards[0].CO2Text)
	assert.False(t, cards[0].Selected)
	assert.Equal(t, "27.5%", cards[1].RecyclingRateText)
	assert.Equal(t, "0.85 kg CO2 per kg", cards[1].CO2Text)
	assert.True(t, cards[1].Selected)

	none := NewReferenceCards(materials, "")
	assert.False(t, none[0].Selected)
	assert.False(t, none[1].Selected)
}

func TestDistributionBars(t *testing.T) {
	snapshot := model.StatisticsSnapshot{
		TotalClassifications: 4,
		Distribution: []model.DistributionEntry{
			{Name: "paper", Count: 3},
			{Name: "glass", Count: 1},
		},
	}

	rows := DistributionBars(statistics.Chart(snapshot, model.TimeframeAll), 12)

	require.Len(t, rows, 2)
	assert.Equal(t, "████████████", rows[0].Bar)
	assert.Equal(t, "75.0%", rows[0].PercentText)
	assert.Equal(t, "████", rows[1].Bar)
	assert.Equal(t, "25.0%", rows[1].PercentText)
	assert.Equal(t, "Glass", rows[1].DisplayName)
}

func TestDistributionBars_NegativeCount(t *testing.T) {
	chart := statistics.ChartData{
		Slices: []statistics.Slice{
			{Name: "paper", Count: 2},
			{Name: "glass", Count: -1},
		},
		MaxCount: 2,
	}

	var rows []BarRow
	require.NotPanics(t, func() { rows = DistributionBars(chart, 10) })
	require.Len(t, rows, 2)
	assert.Equal(t, "██████████", rows[0].Bar)
	assert.Empty(t, rows[1].Bar)
	assert.Equal(t, 0, rows[1].Count)
}

func TestSparkline_NegativeCount(t *testing.T) {
	points := []statistics.TrendPoint{{Count: 2}, {Count: -1}}

	var line string
	require.NotPanics(t, func() { line = Sparkline(points) })
	assert.Equal(t, "█▁", line)
	assert.Equal(t, "▁▁", Sparkline([]statistics.TrendPoint{{Count: -3}, {Count: -1}}))
}

func TestSparkline(t *testing.T) {
	points := []statistics.TrendPoint{{Count: 0}, {Count: 7}, {Count: 14}}
	assert.Equal(t, "▁▄█", Sparkline(points))
	assert.Empty(t, Sparkline(nil))
	assert.Equal(t, "▁▁", Sparkline([]statistics.TrendPoint{{}, {}}))
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		maxLen int
	}{
		{name: "short", input: "can.png", maxLen: 10, want: "can.png"},
		{name: "exact", input: "abcdef", maxLen: 6, want: "abcdef"},
		{name: "long", input: "very-long-name.png", maxLen: 10, want: "very-lo..."},
		{name: "tiny limit", input: "abcdef", maxLen: 2, want: "ab"},
		{name: "multibyte", input: "ééééééé", maxLen: 5, want: "éé..."},
		{name: "negative", input: "abc", maxLen: -1, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateString(tt.input, tt.maxLen))
		})
	}
}

func TestGetConfidenceBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", GetConfidenceBar(0.5, 10))
	assert.Equal(t, "░░░░", GetConfidenceBar(-1, 4))
	assert.Equal(t, "████", GetConfidenceBar(2, 4))
	assert.Empty(t, GetConfidenceBar(0.5, 0))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.5 KiB", FormatSize(1536))
	assert.Equal(t, "10.0 MiB", FormatSize(10<<20))
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "2m 5s", FormatDuration(125*time.Second))
	assert.Equal(t, "hello world", SanitizeForDisplay("hello\x00  world\n"))
}

func TestActiveKeyBindings(t *testing.T) {
	bindings := []KeyBinding{
		{Key: "d", Description: "delete", IsActive: true},
		{Key: "y", Description: "confirm"},
	}
	active := ActiveKeyBindings(bindings)
	require.Len(t, active, 1)
	assert.Equal(t, "d", active[0].Key)
}
