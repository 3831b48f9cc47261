package cli

import (
	"bytes"
	"testing"

	"github.com/Veraticus/sortbin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{input: "", expected: FormatTable},
		{input: "table", expected: FormatTable},
		{input: "JSON", expected: FormatJSON},
		{input: " yaml ", expected: FormatYAML},
		{input: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEncode(t *testing.T) {
	result := model.ClassificationResult{
		PredictedClass: "plastic",
		Confidence:     0.7,
		AllScores: model.Scores{
			{Class: "plastic", Probability: 0.7},
			{Class: "glass", Probability: 0.3},
		},
	}

	t.Run("json keeps score order", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatJSON, result))
		assert.Contains(t, buf.String(), `"predictedClass": "plastic"`)
		assert.Contains(t, buf.String(), `"allScores": {`)
		assert.Less(t, bytes.Index(buf.Bytes(), []byte(`"plastic":`)), bytes.Index(buf.Bytes(), []byte(`"glass":`)))
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatYAML, result))
		assert.Contains(t, buf.String(), "predictedClass: plastic")
		assert.Contains(t, buf.String(), "- class: plastic")
	})

	t.Run("table is not an encoding", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, Encode(&buf, FormatTable, result))
	})
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"Material", "Count"},
		[][]string{{"plastic", "3"}, {"glass", "1"}},
	)

	assert.Contains(t, out, "Material")
	assert.Contains(t, out, "plastic")
	assert.Contains(t, out, "glass")
	assert.Contains(t, out, "╭")
}
