package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScores_UnmarshalJSON_PreservesOrder(t *testing.T) {
	var result ClassificationResult
	err := json.Unmarshal([]byte(`{
		"predictedClass": "plastic",
		"confidence": 0.7,
		"allScores": {"plastic": 0.7, "paper": 0.2, "glass": 0.1}
	}`), &result)
	require.NoError(t, err)

	assert.Equal(t, "plastic", result.PredictedClass)
	assert.InDelta(t, 0.7, result.Confidence, 1e-9)
	require.Len(t, result.AllScores, 3)
	assert.Equal(t, "plastic", result.AllScores[0].Class)
	assert.Equal(t, "paper", result.AllScores[1].Class)
	assert.Equal(t, "glass", result.AllScores[2].Class)
}

func TestScores_UnmarshalJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "array instead of object", input: `[1,2]`},
		{name: "string value", input: `{"paper":"high"}`},
		{name: "truncated", input: `{"paper":0.1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Scores
			assert.Error(t, json.Unmarshal([]byte(tt.input), &s))
		})
	}
}

func TestScores_NullAndMarshal(t *testing.T) {
	var s Scores
	require.NoError(t, json.Unmarshal([]byte(`null`), &s))
	assert.Nil(t, s)

	s = Scores{{Class: "metal", Probability: 0.5}, {Class: "glass", Probability: 0.25}}
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"metal":0.5,"glass":0.25}`, string(data))
	assert.Equal(t, `{"metal":0.5,"glass":0.25}`, string(data))
}

func TestScores_LookupAndSum(t *testing.T) {
	s := Scores{{Class: "paper", Probability: 0.6}, {Class: "glass", Probability: 0.3}}

	p, ok := s.Lookup("glass")
	assert.True(t, ok)
	assert.InDelta(t, 0.3, p, 1e-9)

	_, ok = s.Lookup("metal")
	assert.False(t, ok)

	assert.InDelta(t, 0.9, s.Sum(), 1e-9)
}

func TestCategory_ColourAndIcon(t *testing.T) {
	assert.Equal(t, "#FF6384", CategoryPlastic.Colour())
	assert.Equal(t, "#0088FE", ColourFor(" Paper "))
	assert.Equal(t, FallbackColour, ColourFor("styrofoam"))
	assert.True(t, CategoryGlass.IsKnown())
	assert.False(t, Category("trash").IsKnown())
	assert.Equal(t, "🗑️", Category("trash").Icon())
	assert.Equal(t, "📦", CategoryCardboard.Icon())
}
