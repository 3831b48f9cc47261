package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryEntry_Decode(t *testing.T) {
	var entries []HistoryEntry
	err := json.Unmarshal([]byte(`[
		{"id": 42, "predictedClass": "glass", "confidence": 0.93, "imageName": "jar.png",
		 "createdAt": "2025-03-14T09:26:53.589793", "scores": [{"className": "glass", "score": 0.93}]},
		{"id": "b7", "predictedClass": "metal", "confidence": 0.5, "imageName": "can.jpg",
		 "createdAt": "2025-03-15T10:00:00Z"}
	]`), &entries)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, EntryID("42"), entries[0].ID)
	assert.Equal(t, 2025, entries[0].CreatedAt.Year())
	assert.Equal(t, time.March, entries[0].CreatedAt.Month())
	assert.Equal(t, 9, entries[0].CreatedAt.Hour())
	require.Len(t, entries[0].Scores, 1)
	assert.Equal(t, "glass", entries[0].Scores[0].ClassName)

	assert.Equal(t, EntryID("b7"), entries[1].ID)
	assert.Equal(t, 15, entries[1].CreatedAt.UTC().Day())
}

func TestEntryID_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(EntryID("17"))
	require.NoError(t, err)
	assert.Equal(t, `17`, string(data))

	data, err = json.Marshal(EntryID("abc"))
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(data))
}

func TestTimestamp_Invalid(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))

	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
}

func TestDate_Decode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "calendar date", input: `"2025-01-31"`, want: "2025-01-31"},
		{name: "full timestamp", input: `"2025-01-31T00:00:00"`, want: "2025-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.want, d.Format("2006-01-02"))
		})
	}

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"31/01/2025"`), &d))
}

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		input   string
		want    Timeframe
		wantErr bool
	}{
		{input: "", want: TimeframeAll},
		{input: "week", want: TimeframeWeek},
		{input: "MONTH", want: TimeframeMonth},
		{input: " all ", want: TimeframeAll},
		{input: "year", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeframe(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeframe_LabelAndDaily(t *testing.T) {
	assert.Equal(t, "Last 7 Days", TimeframeWeek.Label())
	assert.Equal(t, "Last 30 Days", TimeframeMonth.Label())
	assert.Equal(t, "All Time", TimeframeAll.Label())
	assert.True(t, TimeframeWeek.Daily())
	assert.True(t, TimeframeMonth.Daily())
	assert.False(t, TimeframeAll.Daily())
}

func TestStatisticsSnapshot_IsEmpty(t *testing.T) {
	assert.True(t, StatisticsSnapshot{}.IsEmpty())
	assert.True(t, StatisticsSnapshot{TotalClassifications: 3}.IsEmpty())
	assert.False(t, StatisticsSnapshot{
		TotalClassifications: 1,
		Distribution:         []DistributionEntry{{Name: "paper", Count: 1}},
	}.IsEmpty())
}
