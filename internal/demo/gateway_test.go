package demo

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestGateway(opts ...Option) *Gateway {
	return New(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func TestScore_Deterministic(t *testing.T) {
	a := Score([]byte("same bytes"))
	b := Score([]byte("same bytes"))

	assert.Equal(t, a, b)
	assert.InDelta(t, 1.0, a.AllScores.Sum(), 1e-9)
	assert.Len(t, a.AllScores, len(model.KnownCategories))

	top, ok := a.AllScores.Lookup(a.PredictedClass)
	require.True(t, ok)
	assert.InDelta(t, a.Confidence, top, 1e-12)
	for _, s := range a.AllScores {
		assert.LessOrEqual(t, s.Probability, a.Confidence)
	}
}

func TestGateway_ClassifyRecordsHistory(t *testing.T) {
	g := newTestGateway(WithHistorySize(3))
	ctx := context.Background()

	result, err := g.Classify(ctx, model.Image{Name: "can.png", ContentType: "image/png", Data: []byte{1, 2, 3}})
	require.NoError(t, err)

	history, err := g.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "can.png", history[0].ImageName)
	assert.Equal(t, result.PredictedClass, history[0].PredictedClass)
	assert.Equal(t, model.EntryID("4"), history[0].ID)
	assert.Len(t, history[0].Scores, len(model.KnownCategories))

	_, err = g.Classify(ctx, model.Image{Name: "notes.txt", ContentType: "text/plain", Data: []byte("x")})
	assert.True(t, common.IsRemote(err))
}

func TestGateway_HistoryMutations(t *testing.T) {
	g := newTestGateway(WithHistorySize(5))
	ctx := context.Background()

	history, err := g.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 5)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].CreatedAt.After(history[i-1].CreatedAt.Time), "newest first")
	}

	require.NoError(t, g.DeleteHistoryEntry(ctx, history[2].ID))
	assert.ErrorIs(t, g.DeleteHistoryEntry(ctx, history[2].ID), common.ErrNotFound)

	history, err = g.ListHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 4)

	require.NoError(t, g.ClearHistory(ctx))
	history, err = g.ListHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	stats, err := g.FetchStatistics(ctx, model.TimeframeAll)
	require.NoError(t, err)
	assert.True(t, stats.IsEmpty())
}

func TestGateway_FetchStatistics(t *testing.T) {
	g := newTestGateway(WithHistorySize(0))
	ctx := context.Background()

	at := func(d time.Duration) func() time.Time { return func() time.Time { return fixedNow.Add(-d) } }
	for _, tc := range []struct {
		age  time.Duration
		data []byte
	}{
		{age: time.Hour, data: []byte("a")},
		{age: 3 * 24 * time.Hour, data: []byte("b")},
		{age: 20 * 24 * time.Hour, data: []byte("c")},
		{age: 90 * 24 * time.Hour, data: []byte("d")},
	} {
		g.now = at(tc.age)
		_, err := g.Classify(ctx, model.Image{Name: "x.png", ContentType: "image/png", Data: tc.data})
		require.NoError(t, err)
	}
	g.now = func() time.Time { return fixedNow }

	tests := []struct {
		tf        model.Timeframe
		wantTotal int
		wantDays  int
	}{
		{tf: model.TimeframeWeek, wantTotal: 2, wantDays: 7},
		{tf: model.TimeframeMonth, wantTotal: 3, wantDays: 30},
		{tf: model.TimeframeAll, wantTotal: 4, wantDays: 7},
	}

	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			stats, err := g.FetchStatistics(ctx, tt.tf)
			require.NoError(t, err)

			assert.Equal(t, tt.tf, stats.Timeframe)
			assert.Equal(t, tt.wantTotal, stats.TotalClassifications)
			assert.Len(t, stats.DailyTrend, tt.wantDays)

			sum := 0
			for _, d := range stats.Distribution {
				sum += d.Count
			}
			assert.Equal(t, stats.TotalClassifications, sum)
			assert.Equal(t, fixedNow.Format("2006-01-02"), stats.DailyTrend[len(stats.DailyTrend)-1].Date.Format("2006-01-02"))
		})
	}
}

func TestGateway_Reference(t *testing.T) {
	g := newTestGateway()
	ctx := context.Background()

	catalog, err := g.FetchReferenceCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, 5)

	glass, err := g.FetchReferenceMaterial(ctx, "Glass")
	require.NoError(t, err)
	assert.Equal(t, "1 million years", glass.DecompositionTime)

	_, err = g.FetchReferenceMaterial(ctx, "styrofoam")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGateway_LatencyHonoursContext(t *testing.T) {
	g := newTestGateway(WithLatency(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Health(ctx)
	require.Error(t, err)
	assert.True(t, common.IsCanceled(err))
}

func TestGenerateHistory_Reproducible(t *testing.T) {
	a := generateHistory(7, 20, fixedNow)
	b := generateHistory(7, 20, fixedNow)
	assert.Equal(t, a, b)
	assert.Len(t, a, 20)
}
