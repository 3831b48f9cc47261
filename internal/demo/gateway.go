// Package demo provides an in-memory classification service for offline use
// and tests.
package demo

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/service"
)

// Ensure we implement the interface.
var _ service.Gateway = (*Gateway)(nil)

// Gateway is an in-memory stand-in for the remote service. It is safe for
// concurrent use.
type Gateway struct {
	now     func() time.Time
	history []model.HistoryEntry
	catalog []model.ReferenceMaterial
	latency time.Duration
	seed    int64
	nextID  int
	seeded  int
	mu      sync.Mutex
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithSeed makes the generated history reproducible.
func WithSeed(seed int64) Option {
	return func(g *Gateway) {
		g.seed = seed
	}
}

// WithHistorySize sets how many past classifications are generated.
func WithHistorySize(n int) Option {
	return func(g *Gateway) {
		g.seeded = n
	}
}

// WithLatency delays every call to imitate a remote round trip.
func WithLatency(d time.Duration) Option {
	return func(g *Gateway) {
		g.latency = d
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		g.now = now
	}
}

// New creates a gateway with generated history and the reference catalog.
func New(opts ...Option) *Gateway {
	g := &Gateway{
		now:     time.Now,
		seed:    42,
		seeded:  40,
		catalog: Catalog(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.history = generateHistory(g.seed, g.seeded, g.now())
	g.nextID = len(g.history) + 1
	return g
}

// Classify scores the image deterministically from its bytes and records
// the result in the history.
func (g *Gateway) Classify(ctx context.Context, img model.Image) (model.ClassificationResult, error) {
	if err := g.wait(ctx); err != nil {
		return model.ClassificationResult{}, err
	}
	if !strings.HasPrefix(img.ContentType, "image/") {
		return model.ClassificationResult{}, &common.ServiceError{
			Op:         "classify",
			StatusCode: http.StatusBadRequest,
			Body:       "Please upload an image file",
		}
	}

	result := Score(img.Data)

	g.mu.Lock()
	defer g.mu.Unlock()

	entry := model.HistoryEntry{
		ID:             model.EntryID(strconv.Itoa(g.nextID)),
		PredictedClass: result.PredictedClass,
		Confidence:     result.Confidence,
		ImageName:      img.Name,
		CreatedAt:      model.Timestamp{Time: g.now()},
	}
	for _, s := range result.AllScores {
		entry.Scores = append(entry.Scores, model.HistoryScore{ClassName: s.Class, Score: s.Probability})
	}
	g.nextID++
	g.history = append([]model.HistoryEntry{entry}, g.history...)

	return result, nil
}

// ListHistory returns the history newest first.
func (g *Gateway) ListHistory(ctx context.Context) ([]model.HistoryEntry, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]model.HistoryEntry, len(g.history))
	copy(out, g.history)
	return out, nil
}

// DeleteHistoryEntry removes one entry.
func (g *Gateway) DeleteHistoryEntry(ctx context.Context, id model.EntryID) error {
	if err := g.wait(ctx); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for i, e := range g.history {
		if e.ID == id {
			g.history = append(g.history[:i], g.history[i+1:]...)
			return nil
		}
	}
	return &common.ServiceError{Op: "delete history entry", StatusCode: http.StatusNotFound}
}

// ClearHistory removes every entry.
func (g *Gateway) ClearHistory(ctx context.Context) error {
	if err := g.wait(ctx); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.history = nil
	return nil
}

// FetchStatistics aggregates the history over the timeframe.
func (g *Gateway) FetchStatistics(ctx context.Context, tf model.Timeframe) (model.StatisticsSnapshot, error) {
	if err := g.wait(ctx); err != nil {
		return model.StatisticsSnapshot{}, err
	}
	if tf == "" {
		tf = model.DefaultTimeframe
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return aggregate(g.history, tf, g.now()), nil
}

// FetchReferenceCatalog returns the static catalog.
func (g *Gateway) FetchReferenceCatalog(ctx context.Context) ([]model.ReferenceMaterial, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	out := make([]model.ReferenceMaterial, len(g.catalog))
	copy(out, g.catalog)
	return out, nil
}

// FetchReferenceMaterial returns one catalog entry.
func (g *Gateway) FetchReferenceMaterial(ctx context.Context, material string) (model.ReferenceMaterial, error) {
	if err := g.wait(ctx); err != nil {
		return model.ReferenceMaterial{}, err
	}

	for _, m := range g.catalog {
		if strings.EqualFold(m.Material, material) {
			return m, nil
		}
	}
	return model.ReferenceMaterial{}, &common.ServiceError{
		Op:         "fetch reference material",
		StatusCode: http.StatusNotFound,
	}
}

// Health always succeeds unless ctx is done.
func (g *Gateway) Health(ctx context.Context) error {
	return g.wait(ctx)
}

func (g *Gateway) wait(ctx context.Context) error {
	if g.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(g.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return &common.TransportError{Op: "demo", Err: ctx.Err()}
	case <-timer.C:
		return nil
	}
}

// Score derives a normalized score distribution from data. The same bytes
// always produce the same result.
func Score(data []byte) model.ClassificationResult {
	h := fnv.New64a()
	_, _ = h.Write(data)
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	weights := make([]float64, len(model.KnownCategories))
	var total float64
	for i := range weights {
		// Square to favour a clear winner.
		w := rng.Float64() + 0.05
		weights[i] = w * w
		total += weights[i]
	}

	result := model.ClassificationResult{AllScores: make(model.Scores, 0, len(weights))}
	for i, c := range model.KnownCategories {
		p := weights[i] / total
		result.AllScores = append(result.AllScores, model.Score{Class: string(c), Probability: p})
		if p > result.Confidence {
			result.Confidence = p
			result.PredictedClass = string(c)
		}
	}
	return result
}

// generateHistory creates realistic past classifications spread over the
// last 60 days, newest first.
func generateHistory(seed int64, count int, now time.Time) []model.HistoryEntry {
	rng := rand.New(rand.NewSource(seed))

	names := map[model.Category][]string{
		model.CategoryCardboard: {"shipping-box.jpg", "cereal-box.png", "pizza-box.jpg"},
		model.CategoryGlass:     {"wine-bottle.jpg", "jam-jar.png", "beer-bottle.jpg"},
		model.CategoryMetal:     {"soda-can.jpg", "tin-can.png", "foil-tray.jpg"},
		model.CategoryPaper:     {"newspaper.jpg", "receipt.png", "magazine.jpg"},
		model.CategoryPlastic:   {"water-bottle.jpg", "yogurt-cup.png", "shopping-bag.jpg"},
	}

	entries := make([]model.HistoryEntry, 0, count)
	for i := 0; i < count; i++ {
		category := model.KnownCategories[rng.Intn(len(model.KnownCategories))]
		choices := names[category]

		// Denser in the recent past.
		ageMinutes := int(rng.ExpFloat64() * 60 * 24 * 10)
		created := now.Add(-time.Duration(min(ageMinutes, 60*24*60)) * time.Minute).Truncate(time.Second)

		entries = append(entries, model.HistoryEntry{
			ID:             model.EntryID(strconv.Itoa(count - i)),
			PredictedClass: string(category),
			Confidence:     0.55 + rng.Float64()*0.44,
			ImageName:      choices[rng.Intn(len(choices))],
			CreatedAt:      model.Timestamp{Time: created},
		})
	}

	sortNewestFirst(entries)
	return entries
}

func sortNewestFirst(entries []model.HistoryEntry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].CreatedAt.After(entries[j-1].CreatedAt.Time); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

// aggregate computes a snapshot the way the remote service does: counts per
// class inside the window plus a zero-filled daily trend for the last 7 or
// 30 days.
func aggregate(history []model.HistoryEntry, tf model.Timeframe, now time.Time) model.StatisticsSnapshot {
	var start time.Time
	days := 7
	switch tf {
	case model.TimeframeWeek:
		start = now.AddDate(0, 0, -7)
	case model.TimeframeMonth:
		start = now.AddDate(0, 0, -30)
		days = 30
	default:
		start = time.Date(2000, time.January, 1, 0, 0, 0, 0, now.Location())
	}

	counts := make(map[string]int)
	var order []string
	total := 0
	for _, e := range history {
		if e.CreatedAt.Before(start) || e.CreatedAt.After(now) {
			continue
		}
		total++
		if _, ok := counts[e.PredictedClass]; !ok {
			order = append(order, e.PredictedClass)
		}
		counts[e.PredictedClass]++
	}

	snapshot := model.StatisticsSnapshot{
		Timeframe:            tf,
		TotalClassifications: total,
		StartDate:            &model.Timestamp{Time: start},
		EndDate:              &model.Timestamp{Time: now},
		Distribution:         make([]model.DistributionEntry, 0, len(counts)),
	}
	for _, c := range model.KnownCategories {
		if n, ok := counts[string(c)]; ok {
			snapshot.Distribution = append(snapshot.Distribution, model.DistributionEntry{Name: string(c), Count: n})
			delete(counts, string(c))
		}
	}
	for _, name := range order {
		if n, ok := counts[name]; ok {
			snapshot.Distribution = append(snapshot.Distribution, model.DistributionEntry{Name: name, Count: n})
		}
	}

	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		y, m, d := day.Date()
		dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		n := 0
		for _, e := range history {
			if !e.CreatedAt.Before(start) && !e.CreatedAt.Before(dayStart) && e.CreatedAt.Before(dayEnd) {
				n++
			}
		}
		snapshot.DailyTrend = append(snapshot.DailyTrend, model.TrendEntry{
			Date:  model.Date{Time: dayStart},
			Count: n,
		})
	}

	return snapshot
}

// Catalog returns the environmental-impact reference data.
func Catalog() []model.ReferenceMaterial {
	return []model.ReferenceMaterial{
		{
			ID:                "1",
			Material:          "plastic",
			DecompositionTime: "450+ years",
			RecyclingRate:     9,
			CO2PerKg:          6,
			FunFact:           "Only about 9% of all plastic ever made has been recycled.",
			Tips:              "Rinse containers and check the resin code. Keep plastic bags out of the kerbside bin.",
		},
		{
			ID:                "2",
			Material:          "paper",
			DecompositionTime: "2-6 weeks",
			RecyclingRate:     68,
			CO2PerKg:          1.1,
			FunFact:           "Paper fibres can be recycled five to seven times before they become too short.",
			Tips:              "Keep paper dry and free of food. Shredded paper belongs in a paper bag.",
		},
		{
			ID:                "3",
			Material:          "glass",
			DecompositionTime: "1 million years",
			RecyclingRate:     27,
			CO2PerKg:          0.85,
			FunFact:           "Glass can be recycled endlessly without any loss in quality.",
			Tips:              "Remove lids and corks. Window glass and mirrors are not accepted with bottles.",
		},
		{
			ID:                "4",
			Material:          "metal",
			DecompositionTime: "50-200 years",
			RecyclingRate:     50,
			CO2PerKg:          11,
			FunFact:           "Recycling aluminium saves about 95% of the energy needed to make it new.",
			Tips:              "Empty and rinse cans. Clean foil can be balled up and recycled.",
		},
		{
			ID:                "5",
			Material:          "cardboard",
			DecompositionTime: "2 months",
			RecyclingRate:     71,
			CO2PerKg:          0.94,
			FunFact:           "Corrugated cardboard is one of the most recycled packaging materials.",
			Tips:              "Flatten boxes and remove tape. Greasy pizza boxes go in compost instead.",
		},
	}
}

// String describes the gateway for logs.
func (g *Gateway) String() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("demo gateway (%d history entries)", len(g.history))
}
