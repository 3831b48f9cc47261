// Package statistics fetches aggregate usage statistics per timeframe and
// reshapes them for charting.
package statistics

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/service"
)

// MsgLoadFailed is shown when a fetch fails.
const MsgLoadFailed = "Failed to load statistics"

// Request identifies one statistics fetch.
type Request struct {
	Timeframe model.Timeframe
	Seq       uint64
}

// Aggregator holds the timeframe selector and the latest snapshot for it.
// It is safe for concurrent use.
type Aggregator struct {
	err       error
	snapshot  *model.StatisticsSnapshot
	timeframe model.Timeframe
	seq       uint64
	mu        sync.Mutex
	loading   bool
}

// NewAggregator creates an aggregator on the default timeframe.
func NewAggregator() *Aggregator {
	return &Aggregator{timeframe: model.DefaultTimeframe}
}

// Timeframe returns the selected timeframe.
func (a *Aggregator) Timeframe() model.Timeframe {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timeframe
}

// Snapshot returns the latest snapshot, if one has arrived.
func (a *Aggregator) Snapshot() (model.StatisticsSnapshot, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snapshot == nil {
		return model.StatisticsSnapshot{}, false
	}
	return *a.snapshot, true
}

// Err returns the error to display, if any.
func (a *Aggregator) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Loading reports whether a fetch is outstanding.
func (a *Aggregator) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// Begin starts a fetch for the selected timeframe. It supersedes any
// outstanding fetch.
func (a *Aggregator) Begin() Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.beginLocked()
}

func (a *Aggregator) beginLocked() Request {
	a.seq++
	a.loading = true
	return Request{Seq: a.seq, Timeframe: a.timeframe}
}

// SetTimeframe changes the selector and starts the fetch for it. Selecting
// the current timeframe does nothing and returns false.
func (a *Aggregator) SetTimeframe(tf model.Timeframe) (Request, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if tf == "" {
		tf = model.DefaultTimeframe
	}
	if tf == a.timeframe {
		return Request{}, false
	}
	a.timeframe = tf
	return a.beginLocked(), true
}

// Complete records the outcome of req. Responses for anything but the most
// recent request are discarded and Complete returns false.
func (a *Aggregator) Complete(req Request, snapshot model.StatisticsSnapshot, err error) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if req.Seq != a.seq {
		common.LogDebug("Discarding stale statistics response",
			common.Fields{"timeframe": req.Timeframe, "seq": req.Seq, "current": a.seq})
		return false
	}
	a.loading = false

	if err != nil {
		a.err = common.NewUserError(MsgLoadFailed, err)
		common.LogError(err, "Statistics fetch failed", common.Fields{"timeframe": req.Timeframe})
		return true
	}

	if snapshot.Timeframe == "" {
		snapshot.Timeframe = req.Timeframe
	}
	a.snapshot = &snapshot
	a.err = nil
	return true
}

// Fetch loads the selected timeframe synchronously.
func (a *Aggregator) Fetch(ctx context.Context, source service.StatisticsSource) (model.StatisticsSnapshot, error) {
	req := a.Begin()
	snapshot, err := source.FetchStatistics(ctx, req.Timeframe)
	a.Complete(req, snapshot, err)
	if err != nil {
		return model.StatisticsSnapshot{}, fmt.Errorf("failed to fetch %s statistics: %w", req.Timeframe, err)
	}
	if snapshot.Timeframe == "" {
		snapshot.Timeframe = req.Timeframe
	}
	return snapshot, nil
}

// Chart reshapes the latest snapshot. The second return is false until a
// snapshot has arrived.
func (a *Aggregator) Chart() (ChartData, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snapshot == nil {
		return ChartData{}, false
	}
	return Chart(*a.snapshot, a.snapshot.Timeframe), true
}
