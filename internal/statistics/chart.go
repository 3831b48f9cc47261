package statistics

import (
	"fmt"
	"time"

	"github.com/Veraticus/sortbin/internal/model"
)

// MsgEmpty is shown instead of a chart when there is no data.
const MsgEmpty = "No classification data available yet."

// Trend label layouts.
const (
	dayTickLayout    = "02 Jan"
	dayTooltipLayout = "02/01/2006"
	monthLayout      = "Jan 2006"
)

// Slice is one category of the distribution chart.
type Slice struct {
	Name        string
	PercentText string
	Colour      string
	Count       int
	Percent     float64
}

// TrendPoint is one bucket of the trend chart.
type TrendPoint struct {
	Date    time.Time
	Tick    string
	Tooltip string
	Count   int
}

// ChartData is a snapshot shaped for rendering.
type ChartData struct {
	Timeframe model.Timeframe
	Label     string
	Slices    []Slice
	Trend     []TrendPoint
	Total     int
	MaxCount  int
	MaxTrend  int
	Empty     bool
}

// Chart reshapes a snapshot. Distribution entries keep their order. Trend
// points are daily for week and month and folded into months for all.
func Chart(snapshot model.StatisticsSnapshot, tf model.Timeframe) ChartData {
	if tf == "" {
		tf = model.DefaultTimeframe
	}

	data := ChartData{
		Timeframe: tf,
		Label:     tf.Label(),
		Total:     snapshot.TotalClassifications,
	}
	if snapshot.IsEmpty() {
		data.Empty = true
		return data
	}

	data.Slices = make([]Slice, 0, len(snapshot.Distribution))
	for _, entry := range snapshot.Distribution {
		percent := float64(entry.Count) / float64(snapshot.TotalClassifications) * 100
		data.Slices = append(data.Slices, Slice{
			Name:        entry.Name,
			Count:       entry.Count,
			Percent:     percent,
			PercentText: fmt.Sprintf("%.1f%%", percent),
			Colour:      model.ColourFor(entry.Name),
		})
		data.MaxCount = max(data.MaxCount, entry.Count)
	}

	if tf.Daily() {
		data.Trend = dailyTrend(snapshot.DailyTrend)
	} else {
		data.Trend = monthlyTrend(snapshot.DailyTrend)
	}
	for _, p := range data.Trend {
		data.MaxTrend = max(data.MaxTrend, p.Count)
	}

	return data
}

func dailyTrend(entries []model.TrendEntry) []TrendPoint {
	if len(entries) == 0 {
		return nil
	}

	points := make([]TrendPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, TrendPoint{
			Date:    e.Date.Time,
			Count:   e.Count,
			Tick:    e.Date.Format(dayTickLayout),
			Tooltip: e.Date.Format(dayTooltipLayout),
		})
	}
	return points
}

// monthlyTrend sums daily entries into calendar months, in order of first
// appearance.
func monthlyTrend(entries []model.TrendEntry) []TrendPoint {
	if len(entries) == 0 {
		return nil
	}

	var points []TrendPoint
	index := make(map[string]int)
	for _, e := range entries {
		key := e.Date.Format("2006-01")
		if i, ok := index[key]; ok {
			points[i].Count += e.Count
			continue
		}

		month := time.Date(e.Date.Year(), e.Date.Month(), 1, 0, 0, 0, 0, e.Date.Location())
		label := month.Format(monthLayout)
		index[key] = len(points)
		points = append(points, TrendPoint{
			Date:    month,
			Count:   e.Count,
			Tick:    label,
			Tooltip: label,
		})
	}
	return points
}
