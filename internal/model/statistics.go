package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/sortbin/internal/common"
)

// Timeframe selects the window statistics are aggregated over.
type Timeframe string

// Supported timeframes.
const (
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeAll   Timeframe = "all"
)

// DefaultTimeframe is used when no selector has been chosen.
const DefaultTimeframe = TimeframeAll

// Timeframes lists the selectors in display order.
func Timeframes() []Timeframe {
	return []Timeframe{TimeframeWeek, TimeframeMonth, TimeframeAll}
}

// ParseTimeframe validates a selector. An empty string yields the default.
func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(strings.ToLower(strings.TrimSpace(s))); tf {
	case "":
		return DefaultTimeframe, nil
	case TimeframeWeek, TimeframeMonth, TimeframeAll:
		return tf, nil
	default:
		return "", fmt.Errorf("%w %q (want week, month or all)", common.ErrInvalidTimeframe, s)
	}
}

// Label returns the human readable name of the window.
func (t Timeframe) Label() string {
	switch t {
	case TimeframeWeek:
		return "Last 7 Days"
	case TimeframeMonth:
		return "Last 30 Days"
	default:
		return "All Time"
	}
}

// Daily reports whether trend points for this window are day buckets.
func (t Timeframe) Daily() bool {
	return t == TimeframeWeek || t == TimeframeMonth
}

// DistributionEntry is the classification count for one category.
type DistributionEntry struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// TrendEntry is the classification count for one date bucket.
type TrendEntry struct {
	Date  Date `json:"date" yaml:"date"`
	Count int  `json:"count" yaml:"count"`
}

// StatisticsSnapshot is an aggregate computed by the statistics service.
type StatisticsSnapshot struct {
	StartDate            *Timestamp          `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate              *Timestamp          `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Timeframe            Timeframe           `json:"timeframe,omitempty" yaml:"timeframe,omitempty"`
	Distribution         []DistributionEntry `json:"distribution" yaml:"distribution"`
	DailyTrend           []TrendEntry        `json:"dailyTrend,omitempty" yaml:"dailyTrend,omitempty"`
	TotalClassifications int                 `json:"totalClassifications" yaml:"totalClassifications"`
}

// IsEmpty reports whether there is nothing to chart.
func (s StatisticsSnapshot) IsEmpty() bool {
	return s.TotalClassifications == 0 || len(s.Distribution) == 0
}
