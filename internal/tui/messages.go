package tui

import (
	"github.com/Veraticus/sortbin/internal/history"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/reference"
	"github.com/Veraticus/sortbin/internal/statistics"
	"github.com/Veraticus/sortbin/internal/upload"
)

// Async operation messages. Each carries the request it answers so that
// stale responses can be discarded.
type classifiedMsg struct {
	err    error
	result model.ClassificationResult
	req    upload.Request
}

type historyLoadedMsg struct {
	err     error
	entries []model.HistoryEntry
	req     history.RefreshRequest
}

type historyMutatedMsg struct {
	err error
	mut history.Mutation
}

type statsLoadedMsg struct {
	err      error
	snapshot model.StatisticsSnapshot
	req      statistics.Request
}

type referenceLoadedMsg struct {
	err       error
	materials []model.ReferenceMaterial
	req       reference.Request
}

type healthMsg struct {
	err error
}
