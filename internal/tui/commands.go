package tui

import (
	"context"

	"github.com/Veraticus/sortbin/internal/history"
	"github.com/Veraticus/sortbin/internal/reference"
	"github.com/Veraticus/sortbin/internal/statistics"
	"github.com/Veraticus/sortbin/internal/upload"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) requestContext() (context.Context, context.CancelFunc) {
	if m.config.RequestTimeout <= 0 {
		return context.WithCancel(m.ctx)
	}
	return context.WithTimeout(m.ctx, m.config.RequestTimeout)
}

// classify submits the selected image.
func (m Model) classify(req upload.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		result, err := m.gateway.Classify(ctx, req.Image)
		return classifiedMsg{req: req, result: result, err: err}
	}
}

// loadHistory fetches the classification history.
func (m Model) loadHistory(req history.RefreshRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		entries, err := m.gateway.ListHistory(ctx)
		return historyLoadedMsg{req: req, entries: entries, err: err}
	}
}

// mutateHistory applies a confirmed delete or clear.
func (m Model) mutateHistory(mut history.Mutation) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		return historyMutatedMsg{mut: mut, err: mut.Apply(ctx, m.gateway)}
	}
}

// loadStats fetches aggregates for the requested timeframe.
func (m Model) loadStats(req statistics.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		snapshot, err := m.gateway.FetchStatistics(ctx, req.Timeframe)
		return statsLoadedMsg{req: req, snapshot: snapshot, err: err}
	}
}

// loadReference fetches the environmental-impact catalog.
func (m Model) loadReference(req reference.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		materials, err := m.gateway.FetchReferenceCatalog(ctx)
		return referenceLoadedMsg{req: req, materials: materials, err: err}
	}
}

// checkHealth probes the service once at startup.
func (m Model) checkHealth() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		return healthMsg{err: m.gateway.Health(ctx)}
	}
}
