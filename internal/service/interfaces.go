// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/sortbin/internal/model"
)

// Classifier submits images to the remote classification service.
type Classifier interface {
	Classify(ctx context.Context, image model.Image) (model.ClassificationResult, error)
}

// HistoryStore is the remote history persistence service. Entries are
// created server-side as a side effect of a successful classification.
type HistoryStore interface {
	ListHistory(ctx context.Context) ([]model.HistoryEntry, error)
	DeleteHistoryEntry(ctx context.Context, id model.EntryID) error
	ClearHistory(ctx context.Context) error
}

// StatisticsSource returns precomputed aggregates for a timeframe.
type StatisticsSource interface {
	FetchStatistics(ctx context.Context, timeframe model.Timeframe) (model.StatisticsSnapshot, error)
}

// ReferenceSource serves the static environmental-impact catalog.
type ReferenceSource interface {
	FetchReferenceCatalog(ctx context.Context) ([]model.ReferenceMaterial, error)
	FetchReferenceMaterial(ctx context.Context, material string) (model.ReferenceMaterial, error)
}

// Gateway bundles every remote capability the client consumes.
type Gateway interface {
	Classifier
	HistoryStore
	StatisticsSource
	ReferenceSource
	Health(ctx context.Context) error
}

// ResultSink receives the result of a successful classification.
type ResultSink interface {
	SetResult(result model.ClassificationResult)
}
