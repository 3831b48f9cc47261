package viewmodel

import "github.com/Veraticus/sortbin/internal/model"

// HistoryRow is one history entry ready for display.
type HistoryRow struct {
	CategoryView
	ID             model.EntryID
	ImageName      string
	ConfidenceText string
	CreatedText    string
	Confidence     float64
}

// NewHistoryRows converts entries without reordering them.
func NewHistoryRows(entries []model.HistoryEntry) []HistoryRow {
	rows := make([]HistoryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, HistoryRow{
			CategoryView:   NewCategoryView(e.PredictedClass),
			ID:             e.ID,
			ImageName:      SanitizeForDisplay(e.ImageName),
			Confidence:     e.Confidence,
			ConfidenceText: FormatPercent(e.Confidence),
			CreatedText:    FormatTimestamp(e.CreatedAt.Time),
		})
	}
	return rows
}
