package viewmodel

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/sortbin/internal/model"
)

// ReferenceCard is one catalog entry ready for display.
type ReferenceCard struct {
	CategoryView
	ID                model.EntryID
	DecompositionTime string
	RecyclingRateText string
	CO2Text           string
	FunFact           string
	Tips              string
	Selected          bool
}

// NewReferenceCards converts the catalog and marks the selected card.
func NewReferenceCards(materials []model.ReferenceMaterial, selected model.EntryID) []ReferenceCard {
	cards := make([]ReferenceCard, 0, len(materials))
	for _, m := range materials {
		cards = append(cards, ReferenceCard{
			CategoryView:      NewCategoryView(m.Material),
			ID:                m.ID,
			DecompositionTime: m.DecompositionTime,
			RecyclingRateText: formatNumber(m.RecyclingRate) + "%",
			CO2Text:           fmt.Sprintf("%s kg CO2 per kg", formatNumber(m.CO2PerKg)),
			FunFact:           SanitizeForDisplay(m.FunFact),
			Tips:              SanitizeForDisplay(m.Tips),
			Selected:          selected != "" && m.ID == selected,
		})
	}
	return cards
}

// formatNumber prints a figure without trailing zeros.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
