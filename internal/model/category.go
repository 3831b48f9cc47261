// Package model defines the core domain models used throughout the application.
package model

import "strings"

// Category is a material class the remote classifier can predict.
type Category string

// Categories known to the classification service.
const (
	CategoryCardboard Category = "cardboard"
	CategoryGlass     Category = "glass"
	CategoryMetal     Category = "metal"
	CategoryPaper     Category = "paper"
	CategoryPlastic   Category = "plastic"
)

// FallbackColour is used for categories missing from the colour table.
const FallbackColour = "#8884d8"

// KnownCategories lists the categories in display order.
var KnownCategories = []Category{
	CategoryCardboard,
	CategoryGlass,
	CategoryMetal,
	CategoryPaper,
	CategoryPlastic,
}

var categoryColours = map[Category]string{
	CategoryCardboard: "#FF8042",
	CategoryGlass:     "#00C49F",
	CategoryMetal:     "#FFBB28",
	CategoryPaper:     "#0088FE",
	CategoryPlastic:   "#FF6384",
}

var categoryIcons = map[Category]string{
	CategoryCardboard: "📦",
	CategoryGlass:     "🥤",
	CategoryMetal:     "🔩",
	CategoryPaper:     "📄",
	CategoryPlastic:   "♻️",
}

// ParseCategory normalizes a raw class name coming from the service.
func ParseCategory(name string) Category {
	return Category(strings.ToLower(strings.TrimSpace(name)))
}

// IsKnown reports whether the category has an entry in the colour table.
func (c Category) IsKnown() bool {
	_, ok := categoryColours[c]
	return ok
}

// Colour returns the chart colour for the category.
func (c Category) Colour() string {
	if colour, ok := categoryColours[c]; ok {
		return colour
	}
	return FallbackColour
}

// Icon returns the emoji used next to the category name.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return "🗑️"
}

// ColourFor looks up the colour for a raw class name.
func ColourFor(name string) string {
	return ParseCategory(name).Colour()
}
