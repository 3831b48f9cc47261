// Package viewmodel holds pure transformations from domain data to the
// values views render. Nothing here performs I/O.
package viewmodel

import (
	"strings"

	"github.com/Veraticus/sortbin/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// CategoryView is how a category name is presented.
type CategoryView struct {
	Name        string
	DisplayName string
	Icon        string
	Colour      string
	Known       bool
}

// NewCategoryView resolves the presentation of a raw class name. Unknown
// names fall back to the default colour and icon.
func NewCategoryView(name string) CategoryView {
	c := model.ParseCategory(name)
	return CategoryView{
		Name:        name,
		DisplayName: DisplayName(name),
		Icon:        c.Icon(),
		Colour:      c.Colour(),
		Known:       c.IsKnown(),
	}
}

// DisplayName title-cases a class name for display.
func DisplayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown"
	}
	return titleCaser.String(name)
}

// KeyBinding represents a keyboard shortcut.
type KeyBinding struct {
	Key         string
	Description string
	IsActive    bool
}

// ActiveKeyBindings returns only the currently active key bindings.
func ActiveKeyBindings(bindings []KeyBinding) []KeyBinding {
	var active []KeyBinding
	for _, kb := range bindings {
		if kb.IsActive {
			active = append(active, kb)
		}
	}
	return active
}
