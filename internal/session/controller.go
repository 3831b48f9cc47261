// Package session holds the state shared across views: the current
// classification result and the active view.
package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Veraticus/sortbin/internal/model"
)

// View identifies one of the top-level screens.
type View int

// Views in navigation order.
const (
	ViewHome View = iota
	ViewHistory
	ViewStatistics
	ViewReference
)

// Views lists every view in navigation order.
func Views() []View {
	return []View{ViewHome, ViewHistory, ViewStatistics, ViewReference}
}

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewHistory:
		return "history"
	case ViewStatistics:
		return "statistics"
	case ViewReference:
		return "reference"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// Title returns the tab label.
func (v View) Title() string {
	switch v {
	case ViewHome:
		return "Classify"
	case ViewHistory:
		return "History"
	case ViewStatistics:
		return "Statistics"
	case ViewReference:
		return "Environmental Impact"
	default:
		return v.String()
	}
}

// ParseView parses a view name.
func ParseView(s string) (View, error) {
	for _, v := range Views() {
		if strings.EqualFold(strings.TrimSpace(s), v.String()) {
			return v, nil
		}
	}
	return ViewHome, fmt.Errorf("unknown view %q", s)
}

// Controller is the single owner of session state. It is safe for
// concurrent use and satisfies service.ResultSink.
type Controller struct {
	result     *model.ClassificationResult
	onNavigate func(from, to View)
	view       View
	mu         sync.Mutex
}

// Option configures a Controller.
type Option func(*Controller)

// WithOnNavigate registers a hook called after the active view changes.
func WithOnNavigate(fn func(from, to View)) Option {
	return func(c *Controller) {
		c.onNavigate = fn
	}
}

// WithInitialView starts the session on a view other than home.
func WithInitialView(v View) Option {
	return func(c *Controller) {
		c.view = v
	}
}

// NewController creates a session on the home view with no result.
func NewController(opts ...Option) *Controller {
	c := &Controller{view: ViewHome}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result returns the last classification result, if any.
func (c *Controller) Result() (model.ClassificationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.result == nil {
		return model.ClassificationResult{}, false
	}
	return *c.result, true
}

// SetResult replaces the current result.
func (c *Controller) SetResult(result model.ClassificationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = &result
}

// View returns the active view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Navigate activates v. The held result is never cleared. It reports
// whether the view changed.
func (c *Controller) Navigate(v View) bool {
	c.mu.Lock()
	from := c.view
	if v < ViewHome || v > ViewReference || v == from {
		c.mu.Unlock()
		return false
	}
	c.view = v
	hook := c.onNavigate
	c.mu.Unlock()

	if hook != nil {
		hook(from, v)
	}
	return true
}

// Next activates the following view, wrapping around.
func (c *Controller) Next() View {
	next := (c.View() + 1) % View(len(Views()))
	c.Navigate(next)
	return next
}

// Prev activates the preceding view, wrapping around.
func (c *Controller) Prev() View {
	n := View(len(Views()))
	prev := (c.View() + n - 1) % n
	c.Navigate(prev)
	return prev
}
