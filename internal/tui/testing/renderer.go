// Package testing provides test utilities for TUI components.
package testing

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultMaxSteps bounds how many messages a single Send may process.
const defaultMaxSteps = 1000

// Driver runs a Bubble Tea model without a terminal. Commands are executed
// synchronously and their messages fed back until the queue drains, so the
// model under test must not return commands that block on timers.
type Driver struct {
	model tea.Model

	// Output contains the last rendered view.
	Output string

	// Messages contains every message delivered to Update, in order.
	Messages []tea.Msg

	// UpdateCount tracks how many times Update was called.
	UpdateCount int

	maxSteps int
	quit     bool
}

// NewDriver wraps model and processes its Init command.
func NewDriver(model tea.Model) *Driver {
	d := &Driver{model: model, maxSteps: defaultMaxSteps}
	d.run(model.Init())
	return d
}

// Send delivers msgs one after another, draining commands after each.
func (d *Driver) Send(msgs ...tea.Msg) *Driver {
	for _, msg := range msgs {
		d.deliver([]tea.Msg{msg})
	}
	return d
}

// Type sends text one rune at a time.
func (d *Driver) Type(text string) *Driver {
	for _, r := range text {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return d
}

// Model returns the current model.
func (d *Driver) Model() tea.Model {
	return d.model
}

// View returns the current view without ANSI escapes.
func (d *Driver) View() string {
	return StripANSI(d.Output)
}

// Quit reports whether the model asked the program to exit.
func (d *Driver) Quit() bool {
	return d.quit
}

// Lines returns the stripped output split by newlines.
func (d *Driver) Lines() []string {
	return strings.Split(d.View(), "\n")
}

func (d *Driver) run(cmd tea.Cmd) {
	if cmd == nil {
		d.Output = d.model.View()
		return
	}
	d.deliver(d.exec(cmd))
}

func (d *Driver) deliver(queue []tea.Msg) {
	for steps := 0; len(queue) > 0 && steps < d.maxSteps; steps++ {
		msg := queue[0]
		queue = queue[1:]

		switch msg := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			for _, cmd := range msg {
				queue = append(queue, d.exec(cmd)...)
			}
			continue
		case tea.QuitMsg:
			d.quit = true
			continue
		}

		d.Messages = append(d.Messages, msg)
		d.UpdateCount++

		var cmd tea.Cmd
		d.model, cmd = d.model.Update(msg)
		queue = append(queue, d.exec(cmd)...)
	}
	d.Output = d.model.View()
}

func (d *Driver) exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
