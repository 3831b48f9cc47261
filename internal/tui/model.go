package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/history"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/reference"
	"github.com/Veraticus/sortbin/internal/service"
	"github.com/Veraticus/sortbin/internal/session"
	"github.com/Veraticus/sortbin/internal/statistics"
	"github.com/Veraticus/sortbin/internal/tui/components"
	"github.com/Veraticus/sortbin/internal/tui/themes"
	"github.com/Veraticus/sortbin/internal/tui/viewmodel"
	"github.com/Veraticus/sortbin/internal/upload"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the main TUI state. The workflow objects are shared pointers
// and carry their own locking; the Bubble Tea loop only drives them.
type Model struct {
	ctx            context.Context
	theme          themes.Theme
	gateway        service.Gateway
	healthErr      error
	session        *session.Controller
	workflow       *upload.Workflow
	history        *history.Manager
	stats          *statistics.Aggregator
	catalog        *reference.Catalog
	help           help.Model
	keymap         KeyMap
	uploadPanel    components.UploadPanelModel
	historyPanel   components.HistoryPanelModel
	statsPanel     components.StatsPanelModel
	referencePanel components.ReferencePanelModel
	referenceFocus string
	config         Config
	width          int
	height         int
	showHelp       bool
	healthChecked  bool
	quitting       bool
}

// New creates the TUI model. A gateway is required.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Gateway == nil {
		return Model{}, fmt.Errorf("gateway is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctrl := session.NewController(
		session.WithInitialView(cfg.InitialView),
		session.WithOnNavigate(func(from, to session.View) {
			slog.Debug("View changed", "from", from, "to", to)
		}),
	)

	m := Model{
		ctx:            ctx,
		theme:          cfg.Theme,
		gateway:        cfg.Gateway,
		session:        ctrl,
		workflow:       upload.NewWorkflow(ctrl, upload.WithMaxBytes(cfg.MaxBytes)),
		history:        history.NewManager(),
		stats:          statistics.NewAggregator(),
		catalog:        reference.NewCatalog(),
		help:           help.New(),
		keymap:         DefaultKeyMap(),
		uploadPanel:    components.NewUploadPanelModel(cfg.Theme, cfg.EnableAnimations),
		historyPanel:   components.NewHistoryPanelModel(cfg.Theme),
		statsPanel:     components.NewStatsPanelModel(cfg.Theme),
		referencePanel: components.NewReferencePanelModel(cfg.Theme),
		config:         cfg,
		width:          cfg.Width,
		height:         cfg.Height,
	}
	m.help.ShowAll = true
	m.handleResize()

	return m, nil
}

// Session returns the session controller.
func (m Model) Session() *session.Controller {
	return m.session
}

// Workflow returns the upload workflow.
func (m Model) Workflow() *upload.Workflow {
	return m.workflow
}

// History returns the history manager.
func (m Model) History() *history.Manager {
	return m.history
}

// Statistics returns the statistics aggregator.
func (m Model) Statistics() *statistics.Aggregator {
	return m.stats
}

// Catalog returns the reference catalog.
func (m Model) Catalog() *reference.Catalog {
	return m.catalog
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.uploadPanel.Init(),
		m.checkHealth(),
		m.activate(m.session.View()),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case components.FileDroppedMsg:
		if err := m.workflow.Drop(msg.Path); err != nil {
			slog.Debug("Dropped file rejected", "path", msg.Path, "error", err)
		}
		if m.session.View() != session.ViewHome {
			return m, m.navigate(session.ViewHome)
		}
		return m, nil

	case components.PathEnteredMsg:
		if msg.Path == "" {
			return m, m.submit()
		}
		if err := m.workflow.SelectPath(msg.Path); err != nil {
			slog.Debug("Selected path rejected", "path", msg.Path, "error", err)
		}
		return m, nil

	case classifiedMsg:
		m.workflow.CompleteSubmit(msg.req, msg.result, msg.err)
		return m, nil

	case historyLoadedMsg:
		if m.history.CompleteRefresh(msg.req, msg.entries, msg.err) {
			m.syncHistory()
		}
		return m, nil

	case historyMutatedMsg:
		req := m.history.CompleteMutation(msg.mut, msg.err)
		return m, m.loadHistory(req)

	case statsLoadedMsg:
		m.stats.Complete(msg.req, msg.snapshot, msg.err)
		return m, nil

	case referenceLoadedMsg:
		if m.catalog.Complete(msg.req, msg.materials, msg.err) {
			m.syncReference()
			if m.referenceFocus != "" && m.referencePanel.Focus(m.referenceFocus) {
				m.referenceFocus = ""
			}
		}
		return m, nil

	case healthMsg:
		m.healthErr = msg.err
		m.healthChecked = true
		if msg.err != nil {
			slog.Warn("Classification service unreachable", "error", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.uploadPanel, cmd = m.uploadPanel.Update(msg)
		if m.workflow.Phase() != upload.StateSubmitting {
			return m, nil
		}
		return m, cmd
	}

	// Cursor blink and anything else the text input understands.
	var cmd tea.Cmd
	m.uploadPanel, cmd = m.uploadPanel.Update(msg)
	return m, cmd
}

// handleKey routes a key press. Global keys win, then pending confirmations,
// then the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return m.quit()
	}

	// A paste is how a terminal delivers a dropped file, whatever the view.
	if msg.Paste {
		var cmd tea.Cmd
		m.uploadPanel, cmd = m.uploadPanel.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		if key.Matches(msg, m.keymap.Help) || msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	view := m.session.View()

	if view == session.ViewHistory && m.history.Confirmation().Pending() {
		switch {
		case key.Matches(msg, m.keymap.Confirm):
			mut, err := m.history.Confirm()
			if err != nil {
				return m, nil
			}
			return m, m.mutateHistory(mut)
		case key.Matches(msg, m.keymap.Cancel):
			m.history.Cancel()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.NextView):
		return m, m.step(m.session.Next)
	case key.Matches(msg, m.keymap.PrevView):
		return m, m.step(m.session.Prev)
	}

	// On the home view letters belong to the path input unless it is empty.
	if view == session.ViewHome {
		return m.handleHomeKey(msg)
	}

	if v, ok := m.viewForKey(msg); ok {
		return m, m.navigate(v)
	}

	switch {
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()
	case key.Matches(msg, m.keymap.Refresh):
		return m, m.refresh(view)
	}

	switch view {
	case session.ViewHistory:
		return m.handleHistoryKey(msg)
	case session.ViewStatistics:
		return m.handleStatsKey(msg)
	case session.ViewReference:
		return m.handleReferenceKey(msg)
	}
	return m, nil
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keymap.Reset) && m.uploadPanel.Value() == "":
		m.workflow.Reset()
		return m, nil
	}

	if m.uploadPanel.Value() == "" {
		if v, ok := m.viewForKey(msg); ok {
			return m, m.navigate(v)
		}
		if key.Matches(msg, m.keymap.Help) {
			m.showHelp = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.uploadPanel, cmd = m.uploadPanel.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Delete):
		row, ok := m.historyPanel.Selected()
		if !ok {
			return m, nil
		}
		if err := m.history.RequestDelete(row.ID); err != nil {
			slog.Debug("Delete not requested", "id", row.ID, "error", err)
		}
		return m, nil
	case key.Matches(msg, m.keymap.ClearAll):
		if m.history.Len() == 0 {
			return m, nil
		}
		if err := m.history.RequestClearAll(); err != nil {
			slog.Debug("Clear not requested", "error", err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.historyPanel, cmd = m.historyPanel.Update(msg)
	return m, cmd
}

func (m Model) handleStatsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var tf model.Timeframe
	switch {
	case key.Matches(msg, m.keymap.Week):
		tf = model.TimeframeWeek
	case key.Matches(msg, m.keymap.Month):
		tf = model.TimeframeMonth
	case key.Matches(msg, m.keymap.All):
		tf = model.TimeframeAll
	default:
		return m, nil
	}

	req, changed := m.stats.SetTimeframe(tf)
	if !changed {
		return m, nil
	}
	return m, m.loadStats(req)
}

func (m Model) handleReferenceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Select) {
		if id, ok := m.referencePanel.Current(); ok {
			m.catalog.Toggle(id)
			m.syncReference()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.referencePanel, cmd = m.referencePanel.Update(msg)
	return m, cmd
}

// handleMouse drives the drop-target highlight and card selection.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	top := m.bodyTop()

	switch m.session.View() {
	case session.ViewHome:
		if msg.Action != tea.MouseActionMotion {
			return m, nil
		}
		height := m.dropZoneHeight()
		inside := msg.Y >= top && msg.Y < top+height
		switch {
		case inside && !m.workflow.Dragging():
			m.workflow.DragEnter()
		case !inside && m.workflow.Dragging():
			m.workflow.DragLeave()
		}

	case session.ViewReference:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		card, ok := m.referencePanel.CardAt(msg.Y - top)
		if !ok {
			return m, nil
		}
		m.catalog.Toggle(card.ID)
		m.syncReference()
		m.referencePanel.Focus(card.Name)
	}
	return m, nil
}

func (m Model) submit() tea.Cmd {
	req, err := m.workflow.BeginSubmit()
	if err != nil {
		slog.Debug("Submit ignored", "error", err)
		return nil
	}
	return tea.Batch(m.classify(req), m.uploadPanel.StartSpinner())
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// navigate switches views. Leaving the history view drops any pending
// confirmation.
func (m *Model) navigate(to session.View) tea.Cmd {
	from := m.session.View()
	if !m.session.Navigate(to) {
		return nil
	}
	return m.entered(from, to)
}

// step moves one view along the tab order.
func (m *Model) step(move func() session.View) tea.Cmd {
	from := m.session.View()
	to := move()
	if to == from {
		return nil
	}
	return m.entered(from, to)
}

func (m *Model) entered(from, to session.View) tea.Cmd {
	if from == session.ViewHistory {
		m.history.Cancel()
	}
	if to == session.ViewReference {
		m.referenceFocus = ""
		if result, ok := m.session.Result(); ok {
			// The catalog may still be loading; the focus is reapplied once it lands.
			m.referenceFocus = result.PredictedClass
			m.referencePanel.Focus(result.PredictedClass)
		}
	}
	return m.activate(to)
}

// activate fetches whatever the view shows. Cards already on screen stay
// visible while a reload is in flight.
func (m *Model) activate(v session.View) tea.Cmd {
	switch v {
	case session.ViewHistory:
		return m.loadHistory(m.history.BeginRefresh())
	case session.ViewStatistics:
		return m.loadStats(m.stats.Begin())
	case session.ViewReference:
		return m.loadReference(m.catalog.Begin())
	default:
		return nil
	}
}

func (m *Model) refresh(v session.View) tea.Cmd {
	switch v {
	case session.ViewHistory:
		if m.history.Mutating() {
			return nil
		}
		return m.loadHistory(m.history.BeginRefresh())
	case session.ViewStatistics:
		return m.loadStats(m.stats.Begin())
	case session.ViewReference:
		return m.loadReference(m.catalog.Begin())
	default:
		return nil
	}
}

func (m Model) viewForKey(msg tea.KeyMsg) (session.View, bool) {
	switch {
	case key.Matches(msg, m.keymap.Home):
		return session.ViewHome, true
	case key.Matches(msg, m.keymap.History):
		return session.ViewHistory, true
	case key.Matches(msg, m.keymap.Stats):
		return session.ViewStatistics, true
	case key.Matches(msg, m.keymap.Reference):
		return session.ViewReference, true
	default:
		return 0, false
	}
}

func (m *Model) syncHistory() {
	m.historyPanel.SetRows(viewmodel.NewHistoryRows(m.history.Entries()))
}

func (m *Model) syncReference() {
	var selected model.EntryID
	if material, ok := m.catalog.Selected(); ok {
		selected = material.ID
	}
	m.referencePanel.SetCards(viewmodel.NewReferenceCards(m.catalog.Materials(), selected))
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	bodyHeight := max(m.height-4, 5)
	m.uploadPanel.Resize(m.width)
	m.historyPanel.Resize(m.width-2, bodyHeight)
	m.statsPanel.Resize(m.width - 2)
	m.referencePanel.Resize(m.width - 2)
	m.help.Width = m.width
}

func errorText(err error) string {
	return common.UserMessage(err)
}
