// Package history manages the cached history list and its confirmation-gated
// destructive actions.
package history

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/service"
)

// User-facing messages.
const (
	MsgLoadFailed   = "Failed to load history"
	MsgDeleteFailed = "Failed to delete history entry"
	MsgClearFailed  = "Failed to clear history"
	MsgEmpty        = "No classifications yet. Upload an image to get started!"
)

// Kind is the destructive action a confirmation guards.
type Kind int

// Destructive actions.
const (
	KindNone Kind = iota
	KindDeleteEntry
	KindClearAll
)

func (k Kind) String() string {
	switch k {
	case KindDeleteEntry:
		return "delete"
	case KindClearAll:
		return "clear"
	default:
		return "none"
	}
}

// Phase is the progress of a confirmation.
type Phase int

// Confirmation phases. Requested moves to Confirmed or Cancelled; both end
// back at None.
const (
	PhaseNone Phase = iota
	PhaseRequested
	PhaseConfirmed
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseRequested:
		return "requested"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Confirmation describes the destructive action awaiting the user.
type Confirmation struct {
	EntryID model.EntryID
	Phase   Phase
	Kind    Kind
}

// Pending reports whether the user still has to answer.
func (c Confirmation) Pending() bool {
	return c.Phase == PhaseRequested
}

// Prompt returns the question to show for a requested confirmation.
func (c Confirmation) Prompt() string {
	switch c.Kind {
	case KindDeleteEntry:
		return fmt.Sprintf("Delete history entry %s?", c.EntryID)
	case KindClearAll:
		return "Clear the entire classification history?"
	default:
		return ""
	}
}

// Mutation is a confirmed destructive action. It can only be obtained from
// Manager.Confirm.
type Mutation struct {
	id   model.EntryID
	kind Kind
	seq  uint64
}

// Kind returns the action the mutation performs.
func (m Mutation) Kind() Kind { return m.kind }

// EntryID returns the targeted entry for a delete.
func (m Mutation) EntryID() model.EntryID { return m.id }

// Apply runs the mutation against store.
func (m Mutation) Apply(ctx context.Context, store service.HistoryStore) error {
	switch m.kind {
	case KindDeleteEntry:
		return store.DeleteHistoryEntry(ctx, m.id)
	case KindClearAll:
		return store.ClearHistory(ctx)
	default:
		return common.ErrNoPendingConfirmation
	}
}

// RefreshRequest identifies one list fetch.
type RefreshRequest struct {
	Seq uint64
}

// Manager holds a view-scoped copy of the remote history.
// It is safe for concurrent use.
type Manager struct {
	loadErr      error
	actionErr    error
	entries      []model.HistoryEntry
	confirmation Confirmation
	refreshSeq   uint64
	mutationSeq  uint64
	mu           sync.Mutex
	loaded       bool
	loading      bool
	mutating     bool
}

// NewManager creates an empty manager. Nothing is fetched until BeginRefresh.
func NewManager() *Manager {
	return &Manager{}
}

// Entries returns the held list in the order the service returned it.
func (m *Manager) Entries() []model.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.HistoryEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of held entries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Loaded reports whether at least one refresh succeeded.
func (m *Manager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// Loading reports whether a refresh is outstanding.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Empty reports whether the zero-state should be shown.
func (m *Manager) Empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded && m.loadErr == nil && len(m.entries) == 0
}

// Err returns the error to display. A failed action takes precedence over a
// failed load.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.actionErr != nil {
		return m.actionErr
	}
	return m.loadErr
}

// Confirmation returns the current confirmation state.
func (m *Manager) Confirmation() Confirmation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.confirmation
}

// Mutating reports whether a confirmed action is being applied.
func (m *Manager) Mutating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutating
}

// BeginRefresh starts a list fetch. A newer request supersedes older ones.
func (m *Manager) BeginRefresh() RefreshRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.beginRefreshLocked()
}

func (m *Manager) beginRefreshLocked() RefreshRequest {
	m.refreshSeq++
	m.loading = true
	return RefreshRequest{Seq: m.refreshSeq}
}

// CompleteRefresh records the outcome of req. It returns false when a newer
// refresh has been started and the outcome was discarded.
func (m *Manager) CompleteRefresh(req RefreshRequest, entries []model.HistoryEntry, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if req.Seq != m.refreshSeq {
		common.LogDebug("Discarding stale history response", common.Fields{"seq": req.Seq, "current": m.refreshSeq})
		return false
	}
	m.loading = false

	if err != nil {
		m.loadErr = common.NewUserError(MsgLoadFailed, err)
		if !m.loaded {
			m.entries = []model.HistoryEntry{}
		}
		common.LogError(err, "History refresh failed", common.Fields{"kept_entries": len(m.entries)})
		return true
	}

	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	m.entries = entries
	m.loaded = true
	m.loadErr = nil
	return true
}

// RequestDelete asks for confirmation before deleting id. The list is not
// touched.
func (m *Manager) RequestDelete(id model.EntryID) error {
	if id == "" {
		return common.NewValidationError("id", nil, "history entry id is required")
	}
	return m.request(Confirmation{Phase: PhaseRequested, Kind: KindDeleteEntry, EntryID: id})
}

// RequestClearAll asks for confirmation before clearing the whole history.
func (m *Manager) RequestClearAll() error {
	return m.request(Confirmation{Phase: PhaseRequested, Kind: KindClearAll})
}

func (m *Manager) request(c Confirmation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mutating {
		return common.ErrMutationInFlight
	}
	m.confirmation = c
	m.actionErr = nil
	return nil
}

// Cancel drops a pending confirmation without any network call. It returns
// the cancelled confirmation.
func (m *Manager) Cancel() (Confirmation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.confirmation.Pending() {
		return Confirmation{}, false
	}
	cancelled := m.confirmation
	cancelled.Phase = PhaseCancelled
	m.confirmation = Confirmation{}
	return cancelled, true
}

// Confirm accepts the pending confirmation and returns the mutation to apply.
func (m *Manager) Confirm() (Mutation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mutating {
		return Mutation{}, common.ErrMutationInFlight
	}
	if !m.confirmation.Pending() {
		return Mutation{}, common.ErrNoPendingConfirmation
	}

	m.confirmation.Phase = PhaseConfirmed
	m.mutating = true
	m.mutationSeq++
	return Mutation{kind: m.confirmation.Kind, id: m.confirmation.EntryID, seq: m.mutationSeq}, nil
}

// CompleteMutation clears the confirmation whatever the outcome and starts
// the refresh that must follow every mutation.
func (m *Manager) CompleteMutation(mut Mutation, err error) RefreshRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mut.seq == m.mutationSeq {
		m.mutating = false
		m.confirmation = Confirmation{}
	}

	if err != nil {
		msg := MsgDeleteFailed
		if mut.kind == KindClearAll {
			msg = MsgClearFailed
		}
		m.actionErr = common.NewUserError(msg, err)
		common.LogError(err, "History change failed", common.Fields{"action": mut.kind, "id": mut.id})
	} else {
		m.actionErr = nil
		common.LogInfo("History changed", common.Fields{"action": mut.kind, "id": mut.id})
	}

	return m.beginRefreshLocked()
}

// Refresh fetches the list synchronously.
func (m *Manager) Refresh(ctx context.Context, store service.HistoryStore) error {
	req := m.BeginRefresh()
	entries, err := store.ListHistory(ctx)
	m.CompleteRefresh(req, entries, err)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	return nil
}

// ConfirmAndApply confirms the pending action, applies it and refreshes.
// The mutation error wins over a refresh error.
func (m *Manager) ConfirmAndApply(ctx context.Context, store service.HistoryStore) error {
	mut, err := m.Confirm()
	if err != nil {
		return err
	}

	applyErr := mut.Apply(ctx, store)
	req := m.CompleteMutation(mut, applyErr)

	entries, refreshErr := store.ListHistory(ctx)
	m.CompleteRefresh(req, entries, refreshErr)

	if applyErr != nil {
		return fmt.Errorf("failed to %s history: %w", mut.kind, applyErr)
	}
	if refreshErr != nil {
		return fmt.Errorf("failed to list history: %w", refreshErr)
	}
	return nil
}
