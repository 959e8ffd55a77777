package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"meetgrid/core/constants"
	"meetgrid/core/logger"
	"meetgrid/modules/availability/entity"
	evententity "meetgrid/modules/event/entity"
)

// SessionState is the reconciliation lifecycle of the active user's edits.
type SessionState int

const (
	// StateIdle means the local selection matches the last committed copy.
	StateIdle SessionState = iota
	// StateEditing means local edits exist that have not been persisted.
	StateEditing
	// StateSaving means a persistence call is in flight.
	StateSaving
)

// SessionStore is the narrow repository view the session needs. The real
// implementation is the sqlx-backed ResponseRepository; tests supply fakes.
type SessionStore interface {
	Upsert(ctx context.Context, sel *entity.ParticipantSelection) error
	ListByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantSelection, error)
}

// EventSession owns one user's live view of an event: their selection store,
// the committed peer responses, and the derived heatmap. Construct one per
// event view and Close it on navigation away.
//
// Every grid edit recomputes the heatmap synchronously with the local
// selection layered in, then schedules a debounced save. Saves are
// single-flight per session: a debounce firing mid-save queues exactly one
// follow-up save instead of racing a second upsert.
type EventSession struct {
	mu sync.Mutex

	event *evententity.Event
	grid  *evententity.TimeGrid
	store *SelectionStore
	repo  SessionStore

	participantName  string
	participantEmail *string
	timezone         string

	committed []entity.ParticipantSelection
	heatmap   *entity.Heatmap

	// lastSelection/lastMode snapshot the store at its last change, taken
	// on the store's own goroutine, so the timer and save goroutines never
	// touch the store directly.
	lastSelection []entity.Slot
	lastMode      entity.PaintMode

	state      SessionState
	dirty      bool
	saving     bool
	saveQueued bool
	editSeq    uint64

	debounce time.Duration
	timer    *time.Timer

	onHeatmap   func(*entity.Heatmap)
	onSaveError func(error)
}

// SessionOption customizes an EventSession.
type SessionOption func(*EventSession)

// WithDebounce overrides the save debounce interval.
func WithDebounce(d time.Duration) SessionOption {
	return func(s *EventSession) { s.debounce = d }
}

// WithHeatmapListener registers a callback fired after every recompute.
func WithHeatmapListener(fn func(*entity.Heatmap)) SessionOption {
	return func(s *EventSession) { s.onHeatmap = fn }
}

// WithSaveErrorListener registers a callback fired when a save fails. The
// local selection is never rolled back on failure; this is a non-blocking
// indicator only.
func WithSaveErrorListener(fn func(error)) SessionOption {
	return func(s *EventSession) { s.onSaveError = fn }
}

// WithParticipantEmail attaches an optional email to persisted responses.
func WithParticipantEmail(email string) SessionOption {
	return func(s *EventSession) { s.participantEmail = &email }
}

// NewEventSession creates a session for one participant on one event.
func NewEventSession(
	event *evententity.Event,
	grid *evententity.TimeGrid,
	participantName string,
	timezone string,
	mode entity.PaintMode,
	repo SessionStore,
	opts ...SessionOption,
) *EventSession {
	s := &EventSession{
		event:           event,
		grid:            grid,
		repo:            repo,
		participantName: participantName,
		timezone:        timezone,
		state:           StateIdle,
		lastMode:        mode,
		debounce:        constants.DefaultSaveDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.store = NewSelectionStore(grid, mode, s.onEdit)
	s.heatmap = ComputeHeatmap(grid, nil, nil)
	return s
}

// Store exposes the selection store for grid interactions.
func (s *EventSession) Store() *SelectionStore {
	return s.store
}

// State returns the current reconciliation state.
func (s *EventSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HasUnsavedChanges reports whether local edits have not been confirmed by
// the repository yet.
func (s *EventSession) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Heatmap returns the most recently computed heatmap.
func (s *EventSession) Heatmap() *entity.Heatmap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heatmap
}

// onEdit runs synchronously on every committed store mutation: the heatmap
// is recomputed immediately for UI feedback, then the save timer restarts.
func (s *EventSession) onEdit(slots []entity.Slot) {
	mode := s.store.PaintMode()

	s.mu.Lock()
	s.lastSelection = slots
	s.lastMode = mode
	if s.saving {
		// Keep the Saving surface state; the dirty flag records that the
		// in-flight snapshot is already stale.
		s.state = StateSaving
	} else {
		s.state = StateEditing
	}
	s.dirty = true
	s.editSeq++
	heatmap := s.recomputeLocked()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flush)
	notify := s.onHeatmap
	s.mu.Unlock()

	if notify != nil {
		notify(heatmap)
	}
}

// flush transitions to Saving and issues the upsert, unless one is already
// in flight, in which case exactly one follow-up save is queued.
func (s *EventSession) flush() {
	s.mu.Lock()
	if s.saving {
		s.saveQueued = true
		s.mu.Unlock()
		return
	}
	s.saving = true
	s.state = StateSaving
	snapshotSeq := s.editSeq
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	go s.doSave(snapshot, snapshotSeq)
}

func (s *EventSession) snapshotLocked() *entity.ParticipantSelection {
	return &entity.ParticipantSelection{
		EventID:          s.event.ID,
		ParticipantName:  s.participantName,
		ParticipantEmail: s.participantEmail,
		PaintMode:        s.lastMode,
		Timezone:         s.timezone,
		Slots:            s.lastSelection,
	}
}

func (s *EventSession) doSave(snapshot *entity.ParticipantSelection, snapshotSeq uint64) {
	err := s.repo.Upsert(context.Background(), snapshot)

	s.mu.Lock()
	s.saving = false

	if err != nil {
		// Edits stay in memory and stay flagged unsaved; the user may keep
		// editing and the next debounce fire retries.
		s.state = StateEditing
		logger.Error("EventSession:doSave", "participant", s.participantName, "error", err)
		notify := s.onSaveError
		queued := s.saveQueued
		s.saveQueued = false
		s.mu.Unlock()
		if notify != nil {
			notify(err)
		}
		// A save queued mid-flight (a Flush, or a debounce that fired while
		// saving) still expects its edits persisted; retry it now rather
		// than leaving the flag to fire a stale duplicate later.
		if queued {
			s.flush()
		}
		return
	}

	if s.editSeq == snapshotSeq {
		s.dirty = false
		s.state = StateIdle
	} else {
		// Edits arrived while saving; they are still unsaved.
		s.state = StateEditing
	}

	queued := s.saveQueued
	s.saveQueued = false
	s.mu.Unlock()

	// Refresh committed data from the authoritative store, replacing the
	// local-overlay heatmap with the server-confirmed one.
	s.RefreshCommitted(context.Background())

	if queued {
		s.flush()
	}
}

// RefreshCommitted reloads all committed responses and recomputes, merging
// whatever local selection exists. It never touches the selection store, so
// an active drag's pending overlay is left alone.
func (s *EventSession) RefreshCommitted(ctx context.Context) error {
	committed, err := s.repo.ListByEventID(ctx, s.event.ID)
	if err != nil {
		logger.Error("EventSession:RefreshCommitted", err)
		return err
	}

	s.mu.Lock()
	s.committed = committed
	heatmap := s.recomputeLocked()
	notify := s.onHeatmap
	s.mu.Unlock()

	if notify != nil {
		notify(heatmap)
	}
	return nil
}

// Watch consumes peer-change notifications (realtime push or a poll ticker)
// and refreshes on each one until the context ends.
func (s *EventSession) Watch(ctx context.Context, notifications <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-notifications:
			if !ok {
				return
			}
			_ = s.RefreshCommitted(ctx)
		}
	}
}

// Flush forces an immediate save of pending edits, bypassing the debounce.
// Used on teardown so navigation away does not lose the last edits.
func (s *EventSession) Flush() {
	s.mu.Lock()
	hasTimer := s.timer != nil
	if hasTimer {
		s.timer.Stop()
		s.timer = nil
	}
	dirty := s.dirty
	s.mu.Unlock()

	if dirty {
		s.flush()
	}
}

// Close stops the debounce timer. Callers that want the last edits persisted
// should call Flush first.
func (s *EventSession) Close() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
}

// recomputeLocked rebuilds the heatmap from committed data plus the local
// overlay and returns it. Caller holds s.mu and notifies the heatmap
// listener after releasing it.
func (s *EventSession) recomputeLocked() *entity.Heatmap {
	local := &entity.ParticipantSelection{
		EventID:         s.event.ID,
		ParticipantName: s.participantName,
		PaintMode:       s.lastMode,
		Timezone:        s.timezone,
		Slots:           s.lastSelection,
	}
	s.heatmap = ComputeHeatmap(s.grid, s.committed, local)
	return s.heatmap
}
