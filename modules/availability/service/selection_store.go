package service

import (
	"sort"

	"meetgrid/modules/availability/entity"
	evententity "meetgrid/modules/event/entity"
)

// SelectionStore holds one participant's in-progress painted slot set and
// drives interactive editing. All operations are local, synchronous and
// infallible; it is driven by a single UI event loop and does no I/O.
type SelectionStore struct {
	grid      *evententity.TimeGrid
	paintMode entity.PaintMode
	selected  map[entity.Slot]struct{}
	drag      *dragState
	onChange  func([]entity.Slot)
}

// dragState tracks one pointer gesture. The intent is fixed at drag start so
// sweeping across a mix of selected and unselected cells produces one
// consistent outcome instead of flip-flopping per cell.
type dragState struct {
	selectIntent bool
	last         entity.Slot
	// pending stages each visited slot's target state without committing
	// it, decoupling the drag preview from the final outcome.
	pending map[entity.Slot]bool
}

// NewSelectionStore creates a store over the given grid. onChange fires with
// the full sorted selection after every committed mutation; it may be nil.
func NewSelectionStore(grid *evententity.TimeGrid, mode entity.PaintMode, onChange func([]entity.Slot)) *SelectionStore {
	return &SelectionStore{
		grid:      grid,
		paintMode: mode,
		selected:  make(map[entity.Slot]struct{}),
		onChange:  onChange,
	}
}

// PaintMode returns the store's current painting semantic.
func (s *SelectionStore) PaintMode() entity.PaintMode {
	return s.paintMode
}

// SetPaintMode switches the painting semantic and clears the selection,
// since painted slots mean the opposite thing under the other mode.
func (s *SelectionStore) SetPaintMode(mode entity.PaintMode) {
	if mode == s.paintMode {
		return
	}
	s.paintMode = mode
	s.selected = make(map[entity.Slot]struct{})
	s.drag = nil
	s.fireChange()
}

// Toggle flips membership of slot in the selection set.
func (s *SelectionStore) Toggle(slot entity.Slot) {
	if !s.grid.Contains(slot.DateIndex, slot.TimeIndex) {
		return
	}
	if _, ok := s.selected[slot]; ok {
		delete(s.selected, slot)
	} else {
		s.selected[slot] = struct{}{}
	}
	s.fireChange()
}

// BeginDrag starts a gesture at the anchor slot. The gesture's intent is
// inferred from the anchor's current state: dragging from a selected cell
// deselects, from an unselected cell selects.
func (s *SelectionStore) BeginDrag(slot entity.Slot) {
	if !s.grid.Contains(slot.DateIndex, slot.TimeIndex) {
		return
	}
	_, anchorSelected := s.selected[slot]
	s.drag = &dragState{
		selectIntent: !anchorSelected,
		last:         slot,
		pending:      make(map[entity.Slot]bool),
	}
	s.drag.pending[slot] = s.drag.selectIntent
}

// ExtendDrag fills every slot on the straight path from the previous drag
// position to the target, stepping both indices toward it at unit stride.
// Visited slots are staged into the pending overlay, not committed.
func (s *SelectionStore) ExtendDrag(target entity.Slot) {
	if s.drag == nil {
		return
	}
	if !s.grid.Contains(target.DateIndex, target.TimeIndex) {
		return
	}

	d := s.drag.last.DateIndex
	t := s.drag.last.TimeIndex

	// Path length can never exceed the grid's dimensions; the bound guards
	// against a runaway loop on inconsistent state.
	maxSteps := s.grid.DateCount() + s.grid.TicksPerDate()
	for steps := 0; steps < maxSteps; steps++ {
		if d == target.DateIndex && t == target.TimeIndex {
			break
		}
		if d < target.DateIndex {
			d++
		} else if d > target.DateIndex {
			d--
		}
		if t < target.TimeIndex {
			t++
		} else if t > target.TimeIndex {
			t--
		}
		s.drag.pending[entity.Slot{DateIndex: d, TimeIndex: t}] = s.drag.selectIntent
	}

	s.drag.last = target
}

// EndDrag reconciles the pending overlay into the selection set and clears
// the gesture. Safe to call with no drag active, so a global pointer-up or
// pointer-leave handler can always call it to avoid a stuck drag.
func (s *SelectionStore) EndDrag() {
	if s.drag == nil {
		return
	}

	for slot, wantSelected := range s.drag.pending {
		if wantSelected {
			s.selected[slot] = struct{}{}
		} else {
			delete(s.selected, slot)
		}
	}
	s.drag = nil
	s.fireChange()
}

// CancelDrag abandons the gesture, discarding the pending overlay without
// touching the committed selection. Safe to call with no drag active.
func (s *SelectionStore) CancelDrag() {
	s.drag = nil
}

// ReplaceAll overwrites the selection wholesale. Used when loading a
// committed response into the store or resetting.
func (s *SelectionStore) ReplaceAll(slots []entity.Slot) {
	s.selected = make(map[entity.Slot]struct{}, len(slots))
	for _, slot := range slots {
		if s.grid.Contains(slot.DateIndex, slot.TimeIndex) {
			s.selected[slot] = struct{}{}
		}
	}
	s.drag = nil
	s.fireChange()
}

// Clear empties the selection.
func (s *SelectionStore) Clear() {
	s.ReplaceAll(nil)
}

// IsSelected reports the slot's state, preferring the live drag preview
// over the committed set while a gesture is in progress.
func (s *SelectionStore) IsSelected(slot entity.Slot) bool {
	if s.drag != nil {
		if wantSelected, ok := s.drag.pending[slot]; ok {
			return wantSelected
		}
	}
	_, ok := s.selected[slot]
	return ok
}

// SlotPaintType returns the paint mode a selected slot is painted with, or
// nil when the slot is not selected. Consults the drag preview first.
func (s *SelectionStore) SlotPaintType(slot entity.Slot) *entity.PaintMode {
	if !s.IsSelected(slot) {
		return nil
	}
	mode := s.paintMode
	return &mode
}

// Selected returns the committed selection in deterministic order.
func (s *SelectionStore) Selected() []entity.Slot {
	slots := make([]entity.Slot, 0, len(s.selected))
	for slot := range s.selected {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].DateIndex != slots[j].DateIndex {
			return slots[i].DateIndex < slots[j].DateIndex
		}
		return slots[i].TimeIndex < slots[j].TimeIndex
	})
	return slots
}

// DragActive reports whether a gesture is in progress.
func (s *SelectionStore) DragActive() bool {
	return s.drag != nil
}

func (s *SelectionStore) fireChange() {
	if s.onChange != nil {
		s.onChange(s.Selected())
	}
}
