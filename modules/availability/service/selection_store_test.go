package service

import (
	"testing"

	"meetgrid/modules/availability/entity"
)

func newTestStore() *SelectionStore {
	grid := timedGrid(
		[]string{"2026-01-01", "2026-01-02", "2026-01-03"},
		[]string{"09:00", "09:15", "09:30"},
	)
	return NewSelectionStore(grid, entity.PaintModeAvailable, nil)
}

func TestToggleIdempotent(t *testing.T) {
	store := newTestStore()
	slot := entity.Slot{DateIndex: 1, TimeIndex: 1}

	store.Toggle(slot)
	if !store.IsSelected(slot) {
		t.Fatalf("expected slot selected after first toggle")
	}
	store.Toggle(slot)
	if store.IsSelected(slot) {
		t.Fatalf("expected slot unselected after second toggle")
	}
	if len(store.Selected()) != 0 {
		t.Fatalf("expected empty selection, got %v", store.Selected())
	}
}

func TestToggleOutOfGridIgnored(t *testing.T) {
	store := newTestStore()
	store.Toggle(entity.Slot{DateIndex: 9, TimeIndex: 9})
	if len(store.Selected()) != 0 {
		t.Fatalf("out-of-grid toggle must be ignored, got %v", store.Selected())
	}
}

func TestDragDiagonalFill(t *testing.T) {
	store := newTestStore()

	store.BeginDrag(entity.Slot{DateIndex: 0, TimeIndex: 0})
	store.ExtendDrag(entity.Slot{DateIndex: 2, TimeIndex: 2})
	store.EndDrag()

	want := []entity.Slot{
		{DateIndex: 0, TimeIndex: 0},
		{DateIndex: 1, TimeIndex: 1},
		{DateIndex: 2, TimeIndex: 2},
	}
	got := store.Selected()
	if len(got) != len(want) {
		t.Fatalf("expected exactly %d slots, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot[%d]: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestDragIntentFixedAtStart(t *testing.T) {
	store := newTestStore()

	// Pre-select the middle of the path; a drag starting on an unselected
	// anchor keeps select intent across mixed cells.
	store.Toggle(entity.Slot{DateIndex: 1, TimeIndex: 0})

	store.BeginDrag(entity.Slot{DateIndex: 0, TimeIndex: 0})
	store.ExtendDrag(entity.Slot{DateIndex: 2, TimeIndex: 0})
	store.EndDrag()

	for d := 0; d <= 2; d++ {
		if !store.IsSelected(entity.Slot{DateIndex: d, TimeIndex: 0}) {
			t.Errorf("expected (%d,0) selected after select-intent drag", d)
		}
	}
}

func TestDragDeselectIntent(t *testing.T) {
	store := newTestStore()
	for d := 0; d <= 2; d++ {
		store.Toggle(entity.Slot{DateIndex: d, TimeIndex: 0})
	}

	// Anchor is selected, so the whole gesture deselects.
	store.BeginDrag(entity.Slot{DateIndex: 0, TimeIndex: 0})
	store.ExtendDrag(entity.Slot{DateIndex: 2, TimeIndex: 0})
	store.EndDrag()

	if len(store.Selected()) != 0 {
		t.Fatalf("expected all slots deselected, got %v", store.Selected())
	}
}

func TestDragPendingOverlayPreview(t *testing.T) {
	store := newTestStore()
	slot := entity.Slot{DateIndex: 0, TimeIndex: 0}

	store.BeginDrag(slot)
	if !store.IsSelected(slot) {
		t.Fatalf("preview should show anchor as selected mid-drag")
	}
	// Not yet committed to the real set.
	if len(store.Selected()) != 0 {
		t.Fatalf("pending overlay must not leak into the committed set")
	}

	if pt := store.SlotPaintType(slot); pt == nil || *pt != entity.PaintModeAvailable {
		t.Fatalf("expected paint type from preview, got %v", pt)
	}

	store.EndDrag()
	if len(store.Selected()) != 1 {
		t.Fatalf("expected 1 slot after reconciliation, got %v", store.Selected())
	}
}

func TestCancelDragDiscardsOverlay(t *testing.T) {
	store := newTestStore()
	kept := entity.Slot{DateIndex: 2, TimeIndex: 2}
	store.Toggle(kept)

	store.BeginDrag(entity.Slot{DateIndex: 0, TimeIndex: 0})
	store.ExtendDrag(entity.Slot{DateIndex: 0, TimeIndex: 2})
	store.CancelDrag()

	if store.DragActive() {
		t.Fatalf("expected no active drag after cancel")
	}
	if got := store.Selected(); len(got) != 1 || got[0] != kept {
		t.Fatalf("cancel must leave the committed set untouched, got %v", got)
	}
	if store.IsSelected(entity.Slot{DateIndex: 0, TimeIndex: 1}) {
		t.Fatalf("pending overlay must be gone after cancel")
	}
}

func TestEndDragWithoutDragIsNoop(t *testing.T) {
	store := newTestStore()
	store.EndDrag()
	store.EndDrag()
	if len(store.Selected()) != 0 {
		t.Fatalf("expected no selection, got %v", store.Selected())
	}
}

func TestExtendDragStepBound(t *testing.T) {
	store := newTestStore()

	store.BeginDrag(entity.Slot{DateIndex: 0, TimeIndex: 0})
	// Target further than any straight path; loop must terminate at the
	// grid dimension bound without hanging.
	store.ExtendDrag(entity.Slot{DateIndex: 2, TimeIndex: 0})
	store.ExtendDrag(entity.Slot{DateIndex: 0, TimeIndex: 2})
	store.EndDrag()

	if !store.IsSelected(entity.Slot{DateIndex: 0, TimeIndex: 2}) {
		t.Errorf("expected final target selected")
	}
}

func TestReplaceAllAndClear(t *testing.T) {
	store := newTestStore()
	store.ReplaceAll([]entity.Slot{
		{DateIndex: 0, TimeIndex: 0},
		{DateIndex: 1, TimeIndex: 2},
		{DateIndex: 9, TimeIndex: 9}, // outside grid, dropped
	})

	if len(store.Selected()) != 2 {
		t.Fatalf("expected 2 slots, got %v", store.Selected())
	}

	store.Clear()
	if len(store.Selected()) != 0 {
		t.Fatalf("expected empty after clear, got %v", store.Selected())
	}
}

func TestSetPaintModeClearsSelection(t *testing.T) {
	store := newTestStore()
	store.Toggle(entity.Slot{DateIndex: 0, TimeIndex: 0})

	store.SetPaintMode(entity.PaintModeUnavailable)
	if len(store.Selected()) != 0 {
		t.Fatalf("mode switch must clear the selection, got %v", store.Selected())
	}
	if store.PaintMode() != entity.PaintModeUnavailable {
		t.Fatalf("expected unavailable mode")
	}

	store.Toggle(entity.Slot{DateIndex: 0, TimeIndex: 0})
	if pt := store.SlotPaintType(entity.Slot{DateIndex: 0, TimeIndex: 0}); pt == nil || *pt != entity.PaintModeUnavailable {
		t.Fatalf("expected unavailable paint type, got %v", pt)
	}
}

func TestOnChangeFiresWithFullSelection(t *testing.T) {
	grid := dateOnlyGrid("2026-01-01", "2026-01-02")
	var lastChange []entity.Slot
	calls := 0
	store := NewSelectionStore(grid, entity.PaintModeAvailable, func(slots []entity.Slot) {
		lastChange = slots
		calls++
	})

	store.Toggle(entity.Slot{DateIndex: 0})
	store.BeginDrag(entity.Slot{DateIndex: 1})
	if calls != 1 {
		t.Fatalf("drag start must not fire change, calls=%d", calls)
	}
	store.EndDrag()

	if calls != 2 {
		t.Fatalf("expected 2 change callbacks, got %d", calls)
	}
	if len(lastChange) != 2 {
		t.Fatalf("expected full selection in callback, got %v", lastChange)
	}
}
