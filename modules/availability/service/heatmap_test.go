package service

import (
	"testing"

	"meetgrid/modules/availability/entity"
	evententity "meetgrid/modules/event/entity"
)

func dateOnlyGrid(dates ...string) *evententity.TimeGrid {
	return &evententity.TimeGrid{Dates: dates}
}

func timedGrid(dates, ticks []string) *evententity.TimeGrid {
	return &evententity.TimeGrid{Dates: dates, TimeSlots: ticks}
}

func selection(name string, mode entity.PaintMode, slots ...entity.Slot) entity.ParticipantSelection {
	return entity.ParticipantSelection{
		ParticipantName: name,
		PaintMode:       mode,
		Slots:           slots,
	}
}

func TestHeatmapPaintModeDuality(t *testing.T) {
	// Grid: dates=["1/1","1/2"], date-only. A (available) paints 1/1;
	// B (unavailable) paints 1/1, meaning B is free on 1/2 only.
	grid := dateOnlyGrid("2026-01-01", "2026-01-02")
	committed := []entity.ParticipantSelection{
		selection("A", entity.PaintModeAvailable, entity.Slot{DateIndex: 0}),
		selection("B", entity.PaintModeUnavailable, entity.Slot{DateIndex: 0}),
	}

	h := ComputeHeatmap(grid, committed, nil)

	day1 := h.Entry(entity.Slot{DateIndex: 0, TimeIndex: 0})
	if day1.Count != 1 || len(day1.Participants) != 1 || day1.Participants[0] != "A" {
		t.Fatalf("slot(0,0): expected count=1 {A}, got count=%d %v", day1.Count, day1.Participants)
	}

	day2 := h.Entry(entity.Slot{DateIndex: 1, TimeIndex: 0})
	if day2.Count != 1 || len(day2.Participants) != 1 || day2.Participants[0] != "B" {
		t.Fatalf("slot(1,0): expected count=1 {B}, got count=%d %v", day2.Count, day2.Participants)
	}
}

func TestHeatmapUnavailableEmptySelectionIsFullyAvailable(t *testing.T) {
	grid := dateOnlyGrid("2026-01-01", "2026-01-02")
	committed := []entity.ParticipantSelection{
		selection("C", entity.PaintModeUnavailable),
	}

	h := ComputeHeatmap(grid, committed, nil)

	for d := 0; d < 2; d++ {
		entry := h.Entry(entity.Slot{DateIndex: d})
		if entry.Count != 1 || entry.Participants[0] != "C" {
			t.Errorf("slot(%d,0): expected C available, got count=%d %v", d, entry.Count, entry.Participants)
		}
	}
}

func TestHeatmapEveryGridSlotHasEntry(t *testing.T) {
	grid := timedGrid([]string{"2026-01-01", "2026-01-02"}, []string{"09:00", "09:15", "09:30"})
	h := ComputeHeatmap(grid, nil, nil)

	if len(h.Entries) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(h.Entries))
	}
	for slot, entry := range h.Entries {
		if entry == nil {
			t.Fatalf("slot %v has nil entry", slot)
		}
		if entry.Count != 0 {
			t.Errorf("slot %v: expected zero count, got %d", slot, entry.Count)
		}
	}
}

func TestHeatmapCountMatchesNames(t *testing.T) {
	grid := timedGrid([]string{"2026-01-01", "2026-01-02"}, []string{"09:00", "09:15"})
	committed := []entity.ParticipantSelection{
		selection("A", entity.PaintModeAvailable,
			entity.Slot{DateIndex: 0, TimeIndex: 0},
			entity.Slot{DateIndex: 0, TimeIndex: 0}, // duplicate on purpose
			entity.Slot{DateIndex: 1, TimeIndex: 1}),
		selection("B", entity.PaintModeUnavailable, entity.Slot{DateIndex: 0, TimeIndex: 1}),
	}

	h := ComputeHeatmap(grid, committed, nil)

	for slot, entry := range h.Entries {
		if entry.Count != len(entry.Participants) {
			t.Errorf("slot %v: count=%d but %d names", slot, entry.Count, len(entry.Participants))
		}
		seen := map[string]bool{}
		for _, name := range entry.Participants {
			if seen[name] {
				t.Errorf("slot %v: duplicate name %s", slot, name)
			}
			seen[name] = true
		}
	}
}

func TestHeatmapOrderIndependence(t *testing.T) {
	grid := timedGrid([]string{"2026-01-01"}, []string{"09:00", "09:15"})
	a := selection("A", entity.PaintModeAvailable, entity.Slot{DateIndex: 0, TimeIndex: 0})
	b := selection("B", entity.PaintModeUnavailable, entity.Slot{DateIndex: 0, TimeIndex: 1})
	c := selection("C", entity.PaintModeAvailable, entity.Slot{DateIndex: 0, TimeIndex: 0})

	h1 := ComputeHeatmap(grid, []entity.ParticipantSelection{a, b, c}, nil)
	h2 := ComputeHeatmap(grid, []entity.ParticipantSelection{c, a, b}, nil)

	for slot, e1 := range h1.Entries {
		e2 := h2.Entry(slot)
		if e1.Count != e2.Count {
			t.Errorf("slot %v: counts differ %d vs %d", slot, e1.Count, e2.Count)
		}
		for i := range e1.Participants {
			if e1.Participants[i] != e2.Participants[i] {
				t.Errorf("slot %v: names differ %v vs %v", slot, e1.Participants, e2.Participants)
			}
		}
	}
}

func TestHeatmapLocalShadowsCommittedSameName(t *testing.T) {
	grid := dateOnlyGrid("2026-01-01", "2026-01-02")
	committed := []entity.ParticipantSelection{
		selection("A", entity.PaintModeAvailable, entity.Slot{DateIndex: 0}),
	}
	local := selection("A", entity.PaintModeAvailable,
		entity.Slot{DateIndex: 0}, entity.Slot{DateIndex: 1})

	h := ComputeHeatmap(grid, committed, &local)

	if h.TotalParticipants != 1 {
		t.Fatalf("expected 1 effective participant, got %d", h.TotalParticipants)
	}
	day1 := h.Entry(entity.Slot{DateIndex: 0})
	if day1.Count != 1 {
		t.Errorf("slot(0,0): local must not double count against committed copy, got %d", day1.Count)
	}
	day2 := h.Entry(entity.Slot{DateIndex: 1})
	if day2.Count != 1 {
		t.Errorf("slot(1,0): local edits must be visible, got %d", day2.Count)
	}
}

func TestHeatmapLocalDistinctNameCounts(t *testing.T) {
	grid := dateOnlyGrid("2026-01-01")
	committed := []entity.ParticipantSelection{
		selection("A", entity.PaintModeAvailable, entity.Slot{DateIndex: 0}),
	}
	local := selection("B", entity.PaintModeAvailable, entity.Slot{DateIndex: 0})

	h := ComputeHeatmap(grid, committed, &local)

	entry := h.Entry(entity.Slot{DateIndex: 0})
	if entry.Count != 2 {
		t.Fatalf("expected both participants counted, got %d", entry.Count)
	}
	if h.TotalParticipants != 2 {
		t.Fatalf("expected 2 total participants, got %d", h.TotalParticipants)
	}
}

func TestHeatmapIgnoresOutOfGridSlots(t *testing.T) {
	grid := dateOnlyGrid("2026-01-01")
	committed := []entity.ParticipantSelection{
		selection("A", entity.PaintModeAvailable, entity.Slot{DateIndex: 5, TimeIndex: 3}),
	}

	h := ComputeHeatmap(grid, committed, nil)
	if got := h.Entry(entity.Slot{DateIndex: 0}).Count; got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if len(h.Entries) != 1 {
		t.Errorf("out-of-grid slots must not create entries, got %d", len(h.Entries))
	}
}

func TestIntensityRatioZeroParticipants(t *testing.T) {
	grid := dateOnlyGrid("2026-01-01")
	h := ComputeHeatmap(grid, nil, nil)

	ratio := h.IntensityRatio(entity.Slot{DateIndex: 0})
	if ratio != 0 {
		t.Fatalf("expected 0 ratio with no participants, got %v", ratio)
	}
}

func TestIntensityRatioAndLevels(t *testing.T) {
	grid := dateOnlyGrid("2026-01-01", "2026-01-02", "2026-01-03")
	committed := []entity.ParticipantSelection{
		selection("A", entity.PaintModeAvailable, entity.Slot{DateIndex: 0}, entity.Slot{DateIndex: 1}),
		selection("B", entity.PaintModeAvailable, entity.Slot{DateIndex: 0}),
	}

	h := ComputeHeatmap(grid, committed, nil)

	if got := h.IntensityRatio(entity.Slot{DateIndex: 0}); got != 1.0 {
		t.Errorf("slot(0,0) ratio: expected 1.0, got %v", got)
	}
	if got := h.IntensityRatio(entity.Slot{DateIndex: 1}); got != 0.5 {
		t.Errorf("slot(1,0) ratio: expected 0.5, got %v", got)
	}
	if got := h.MaxOverlapCount(); got != 2 {
		t.Errorf("max overlap: expected 2, got %d", got)
	}

	levels := h.OverlapLevels()
	if len(levels) != 2 || levels[0] != 1 || levels[1] != 2 {
		t.Errorf("levels: expected [1 2], got %v", levels)
	}
}

func TestContiguousBlock(t *testing.T) {
	grid := timedGrid([]string{"2026-01-01"}, []string{"09:00", "09:15", "09:30", "09:45"})
	committed := []entity.ParticipantSelection{
		selection("A", entity.PaintModeAvailable,
			entity.Slot{DateIndex: 0, TimeIndex: 1},
			entity.Slot{DateIndex: 0, TimeIndex: 2}),
	}

	h := ComputeHeatmap(grid, committed, nil)

	block := h.ContiguousBlock(entity.Slot{DateIndex: 0, TimeIndex: 1})
	if len(block) != 2 {
		t.Fatalf("expected block of 2, got %v", block)
	}
	if block[0].TimeIndex != 1 || block[1].TimeIndex != 2 {
		t.Errorf("expected ticks 1-2, got %v", block)
	}

	// The zero-count edges form their own blocks.
	edge := h.ContiguousBlock(entity.Slot{DateIndex: 0, TimeIndex: 0})
	if len(edge) != 1 || edge[0].TimeIndex != 0 {
		t.Errorf("expected single-slot block at tick 0, got %v", edge)
	}
}
