package entity

import (
	"sort"

	evententity "meetgrid/modules/event/entity"
)

// AggregateEntry is the per-slot overlap result: how many participants are
// available and who they are. Count always equals len(Participants).
type AggregateEntry struct {
	Count        int      `json:"count"`
	Participants []string `json:"participants"`
}

func (e *AggregateEntry) has(name string) bool {
	for _, n := range e.Participants {
		if n == name {
			return true
		}
	}
	return false
}

// Add records a participant as available for this slot. Re-adding the same
// name is a no-op, keeping Count and Participants consistent.
func (e *AggregateEntry) Add(name string) {
	if e.has(name) {
		return
	}
	e.Participants = append(e.Participants, name)
	e.Count++
}

// Heatmap is the derived per-slot aggregate over a whole grid. It is never
// the source of truth; discard and recompute at will.
type Heatmap struct {
	Grid              *evententity.TimeGrid
	Entries           map[Slot]*AggregateEntry
	TotalParticipants int
}

// Entry returns the aggregate for a slot. Every grid slot has an entry, so a
// zero-count entry means "no participant is available", not "not computed".
func (h *Heatmap) Entry(slot Slot) *AggregateEntry {
	return h.Entries[slot]
}

// IntensityRatio returns count/totalParticipants for the slot, and 0 when
// there are no participants at all.
func (h *Heatmap) IntensityRatio(slot Slot) float64 {
	if h.TotalParticipants == 0 {
		return 0
	}
	entry := h.Entries[slot]
	if entry == nil {
		return 0
	}
	return float64(entry.Count) / float64(h.TotalParticipants)
}

// MaxOverlapCount returns the highest count across all slots.
func (h *Heatmap) MaxOverlapCount() int {
	max := 0
	for _, entry := range h.Entries {
		if entry.Count > max {
			max = entry.Count
		}
	}
	return max
}

// OverlapLevels returns the sorted distinct nonzero counts present, for
// rendering a discrete legend instead of a continuous scale.
func (h *Heatmap) OverlapLevels() []int {
	seen := make(map[int]bool)
	for _, entry := range h.Entries {
		if entry.Count > 0 {
			seen[entry.Count] = true
		}
	}

	levels := make([]int, 0, len(seen))
	for level := range seen {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}

// ContiguousBlock expands a slot to the full run of adjacent time ticks on
// the same date that share its count. Presentation-layer convenience only.
func (h *Heatmap) ContiguousBlock(slot Slot) []Slot {
	entry := h.Entries[slot]
	if entry == nil {
		return nil
	}

	count := entry.Count
	first := slot.TimeIndex
	for first > 0 {
		prev := Slot{DateIndex: slot.DateIndex, TimeIndex: first - 1}
		if e := h.Entries[prev]; e == nil || e.Count != count {
			break
		}
		first--
	}

	last := slot.TimeIndex
	for {
		next := Slot{DateIndex: slot.DateIndex, TimeIndex: last + 1}
		if e := h.Entries[next]; e == nil || e.Count != count {
			break
		}
		last++
	}

	block := make([]Slot, 0, last-first+1)
	for t := first; t <= last; t++ {
		block = append(block, Slot{DateIndex: slot.DateIndex, TimeIndex: t})
	}
	return block
}
