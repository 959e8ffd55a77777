package service

import (
	"sort"

	"meetgrid/modules/availability/entity"
	evententity "meetgrid/modules/event/entity"
)

// ComputeHeatmap aggregates every committed selection, plus the active
// user's local one, into a per-slot overlap count over the whole grid.
//
// A local selection shadows any committed selection with the same
// participant name, so the active user is never counted twice against their
// own just-submitted copy. The computation is pure and order-independent:
// only set membership matters, never iteration order.
func ComputeHeatmap(grid *evententity.TimeGrid, committed []entity.ParticipantSelection, local *entity.ParticipantSelection) *entity.Heatmap {
	heatmap := &entity.Heatmap{
		Grid:    grid,
		Entries: make(map[entity.Slot]*entity.AggregateEntry, grid.SlotCount()),
	}

	// Every grid slot gets an explicit zero entry so consumers can tell
	// "nobody is available" from "not computed".
	for d := 0; d < grid.DateCount(); d++ {
		for t := 0; t < grid.TicksPerDate(); t++ {
			heatmap.Entries[entity.Slot{DateIndex: d, TimeIndex: t}] = &entity.AggregateEntry{}
		}
	}

	effective := make([]*entity.ParticipantSelection, 0, len(committed)+1)
	for i := range committed {
		if local != nil && committed[i].ParticipantName == local.ParticipantName {
			continue
		}
		effective = append(effective, &committed[i])
	}
	if local != nil {
		effective = append(effective, local)
	}

	heatmap.TotalParticipants = len(effective)

	for _, sel := range effective {
		applySelection(heatmap, grid, sel)
	}

	// Sort names per slot so output is deterministic regardless of input
	// ordering.
	for _, entry := range heatmap.Entries {
		sort.Strings(entry.Participants)
	}

	return heatmap
}

func applySelection(heatmap *entity.Heatmap, grid *evententity.TimeGrid, sel *entity.ParticipantSelection) {
	switch sel.PaintMode {
	case entity.PaintModeUnavailable:
		// Painted slots are the busy ones; everything else in the grid is
		// implicitly free for this participant. Absence of a mark is data,
		// so this has to walk the whole grid.
		busy := sel.SlotSet()
		for d := 0; d < grid.DateCount(); d++ {
			for t := 0; t < grid.TicksPerDate(); t++ {
				slot := entity.Slot{DateIndex: d, TimeIndex: t}
				if _, isBusy := busy[slot]; isBusy {
					continue
				}
				heatmap.Entries[slot].Add(sel.ParticipantName)
			}
		}
	default:
		// Available mode: painted slots are the free ones.
		for _, slot := range sel.Slots {
			if !grid.Contains(slot.DateIndex, slot.TimeIndex) {
				continue
			}
			heatmap.Entries[slot].Add(sel.ParticipantName)
		}
	}
}
