package entity

// TimeGrid is the complete ordered slot domain of one event. It is derived
// from the event configuration and recomputed, never mutated, when the
// configuration changes.
type TimeGrid struct {
	// Dates holds the chronological date labels ("2006-01-02").
	Dates []string `json:"dates"`
	// TimeSlots holds the sub-day tick labels ("15:04"). Empty for
	// date-only events, which have a single implicit tick per date.
	TimeSlots []string `json:"time_slots,omitempty"`
}

// DateCount returns the number of date columns.
func (g *TimeGrid) DateCount() int {
	return len(g.Dates)
}

// TicksPerDate returns the number of time rows per date. Date-only grids
// report 1 for the implicit tick rather than materializing a time array.
func (g *TimeGrid) TicksPerDate() int {
	if len(g.TimeSlots) == 0 {
		return 1
	}
	return len(g.TimeSlots)
}

// SlotCount returns the total number of addressable slots.
func (g *TimeGrid) SlotCount() int {
	return g.DateCount() * g.TicksPerDate()
}

// Contains reports whether the (dateIndex, timeIndex) pair addresses a valid
// slot of this grid.
func (g *TimeGrid) Contains(dateIndex, timeIndex int) bool {
	return dateIndex >= 0 && dateIndex < g.DateCount() &&
		timeIndex >= 0 && timeIndex < g.TicksPerDate()
}
