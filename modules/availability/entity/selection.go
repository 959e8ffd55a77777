package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaintMode says what a participant's painted slots mean. Under available
// mode the painted slots ARE their free times; under unavailable mode the
// painted slots are their busy times and every other grid slot is implicitly
// free.
type PaintMode string

const (
	PaintModeAvailable   PaintMode = "available"
	PaintModeUnavailable PaintMode = "unavailable"
)

// Valid reports whether the mode is one of the two known values.
func (m PaintMode) Valid() bool {
	return m == PaintModeAvailable || m == PaintModeUnavailable
}

// Slot addresses one cell of the event grid. Identity is the index pair,
// independent of the date/time labels used for display.
type Slot struct {
	DateIndex int `json:"date_index"`
	TimeIndex int `json:"time_index"`
}

// ParticipantSelection is one participant's painted slot set for an event.
// The committed flavor is persisted and visible to everyone; the local
// flavor lives only inside the active user's session.
type ParticipantSelection struct {
	ID               uuid.UUID  `json:"id,omitempty"`
	EventID          uuid.UUID  `json:"event_id"`
	ParticipantName  string     `json:"participant_name"`
	ParticipantEmail *string    `json:"participant_email,omitempty"`
	PaintMode        PaintMode  `json:"paint_mode"`
	Timezone         string     `json:"timezone"`
	Slots            []Slot     `json:"slots"`
	CreatedAt        time.Time  `json:"created_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at,omitempty"`
}

// SlotSet returns the selection's slots as a set for membership tests.
func (s *ParticipantSelection) SlotSet() map[Slot]struct{} {
	set := make(map[Slot]struct{}, len(s.Slots))
	for _, slot := range s.Slots {
		set[slot] = struct{}{}
	}
	return set
}
