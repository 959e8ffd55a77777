package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Event represents one scheduling event and fully determines its time grid
type Event struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Code  string    `db:"code" json:"code"`
	Slug  string    `db:"slug" json:"slug"`
	Title string    `db:"title" json:"title"`

	// Either an explicit date list or an inclusive start/end range.
	SelectedDates pq.StringArray `db:"selected_dates" json:"selected_dates,omitempty"`
	StartDate     *string        `db:"start_date" json:"start_date,omitempty"`
	EndDate       *string        `db:"end_date" json:"end_date,omitempty"`

	// Sub-day bounds, only meaningful when IncludeTime is set.
	StartTime   *string `db:"start_time" json:"start_time,omitempty"`
	EndTime     *string `db:"end_time" json:"end_time,omitempty"`
	IncludeTime bool    `db:"include_time" json:"include_time"`

	Timezone string `db:"timezone" json:"timezone"`

	// LastDate is the chronologically last grid date, precomputed for the
	// retention sweep.
	LastDate  string    `db:"last_date" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
