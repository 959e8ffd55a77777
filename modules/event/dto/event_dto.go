package dto

import (
	"time"

	"meetgrid/core/utils"
	"meetgrid/modules/event/entity"
)

// ===================== Request DTOs =====================

// CreateEventRequest for creating a new event
type CreateEventRequest struct {
	Title         string   `json:"title" validate:"required"`
	SelectedDates []string `json:"selected_dates"` // YYYY-MM-DD, alternative to the range below
	StartDate     string   `json:"start_date"`     // YYYY-MM-DD
	EndDate       string   `json:"end_date"`       // YYYY-MM-DD
	StartTime     string   `json:"start_time"`     // HH:MM, required when include_time
	EndTime       string   `json:"end_time"`       // HH:MM
	IncludeTime   bool     `json:"include_time"`
	Timezone      string   `json:"timezone"`
}

// ===================== Response DTOs =====================

// GridDTO mirrors the computed time grid labels
type GridDTO struct {
	Dates     []string `json:"dates"`
	TimeSlots []string `json:"time_slots,omitempty"`
}

// EventResponse for event details
type EventResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	SelectedDates []string  `json:"selected_dates,omitempty"`
	StartDate     string    `json:"start_date,omitempty"`
	EndDate       string    `json:"end_date,omitempty"`
	StartTime     string    `json:"start_time,omitempty"`
	EndTime       string    `json:"end_time,omitempty"`
	IncludeTime   bool      `json:"include_time"`
	Timezone      string    `json:"timezone"`
	Grid          *GridDTO  `json:"grid,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	// UTC instants of the event window, set for timed events.
	WindowStartUTC string `json:"window_start_utc,omitempty"`
	WindowEndUTC   string `json:"window_end_utc,omitempty"`

	// Window rendered in a viewer-requested timezone, set when one is given.
	ViewerWindow *ViewerWindowDTO `json:"viewer_window,omitempty"`
}

// ViewerWindowDTO is the event window expressed in a viewer's timezone.
type ViewerWindowDTO struct {
	Timezone  string `json:"timezone"`
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
}

// ===================== Mapper Functions =====================

// ToEventResponse maps entity to DTO
func ToEventResponse(e *entity.Event, grid *entity.TimeGrid) *EventResponse {
	resp := &EventResponse{
		ID:          e.ID.String(),
		Code:        e.Code,
		Slug:        e.Slug,
		Title:       e.Title,
		IncludeTime: e.IncludeTime,
		Timezone:    e.Timezone,
		CreatedAt:   e.CreatedAt,
	}

	if len(e.SelectedDates) > 0 {
		resp.SelectedDates = []string(e.SelectedDates)
	}
	if e.StartDate != nil {
		resp.StartDate = *e.StartDate
	}
	if e.EndDate != nil {
		resp.EndDate = *e.EndDate
	}
	if e.StartTime != nil {
		resp.StartTime = *e.StartTime
	}
	if e.EndTime != nil {
		resp.EndTime = *e.EndTime
	}
	if grid != nil {
		resp.Grid = &GridDTO{Dates: grid.Dates, TimeSlots: grid.TimeSlots}

		if e.IncludeTime && e.StartTime != nil && e.EndTime != nil && len(grid.Dates) > 0 {
			// The event timezone was validated at creation, so conversion
			// failures here only mean the tz database changed underneath us.
			if start, err := utils.LocalToUTC(grid.Dates[0], *e.StartTime, e.Timezone); err == nil {
				resp.WindowStartUTC = start.Format(time.RFC3339)
			}
			if end, err := utils.LocalToUTC(grid.Dates[len(grid.Dates)-1], *e.EndTime, e.Timezone); err == nil {
				resp.WindowEndUTC = end.Format(time.RFC3339)
			}
		}
	}

	return resp
}
