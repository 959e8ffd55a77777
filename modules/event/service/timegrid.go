package service

import (
	"fmt"
	"sort"
	"time"

	"meetgrid/core/constants"
	"meetgrid/modules/event/entity"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// BuildTimeGrid translates an event configuration into its canonical slot
// domain. Pure function of the configuration; callers must rebuild the grid
// whenever the configuration changes.
func BuildTimeGrid(event *entity.Event) (*entity.TimeGrid, error) {
	dates, err := buildDates(event)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("event has no dates")
	}

	grid := &entity.TimeGrid{Dates: dates}

	if event.IncludeTime {
		ticks, err := buildTimeSlots(event)
		if err != nil {
			return nil, err
		}
		grid.TimeSlots = ticks
	}

	return grid, nil
}

func buildDates(event *entity.Event) ([]string, error) {
	if len(event.SelectedDates) > 0 {
		return normalizeDateList(event.SelectedDates)
	}

	if event.StartDate == nil || event.EndDate == nil {
		return nil, fmt.Errorf("event needs either selected dates or a date range")
	}

	start, err := time.Parse(dateLayout, *event.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", *event.StartDate, err)
	}
	end, err := time.Parse(dateLayout, *event.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", *event.EndDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %q before start date %q", *event.EndDate, *event.StartDate)
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}

// normalizeDateList sorts an explicit date list chronologically and drops
// duplicates.
func normalizeDateList(raw []string) ([]string, error) {
	seen := make(map[string]bool, len(raw))
	dates := make([]string, 0, len(raw))

	for _, d := range raw {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", d, err)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		dates = append(dates, d)
	}

	sort.Strings(dates)
	return dates, nil
}

// buildTimeSlots generates tick labels spanning [startTime, endTime) at the
// fixed grid granularity.
func buildTimeSlots(event *entity.Event) ([]string, error) {
	if event.StartTime == nil || event.EndTime == nil {
		return nil, fmt.Errorf("timed event needs start and end times")
	}

	start, err := time.Parse(timeLayout, *event.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", *event.StartTime, err)
	}
	end, err := time.Parse(timeLayout, *event.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", *event.EndTime, err)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("end time %q not after start time %q", *event.EndTime, *event.StartTime)
	}

	var ticks []string
	step := time.Duration(constants.SlotTickMinutes) * time.Minute
	for t := start; t.Before(end); t = t.Add(step) {
		ticks = append(ticks, t.Format(timeLayout))
	}
	return ticks, nil
}

// LastGridDate returns the chronologically last date of the event's grid,
// used by the retention sweep.
func LastGridDate(event *entity.Event) (string, error) {
	grid, err := BuildTimeGrid(event)
	if err != nil {
		return "", err
	}
	return grid.Dates[len(grid.Dates)-1], nil
}
