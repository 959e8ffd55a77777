package service

import (
	"context"
	"strings"
	"time"

	"meetgrid/core/errors"
	"meetgrid/core/logger"
	"meetgrid/core/utils"
	"meetgrid/modules/event/dto"
	"meetgrid/modules/event/entity"
	"meetgrid/modules/event/repository"
)

// EventService handles event business logic
type EventService struct {
	repo repository.EventRepositoryInterface
}

// EventServiceInterface defines the service contract
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEventByCode(ctx context.Context, code string, viewerTZ string) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, code string) *errors.AppError
	SweepExpiredEvents(ctx context.Context, retentionDays int) error
}

// NewEventService creates a new event service
func NewEventService(repo repository.EventRepositoryInterface) EventServiceInterface {
	return &EventService{repo: repo}
}

// CreateEvent validates the configuration, builds the grid once to reject
// empty or inconsistent configurations, and persists the event.
func (s *EventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Event title is required", nil)
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown timezone", err)
	}

	event := &entity.Event{
		Code:        utils.GenerateEventCode(),
		Slug:        utils.Slugify(title),
		Title:       title,
		IncludeTime: req.IncludeTime,
		Timezone:    timezone,
	}

	if len(req.SelectedDates) > 0 {
		event.SelectedDates = req.SelectedDates
	} else {
		if req.StartDate != "" {
			event.StartDate = &req.StartDate
		}
		if req.EndDate != "" {
			event.EndDate = &req.EndDate
		}
	}
	if req.IncludeTime {
		if req.StartTime != "" {
			event.StartTime = &req.StartTime
		}
		if req.EndTime != "" {
			event.EndTime = &req.EndTime
		}
	}

	// The grid is fully determined by the configuration; building it here
	// both validates the configuration and yields the response labels.
	grid, err := BuildTimeGrid(event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid event configuration: "+err.Error(), err)
	}
	event.LastDate = grid.Dates[len(grid.Dates)-1]

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create event", err)
	}

	return dto.ToEventResponse(created, grid), nil
}

// GetEventByCode retrieves an event and its computed grid. A non-empty
// viewerTZ additionally renders the event window in that timezone.
func (s *EventService) GetEventByCode(ctx context.Context, code string, viewerTZ string) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByCode(ctx, code)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrServiceUnavailable, "Failed to load event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	grid, gridErr := BuildTimeGrid(event)
	if gridErr != nil {
		// A stored event that no longer yields a grid is a data bug, not a
		// client error.
		return nil, errors.NewAppError(errors.ErrInternalServer, "Stored event configuration is invalid", gridErr)
	}

	resp := dto.ToEventResponse(event, grid)

	if viewerTZ != "" && resp.WindowStartUTC != "" {
		window, viewErr := viewerWindow(resp, viewerTZ)
		if viewErr != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid viewer timezone", viewErr)
		}
		resp.ViewerWindow = window
	}

	return resp, nil
}

// viewerWindow re-expresses the UTC event window in the viewer's timezone.
func viewerWindow(resp *dto.EventResponse, viewerTZ string) (*dto.ViewerWindowDTO, error) {
	start, err := time.Parse(time.RFC3339, resp.WindowStartUTC)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, resp.WindowEndUTC)
	if err != nil {
		return nil, err
	}

	startDate, startClock, err := utils.UTCToLocal(start, viewerTZ)
	if err != nil {
		return nil, err
	}
	endDate, endClock, err := utils.UTCToLocal(end, viewerTZ)
	if err != nil {
		return nil, err
	}

	return &dto.ViewerWindowDTO{
		Timezone:  viewerTZ,
		StartDate: startDate,
		StartTime: startClock,
		EndDate:   endDate,
		EndTime:   endClock,
	}, nil
}

// DeleteEvent removes an event by code
func (s *EventService) DeleteEvent(ctx context.Context, code string) *errors.AppError {
	event, err := s.repo.GetEventByCode(ctx, code)
	if err != nil {
		return errors.NewAppError(errors.ErrServiceUnavailable, "Failed to load event", err)
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	if err := s.repo.DeleteEvent(ctx, event.ID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete event", err)
	}
	return nil
}

// SweepExpiredEvents purges events whose window ended more than
// retentionDays ago, along with their responses.
func (s *EventService) SweepExpiredEvents(ctx context.Context, retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(dateLayout)

	count, err := s.repo.DeleteExpiredEvents(ctx, cutoff)
	if err != nil {
		logger.Error("EventService:SweepExpiredEvents", err)
		return err
	}

	if count > 0 {
		logger.Info("Swept expired events", "count", count, "cutoff", cutoff)
	}
	return nil
}
