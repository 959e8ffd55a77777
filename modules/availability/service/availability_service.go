package service

import (
	"context"
	"strings"

	"meetgrid/core/cache"
	"meetgrid/core/constants"
	"meetgrid/core/errors"
	"meetgrid/core/logger"
	"meetgrid/modules/availability/dto"
	"meetgrid/modules/availability/entity"
	"meetgrid/modules/availability/repository"
	evententity "meetgrid/modules/event/entity"
	eventrepo "meetgrid/modules/event/repository"
	eventservice "meetgrid/modules/event/service"
)

// AvailabilityService handles committed responses and server-side
// aggregation for an event.
type AvailabilityService struct {
	responses repository.ResponseRepositoryInterface
	events    eventrepo.EventRepositoryInterface
	notifier  cache.Notifier // nil when realtime is disabled; polling still works
}

// AvailabilityServiceInterface defines the service contract
type AvailabilityServiceInterface interface {
	UpsertResponse(ctx context.Context, eventCode, participantName string, req *dto.UpsertResponseRequest) (*dto.ResponseDTO, *errors.AppError)
	ListResponses(ctx context.Context, eventCode string) ([]dto.ResponseDTO, *errors.AppError)
	DeleteResponse(ctx context.Context, eventCode, participantName string) *errors.AppError
	GetHeatmap(ctx context.Context, eventCode string) (*dto.HeatmapResponse, *errors.AppError)
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(
	responses repository.ResponseRepositoryInterface,
	events eventrepo.EventRepositoryInterface,
	notifier cache.Notifier,
) AvailabilityServiceInterface {
	return &AvailabilityService{
		responses: responses,
		events:    events,
		notifier:  notifier,
	}
}

// loadEventAndGrid resolves an event code to its record and computed grid.
func (s *AvailabilityService) loadEventAndGrid(ctx context.Context, eventCode string) (*evententity.Event, *evententity.TimeGrid, *errors.AppError) {
	event, err := s.events.GetEventByCode(ctx, eventCode)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrServiceUnavailable, "Failed to load event", err)
	}
	if event == nil {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	grid, gridErr := eventservice.BuildTimeGrid(event)
	if gridErr != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Stored event configuration is invalid", gridErr)
	}
	return event, grid, nil
}

// UpsertResponse validates and stores one participant's full selection,
// replacing any previous submission under the same name, then notifies
// subscribers that the event's responses changed.
func (s *AvailabilityService) UpsertResponse(ctx context.Context, eventCode, participantName string, req *dto.UpsertResponseRequest) (*dto.ResponseDTO, *errors.AppError) {
	name := strings.TrimSpace(participantName)
	if name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Participant name is required", nil)
	}
	if len(name) > constants.MaxParticipantNameLength {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Participant name is too long", nil)
	}

	mode := entity.PaintMode(req.PaintMode)
	if !mode.Valid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown paint mode", nil)
	}

	event, grid, appErr := s.loadEventAndGrid(ctx, eventCode)
	if appErr != nil {
		return nil, appErr
	}

	slots := dto.ToSlots(req.Slots)
	for _, slot := range slots {
		if !grid.Contains(slot.DateIndex, slot.TimeIndex) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Slot outside event grid", nil)
		}
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = event.Timezone
	}

	sel := &entity.ParticipantSelection{
		EventID:         event.ID,
		ParticipantName: name,
		PaintMode:       mode,
		Timezone:        timezone,
		Slots:           dedupeSlots(slots),
	}
	if req.ParticipantEmail != "" {
		sel.ParticipantEmail = &req.ParticipantEmail
	}

	if err := s.responses.Upsert(ctx, sel); err != nil {
		return nil, errors.NewAppError(errors.ErrServiceUnavailable, "Failed to save response", err)
	}

	s.publishChanged(ctx, eventCode)
	return dto.ToResponseDTO(sel), nil
}

// ListResponses returns all committed selections for an event
func (s *AvailabilityService) ListResponses(ctx context.Context, eventCode string) ([]dto.ResponseDTO, *errors.AppError) {
	event, _, appErr := s.loadEventAndGrid(ctx, eventCode)
	if appErr != nil {
		return nil, appErr
	}

	selections, err := s.responses.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrServiceUnavailable, "Failed to list responses", err)
	}

	result := make([]dto.ResponseDTO, 0, len(selections))
	for i := range selections {
		result = append(result, *dto.ToResponseDTO(&selections[i]))
	}
	return result, nil
}

// DeleteResponse withdraws one participant's response
func (s *AvailabilityService) DeleteResponse(ctx context.Context, eventCode, participantName string) *errors.AppError {
	event, _, appErr := s.loadEventAndGrid(ctx, eventCode)
	if appErr != nil {
		return appErr
	}

	found, err := s.responses.Delete(ctx, event.ID, participantName)
	if err != nil {
		return errors.NewAppError(errors.ErrServiceUnavailable, "Failed to delete response", err)
	}
	if !found {
		return errors.NewAppError(errors.ErrNotFound, "Response not found", nil)
	}

	s.publishChanged(ctx, eventCode)
	return nil
}

// GetHeatmap aggregates all committed responses server-side, with no local
// overlay.
func (s *AvailabilityService) GetHeatmap(ctx context.Context, eventCode string) (*dto.HeatmapResponse, *errors.AppError) {
	event, grid, appErr := s.loadEventAndGrid(ctx, eventCode)
	if appErr != nil {
		return nil, appErr
	}

	selections, err := s.responses.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrServiceUnavailable, "Failed to list responses", err)
	}

	heatmap := ComputeHeatmap(grid, selections, nil)
	return dto.ToHeatmapResponse(eventCode, heatmap), nil
}

func (s *AvailabilityService) publishChanged(ctx context.Context, eventCode string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishResponsesChanged(ctx, eventCode); err != nil {
		// Realtime is best-effort; pollers still converge.
		logger.Warn("AvailabilityService:publishChanged", "event_code", eventCode, "error", err)
	}
}

// dedupeSlots drops duplicate slots while preserving first-seen order.
func dedupeSlots(slots []entity.Slot) []entity.Slot {
	seen := make(map[entity.Slot]struct{}, len(slots))
	out := make([]entity.Slot, 0, len(slots))
	for _, slot := range slots {
		if _, ok := seen[slot]; ok {
			continue
		}
		seen[slot] = struct{}{}
		out = append(out, slot)
	}
	return out
}
