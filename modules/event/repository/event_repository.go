package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"meetgrid/core/database"
	"meetgrid/core/logger"
	"meetgrid/modules/event/entity"
)

// EventRepository handles event database operations
type EventRepository struct {
	DB database.IDatabase
}

// NewEventRepository creates a new repository instance
func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the repository contract
type EventRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByCode(ctx context.Context, code string) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	DeleteExpiredEvents(ctx context.Context, cutoffDate string) (int, error)
}

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (code, slug, title, selected_dates, start_date, end_date,
		                    start_time, end_time, include_time, timezone, last_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, code, slug, title, selected_dates, start_date, end_date,
		          start_time, end_time, include_time, timezone, last_date, created_at, updated_at
	`

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.Code, event.Slug, event.Title, event.SelectedDates,
		event.StartDate, event.EndDate, event.StartTime, event.EndTime,
		event.IncludeTime, event.Timezone, event.LastDate)

	if err != nil {
		logger.Error("EventRepository:CreateEvent", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetEventByCode(ctx context.Context, code string) (*entity.Event, error) {
	query := `
		SELECT id, code, slug, title, selected_dates, start_date, end_date,
		       start_time, end_time, include_time, timezone, last_date, created_at, updated_at
		FROM events WHERE code = $1
	`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByCode", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("EventRepository:DeleteEvent", err)
		return err
	}
	return nil
}

// DeleteExpiredEvents removes events whose last grid date is before the
// cutoff, together with their responses, and returns how many events went.
func (r *EventRepository) DeleteExpiredEvents(ctx context.Context, cutoffDate string) (int, error) {
	deleteResponses := `
		DELETE FROM event_responses
		WHERE event_id IN (SELECT id FROM events WHERE last_date < $1)
	`
	if err := r.DB.ExecContext(ctx, deleteResponses, cutoffDate); err != nil {
		logger.Error("EventRepository:DeleteExpiredEvents:responses", err)
		return 0, err
	}

	deleteEvents := `DELETE FROM events WHERE last_date < $1 RETURNING id`
	rows, err := r.DB.QueryContext(ctx, deleteEvents, cutoffDate)
	if err != nil {
		logger.Error("EventRepository:DeleteExpiredEvents:events", err)
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}
	return count, rows.Err()
}
