package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"meetgrid/core/database"
	"meetgrid/core/logger"
	"meetgrid/modules/availability/entity"
)

// ResponseRepository persists one committed response per (event, participant
// name). Resubmission by the same name overwrites, never duplicates.
type ResponseRepository struct {
	DB database.IDatabase
}

// NewResponseRepository creates a new repository instance
func NewResponseRepository(db database.IDatabase) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// ResponseRepositoryInterface defines the repository contract
type ResponseRepositoryInterface interface {
	Upsert(ctx context.Context, sel *entity.ParticipantSelection) error
	ListByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantSelection, error)
	Delete(ctx context.Context, eventID uuid.UUID, participantName string) (bool, error)
}

// responseRow maps the event_responses table; slots are stored as JSONB.
type responseRow struct {
	ID               uuid.UUID `db:"id"`
	EventID          uuid.UUID `db:"event_id"`
	ParticipantName  string    `db:"participant_name"`
	ParticipantEmail *string   `db:"participant_email"`
	PaintMode        string    `db:"paint_mode"`
	Timezone         string    `db:"timezone"`
	Slots            []byte    `db:"slots"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (r *ResponseRepository) Upsert(ctx context.Context, sel *entity.ParticipantSelection) error {
	slotsJSON, err := json.Marshal(sel.Slots)
	if err != nil {
		logger.Error("ResponseRepository:Upsert:marshal", err)
		return err
	}

	query := `
		INSERT INTO event_responses (event_id, participant_name, participant_email, paint_mode, timezone, slots)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, participant_name)
		DO UPDATE SET participant_email = $3, paint_mode = $4, timezone = $5, slots = $6, updated_at = NOW()
	`

	err = r.DB.ExecContext(ctx, query,
		sel.EventID, sel.ParticipantName, sel.ParticipantEmail,
		string(sel.PaintMode), sel.Timezone, slotsJSON)
	if err != nil {
		logger.Error("ResponseRepository:Upsert", err)
		return err
	}

	return nil
}

func (r *ResponseRepository) ListByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantSelection, error) {
	query := `
		SELECT id, event_id, participant_name, participant_email, paint_mode, timezone, slots, created_at, updated_at
		FROM event_responses
		WHERE event_id = $1
		ORDER BY created_at
	`

	var rows []responseRow
	err := r.DB.SelectContext(ctx, &rows, query, eventID)
	if err != nil {
		logger.Error("ResponseRepository:ListByEventID", err)
		return nil, err
	}

	selections := make([]entity.ParticipantSelection, 0, len(rows))
	for _, row := range rows {
		sel := entity.ParticipantSelection{
			ID:               row.ID,
			EventID:          row.EventID,
			ParticipantName:  row.ParticipantName,
			ParticipantEmail: row.ParticipantEmail,
			PaintMode:        entity.PaintMode(row.PaintMode),
			Timezone:         row.Timezone,
			CreatedAt:        row.CreatedAt,
			UpdatedAt:        row.UpdatedAt,
		}
		if err := json.Unmarshal(row.Slots, &sel.Slots); err != nil {
			logger.Error("ResponseRepository:ListByEventID:unmarshal",
				"participant", row.ParticipantName, "error", err)
			continue
		}
		selections = append(selections, sel)
	}

	return selections, nil
}

// Delete removes a participant's response; the returned bool reports whether
// anything existed.
func (r *ResponseRepository) Delete(ctx context.Context, eventID uuid.UUID, participantName string) (bool, error) {
	query := `DELETE FROM event_responses WHERE event_id = $1 AND participant_name = $2 RETURNING id`

	var id uuid.UUID
	err := r.DB.GetContext(ctx, &id, query, eventID, participantName)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		logger.Error("ResponseRepository:Delete", err)
		return false, err
	}
	return true, nil
}
