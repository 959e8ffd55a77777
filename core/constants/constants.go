package constants

import "time"

// Time grid
const (
	// SlotTickMinutes is the sub-day granularity of the availability grid.
	SlotTickMinutes = 15
	// MaxParticipantNameLength bounds the display name stored with a response.
	MaxParticipantNameLength = 100
	// EventCodeLength is the length of the shareable nanoid event code.
	EventCodeLength = 8
)

// Reconciliation session
const (
	// DefaultSaveDebounce delays persistence after the last grid edit.
	DefaultSaveDebounce = 300 * time.Millisecond
)

// Database
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Background sweep
const (
	// EventRetentionDays keeps finished events around before the sweep
	// removes them and their responses.
	EventRetentionDays = 30
	// TaskSweepExpiredEvents is the asynq task type for the retention sweep.
	TaskSweepExpiredEvents = "event:sweep_expired"
)

// Redis
const (
	// ResponsesChangedChannelPrefix is the pub/sub channel prefix; the event
	// code is appended to scope notifications per event.
	ResponsesChangedChannelPrefix = "meetgrid:responses_changed:"
)
