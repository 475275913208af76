package models

import "time"

// Command outcomes recorded in the history.
const (
	OutcomeSent     = "sent"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

// CommandEvent is a single command history entry.
type CommandEvent struct {
	EventID      string        `json:"event_id"`
	OccurredAt   time.Time     `json:"occurred_at"`
	DeviceID     ID            `json:"device_id"`
	Status       int           `json:"status"`
	PresetID     *ID           `json:"preset_id,omitempty"`
	CustomPreset *CustomPreset `json:"custom_preset,omitempty"`
	Outcome      string        `json:"outcome"`         // sent | failed | rejected
	Error        string        `json:"error,omitempty"` // human-readable
}
