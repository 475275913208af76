package models

// StatusApplyProfile starts a cycle with the supplied preset or custom profile.
// Other status codes are backend-defined and passed through as-is.
const StatusApplyProfile = 1

// Command is one operator action sent to POST /status/{id}.
type Command struct {
	ID           ID            `json:"id"`
	Status       int           `json:"status"`
	PresetID     *ID           `json:"preset_id"`     // null when absent
	CustomPreset *CustomPreset `json:"custom_preset"` // null when absent
}
