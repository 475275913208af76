package models

// LayoutPreference is the persisted split-pane layout.
type LayoutPreference struct {
	LeftWidth float64 `json:"leftWidth"` // px
}
