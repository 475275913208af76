package service

import (
	"time"

	"chamber_dashboard/internal/models"
)

// CommandFilter narrows the command history.
type CommandFilter struct {
	From     time.Time // inclusive; zero means no lower bound
	To       time.Time // inclusive; zero means no upper bound
	DeviceID models.ID // "" means every device
	Outcome  string    // "", "sent", "failed", "rejected"
}

// Container is the measured box of the split-pane container, in px.
type Container struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

// PaneLayout is what the page needs to render the split panes.
type PaneLayout struct {
	State             string    `json:"state"`      // idle | dragging
	LeftWidth         float64   `json:"left_width"` // fixed basis of the left pane
	RightWidth        float64   `json:"right_width"`
	OverlayVisible    bool      `json:"overlay_visible"`
	ListenersAttached bool      `json:"listeners_attached"`
	ChartHeight       float64   `json:"chart_height"`
	Container         Container `json:"container"`
}
