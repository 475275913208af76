package service

import (
	"context"
	"sync"

	"chamber_dashboard/internal/logger"
	"chamber_dashboard/internal/models"
	"chamber_dashboard/internal/repository"
)

// PaneState is the divider drag state.
type PaneState int

const (
	PaneIdle PaneState = iota
	PaneDragging
)

func (s PaneState) String() string {
	if s == PaneDragging {
		return "dragging"
	}
	return "idle"
}

const (
	// MinPaneWidth keeps either pane from collapsing.
	MinPaneWidth = 10.0
	// DefaultLeftRatio is the share of the container given to the left pane
	// when no width has been stored yet.
	DefaultLeftRatio = 0.4
)

// SplitPaneController owns the draggable divider. Entering Dragging shows
// the overlay and attaches the move/up/leave listeners; every way out of
// Dragging goes through exitDragging.
type SplitPaneController struct {
	mu    sync.Mutex
	store repository.LayoutRepo
	log   *logger.Logger

	state       PaneState
	container   Container
	leftWidth   float64
	overlay     bool
	listening   bool
	chartHeight float64
}

func NewSplitPaneController(store repository.LayoutRepo, log *logger.Logger) *SplitPaneController {
	if log == nil {
		log = logger.Nop()
	}
	return &SplitPaneController{store: store, log: log}
}

// Init measures the container and applies the stored width, or a default of
// DefaultLeftRatio of the container which is then persisted. A container
// that has not been laid out yet (width <= 0) yields 0, which is not stored.
func (c *SplitPaneController) Init(ctx context.Context, container Container) (PaneLayout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.exitDragging()
	c.container = container

	pref, ok, err := c.store.Load(ctx)
	if err != nil {
		return c.layout(), err
	}
	if ok {
		c.leftWidth = pref.LeftWidth
		return c.layout(), nil
	}

	c.leftWidth = container.Width * DefaultLeftRatio
	if container.Width <= 0 {
		c.leftWidth = 0
		c.log.Warnw("split_pane_container_not_laid_out", "width", container.Width)
		return c.layout(), nil
	}
	if err := c.store.Save(ctx, models.LayoutPreference{LeftWidth: c.leftWidth}); err != nil {
		return c.layout(), err
	}
	return c.layout(), nil
}

// Measure updates the container box without touching the chosen width.
func (c *SplitPaneController) Measure(container Container) PaneLayout {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.container = container
	return c.layout()
}

// PointerDown on the divider enters Dragging.
func (c *SplitPaneController) PointerDown() PaneLayout {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == PaneIdle {
		c.enterDragging()
	}
	return c.layout()
}

// PointerMove applies clientX as the new left width when it keeps both panes
// at least MinPaneWidth wide. Accepted changes are written through at once.
// Moves are ignored while no listeners are attached.
func (c *SplitPaneController) PointerMove(ctx context.Context, clientX float64) (PaneLayout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != PaneDragging || !c.listening {
		return c.layout(), nil
	}

	x := clientX - c.container.Left
	if x < MinPaneWidth || x > c.container.Width-MinPaneWidth {
		return c.layout(), nil
	}
	if x == c.leftWidth {
		return c.layout(), nil
	}

	c.leftWidth = x
	if err := c.store.Save(ctx, models.LayoutPreference{LeftWidth: x}); err != nil {
		c.log.Errorw("split_pane_save_failed", "width", x, "err", err)
		return c.layout(), err
	}
	return c.layout(), nil
}

// PointerUp ends the drag.
func (c *SplitPaneController) PointerUp() PaneLayout {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exitDragging()
	return c.layout()
}

// PointerLeave ends the drag when the pointer leaves the document without
// a button release.
func (c *SplitPaneController) PointerLeave() PaneLayout {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exitDragging()
	return c.layout()
}

// Resize fits the chart frame to the viewport height.
func (c *SplitPaneController) Resize(viewportHeight float64) PaneLayout {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chartHeight = viewportHeight
	return c.layout()
}

// Current returns the layout without changing anything.
func (c *SplitPaneController) Current() PaneLayout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout()
}

func (c *SplitPaneController) enterDragging() {
	c.state = PaneDragging
	c.overlay = true
	c.listening = true
}

func (c *SplitPaneController) exitDragging() {
	c.state = PaneIdle
	c.overlay = false
	c.listening = false
}

// layout must be called with mu held.
func (c *SplitPaneController) layout() PaneLayout {
	right := c.container.Width - c.leftWidth
	if right < 0 {
		right = 0
	}
	return PaneLayout{
		State:             c.state.String(),
		LeftWidth:         c.leftWidth,
		RightWidth:        right,
		OverlayVisible:    c.overlay,
		ListenersAttached: c.listening,
		ChartHeight:       c.chartHeight,
		Container:         c.container,
	}
}
