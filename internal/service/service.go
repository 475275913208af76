package service

import (
	"context"
	"time"

	"chamber_dashboard/internal/backend"
	"chamber_dashboard/internal/logger"
	"chamber_dashboard/internal/metrics"
	"chamber_dashboard/internal/models"
	"chamber_dashboard/internal/repository"
	"chamber_dashboard/internal/view"
)

// Poller refreshes the page from the backend, on demand or periodically.
type Poller interface {
	Poll(ctx context.Context) error
	Run(ctx context.Context, interval time.Duration)
}

// Dispatcher sends device commands.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd models.Command) error
}

// Profiles reads custom profile forms and submits them.
type Profiles interface {
	Collect(id models.ID) (models.CustomPreset, error)
	Submit(ctx context.Context, id models.ID) error
}

// Layout is the split-pane state machine.
type Layout interface {
	Init(ctx context.Context, c Container) (PaneLayout, error)
	Measure(c Container) PaneLayout
	PointerDown() PaneLayout
	PointerMove(ctx context.Context, clientX float64) (PaneLayout, error)
	PointerUp() PaneLayout
	PointerLeave() PaneLayout
	Resize(viewportHeight float64) PaneLayout
	Current() PaneLayout
}

// CommandLog exposes the command history.
type CommandLog interface {
	List(ctx context.Context, f CommandFilter) ([]models.CommandEvent, error)
}

// Service aggregates the dashboard sub-services.
type Service struct {
	Poller
	Dispatcher
	Profiles
	Layout
	CommandLog
}

// NewService wires the repositories, backend client and page together.
func NewService(repos *repository.Repository, client *backend.Client, page *view.Page, m *metrics.Metrics, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	dispatcher := NewCommandDispatcher(client, repos.CommandRepo, m, log.Named("dispatcher"))
	return &Service{
		Poller:     NewStatusPoller(client, page, m, log.Named("poller")),
		Dispatcher: dispatcher,
		Profiles:   NewProfileFormCollector(page, dispatcher),
		Layout:     NewSplitPaneController(repos.LayoutRepo, log.Named("layout")),
		CommandLog: NewCommandLogService(repos.CommandRepo),
	}
}
