package handlers

import (
	"context"
	"time"

	"chamber_dashboard/internal/models"
	"chamber_dashboard/internal/service"
	"chamber_dashboard/internal/view"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockPoller struct {
	err   error
	calls int
	// project, when set, runs against the page before returning
	project func()
}

func (m *mockPoller) Poll(ctx context.Context) error {
	m.calls++
	if m.project != nil {
		m.project()
	}
	return m.err
}
func (m *mockPoller) Run(ctx context.Context, interval time.Duration) {}

type mockDispatcher struct {
	err     error
	calls   int
	lastCmd models.Command
}

func (m *mockDispatcher) Dispatch(ctx context.Context, cmd models.Command) error {
	m.calls++
	m.lastCmd = cmd
	return m.err
}

type mockProfiles struct {
	err        error
	lastSubmit models.ID
}

func (m *mockProfiles) Collect(id models.ID) (models.CustomPreset, error) {
	return models.CustomPreset{}, m.err
}
func (m *mockProfiles) Submit(ctx context.Context, id models.ID) error {
	m.lastSubmit = id
	return m.err
}

type mockLayout struct {
	layout      service.PaneLayout
	moveErr     error
	initErr     error
	lastInit    service.Container
	lastMeasure *service.Container
	lastMoveX   float64
	lastHeight  float64
	events      []string
}

func (m *mockLayout) Init(ctx context.Context, c service.Container) (service.PaneLayout, error) {
	m.lastInit = c
	return m.layout, m.initErr
}
func (m *mockLayout) Measure(c service.Container) service.PaneLayout {
	m.lastMeasure = &c
	return m.layout
}
func (m *mockLayout) PointerDown() service.PaneLayout {
	m.events = append(m.events, pointerDown)
	return m.layout
}
func (m *mockLayout) PointerMove(ctx context.Context, x float64) (service.PaneLayout, error) {
	m.events = append(m.events, pointerMove)
	m.lastMoveX = x
	return m.layout, m.moveErr
}
func (m *mockLayout) PointerUp() service.PaneLayout {
	m.events = append(m.events, pointerUp)
	return m.layout
}
func (m *mockLayout) PointerLeave() service.PaneLayout {
	m.events = append(m.events, pointerLeave)
	return m.layout
}
func (m *mockLayout) Resize(h float64) service.PaneLayout {
	m.lastHeight = h
	return m.layout
}
func (m *mockLayout) Current() service.PaneLayout { return m.layout }

type mockCommandLog struct {
	resp       []models.CommandEvent
	err        error
	lastFilter service.CommandFilter
}

func (m *mockCommandLog) List(ctx context.Context, f service.CommandFilter) ([]models.CommandEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, page *view.Page) *gin.Engine {
	if page == nil {
		page = view.NewPage()
	}
	h := NewHandler(s, page, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
