package service

import (
	"context"
	"errors"
	"testing"

	"chamber_dashboard/internal/models"
)

// memLayoutRepo is an in-memory repository.LayoutRepo.
type memLayoutRepo struct {
	pref    models.LayoutPreference
	ok      bool
	loadErr error
	saveErr error
	saves   []float64
}

func (m *memLayoutRepo) Save(ctx context.Context, p models.LayoutPreference) error {
	m.saves = append(m.saves, p.LeftWidth)
	if m.saveErr != nil {
		return m.saveErr
	}
	m.pref, m.ok = p, true
	return nil
}

func (m *memLayoutRepo) Load(ctx context.Context) (models.LayoutPreference, bool, error) {
	return m.pref, m.ok, m.loadErr
}

func TestSplitPane_Init_DefaultIsFortyPercentAndPersisted(t *testing.T) {
	repo := &memLayoutRepo{}
	c := NewSplitPaneController(repo, nil)

	got, err := c.Init(context.Background(), Container{Width: 1000})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got.LeftWidth != 400 || got.RightWidth != 600 {
		t.Fatalf("layout=%+v, want left 400 right 600", got)
	}
	if pref, ok, _ := repo.Load(context.Background()); !ok || pref.LeftWidth != 400 {
		t.Fatalf("default not persisted: %+v ok=%v", pref, ok)
	}
	if got.State != "idle" || got.OverlayVisible || got.ListenersAttached {
		t.Fatalf("expected idle layout after init: %+v", got)
	}
}

func TestSplitPane_Init_UsesStoredWidth(t *testing.T) {
	repo := &memLayoutRepo{pref: models.LayoutPreference{LeftWidth: 250}, ok: true}
	c := NewSplitPaneController(repo, nil)

	got, err := c.Init(context.Background(), Container{Width: 1000})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got.LeftWidth != 250 || got.RightWidth != 750 {
		t.Fatalf("layout=%+v", got)
	}
	if len(repo.saves) != 0 {
		t.Fatalf("stored width must not be rewritten at startup, saves=%v", repo.saves)
	}
}

func TestSplitPane_Init_ZeroWidthContainerIsNotPersisted(t *testing.T) {
	repo := &memLayoutRepo{}
	c := NewSplitPaneController(repo, nil)

	got, err := c.Init(context.Background(), Container{Width: 0})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got.LeftWidth != 0 {
		t.Fatalf("LeftWidth=%v, want 0", got.LeftWidth)
	}
	if len(repo.saves) != 0 {
		t.Fatalf("zero default must not be stored, saves=%v", repo.saves)
	}

	// once laid out, a later Init computes a real default
	got, _ = c.Init(context.Background(), Container{Width: 500})
	if got.LeftWidth != 200 {
		t.Fatalf("LeftWidth=%v, want 200", got.LeftWidth)
	}
}

func TestSplitPane_Init_LoadErrorIsReturned(t *testing.T) {
	c := NewSplitPaneController(&memLayoutRepo{loadErr: errors.New("locked")}, nil)
	if _, err := c.Init(context.Background(), Container{Width: 800}); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestSplitPane_WidthClamping(t *testing.T) {
	cases := []struct {
		name    string
		offset  float64
		want    float64
		persist bool
	}{
		{"below min rejected", 5, 400, false},
		{"exactly min accepted", MinPaneWidth, MinPaneWidth, true},
		{"middle accepted", 500, 500, true},
		{"exactly max accepted", 1000 - MinPaneWidth, 1000 - MinPaneWidth, true},
		{"above max rejected", 995, 400, false},
		{"negative rejected", -20, 400, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &memLayoutRepo{}
			c := NewSplitPaneController(repo, nil)
			ctx := context.Background()
			if _, err := c.Init(ctx, Container{Width: 1000}); err != nil {
				t.Fatalf("Init: %v", err)
			}
			repo.saves = nil

			c.PointerDown()
			got, err := c.PointerMove(ctx, tc.offset)
			if err != nil {
				t.Fatalf("PointerMove: %v", err)
			}
			if got.LeftWidth != tc.want {
				t.Fatalf("LeftWidth=%v, want %v", got.LeftWidth, tc.want)
			}
			if tc.persist {
				pref, _, _ := repo.Load(ctx)
				if len(repo.saves) != 1 || pref.LeftWidth != tc.want {
					t.Fatalf("accepted width not written through: saves=%v stored=%v", repo.saves, pref.LeftWidth)
				}
			} else if len(repo.saves) != 0 {
				t.Fatalf("rejected width was persisted: %v", repo.saves)
			}
		})
	}
}

func TestSplitPane_OffsetIsRelativeToContainerLeft(t *testing.T) {
	c := NewSplitPaneController(&memLayoutRepo{}, nil)
	ctx := context.Background()
	_, _ = c.Init(ctx, Container{Left: 100, Width: 1000})

	c.PointerDown()
	got, _ := c.PointerMove(ctx, 400)
	if got.LeftWidth != 300 {
		t.Fatalf("LeftWidth=%v, want 300", got.LeftWidth)
	}
}

func TestSplitPane_EveryMoveWritesThrough(t *testing.T) {
	repo := &memLayoutRepo{}
	c := NewSplitPaneController(repo, nil)
	ctx := context.Background()
	_, _ = c.Init(ctx, Container{Width: 1000})
	repo.saves = nil

	c.PointerDown()
	for _, x := range []float64{300, 310, 310, 320} {
		if _, err := c.PointerMove(ctx, x); err != nil {
			t.Fatalf("PointerMove(%v): %v", x, err)
		}
	}
	want := []float64{300, 310, 320} // repeated width is not a change
	if len(repo.saves) != len(want) {
		t.Fatalf("saves=%v, want %v", repo.saves, want)
	}
	for i := range want {
		if repo.saves[i] != want[i] {
			t.Fatalf("saves=%v, want %v", repo.saves, want)
		}
	}
}

func TestSplitPane_StateMachine(t *testing.T) {
	exits := map[string]func(c *SplitPaneController) PaneLayout{
		"pointer up":    (*SplitPaneController).PointerUp,
		"pointer leave": (*SplitPaneController).PointerLeave,
	}
	for name, exit := range exits {
		t.Run(name, func(t *testing.T) {
			repo := &memLayoutRepo{}
			c := NewSplitPaneController(repo, nil)
			ctx := context.Background()
			_, _ = c.Init(ctx, Container{Width: 1000})

			// moves while idle are ignored
			if got, _ := c.PointerMove(ctx, 700); got.LeftWidth != 400 {
				t.Fatalf("idle move applied: %+v", got)
			}

			down := c.PointerDown()
			if down.State != "dragging" || !down.OverlayVisible || !down.ListenersAttached {
				t.Fatalf("pointer down did not enter dragging: %+v", down)
			}

			idle := exit(c)
			if idle.State != "idle" || idle.OverlayVisible || idle.ListenersAttached {
				t.Fatalf("exit did not clean up: %+v", idle)
			}

			if got, _ := c.PointerMove(ctx, 700); got.LeftWidth != 400 {
				t.Fatalf("move after exit applied: %+v", got)
			}
		})
	}
}

func TestSplitPane_SaveErrorKeepsAppliedWidth(t *testing.T) {
	repo := &memLayoutRepo{}
	c := NewSplitPaneController(repo, nil)
	ctx := context.Background()
	_, _ = c.Init(ctx, Container{Width: 1000})

	repo.saveErr = errors.New("disk full")
	c.PointerDown()
	got, err := c.PointerMove(ctx, 600)
	if err == nil {
		t.Fatalf("expected save error")
	}
	if got.LeftWidth != 600 {
		t.Fatalf("LeftWidth=%v, want 600", got.LeftWidth)
	}
}

func TestSplitPane_ResizeAndMeasure(t *testing.T) {
	c := NewSplitPaneController(&memLayoutRepo{}, nil)
	_, _ = c.Init(context.Background(), Container{Width: 1000})

	if got := c.Resize(768); got.ChartHeight != 768 {
		t.Fatalf("ChartHeight=%v", got.ChartHeight)
	}
	got := c.Measure(Container{Left: 20, Width: 1200})
	if got.LeftWidth != 400 || got.RightWidth != 800 || got.Container.Left != 20 {
		t.Fatalf("Measure layout=%+v", got)
	}
	if c.Current().ChartHeight != 768 {
		t.Fatalf("chart height lost")
	}
}
