package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"chamber_dashboard/internal/service"
)

func TestLayoutHandlers(t *testing.T) {
	ml := &mockLayout{layout: service.PaneLayout{State: "idle", LeftWidth: 400, RightWidth: 600}}
	r := newTestRouter(&service.Service{Layout: ml}, nil)

	w := do(t, r, http.MethodPost, "/api/v1/layout/init", `{"left":20,"width":1000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("init=%d %s", w.Code, w.Body.String())
	}
	if ml.lastInit != (service.Container{Left: 20, Width: 1000}) {
		t.Fatalf("init container=%+v", ml.lastInit)
	}
	var l service.PaneLayout
	_ = json.Unmarshal(w.Body.Bytes(), &l)
	if l.LeftWidth != 400 || l.RightWidth != 600 {
		t.Fatalf("layout=%+v", l)
	}

	for _, ev := range []string{`{"event":"down"}`, `{"event":"move","client_x":512}`, `{"event":"up"}`, `{"event":"leave"}`} {
		if w := do(t, r, http.MethodPost, "/api/v1/layout/pointer", ev); w.Code != http.StatusOK {
			t.Fatalf("%s=%d", ev, w.Code)
		}
	}
	if len(ml.events) != 4 || ml.events[1] != pointerMove || ml.lastMoveX != 512 {
		t.Fatalf("events=%v x=%v", ml.events, ml.lastMoveX)
	}

	if w := do(t, r, http.MethodPost, "/api/v1/layout/pointer", `{"event":"click"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown event=%d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/v1/layout/pointer", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing event=%d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/v1/layout/viewport", `{"height":900,"container":{"left":0,"width":1200}}`)
	if w.Code != http.StatusOK || ml.lastHeight != 900 || ml.lastMeasure == nil || ml.lastMeasure.Width != 1200 {
		t.Fatalf("viewport=%d h=%v measure=%+v", w.Code, ml.lastHeight, ml.lastMeasure)
	}

	if w := do(t, r, http.MethodGet, "/api/v1/layout", ""); w.Code != http.StatusOK {
		t.Fatalf("get=%d", w.Code)
	}
}

func TestLayoutHandlers_Errors(t *testing.T) {
	ml := &mockLayout{initErr: errors.New("db locked"), moveErr: errors.New("db locked")}
	r := newTestRouter(&service.Service{Layout: ml}, nil)

	if w := do(t, r, http.MethodPost, "/api/v1/layout/init", `{"width":1000}`); w.Code != http.StatusInternalServerError {
		t.Fatalf("init=%d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/v1/layout/pointer", `{"event":"move","client_x":50}`); w.Code != http.StatusInternalServerError {
		t.Fatalf("move=%d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/v1/layout/init", `nope`); w.Code != http.StatusBadRequest {
		t.Fatalf("bad body=%d", w.Code)
	}
}
