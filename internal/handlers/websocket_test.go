package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"chamber_dashboard/internal/service"
	"chamber_dashboard/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, view.NewPage(), nil, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 1 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 1 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 1 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dialPage(t *testing.T, page *view.Page, query url.Values) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&service.Service{}, page, nil, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) pageFrame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	if env.Type != "page" {
		t.Fatalf("bad envelope: %+v", env)
	}
	var f pageFrame
	if err := json.Unmarshal(env.Data, &f); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	return f
}

func TestWebSocket_PageStream_InitialAndOnChange(t *testing.T) {
	page := view.NewPage()
	page.Mount("A")
	_ = page.SetText("temperature_A", "20")

	conn := dialPage(t, page, url.Values{"interval_ms": {"20"}})

	first := readFrame(t, conn)
	if first.Elements["temperature_A"] != "20" {
		t.Fatalf("initial frame: %+v", first.Elements)
	}

	// Nothing changed: no frame within a few ticks.
	_ = conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var env envelope
	if err := conn.ReadJSON(&env); err == nil {
		t.Fatalf("unexpected frame for unchanged page: %+v", env)
	}
}

func TestWebSocket_PageStream_SendsUpdates(t *testing.T) {
	page := view.NewPage()
	page.Mount("A")

	conn := dialPage(t, page, url.Values{"interval_ms": {"20"}})
	first := readFrame(t, conn)

	_ = page.SetText("status_A", "running")
	next := readFrame(t, conn)
	if next.Version <= first.Version || next.Elements["status_A"] != "running" {
		t.Fatalf("update frame: %+v", next)
	}
}

func TestWebSocket_UnknownDevice_Closes(t *testing.T) {
	conn := dialPage(t, view.NewPage(), url.Values{"device": {"ghost"}})

	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("expected an error frame first: %v", err)
	}
	if env.Type != "error" || env.Error == "" {
		t.Fatalf("envelope=%+v", env)
	}

	// The server closes right after the error frame.
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}
