// Package backend talks to the device controller API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chamber_dashboard/internal/models"
)

const (
	contentTypeJSON = "application/json"

	snapshotPath = "/"
	commandPath  = "/status/"

	// cap on bytes drained from error responses before closing
	maxDrainBytes = 4 << 10
)

var (
	// ErrTransport wraps network-level failures (unreachable host, DNS, reset).
	ErrTransport = errors.New("transport failure")
	// ErrMalformedResponse wraps bodies that are not the expected JSON.
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.Op, e.Code, http.StatusText(e.Code))
}

// Client issues snapshot and command requests against one base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client. A zero timeout leaves requests bounded only by ctx.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP builds a client on top of an existing *http.Client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchSnapshots issues POST / with an empty JSON request and decodes the
// snapshot array.
func (c *Client) FetchSnapshots(ctx context.Context) ([]models.TelemetrySnapshot, error) {
	const op = "fetch snapshots"

	resp, err := c.post(ctx, c.baseURL+snapshotPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrTransport, err)
	}
	defer closeBody(resp)

	if !isSuccess(resp.StatusCode) {
		return nil, &StatusError{Op: op, Code: resp.StatusCode}
	}

	var out []models.TelemetrySnapshot
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}
	return out, nil
}

// SendCommand posts cmd to /status/{id}. The response body is not consumed.
func (c *Client) SendCommand(ctx context.Context, cmd models.Command) error {
	op := "send command to " + string(cmd.ID)

	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}

	resp, err := c.post(ctx, c.baseURL+commandPath+url.PathEscape(string(cmd.ID)), payload)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrTransport, err)
	}
	defer closeBody(resp)

	if !isSuccess(resp.StatusCode) {
		return &StatusError{Op: op, Code: resp.StatusCode}
	}
	return nil
}

func (c *Client) post(ctx context.Context, u string, payload []byte) (*http.Response, error) {
	var body io.Reader = http.NoBody
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	return c.http.Do(req)
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// closeBody drains a little of the body so the connection can be reused.
func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
	_ = resp.Body.Close()
}
