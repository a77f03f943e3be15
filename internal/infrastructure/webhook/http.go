package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sidequesthq/sidequest/internal/application/ports"
)

// wirePayload is the JSON shape POSTed to the configured endpoint. It is a
// stable contract: receivers parse these field names, so they do not track
// the internal AuditEvent struct.
type wirePayload struct {
	Event   string    `json:"event"`
	UserID  string    `json:"user_id,omitempty"`
	IP      string    `json:"ip,omitempty"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}

// HTTPEmitter delivers audit events to a configured endpoint. Delivery is
// best effort; callers already log every event locally before emitting.
type HTTPEmitter struct {
	url     string
	client  *http.Client
	headers http.Header
	now     func() time.Time
}

type EmitterOption func(*HTTPEmitter)

// WithHTTPClient replaces the default 10s-timeout client.
func WithHTTPClient(c *http.Client) EmitterOption {
	return func(e *HTTPEmitter) { e.client = c }
}

// WithHeader adds a header to every delivery, e.g. an endpoint API key.
func WithHeader(key, value string) EmitterOption {
	return func(e *HTTPEmitter) { e.headers.Set(key, value) }
}

func NewHTTPEmitter(url string, opts ...EmitterOption) *HTTPEmitter {
	e := &HTTPEmitter{
		url:     url,
		client:  &http.Client{Timeout: 10 * time.Second},
		headers: make(http.Header),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *HTTPEmitter) Emit(ctx context.Context, event ports.AuditEvent) error {
	body, err := json.Marshal(wirePayload{
		Event:   event.Event,
		UserID:  event.UserID,
		IP:      event.IP,
		Success: event.Success,
		Error:   event.Err,
		SentAt:  e.now(),
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range e.headers {
		req.Header[k] = vs
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver audit webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("audit webhook endpoint returned %d", resp.StatusCode)
	}
	return nil
}

var _ ports.WebhookEmitter = (*HTTPEmitter)(nil)
