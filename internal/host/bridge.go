// Package host delivers finished reservations to the host platform.
package host

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"tavrika-widget/config"
)

// ErrDeliveryStatus is wrapped when the host endpoint answers outside 2xx.
var ErrDeliveryStatus = errors.New("host rejected reservation")

// Receipt is the user-facing outcome of a delivery. A non-zero CloseAfter
// asks the front end to close the app after that delay.
type Receipt struct {
	Message    string
	CloseAfter time.Duration
}

func (r Receipt) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Message      string `json:"message"`
		CloseAfterMs int64  `json:"closeAfterMs,omitempty"`
	}{r.Message, r.CloseAfter.Milliseconds()})
}

// Bridge hands a payload to the host.
type Bridge interface {
	Name() string
	Deliver(ctx context.Context, p Payload) (Receipt, error)
}

func hostReceipt(p Payload, closeAfter time.Duration) Receipt {
	return Receipt{
		Message:    fmt.Sprintf("Table %d reservation confirmed! The app will close in 2 seconds.", p.TableNumber),
		CloseAfter: closeAfter,
	}
}

// Local is used outside the host. Nothing leaves the process.
type Local struct{}

func (Local) Name() string { return "local" }

func (Local) Deliver(_ context.Context, p Payload) (Receipt, error) {
	return Receipt{
		Message: fmt.Sprintf("Reservation created! Table: %d, Time: %s, Date: %s", p.TableNumber, p.Time, p.Date),
	}, nil
}

// Webhook POSTs the payload JSON to the host's outbound endpoint.
type Webhook struct {
	url        string
	headers    map[string]string
	closeAfter time.Duration
	client     *http.Client
}

// NewWebhook creates a webhook bridge.
func NewWebhook(cfg *config.HostConfig) *Webhook {
	return &Webhook{
		url:        cfg.URL,
		headers:    cfg.Headers,
		closeAfter: cfg.CloseDelay,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

func (w *Webhook) Name() string { return config.HostWebhook }

func (w *Webhook) Deliver(ctx context.Context, p Payload) (Receipt, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewBuffer(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range w.headers {
		req.Header.Set(key, value)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Receipt{}, fmt.Errorf("%w: status %d", ErrDeliveryStatus, resp.StatusCode)
	}
	return hostReceipt(p, w.closeAfter), nil
}

// Publisher is the part of a NATS connection the bridge needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATS publishes the payload JSON on a subject.
type NATS struct {
	conn       Publisher
	subject    string
	closeAfter time.Duration
}

// NewNATS wraps an existing publisher.
func NewNATS(conn Publisher, subject string, closeAfter time.Duration) *NATS {
	return &NATS{conn: conn, subject: subject, closeAfter: closeAfter}
}

// DialNATS connects to the configured server.
func DialNATS(cfg *config.HostConfig) (*NATS, *nats.Conn, error) {
	conn, err := nats.Connect(cfg.URL, nats.Timeout(cfg.Timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return NewNATS(conn, cfg.Subject, cfg.CloseDelay), conn, nil
}

func (n *NATS) Name() string { return config.HostNATS }

func (n *NATS) Deliver(ctx context.Context, p Payload) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	body, err := json.Marshal(p)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	if err := n.conn.Publish(n.subject, body); err != nil {
		return Receipt{}, fmt.Errorf("failed to publish to %s: %w", n.subject, err)
	}
	return hostReceipt(p, n.closeAfter), nil
}

// Selector picks the bridge for a session once, at start.
type Selector struct {
	hosted Bridge
	logger *zap.Logger
}

// NewSelector uses hosted for sessions launched inside the host.
// A nil hosted bridge means every session runs standalone.
func NewSelector(hosted Bridge, logger *zap.Logger) *Selector {
	return &Selector{hosted: hosted, logger: logger}
}

// For returns the bridge for a session launched with data.
func (s *Selector) For(data InitData) Bridge {
	if s.hosted != nil && data.Present() {
		return s.hosted
	}
	if data.Present() {
		s.logger.Debug("init data present but no host bridge configured, running standalone")
	}
	return Local{}
}

// FromConfig builds the configured host bridge. Kind none yields a nil bridge.
// The returned cleanup releases any connection held by the bridge.
func FromConfig(cfg *config.HostConfig) (Bridge, func(), error) {
	switch cfg.Kind {
	case config.HostWebhook:
		return NewWebhook(cfg), func() {}, nil
	case config.HostNATS:
		bridge, conn, err := DialNATS(cfg)
		if err != nil {
			return nil, nil, err
		}
		return bridge, conn.Close, nil
	default:
		return nil, func() {}, nil
	}
}
