// Package gateway talks to the reservation backend that owns bookings.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"tavrika-widget/config"
	"tavrika-widget/internal/parse"
)

// ErrBadStatus is wrapped when the backend answers outside 2xx.
var ErrBadStatus = errors.New("unexpected status code")

// ErrResponseTooLarge is returned when the body exceeds maxResponseBytes.
var ErrResponseTooLarge = errors.New("occupancy response too large")

const maxResponseBytes = 1 << 20

// OccupancyRequest is the body of the occupied-table query.
type OccupancyRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// OccupancyResponse models the backend's answer. A missing list means none.
type OccupancyResponse struct {
	ReservedTableIDs []string `json:"reservedTableIds"`
}

// Occupancy reports which tables are taken for a date and time.
type Occupancy interface {
	ReservedTables(ctx context.Context, date time.Time, at parse.Clock) ([]string, error)
}

// Client queries the occupied-table endpoint over HTTP.
type Client struct {
	cfg    *config.GatewayConfig
	client *http.Client
	logger *zap.Logger
}

// NewClient creates an occupancy client for the configured endpoint.
func NewClient(cfg *config.GatewayConfig, logger *zap.Logger) *Client {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			logger.Warn("invalid gateway proxy, connecting directly",
				zap.String("proxy", cfg.HTTPProxy), zap.Error(err))
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		logger: logger,
	}
}

// ReservedTables posts {date, time} and returns the reserved table ids.
func (c *Client) ReservedTables(ctx context.Context, date time.Time, at parse.Clock) ([]string, error) {
	body, err := json.Marshal(OccupancyRequest{
		Date: parse.FormatDate(date),
		Time: at.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal occupancy request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range c.cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(raw) > maxResponseBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, maxResponseBytes)
	}

	var occ OccupancyResponse
	if err := json.Unmarshal(raw, &occ); err != nil {
		return nil, fmt.Errorf("failed to unmarshal occupancy response: %w", err)
	}

	c.logger.Debug("reserved tables fetched",
		zap.String("date", parse.FormatDate(date)),
		zap.String("time", at.String()),
		zap.Int("reserved", len(occ.ReservedTableIDs)))

	if occ.ReservedTableIDs == nil {
		return []string{}, nil
	}
	return occ.ReservedTableIDs, nil
}
