package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavrika-widget/internal/hours"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 10.0, cfg.Server.RateLimitPerSec)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)
	assert.Equal(t, hours.PresetSplit, cfg.Hours.Preset)
	assert.Equal(t, hours.Window{Open: 11, Close: 22}, *cfg.Hours.Weekday)
	assert.Equal(t, hours.Window{Open: 10, Close: 21}, *cfg.Hours.Weekend)
	assert.True(t, *cfg.Hours.EnforceHours)
	assert.Equal(t, time.Local, cfg.Hours.Location)
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, HostNone, cfg.Host.Kind)
	assert.Equal(t, 2500*time.Millisecond, cfg.Host.CloseDelay)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
	assert.False(t, cfg.Push.Enabled())
}

func TestLoad_Example(t *testing.T) {
	cfg, err := Load("config.example.yaml")
	require.NoError(t, err)

	assert.Equal(t, HostWebhook, cfg.Host.Kind)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "Europe/Moscow", cfg.Hours.Location.String())
	assert.Nil(t, cfg.Layout.Corrections)
	assert.Equal(t, "application/json", cfg.Gateway.Headers["Content-Type"])
	assert.Equal(t, []string{"https://widget.example.com"}, cfg.Server.AllowOrigins)
}

func TestLoad_Corrections(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
layout:
  corrections:
    12:
      shift_bottom: -50
    2:
      width: 20.6
`))
	require.NoError(t, err)

	require.Len(t, cfg.Layout.Corrections, 2)
	assert.Equal(t, -50.0, cfg.Layout.Corrections[12].ShiftBottom)
	require.NotNil(t, cfg.Layout.Corrections[2].Width)
	assert.Equal(t, 20.6, *cfg.Layout.Corrections[2].Width)
}

func TestLoad_FlatPresetWithOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
hours:
  preset: flat
  weekend:
    open: 13
    close: 23
  enforce_hours: false
`))
	require.NoError(t, err)

	assert.Equal(t, hours.Window{Open: 12, Close: 22}, *cfg.Hours.Weekday)
	assert.Equal(t, hours.Window{Open: 13, Close: 23}, *cfg.Hours.Weekend)

	p := cfg.Hours.Policy(nil)
	assert.False(t, p.EnforceHours)
	assert.Equal(t, hours.Window{Open: 13, Close: 23}, p.Weekend)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "Unknown preset", body: "hours:\n  preset: brunch\n"},
		{name: "Inverted window", body: "hours:\n  weekday:\n    open: 22\n    close: 11\n"},
		{name: "Bad timezone", body: "hours:\n  timezone: Mars/Olympus\n"},
		{name: "Unknown host", body: "host:\n  kind: carrier-pigeon\n"},
		{name: "Webhook without url", body: "host:\n  kind: webhook\n"},
		{name: "Malformed yaml", body: "server: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.NotNil(t, cfg.Hours.Location)
	assert.Equal(t, "http://localhost:8103/api/reservations/table", cfg.Gateway.Endpoint)
}
