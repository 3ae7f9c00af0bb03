package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"tavrika-widget/internal/floorplan"
	"tavrika-widget/internal/hours"
	"tavrika-widget/internal/host"
)

// Observer hears about every delivery attempt, successful or not.
type Observer interface {
	Delivered(ctx context.Context, sessionID string, out Outcome, err error)
}

// Manager keeps live sessions in memory. Idle sessions expire after the TTL
// and are abandoned.
type Manager struct {
	sessions *cache.Cache
	deps     Deps
	bridges  *host.Selector
	observer Observer
	logger   *zap.Logger
}

// NewManager creates a session manager. observer may be nil.
func NewManager(deps Deps, bridges *host.Selector, observer Observer, ttl time.Duration) *Manager {
	m := &Manager{
		sessions: cache.New(ttl, ttl/2),
		deps:     deps,
		bridges:  bridges,
		observer: observer,
		logger:   deps.Logger,
	}
	m.sessions.OnEvicted(func(id string, v interface{}) {
		if s, ok := v.(*Session); ok && s.Abandon() == nil {
			m.logger.Info("session expired", zap.String("session", id))
		}
	})
	return m
}

// Policy is the business hours policy shared by all sessions.
func (m *Manager) Policy() *hours.Policy {
	return m.deps.Policy
}

// Start opens a session from the launch parameters. A missing or malformed
// floor plan falls back to the built-in one; malformed init data still counts
// as a hosted launch, just without a known user.
func (m *Manager) Start(tables, initData string) *Session {
	data, err := host.ParseInitData(initData)
	if err != nil {
		m.logger.Debug("ignoring malformed init data", zap.Error(err))
		data = host.InitData{Raw: initData}
	}

	plan := floorplan.Resolve(tables, m.logger)
	s := New(uuid.NewString(), plan, data, m.bridges.For(data), m.deps)
	m.sessions.Set(s.ID(), s, cache.DefaultExpiration)

	m.logger.Info("session started",
		zap.String("session", s.ID()),
		zap.String("plan", string(plan.Source)),
		zap.String("bridge", s.Bridge()))
	return s
}

// Get returns a live session and extends its lifetime.
func (m *Manager) Get(id string) (*Session, error) {
	v, ok := m.sessions.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	m.sessions.Replace(id, v, cache.DefaultExpiration)
	return v.(*Session), nil
}

// Submit sends the session's reservation and tears the session down on
// success.
func (m *Manager) Submit(ctx context.Context, id string) (Outcome, error) {
	s, err := m.Get(id)
	if err != nil {
		return Outcome{}, err
	}

	out, err := s.Submit(ctx)
	if out.Bridge != "" && m.observer != nil {
		m.observer.Delivered(ctx, id, out, err)
	}
	if err != nil {
		return out, err
	}
	m.Finish(id)
	return out, nil
}

// Abandon cancels a session and forgets it.
func (m *Manager) Abandon(id string) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	if err := s.Abandon(); err != nil {
		return err
	}
	m.Finish(id)
	return nil
}

// Finish forgets a session.
func (m *Manager) Finish(id string) {
	m.sessions.Delete(id)
}

// Count is the number of live sessions.
func (m *Manager) Count() int {
	return m.sessions.ItemCount()
}
