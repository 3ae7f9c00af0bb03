// Package session runs one guest's booking flow from launch to submission.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tavrika-widget/internal/capacity"
	"tavrika-widget/internal/floorplan"
	"tavrika-widget/internal/gateway"
	"tavrika-widget/internal/hours"
	"tavrika-widget/internal/host"
	"tavrika-widget/internal/layout"
	"tavrika-widget/internal/parse"
)

// Draft is the reservation being assembled.
type Draft struct {
	Date   time.Time
	Time   *parse.Clock
	Table  *floorplan.Table
	Guests *int
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Policy    *hours.Policy
	Occupancy gateway.Occupancy
	Layout    *layout.Engine
	Logger    *zap.Logger
}

// Summary is what the guest confirms before sending.
type Summary struct {
	TableID     string `json:"tableId"`
	TableNumber int    `json:"tableNumber"`
	TableName   string `json:"tableName,omitempty"`
	Guests      int    `json:"guests"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// Outcome describes a delivery attempt. Bridge is empty when nothing was sent.
type Outcome struct {
	Payload host.Payload `json:"payload"`
	Receipt host.Receipt `json:"receipt"`
	Bridge  string       `json:"bridge"`
}

// Session is one launch of the widget. All methods are safe for concurrent use;
// no lock is held across network calls.
type Session struct {
	id     string
	plan   floorplan.Plan
	init   host.InitData
	bridge host.Bridge
	deps   Deps
	logger *zap.Logger

	mu         sync.Mutex
	state      State
	draft      Draft
	occupied   floorplan.IDSet
	seq        uint64
	fetching   bool
	pickerOpen bool
	limits     capacity.Limits
	counter    int
	submitting bool
	timeErr    error
	fetchErr   error
	submitErr  error
	receipt    *host.Receipt
}

// New creates a session for a resolved plan and moves it to Ready.
func New(id string, plan floorplan.Plan, init host.InitData, bridge host.Bridge, deps Deps) *Session {
	s := &Session{
		id:       id,
		plan:     plan,
		init:     init,
		bridge:   bridge,
		deps:     deps,
		logger:   deps.Logger.With(zap.String("session", id)),
		state:    Loading,
		occupied: floorplan.NewIDSet(),
	}
	s.draft.Date = deps.Policy.Today()
	s.fire(EvStarted) // Loading always accepts it
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) Plan() floorplan.Plan { return s.plan }

func (s *Session) Bridge() string { return s.bridge.Name() }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// fire moves the session along ev. Callers hold mu.
func (s *Session) fire(ev Event) error {
	if s.submitting {
		return ErrSubmitInProgress
	}
	target, err := next(s.state, ev)
	if err != nil {
		return err
	}
	if target != s.state {
		s.logger.Debug("session transition",
			zap.Stringer("from", s.state),
			zap.Stringer("event", ev),
			zap.Stringer("to", target))
	}
	s.state = target
	return nil
}

func (s *Session) check(ev Event) error {
	if s.submitting {
		return ErrSubmitInProgress
	}
	_, err := next(s.state, ev)
	return err
}

func (s *Session) resetSelection() {
	s.draft.Table = nil
	s.draft.Guests = nil
	s.limits = capacity.Limits{}
	s.counter = 0
	s.pickerOpen = false
}

// invalidate drops the occupied set and any fetch still in flight.
func (s *Session) invalidate() {
	s.seq++
	s.occupied = floorplan.NewIDSet()
	s.fetching = false
	s.fetchErr = nil
}

// SetDateTime records a new date and time. A nil time clears the pick. A
// valid pick triggers one occupied-table fetch; only the latest fetch is
// applied. The returned error is either a refused action or the
// *hours.ValidationError of the pick. Fetch failures are not returned: the
// session fails open with nothing occupied.
func (s *Session) SetDateTime(ctx context.Context, date time.Time, t *parse.Clock) error {
	s.mu.Lock()
	ev := EvTimeSet
	if t == nil {
		ev = EvTimeCleared
	}
	if err := s.fire(ev); err != nil {
		s.mu.Unlock()
		return err
	}

	s.draft.Date = s.deps.Policy.Day(date)
	s.draft.Time = nil
	if t != nil {
		at := *t
		s.draft.Time = &at
	}
	s.resetSelection()
	s.invalidate()
	s.submitErr = nil

	if t == nil {
		s.timeErr = nil
		s.mu.Unlock()
		return nil
	}
	if err := s.deps.Policy.Validate(s.draft.Date, s.draft.Time); err != nil {
		s.timeErr = err
		s.mu.Unlock()
		return err
	}
	s.timeErr = nil
	s.fetching = true
	seq, day, at := s.seq, s.draft.Date, *s.draft.Time
	s.mu.Unlock()

	ids, err := s.deps.Occupancy.ReservedTables(ctx, day, at)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyOccupancy(seq, day, at, ids, err)
}

// applyOccupancy installs the result of fetch seq unless a newer pick has
// superseded it. A selected table the fresh set marks occupied is dropped.
// Callers hold mu.
func (s *Session) applyOccupancy(seq uint64, day time.Time, at parse.Clock, ids []string, err error) error {
	if seq != s.seq {
		s.logger.Debug("discarding stale occupancy",
			zap.String("date", parse.FormatDate(day)),
			zap.Stringer("time", at))
		return nil
	}
	s.fetching = false
	if err != nil {
		s.fetchErr = err
		s.logger.Warn("failed to fetch reserved tables, showing all tables",
			zap.String("date", parse.FormatDate(day)),
			zap.Stringer("time", at),
			zap.Error(err))
		return nil
	}
	s.occupied = floorplan.NewIDSet(ids...)
	if s.draft.Table != nil && s.occupied.Has(s.draft.Table.ID) {
		s.logger.Info("selected table turned out occupied, selection dropped",
			zap.Int("table", s.draft.Table.Number))
		if err := s.fire(EvTimeSet); err != nil {
			return err
		}
		s.resetSelection()
	}
	return nil
}

func (s *Session) eligible() []floorplan.Table {
	return floorplan.Eligible(s.plan.Tables(), s.occupied)
}

// OpenTablePicker opens the table map for the selected time.
func (s *Session) OpenTablePicker() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return s.check(EvPickerOpened)
	}
	if s.draft.Time == nil {
		return ErrNoTimeSelected
	}
	if err := s.check(EvPickerOpened); err != nil {
		return err
	}
	if s.fetching {
		return ErrOccupancyLoading
	}
	if err := s.deps.Policy.Validate(s.draft.Date, s.draft.Time); err != nil {
		s.timeErr = err
		return err
	}
	if len(floorplan.Selectable(s.plan.Tables(), s.occupied)) == 0 {
		return ErrNoEligibleTables
	}

	s.fire(EvPickerOpened) // checked above
	s.pickerOpen = true
	return nil
}

// SelectTable picks a table from the open picker and returns its guest limits.
// The guest counter restarts at the table minimum.
func (s *Session) SelectTable(id string) (capacity.Limits, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(EvTableSelected); err != nil {
		return capacity.Limits{}, err
	}
	if s.fetching {
		return capacity.Limits{}, ErrOccupancyLoading
	}
	if !s.pickerOpen {
		return capacity.Limits{}, ErrPickerClosed
	}
	t, ok := s.plan.Table(id)
	if !ok {
		return capacity.Limits{}, fmt.Errorf("%w: %s", ErrUnknownTable, id)
	}
	if !t.InPlan() || s.occupied.Has(id) || !t.HasGeometry() {
		return capacity.Limits{}, fmt.Errorf("%w: table %d", ErrTableUnavailable, t.Number)
	}

	s.fire(EvTableSelected) // checked above
	s.draft.Table = &t
	s.draft.Guests = nil
	s.limits = capacity.GuestLimits(t.Number)
	s.counter = s.limits.Min
	s.pickerOpen = false
	return s.limits, nil
}

// SetGuests sets the guest counter, clamped to the table limits.
func (s *Session) SetGuests(n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fire(EvGuestsChanged); err != nil {
		return 0, err
	}
	s.counter = s.limits.Clamp(n)
	return s.counter, nil
}

// AdjustGuests moves the guest counter by delta, clamped to the table limits.
func (s *Session) AdjustGuests(delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fire(EvGuestsChanged); err != nil {
		return 0, err
	}
	s.counter = s.limits.Clamp(s.counter + delta)
	return s.counter, nil
}

// ConfirmGuests stores the counter as the party size.
func (s *Session) ConfirmGuests() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fire(EvGuestsConfirmed); err != nil {
		return 0, err
	}
	g := s.counter
	s.draft.Guests = &g
	return g, nil
}

// revalidate drops back to TimeSelected when the picked time has lapsed.
// Callers hold mu.
func (s *Session) revalidate() error {
	err := s.deps.Policy.Validate(s.draft.Date, s.draft.Time)
	if err == nil {
		return nil
	}
	s.fire(EvLapsed) // allowed from every state Review and Submit accept
	s.resetSelection()
	s.invalidate()
	s.timeErr = err
	s.logger.Info("selected time lapsed, selection dropped", zap.Error(err))
	return err
}

// Review opens the confirmation step after checking the time again.
func (s *Session) Review() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(EvReviewed); err != nil {
		return Summary{}, err
	}
	if err := s.revalidate(); err != nil {
		return Summary{}, err
	}
	s.fire(EvReviewed) // checked above
	return s.summary(), nil
}

func (s *Session) summary() Summary {
	sum := Summary{Date: parse.FormatDate(s.draft.Date)}
	if s.draft.Time != nil {
		sum.Time = s.draft.Time.String()
	}
	if s.draft.Table != nil {
		sum.TableID = s.draft.Table.ID
		sum.TableNumber = s.draft.Table.Number
		sum.TableName = s.draft.Table.Name
	}
	if s.draft.Guests != nil {
		sum.Guests = *s.draft.Guests
	}
	return sum
}

// Submit hands the confirmed draft to the session's bridge. On failure the
// draft is kept and the session stays in Confirming.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if err := s.check(EvSubmitted); err != nil {
		s.mu.Unlock()
		return Outcome{}, err
	}
	if err := s.revalidate(); err != nil {
		s.mu.Unlock()
		return Outcome{}, err
	}

	payload := host.NewPayload(*s.draft.Table, *s.draft.Guests, s.draft.Date, *s.draft.Time,
		s.init.User, s.deps.Policy.Now())
	s.submitting = true
	s.submitErr = nil
	bridge := s.bridge
	s.mu.Unlock()

	receipt, err := bridge.Deliver(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	out := Outcome{Payload: payload, Bridge: bridge.Name()}
	if err != nil {
		s.submitErr = err
		s.logger.Error("failed to deliver reservation",
			zap.String("bridge", bridge.Name()),
			zap.Int("table", payload.TableNumber),
			zap.Error(err))
		return out, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	s.fire(EvSubmitted) // checked above
	s.receipt = &receipt
	out.Receipt = receipt
	s.logger.Info("reservation delivered",
		zap.String("bridge", bridge.Name()),
		zap.Int("table", payload.TableNumber),
		zap.Int("guests", payload.Guests),
		zap.String("date", payload.Date),
		zap.String("time", payload.Time))
	return out, nil
}

// Close steps back out of the topmost open dialog. The selected time is
// never cleared.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pickerOpen && !s.submitting {
		s.pickerOpen = false
		return nil
	}
	prev := s.state
	if err := s.fire(EvClosed); err != nil {
		return err
	}
	switch prev {
	case TableSelected:
		s.resetSelection()
	case GuestCountSelected:
		s.draft.Guests = nil
	}
	return nil
}

// Abandon cancels the session, for example when the app is closed.
func (s *Session) Abandon() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fire(EvAbandoned); err != nil {
		return err
	}
	s.pickerOpen = false
	s.seq++
	s.fetching = false
	return nil
}

// Layout renders the plan with the currently eligible tables highlighted.
func (s *Session) Layout() layout.Result {
	s.mu.Lock()
	available := floorplan.NewIDSet(floorplan.IDs(s.eligible())...)
	s.mu.Unlock()
	return s.deps.Layout.Layout(s.plan.Sections, available)
}
