package session

import (
	"tavrika-widget/internal/capacity"
	"tavrika-widget/internal/floorplan"
	"tavrika-widget/internal/host"
	"tavrika-widget/internal/parse"
)

// Snapshot is a read-only view of a session for the front end.
type Snapshot struct {
	ID           string           `json:"id"`
	State        State            `json:"state"`
	Source       floorplan.Source `json:"source"`
	Bridge       string           `json:"bridge"`
	Date         string           `json:"date"`
	Time         string           `json:"time,omitempty"`
	Table        *floorplan.Table `json:"table,omitempty"`
	Limits       *capacity.Limits `json:"limits,omitempty"`
	GuestCounter int              `json:"guestCounter,omitempty"`
	Guests       *int             `json:"guests,omitempty"`
	PickerOpen   bool             `json:"pickerOpen"`
	Loading      bool             `json:"loading"`
	TimeError    string           `json:"timeError,omitempty"`
	FetchError   string           `json:"fetchError,omitempty"`
	SubmitError  string           `json:"submitError,omitempty"`
	Occupied     []string         `json:"occupied"`
	Eligible     []string         `json:"eligible"`
	TotalTables  int              `json:"totalTables"`
	Receipt      *host.Receipt    `json:"receipt,omitempty"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := s.plan.Tables()
	snap := Snapshot{
		ID:          s.id,
		State:       s.state,
		Source:      s.plan.Source,
		Bridge:      s.bridge.Name(),
		Date:        parse.FormatDate(s.draft.Date),
		PickerOpen:  s.pickerOpen,
		Loading:     s.fetching,
		Occupied:    s.occupied.Slice(tables),
		Eligible:    floorplan.IDs(s.eligible()),
		TotalTables: len(tables),
		Receipt:     s.receipt,
	}
	if s.draft.Time != nil {
		snap.Time = s.draft.Time.String()
	}
	if s.draft.Table != nil {
		t := *s.draft.Table
		limits := s.limits
		snap.Table = &t
		snap.Limits = &limits
		snap.GuestCounter = s.counter
	}
	if s.draft.Guests != nil {
		g := *s.draft.Guests
		snap.Guests = &g
	}
	if s.timeErr != nil {
		snap.TimeError = s.timeErr.Error()
	}
	if s.fetchErr != nil {
		snap.FetchError = s.fetchErr.Error()
	}
	if s.submitErr != nil {
		snap.SubmitError = s.submitErr.Error()
	}
	return snap
}

// TimeError is the single visible time error, if any.
func (s *Session) TimeError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeErr
}

// Occupied returns the occupied ids in plan order.
func (s *Session) Occupied() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.occupied.Slice(s.plan.Tables())
}

// Draft returns a copy of the reservation draft.
func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := Draft{Date: s.draft.Date}
	if s.draft.Time != nil {
		t := *s.draft.Time
		d.Time = &t
	}
	if s.draft.Table != nil {
		t := *s.draft.Table
		d.Table = &t
	}
	if s.draft.Guests != nil {
		g := *s.draft.Guests
		d.Guests = &g
	}
	return d
}
