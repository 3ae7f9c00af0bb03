// Package hours decides which dates and times a guest may book.
//
// Every answer is computed against the clock at the moment of the call. A
// live session spans real minutes, so nothing here is cached.
package hours

import (
	"fmt"
	"time"

	"tavrika-widget/internal/parse"
)

// Clock abstracts time.Now for tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Window is a half-open range of opening hours, [Open, Close).
type Window struct {
	Open  int `yaml:"open" json:"open"`
	Close int `yaml:"close" json:"close"`
}

// Contains reports whether the clock falls inside the window.
func (w Window) Contains(c parse.Clock) bool {
	return c.Hour >= w.Open && c.Hour < w.Close
}

func (w Window) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", w.Open, w.Close)
}

// Validate rejects empty or inverted windows.
func (w Window) Validate() error {
	if w.Open < 0 || w.Close > 24 || w.Open >= w.Close {
		return fmt.Errorf("invalid business hours window %d-%d", w.Open, w.Close)
	}
	return nil
}

// Preset names understood by Preset.
const (
	PresetSplit = "split"
	PresetFlat  = "flat"
)

// Preset returns the weekday and weekend windows of a named preset.
//
// "split" is the canonical schedule (weekdays 11-22, weekends 10-21). "flat"
// is the 12-22 everyday schedule some deployments still run; which one is
// right is a product decision, not a code one.
func Preset(name string) (weekday, weekend Window, err error) {
	switch name {
	case "", PresetSplit:
		return Window{Open: 11, Close: 22}, Window{Open: 10, Close: 21}, nil
	case PresetFlat:
		flat := Window{Open: 12, Close: 22}
		return flat, flat, nil
	default:
		return Window{}, Window{}, fmt.Errorf("unknown business hours preset %q", name)
	}
}

// Policy is the Business Hours Policy plus the rules derived from it.
type Policy struct {
	Weekday  Window
	Weekend  Window
	Location *time.Location
	Clock    Clock

	// EnforceHours rejects times outside the day's window.
	EnforceHours bool
	// EnforceFirstSlot rejects times before FirstSlot on today's date.
	EnforceFirstSlot bool
}

// NewPolicy builds a policy from a preset, enforcing business hours.
func NewPolicy(preset string, loc *time.Location, clock Clock) (*Policy, error) {
	weekday, weekend, err := Preset(preset)
	if err != nil {
		return nil, err
	}
	return &Policy{
		Weekday:      weekday,
		Weekend:      weekend,
		Location:     loc,
		Clock:        clock,
		EnforceHours: true,
	}, nil
}

func (p *Policy) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// Now is the current instant in the policy location.
func (p *Policy) Now() time.Time {
	var c Clock = RealClock{}
	if p.Clock != nil {
		c = p.Clock
	}
	return c.Now().In(p.location())
}

// Day normalizes date to local midnight of its calendar day.
func (p *Policy) Day(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, p.location())
}

// Today is local midnight of the current day.
func (p *Policy) Today() time.Time {
	return p.Day(p.Now())
}

// IsToday reports whether date is the current calendar day.
func (p *Policy) IsToday(date time.Time) bool {
	return p.Day(date).Equal(p.Today())
}

// IsPast reports whether date at t is strictly earlier than now.
func (p *Policy) IsPast(date time.Time, t parse.Clock) bool {
	return t.On(p.Day(date)).Before(p.Now())
}

// BusinessHoursFor picks the weekend window on Saturdays and Sundays.
func (p *Policy) BusinessHoursFor(date time.Time) Window {
	switch p.Day(date).Weekday() {
	case time.Saturday, time.Sunday:
		return p.Weekend
	default:
		return p.Weekday
	}
}

// AvailableMinutes lists the bookable minutes of hour on date. On the current
// hour of today only minutes after the current minute remain.
func (p *Policy) AvailableMinutes(date time.Time, hour int) []int {
	first := 0
	if p.IsToday(date) {
		now := p.Now()
		if hour == now.Hour() {
			first = now.Minute() + 1
		}
	}

	minutes := make([]int, 0, 60-first)
	for m := first; m < 60; m++ {
		minutes = append(minutes, m)
	}
	return minutes
}

// AvailableHours lists the bookable hours of date. Today drops hours already
// gone and the current hour once its last minute has started.
func (p *Policy) AvailableHours(date time.Time) []int {
	w := p.BusinessHoursFor(date)
	today := p.IsToday(date)
	now := p.Now()

	hours := make([]int, 0, w.Close-w.Open)
	for h := w.Open; h < w.Close; h++ {
		if today {
			if h < now.Hour() {
				continue
			}
			if h == now.Hour() && len(p.AvailableMinutes(date, h)) == 0 {
				continue
			}
		}
		hours = append(hours, h)
	}
	return hours
}

// FirstSlot is the earliest bookable time today. ok is false once today has
// nothing left and the next slot is tomorrow.
func (p *Policy) FirstSlot() (slot parse.Clock, ok bool) {
	now := p.Now()
	w := p.BusinessHoursFor(now)

	if now.Hour() < w.Open {
		return parse.Clock{Hour: w.Open}, true
	}
	if now.Hour() >= w.Close {
		return parse.Clock{}, false
	}
	if next := now.Minute() + 1; next < 60 {
		return parse.Clock{Hour: now.Hour(), Minute: next}, true
	}
	if next := now.Hour() + 1; next < w.Close {
		return parse.Clock{Hour: next}, true
	}
	return parse.Clock{}, false
}

// Validate checks a date and an optional time. A nil time is rejected as
// empty. The returned error is always a *ValidationError.
func (p *Policy) Validate(date time.Time, t *parse.Clock) error {
	if t == nil {
		return &ValidationError{Reason: ErrEmptyTime}
	}
	if p.IsPast(date, *t) {
		return &ValidationError{Reason: ErrTimePassed, Time: *t}
	}

	w := p.BusinessHoursFor(date)
	if p.EnforceHours && !w.Contains(*t) {
		return &ValidationError{
			Reason: ErrOutsideHours,
			Time:   *t,
			Detail: "open " + w.String(),
		}
	}

	if p.EnforceFirstSlot && p.IsToday(date) {
		slot, ok := p.FirstSlot()
		if !ok {
			return &ValidationError{Reason: ErrBeforeFirstSlot, Time: *t, Detail: "next slot is tomorrow"}
		}
		if t.Before(slot) {
			return &ValidationError{Reason: ErrBeforeFirstSlot, Time: *t, Detail: "first slot " + slot.String()}
		}
	}
	return nil
}
