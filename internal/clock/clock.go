// Package clock supplies the current time to the study service. The scheduling
// core never reads the wall clock itself; "now" is always passed in explicitly,
// and this package is where callers get it from.
package clock

import (
	"sync"
	"time"
)

// DayLayout is the layout of the per-day rollover key.
const DayLayout = "2006-01-02"

// Clock supplies "now".
type Clock interface {
	Now() time.Time
}

// Real reads the wall clock and reports it in Location.
// A nil Location means UTC.
type Real struct {
	Location *time.Location
}

// Now implements Clock.
func (c Real) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}

// NewReal returns a Real clock for the named IANA timezone.
// An empty name selects UTC.
func NewReal(timezone string) (Real, error) {
	if timezone == "" {
		return Real{Location: time.UTC}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Real{}, err
	}
	return Real{Location: loc}, nil
}

// Manual is a settable clock for tests and replays.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock frozen at t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

// Now implements Clock.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// DayOf returns the rollover key for t, evaluated in t's own location.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}
