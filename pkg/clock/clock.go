// Package clock provides an injectable source of the current time.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Real is a Clock backed by time.Now.
type Real struct{}

// Now returns the current wall-clock time.
func (Real) Now() time.Time {
	return time.Now()
}

// Fake is a Clock for tests. NowFn overrides the returned time when set.
type Fake struct {
	NowFn func() time.Time
}

// Now returns NowFn() or the real time when NowFn is nil.
func (f *Fake) Now() time.Time {
	if f.NowFn != nil {
		return f.NowFn()
	}
	return time.Now()
}

// Fixed returns a Fake clock pinned to t.
func Fixed(t time.Time) *Fake {
	return &Fake{NowFn: func() time.Time { return t }}
}

// Today returns midnight of the clock's current day in loc.
func Today(c Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	now := c.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}
