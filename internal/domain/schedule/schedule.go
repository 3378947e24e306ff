// Package schedule holds the pure time-window math used by slot
// validation and mission assignment. All helpers return fresh values;
// nothing here mutates its inputs.
package schedule

import (
	"time"

	"github.com/lavauto/lavauto-server/internal/domain/model"
)

// Business window for bookings, minutes from midnight.
const (
	OpeningMinutes = 8 * 60   // 08:00
	ClosingMinutes = 18*60 + 30 // 18:30

	// MinSameDayNotice is the minimum lead time for a same-day booking.
	MinSameDayNotice = 30 * time.Minute
)

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open windows intersect.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// WindowFor computes a booking's mission window from its scheduled
// start and estimated duration (60 minutes when unset).
func WindowFor(b *model.Booking) Window {
	start := b.ScheduledDate
	return Window{
		Start: start,
		End:   start.Add(time.Duration(b.DurationMinutes()) * time.Minute),
	}
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the first instant of the next calendar day, so day
// filters can use [StartOfDay, EndOfDay) predicates.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// MinutesIntoDay returns the wall-clock offset of t in minutes.
func MinutesIntoDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// WithinBusinessHours reports whether t falls inside the bookable
// window (inclusive on both ends, matching the 18:30 last slot).
func WithinBusinessHours(t time.Time) bool {
	m := MinutesIntoDay(t)
	return m >= OpeningMinutes && m <= ClosingMinutes
}

// SameCalendarDay reports whether a and b share a calendar date.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
