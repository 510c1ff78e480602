package model

import (
	"time"
)

// RecurrenceKind names the cadence of a recurring reminder.
type RecurrenceKind string

const (
	Weekly  RecurrenceKind = "weekly"
	Monthly RecurrenceKind = "monthly"
)

// Reminder represents a reminder entity in the system.
type Reminder struct {
	ID          string      `json:"id"`                   // unique identifier, stable for the reminder's lifetime
	Owner       string      `json:"owner"`                // identifier of the requesting user
	Destination string      `json:"destination"`          // delivery target, resolved by the notifier
	Text        string      `json:"text"`                 // note to deliver
	FireAt      time.Time   `json:"fire_at"`              // absolute instant, always UTC in memory
	Recurrence  *Recurrence `json:"recurrence,omitempty"` // nil for one-off reminders
	Timezone    string      `json:"timezone"`             // IANA zone the instant was computed in
}

// IsRecurring reports whether the reminder re-arms after firing.
func (r Reminder) IsRecurring() bool {
	return r.Recurrence != nil
}

// Location resolves the reminder's zone. Unknown or empty zones fall back to UTC.
func (r Reminder) Location() *time.Location {
	if r.Timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

// Recurrence describes a weekly or monthly cadence in the owner's local time.
type Recurrence struct {
	Kind    RecurrenceKind `json:"kind"`
	Weekday time.Weekday   `json:"weekday,omitempty"` // weekly only, 0 = Sunday
	Day     int            `json:"day,omitempty"`     // monthly only, 1-31
	Hour    int            `json:"hour"`
	Minute  int            `json:"minute"`
}

// Next returns the earliest slot matching the recurrence strictly after t,
// computed in loc. Monthly rules on days a month does not have (e.g. 31 in
// April) fire on that month's last day.
func (r Recurrence) Next(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)

	switch r.Kind {
	case Weekly:
		for i := 0; i <= 7; i++ {
			candidate := time.Date(local.Year(), local.Month(), local.Day()+i, r.Hour, r.Minute, 0, 0, loc)
			if candidate.Weekday() == r.Weekday && candidate.After(t) {
				return candidate.UTC()
			}
		}
	case Monthly:
		for i := 0; i <= 12; i++ {
			first := time.Date(local.Year(), local.Month()+time.Month(i), 1, 0, 0, 0, 0, loc)
			day := min(r.Day, daysIn(first))
			candidate := time.Date(first.Year(), first.Month(), day, r.Hour, r.Minute, 0, 0, loc)
			if candidate.After(t) {
				return candidate.UTC()
			}
		}
	}

	return time.Time{}
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
