package dto

import (
	"time"

	"github.com/aliskhannn/reminder-notifier/internal/dateparse"
	"github.com/aliskhannn/reminder-notifier/internal/model"
)

// CreateRequest carries the text of a new reminder. For free-text creation
// the text starts with a date expression ("завтра в 10:00 купить хлеб"); the
// structured endpoints expect their own forms ("понедельник в 08:30 зарядка").
type CreateRequest struct {
	Destination string `json:"destination" validate:"required"`
	Text        string `json:"text" validate:"required"`
}

// RescheduleRequest carries a date expression with nothing after it.
type RescheduleRequest struct {
	When string `json:"when" validate:"required"`
}

type TimezoneRequest struct {
	Timezone string `json:"timezone" validate:"required"`
}

type TimezoneResponse struct {
	Timezone string `json:"timezone"`
}

// Reminder is the API view of a reminder. FireAt is rendered in the
// reminder's own zone.
type Reminder struct {
	Index       int               `json:"index,omitempty"`
	ID          string            `json:"id"`
	Destination string            `json:"destination"`
	Text        string            `json:"text"`
	FireAt      string            `json:"fire_at"`
	Timezone    string            `json:"timezone"`
	Recurrence  *model.Recurrence `json:"recurrence,omitempty"`
	Schedule    string            `json:"schedule"`
}

// FromModel converts a reminder. index is its 1-based position in a listing,
// or 0 when not listed.
func FromModel(r model.Reminder, index int) Reminder {
	local := r.FireAt.In(r.Location())

	return Reminder{
		Index:       index,
		ID:          r.ID,
		Destination: r.Destination,
		Text:        r.Text,
		FireAt:      local.Format(time.RFC3339),
		Timezone:    r.Timezone,
		Recurrence:  r.Recurrence,
		Schedule:    describe(r.Recurrence, local),
	}
}

// FromModels converts a listing, numbering entries from 1.
func FromModels(rs []model.Reminder) []Reminder {
	out := make([]Reminder, 0, len(rs))
	for i, r := range rs {
		out = append(out, FromModel(r, i+1))
	}
	return out
}

func describe(rec *model.Recurrence, local time.Time) string {
	spec := dateparse.RecurrenceSpec{
		Kind:   dateparse.KindDated,
		Day:    local.Day(),
		Month:  local.Month(),
		Hour:   local.Hour(),
		Minute: local.Minute(),
	}

	if rec != nil {
		spec = dateparse.RecurrenceSpec{Weekday: rec.Weekday, Day: rec.Day, Hour: rec.Hour, Minute: rec.Minute}
		switch rec.Kind {
		case model.Weekly:
			spec.Kind = dateparse.KindWeekly
		case model.Monthly:
			spec.Kind = dateparse.KindMonthly
		}
	}

	return spec.Description()
}
