package dateparse

import (
	"errors"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/aliskhannn/reminder-notifier/internal/model"
)

var (
	// ErrUnrecognized is the root of every parse failure in this package.
	ErrUnrecognized = errors.New("unrecognized date expression")

	ErrUnknownMonth   = fmt.Errorf("%w: unknown month", ErrUnrecognized)
	ErrUnknownWeekday = fmt.Errorf("%w: unknown weekday", ErrUnrecognized)
	ErrBadDay         = fmt.Errorf("%w: day out of range", ErrUnrecognized)
	ErrBadTime        = fmt.Errorf("%w: invalid time of day", ErrUnrecognized)
	ErrMissingTask    = fmt.Errorf("%w: missing reminder text", ErrUnrecognized)
)

// Kind is the shape of a structured expression.
type Kind string

const (
	KindDated   Kind = "dated"   // day + month + time, fires once
	KindWeekly  Kind = "weekly"  // weekday + time
	KindMonthly Kind = "monthly" // day of month + time
)

// RecurrenceSpec is the result of parsing a structured expression.
type RecurrenceSpec struct {
	Kind    Kind
	Day     int
	Month   time.Month
	Weekday time.Weekday
	Hour    int
	Minute  int
	Task    string
}

// Description renders the schedule the way it is shown back to the user.
func (s RecurrenceSpec) Description() string {
	switch s.Kind {
	case KindDated:
		return fmt.Sprintf("Однократно (%d %s в %02d:%02d)", s.Day, monthGenitive[s.Month], s.Hour, s.Minute)
	case KindWeekly:
		return fmt.Sprintf("Еженедельно (%s в %02d:%02d)", weekdayNames[s.Weekday], s.Hour, s.Minute)
	case KindMonthly:
		return fmt.Sprintf("Ежемесячно (день %d в %02d:%02d)", s.Day, s.Hour, s.Minute)
	}
	return ""
}

// Recurrence converts the spec into the stored cadence. Dated specs fire once
// and return nil.
func (s RecurrenceSpec) Recurrence() *model.Recurrence {
	switch s.Kind {
	case KindWeekly:
		return &model.Recurrence{Kind: model.Weekly, Weekday: s.Weekday, Hour: s.Hour, Minute: s.Minute}
	case KindMonthly:
		return &model.Recurrence{Kind: model.Monthly, Day: s.Day, Hour: s.Hour, Minute: s.Minute}
	}
	return nil
}

// FirstFireAt returns the first instant strictly after now matching the spec in loc.
func (s RecurrenceSpec) FirstFireAt(loc *time.Location, now time.Time) time.Time {
	if r := s.Recurrence(); r != nil {
		return r.Next(now, loc)
	}

	year := now.In(loc).Year()
	for y := year; y <= year+8; y++ {
		if s.Day > daysIn(y, s.Month) {
			continue
		}
		if t := time.Date(y, s.Month, s.Day, s.Hour, s.Minute, 0, 0, loc); t.After(now) {
			return t.UTC()
		}
	}
	return time.Time{}
}

// ParseRecurrence recognizes any of the three structured forms:
//
//	15 мая в 10:00 купить хлеб       (dated)
//	понедельник в 08:30 зарядка      (weekly)
//	15 в 12:00 проверить отчеты      (monthly)
//
// A leading number followed by a word other than "в" is read as a dated
// expression, so "15 мйа 10:00 ..." fails with ErrUnknownMonth rather than
// being taken as a monthly rule.
func ParseRecurrence(text string) (RecurrenceSpec, error) {
	return parseStructured(text, true)
}

// ParseSchedule accepts the same forms as ParseRecurrence without the
// trailing task, e.g. "понедельник в 09:00". It is used to edit the schedule
// of an existing reminder.
func ParseSchedule(text string) (RecurrenceSpec, error) {
	return parseStructured(text, false)
}

func parseStructured(text string, withTask bool) (RecurrenceSpec, error) {
	tokens := tokenize(text)
	lead := skipEvery(tokens)
	if lead >= len(tokens) {
		return RecurrenceSpec{}, ErrUnrecognized
	}

	if _, ok := number(tokens[lead], 2); ok {
		if lead+1 < len(tokens) && isWord(tokens[lead+1]) && !isAt(tokens[lead+1]) && tokens[lead+1] != "числа" {
			return parseDated(text, withTask)
		}
		return parseMonthly(text, withTask)
	}

	return parseWeekly(text, withTask)
}

// ParseDated parses "D <month> [в] HH:MM <task>".
func ParseDated(text string) (RecurrenceSpec, error) {
	return parseDated(text, true)
}

func parseDated(text string, withTask bool) (RecurrenceSpec, error) {
	tokens := tokenize(text)
	if len(tokens) < 2 {
		return RecurrenceSpec{}, ErrUnrecognized
	}

	day, ok := number(tokens[0], 2)
	if !ok {
		return RecurrenceSpec{}, fmt.Errorf("%w: %q", ErrBadDay, tokens[0])
	}
	month, ok := months[tokens[1]]
	if !ok {
		return RecurrenceSpec{}, fmt.Errorf("%w: %q", ErrUnknownMonth, tokens[1])
	}
	if day < 1 || day > daysIn(2024, month) {
		return RecurrenceSpec{}, fmt.Errorf("%w: %d %s", ErrBadDay, day, monthGenitive[month])
	}

	spec := RecurrenceSpec{Kind: KindDated, Day: day, Month: month}
	return withTime(spec, text, tokens, 2, withTask)
}

// ParseWeekly parses "[каждый] [в] <weekday> [в] HH:MM <task>".
func ParseWeekly(text string) (RecurrenceSpec, error) {
	return parseWeekly(text, true)
}

func parseWeekly(text string, withTask bool) (RecurrenceSpec, error) {
	tokens := tokenize(text)
	i := skipEvery(tokens)
	if i < len(tokens) && isAt(tokens[i]) {
		i++
	}
	if i >= len(tokens) {
		return RecurrenceSpec{}, ErrUnrecognized
	}

	wd, ok := weekdays[tokens[i]]
	if !ok {
		return RecurrenceSpec{}, fmt.Errorf("%w: %q", ErrUnknownWeekday, tokens[i])
	}

	spec := RecurrenceSpec{Kind: KindWeekly, Weekday: wd}
	return withTime(spec, text, tokens, i+1, withTask)
}

// ParseMonthly parses "[каждое] D [числа] [в] HH:MM <task>". A bare hour ("15 в 12")
// needs the "в" marker; "15 12 ..." is rejected as ambiguous.
func ParseMonthly(text string) (RecurrenceSpec, error) {
	return parseMonthly(text, true)
}

func parseMonthly(text string, withTask bool) (RecurrenceSpec, error) {
	tokens := tokenize(text)
	i := skipEvery(tokens)
	if i >= len(tokens) {
		return RecurrenceSpec{}, ErrUnrecognized
	}

	day, ok := number(tokens[i], 2)
	if !ok || day < 1 || day > 31 {
		return RecurrenceSpec{}, fmt.Errorf("%w: %q", ErrBadDay, tokens[i])
	}

	i++
	if i < len(tokens) && tokens[i] == "числа" {
		i++
	}

	spec := RecurrenceSpec{Kind: KindMonthly, Day: day}
	return withTime(spec, text, tokens, i, withTask)
}

func withTime(spec RecurrenceSpec, text string, tokens []string, i int, withTask bool) (RecurrenceSpec, error) {
	tm, n := scanTime(tokens, i)
	if n == 0 {
		if i < len(tokens) {
			return RecurrenceSpec{}, fmt.Errorf("%w: %q", ErrBadTime, tokens[i])
		}
		return RecurrenceSpec{}, ErrBadTime
	}
	spec.Hour, spec.Minute = tm.hour, tm.minute

	spec.Task = rest(text, fieldStarts(text), i+n)
	switch {
	case withTask && spec.Task == "":
		return RecurrenceSpec{}, ErrMissingTask
	case !withTask && spec.Task != "":
		return RecurrenceSpec{}, fmt.Errorf("%w: unexpected %q", ErrUnrecognized, spec.Task)
	}

	return spec, nil
}

func skipEvery(tokens []string) int {
	if len(tokens) > 0 {
		switch tokens[0] {
		case "каждый", "каждую", "каждое", "каждого":
			return 1
		}
	}
	return 0
}

func isWord(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsLetter(r)
}
