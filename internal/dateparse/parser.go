// Package dateparse turns Russian free-text and structured date expressions
// into absolute instants.
//
// Free text is matched greedily: the longest leading run of tokens that forms
// a complete date/time expression wins, and whatever follows it is the note.
// Structured recurrence forms ("15 в 12:00 ...", "понедельник 08:30 ...") are
// handled by ParseRecurrence and friends.
package dateparse

import (
	"strings"
	"time"
	"unicode"
)

// DefaultHour is the local hour used when an expression names a day but no
// time of day.
const DefaultHour = 9

// minPrefixTokens is the shortest prefix tried by Parse.
const minPrefixTokens = 2

// Parser extracts reminder instants from free text.
type Parser struct {
	DefaultHour int
}

// New creates a Parser. Hours outside 0-23 fall back to DefaultHour.
func New(defaultHour int) *Parser {
	if defaultHour < 0 || defaultHour > 23 {
		defaultHour = DefaultHour
	}
	return &Parser{DefaultHour: defaultHour}
}

// Parse looks for the longest leading date/time expression in text, resolved
// in loc relative to now. On success it returns the instant (in loc) and the
// text that follows the expression. On failure it returns ok=false and text
// unchanged.
func (p *Parser) Parse(text string, loc *time.Location, now time.Time) (time.Time, string, bool) {
	tokens := tokenize(text)
	starts := fieldStarts(text)

	for n := len(tokens); n >= minPrefixTokens; n-- {
		if t, ok := p.parsePhrase(tokens[:n], loc, now); ok {
			return t, rest(text, starts, n), true
		}
	}

	return time.Time{}, text, false
}

// ParseExpression parses text as a single date/time expression with nothing
// after it. Used when the whole input is known to be a time, e.g. a reschedule.
func (p *Parser) ParseExpression(text string, loc *time.Location, now time.Time) (time.Time, bool) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return time.Time{}, false
	}
	return p.parsePhrase(tokens, loc, now)
}

type dateKind int

const (
	noDate dateKind = iota
	relativeDay
	weekdayDate
	calendarDate
)

type dateSpec struct {
	kind    dateKind
	offset  int // relativeDay
	weekday time.Weekday
	day     int
	month   time.Month
	year    int // 0 when not given
}

type timeSpec struct {
	set          bool
	hour, minute int
}

// parsePhrase succeeds only when every token belongs to the expression.
func (p *Parser) parsePhrase(tokens []string, loc *time.Location, now time.Time) (time.Time, bool) {
	if tokens[0] == "через" {
		d, ok := relativeDuration(tokens[1:])
		if !ok {
			return time.Time{}, false
		}
		return now.Add(d).In(loc), true
	}

	var (
		date dateSpec
		tm   timeSpec
		i    int
	)

	if d, n := scanDate(tokens, 0); n > 0 {
		date, i = d, n
		if t, n := scanTime(tokens, i); n > 0 {
			tm, i = t, i+n
		}
	} else if t, n := scanTime(tokens, 0); n > 0 {
		tm, i = t, n
		if d, n := scanDate(tokens, i); n > 0 {
			date, i = d, i+n
		}
	}

	if i == 0 || i != len(tokens) {
		return time.Time{}, false
	}

	return p.resolve(date, tm, loc, now)
}

func (p *Parser) resolve(date dateSpec, tm timeSpec, loc *time.Location, now time.Time) (time.Time, bool) {
	local := now.In(loc)
	hour, minute := p.DefaultHour, 0
	if tm.set {
		hour, minute = tm.hour, tm.minute
	}

	on := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, hour, minute, 0, 0, loc)
	}
	y, m, d := local.Date()

	switch date.kind {
	case noDate:
		t := on(y, m, d)
		if !t.After(now) {
			t = on(y, m, d+1)
		}
		return t, true

	case relativeDay:
		return on(y, m, d+date.offset), true

	case weekdayDate:
		delta := (int(date.weekday) - int(local.Weekday()) + 7) % 7
		t := on(y, m, d+delta)
		if !t.After(now) {
			t = on(y, m, d+delta+7)
		}
		return t, true

	case calendarDate:
		if date.year != 0 {
			if date.day > daysIn(date.year, date.month) {
				return time.Time{}, false
			}
			return on(date.year, date.month, date.day), true
		}
		// No year: the nearest future occurrence. Feb 29 may need a few years.
		for year := y; year <= y+8; year++ {
			if date.day > daysIn(year, date.month) {
				continue
			}
			if t := on(year, date.month, date.day); t.After(now) {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

func scanDate(tokens []string, i int) (dateSpec, int) {
	if i >= len(tokens) {
		return dateSpec{}, 0
	}
	tok := tokens[i]

	if offset, ok := relativeDays[tok]; ok {
		return dateSpec{kind: relativeDay, offset: offset}, 1
	}

	if isAt(tok) && i+1 < len(tokens) {
		if wd, ok := weekdays[tokens[i+1]]; ok {
			return dateSpec{kind: weekdayDate, weekday: wd}, 2
		}
	}
	if wd, ok := weekdays[tok]; ok {
		return dateSpec{kind: weekdayDate, weekday: wd}, 1
	}

	if day, ok := number(tok, 2); ok && i+1 < len(tokens) {
		month, ok := months[tokens[i+1]]
		if !ok || day < 1 || day > daysIn(2024, month) {
			return dateSpec{}, 0
		}
		spec := dateSpec{kind: calendarDate, day: day, month: month}
		if i+2 < len(tokens) && len(tokens[i+2]) == 4 {
			if year, ok := number(tokens[i+2], 4); ok {
				spec.year = year
				return spec, 3
			}
		}
		return spec, 2
	}

	if spec, ok := dotted(tok); ok {
		return spec, 1
	}

	return dateSpec{}, 0
}

// dotted parses "DD.MM" and "DD.MM.YYYY".
func dotted(tok string) (dateSpec, bool) {
	parts := strings.Split(tok, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return dateSpec{}, false
	}

	day, ok := number(parts[0], 2)
	if !ok {
		return dateSpec{}, false
	}
	m, ok := number(parts[1], 2)
	if !ok || m < 1 || m > 12 {
		return dateSpec{}, false
	}
	spec := dateSpec{kind: calendarDate, day: day, month: time.Month(m)}

	if len(parts) == 3 {
		if len(parts[2]) != 4 {
			return dateSpec{}, false
		}
		if spec.year, ok = number(parts[2], 4); !ok {
			return dateSpec{}, false
		}
	}

	if day < 1 || day > daysIn(2024, spec.month) {
		return dateSpec{}, false
	}
	return spec, true
}

// scanTime reads "[в] HH:MM", "в HH [часов]", each optionally followed by
// утра/дня/вечера/ночи. A bare number without "в" is never a time: it is a
// day of month.
func scanTime(tokens []string, i int) (timeSpec, int) {
	j := i
	at := j < len(tokens) && isAt(tokens[j])
	if at {
		j++
	}
	if j >= len(tokens) {
		return timeSpec{}, 0
	}

	var hour, minute int
	if h, m, ok := clock(tokens[j]); ok {
		hour, minute = h, m
	} else if h, ok := number(tokens[j], 2); ok && at && h <= 23 {
		hour = h
	} else {
		return timeSpec{}, 0
	}
	j++

	if j < len(tokens) && isHourWord(tokens[j]) {
		j++
	}
	if j < len(tokens) {
		if h, ok := dayPeriod(tokens[j], hour); ok {
			hour = h
			j++
		}
	}

	return timeSpec{set: true, hour: hour, minute: minute}, j - i
}

// relativeDuration handles the tail of "через N <unit>", "через <unit>" and
// "через полчаса".
func relativeDuration(tokens []string) (time.Duration, bool) {
	switch len(tokens) {
	case 1:
		if tokens[0] == "полчаса" {
			return 30 * time.Minute, true
		}
		unit, ok := units[tokens[0]]
		return unit, ok
	case 2:
		n, ok := number(tokens[0], 4)
		if !ok || n == 0 {
			return 0, false
		}
		unit, ok := units[tokens[1]]
		if !ok {
			return 0, false
		}
		return time.Duration(n) * unit, true
	}
	return 0, false
}

// fieldStarts returns the byte offset of every whitespace-separated field.
func fieldStarts(text string) []int {
	var starts []int
	inField := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if !space && !inField {
			starts = append(starts, i)
		}
		inField = !space
	}
	return starts
}

// rest returns the original text from field n onward.
func rest(text string, starts []int, n int) string {
	if n >= len(starts) {
		return ""
	}
	return strings.TrimRightFunc(text[starts[n]:], unicode.IsSpace)
}
