package dateparse

import (
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"января": time.January, "январь": time.January, "янв": time.January,
	"февраля": time.February, "февраль": time.February, "фев": time.February,
	"марта": time.March, "март": time.March, "мар": time.March,
	"апреля": time.April, "апрель": time.April, "апр": time.April,
	"мая": time.May, "май": time.May,
	"июня": time.June, "июнь": time.June, "июн": time.June,
	"июля": time.July, "июль": time.July, "июл": time.July,
	"августа": time.August, "август": time.August, "авг": time.August,
	"сентября": time.September, "сентябрь": time.September, "сен": time.September,
	"октября": time.October, "октябрь": time.October, "окт": time.October,
	"ноября": time.November, "ноябрь": time.November, "ноя": time.November,
	"декабря": time.December, "декабрь": time.December, "дек": time.December,
}

var monthGenitive = [...]string{
	time.January: "января", time.February: "февраля", time.March: "марта",
	time.April: "апреля", time.May: "мая", time.June: "июня",
	time.July: "июля", time.August: "августа", time.September: "сентября",
	time.October: "октября", time.November: "ноября", time.December: "декабря",
}

var weekdays = map[string]time.Weekday{
	"понедельник": time.Monday, "пн": time.Monday,
	"вторник": time.Tuesday, "вт": time.Tuesday,
	"среда": time.Wednesday, "среду": time.Wednesday, "ср": time.Wednesday,
	"четверг": time.Thursday, "чт": time.Thursday,
	"пятница": time.Friday, "пятницу": time.Friday, "пт": time.Friday,
	"суббота": time.Saturday, "субботу": time.Saturday, "сб": time.Saturday,
	"воскресенье": time.Sunday, "вс": time.Sunday,
}

var weekdayNames = [...]string{
	time.Sunday: "воскресенье", time.Monday: "понедельник", time.Tuesday: "вторник",
	time.Wednesday: "среда", time.Thursday: "четверг", time.Friday: "пятница",
	time.Saturday: "суббота",
}

var relativeDays = map[string]int{
	"сегодня":     0,
	"завтра":      1,
	"послезавтра": 2,
}

var units = map[string]time.Duration{
	"минуту": time.Minute, "минуты": time.Minute, "минут": time.Minute, "мин": time.Minute,
	"час": time.Hour, "часа": time.Hour, "часов": time.Hour,
	"день": 24 * time.Hour, "дня": 24 * time.Hour, "дней": 24 * time.Hour,
	"неделю": 7 * 24 * time.Hour, "недели": 7 * 24 * time.Hour, "недель": 7 * 24 * time.Hour,
}

// "в"/"во" marks the token that follows as a time of day or a weekday.
func isAt(tok string) bool {
	return tok == "в" || tok == "во"
}

func isHourWord(tok string) bool {
	return tok == "час" || tok == "часа" || tok == "часов"
}

// dayPeriod shifts a 12-hour clock reading by the period word that follows it.
func dayPeriod(tok string, hour int) (int, bool) {
	switch tok {
	case "утра":
		return hour, hour >= 3 && hour <= 11
	case "дня":
		if hour >= 1 && hour <= 6 {
			hour += 12
		}
		return hour, hour >= 11 && hour <= 18
	case "вечера":
		if hour >= 3 && hour <= 11 {
			hour += 12
		}
		return hour, hour >= 15 && hour <= 23
	case "ночи":
		if hour == 12 {
			hour = 0
		}
		return hour, hour <= 5
	}
	return hour, false
}

func tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, len(fields))
	for i, f := range fields {
		tokens[i] = normalize(f)
	}
	return tokens
}

func normalize(tok string) string {
	return strings.TrimRight(strings.ToLower(tok), ",;!?")
}

// number parses a run of 1..maxLen ASCII digits.
func number(s string, maxLen int) (int, bool) {
	if s == "" || len(s) > maxLen {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// clock parses "H:MM" or "HH:MM".
func clock(s string) (hour, minute int, ok bool) {
	h, m, found := strings.Cut(s, ":")
	if !found || len(m) != 2 {
		return 0, 0, false
	}

	hour, ok = number(h, 2)
	if !ok || hour > 23 {
		return 0, 0, false
	}
	minute, ok = number(m, 2)
	if !ok || minute > 59 {
		return 0, 0, false
	}

	return hour, minute, true
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
