package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/reminder-notifier/internal/model"
)

func TestParseRecurrence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want RecurrenceSpec
		desc string
	}{
		{
			name: "monthly",
			text: "15 в 12:00 проверить отчеты",
			want: RecurrenceSpec{Kind: KindMonthly, Day: 15, Hour: 12, Minute: 0, Task: "проверить отчеты"},
			desc: "Ежемесячно (день 15 в 12:00)",
		},
		{
			name: "monthly with числа and bare hour",
			text: "5 числа в 9 оплатить интернет",
			want: RecurrenceSpec{Kind: KindMonthly, Day: 5, Hour: 9, Minute: 0, Task: "оплатить интернет"},
			desc: "Ежемесячно (день 5 в 09:00)",
		},
		{
			name: "weekly",
			text: "понедельник в 08:30 зарядка",
			want: RecurrenceSpec{Kind: KindWeekly, Weekday: time.Monday, Hour: 8, Minute: 30, Task: "зарядка"},
			desc: "Еженедельно (понедельник в 08:30)",
		},
		{
			name: "weekly mixed case with каждую",
			text: "Каждую ПЯТНИЦУ 9:00 Отчёт",
			want: RecurrenceSpec{Kind: KindWeekly, Weekday: time.Friday, Hour: 9, Minute: 0, Task: "Отчёт"},
			desc: "Еженедельно (пятница в 09:00)",
		},
		{
			name: "dated",
			text: "15 мая в 10:00 купить хлеб",
			want: RecurrenceSpec{Kind: KindDated, Day: 15, Month: time.May, Hour: 10, Minute: 0, Task: "купить хлеб"},
			desc: "Однократно (15 мая в 10:00)",
		},
		{
			name: "dated without marker",
			text: "1 Января 00:05 поздравить",
			want: RecurrenceSpec{Kind: KindDated, Day: 1, Month: time.January, Hour: 0, Minute: 5, Task: "поздравить"},
			desc: "Однократно (1 января в 00:05)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecurrence(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, got.Description(), tt.desc)
		})
	}
}

func TestParseRecurrence_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"unknown month", "15 мйа 10:00 купить", ErrUnknownMonth},
		{"unknown weekday", "пятниц 10:00 отчёт", ErrUnknownWeekday},
		{"hour out of range", "15 в 25:00 отчёт", ErrBadTime},
		{"ambiguous bare hour", "15 12 отчёт", ErrBadTime},
		{"missing task", "понедельник 08:30", ErrMissingTask},
		{"day out of range", "32 в 10:00 отчёт", ErrBadDay},
		{"impossible date", "30 февраля в 10:00 отчёт", ErrBadDay},
		{"empty", "", ErrUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecurrence(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrUnrecognized)
		})
	}
}

func TestParseWeeklyAndMonthly_RejectOtherForms(t *testing.T) {
	_, err := ParseWeekly("15 в 12:00 проверить отчеты")
	assert.ErrorIs(t, err, ErrUnknownWeekday)

	_, err = ParseMonthly("понедельник в 08:30 зарядка")
	assert.ErrorIs(t, err, ErrBadDay)

	_, err = ParseDated("15 в 12:00 проверить отчеты")
	assert.ErrorIs(t, err, ErrUnknownMonth)
}

func TestRecurrenceSpec_Recurrence(t *testing.T) {
	weekly := RecurrenceSpec{Kind: KindWeekly, Weekday: time.Monday, Hour: 8, Minute: 30}
	assert.Equal(t, &model.Recurrence{Kind: model.Weekly, Weekday: time.Monday, Hour: 8, Minute: 30}, weekly.Recurrence())

	monthly := RecurrenceSpec{Kind: KindMonthly, Day: 15, Hour: 12}
	assert.Equal(t, &model.Recurrence{Kind: model.Monthly, Day: 15, Hour: 12}, monthly.Recurrence())

	assert.Nil(t, RecurrenceSpec{Kind: KindDated, Day: 1, Month: time.May}.Recurrence())
}

func TestRecurrenceSpec_FirstFireAt(t *testing.T) {
	loc := vladivostok(t)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, loc)

	monthly := RecurrenceSpec{Kind: KindMonthly, Day: 15, Hour: 12}
	assert.True(t, time.Date(2024, 5, 15, 12, 0, 0, 0, loc).Equal(monthly.FirstFireAt(loc, now)))

	dated := RecurrenceSpec{Kind: KindDated, Day: 1, Month: time.May, Hour: 10}
	assert.True(t, time.Date(2025, 5, 1, 10, 0, 0, 0, loc).Equal(dated.FirstFireAt(loc, now)))

	leap := RecurrenceSpec{Kind: KindDated, Day: 29, Month: time.February, Hour: 10}
	assert.True(t, time.Date(2028, 2, 29, 10, 0, 0, 0, loc).Equal(leap.FirstFireAt(loc, now)))
}

func TestParseSchedule(t *testing.T) {
	got, err := ParseSchedule("понедельник в 09:00")
	require.NoError(t, err)
	assert.Equal(t, RecurrenceSpec{Kind: KindWeekly, Weekday: time.Monday, Hour: 9}, got)

	got, err = ParseSchedule("каждое 20 числа в 18:30")
	require.NoError(t, err)
	assert.Equal(t, RecurrenceSpec{Kind: KindMonthly, Day: 20, Hour: 18, Minute: 30}, got)

	_, err = ParseSchedule("понедельник в 09:00 зарядка")
	assert.ErrorIs(t, err, ErrUnrecognized)

	_, err = ParseSchedule("завтра в 10")
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}
