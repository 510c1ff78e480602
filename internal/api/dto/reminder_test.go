package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/reminder-notifier/internal/model"
)

func TestFromModel(t *testing.T) {
	r := model.Reminder{
		ID:          "alice_1",
		Destination: "telegram:42",
		Text:        "купить хлеб",
		FireAt:      time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC),
		Timezone:    "Asia/Vladivostok",
	}

	got := FromModel(r, 0)
	assert.Equal(t, "2024-05-11T10:00:00+10:00", got.FireAt)
	assert.Equal(t, "Однократно (11 мая в 10:00)", got.Schedule)
	assert.Zero(t, got.Index)
}

func TestFromModels(t *testing.T) {
	rs := []model.Reminder{
		{ID: "a", Recurrence: &model.Recurrence{Kind: model.Weekly, Weekday: time.Monday, Hour: 8, Minute: 30}},
		{ID: "b", Recurrence: &model.Recurrence{Kind: model.Monthly, Day: 15, Hour: 12}},
	}

	got := FromModels(rs)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, "Еженедельно (понедельник в 08:30)", got[0].Schedule)
	assert.Equal(t, 2, got[1].Index)
	assert.Equal(t, "Ежемесячно (день 15 в 12:00)", got[1].Schedule)

	assert.NotNil(t, FromModels(nil))
}
