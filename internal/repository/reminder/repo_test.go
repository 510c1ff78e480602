package reminder

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	"github.com/aliskhannn/reminder-notifier/internal/model"
)

func newTestRepo(t *testing.T) (*Repository, *clock.Mock, string) {
	t.Helper()

	clk := clock.NewMock()
	clk.Set(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))
	path := filepath.Join(t.TempDir(), "reminders.json")

	return NewRepository(path, clk, retry.Strategy{Attempts: 1}), clk, path
}

func oneOff(owner, text string, fireAt time.Time) model.Reminder {
	return model.Reminder{
		Owner:       owner,
		Destination: "telegram:42",
		Text:        text,
		FireAt:      fireAt,
		Timezone:    "Asia/Vladivostok",
	}
}

func TestRepository_CreateAndList(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	ctx := context.Background()

	fireAt := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)
	id1, err := repo.CreateReminder(ctx, oneOff("alice", "купить хлеб", fireAt))
	require.NoError(t, err)
	id2, err := repo.CreateReminder(ctx, oneOff("alice", "позвонить", fireAt))
	require.NoError(t, err)
	_, err = repo.CreateReminder(ctx, oneOff("bob", "чужое", fireAt))
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2, "ids created at the same instant must differ")
	assert.Contains(t, id1, "alice_")

	list, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, id1, list[0].ID)
	assert.Equal(t, id2, list[1].ID)

	empty, err := repo.ListByOwner(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRepository_SurvivesRestart(t *testing.T) {
	repo, clk, path := newTestRepo(t)
	ctx := context.Background()

	fireAt := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)
	oneID, err := repo.CreateReminder(ctx, oneOff("alice", "купить хлеб", fireAt))
	require.NoError(t, err)

	weekly := oneOff("alice", "зарядка", time.Date(2024, 5, 12, 22, 30, 0, 0, time.UTC))
	weekly.Recurrence = &model.Recurrence{Kind: model.Weekly, Weekday: time.Monday, Hour: 8, Minute: 30}
	weeklyID, err := repo.CreateReminder(ctx, weekly)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"fire_at": "2024-05-11T10:00:00+10:00"`)

	restarted := NewRepository(path, clk, retry.Strategy{Attempts: 1})
	require.NoError(t, restarted.LoadAll())

	list, err := restarted.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, oneID, list[0].ID)
	assert.True(t, fireAt.Equal(list[0].FireAt))
	assert.Nil(t, list[0].Recurrence)

	assert.Equal(t, weeklyID, list[1].ID)
	assert.Equal(t, weekly.Recurrence, list[1].Recurrence)
	assert.Equal(t, "Asia/Vladivostok", list[1].Timezone)
}

func TestRepository_DeleteTwice(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateReminder(ctx, oneOff("alice", "x", time.Now()))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteReminder(ctx, id))
	assert.ErrorIs(t, repo.DeleteReminder(ctx, id), ErrReminderNotFound)

	_, err = repo.GetReminder(ctx, id)
	assert.ErrorIs(t, err, ErrReminderNotFound)
}

func TestRepository_UpdateKeepsID(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateReminder(ctx, oneOff("alice", "x", time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	moved := time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateTime(ctx, id, moved, "Europe/Moscow"))

	got, err := repo.GetReminder(ctx, id)
	require.NoError(t, err)
	assert.True(t, moved.Equal(got.FireAt))
	assert.Equal(t, "Europe/Moscow", got.Timezone)

	rec := &model.Recurrence{Kind: model.Monthly, Day: 15, Hour: 12}
	require.NoError(t, repo.UpdateSchedule(ctx, id, moved, "Europe/Moscow", rec))

	got, err = repo.GetReminder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rec, got.Recurrence)

	assert.ErrorIs(t, repo.UpdateTime(ctx, "missing", moved, ""), ErrReminderNotFound)
}

func TestRepository_DueClaimAdvance(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	ctx := context.Background()

	now := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)
	pastID, err := repo.CreateReminder(ctx, oneOff("alice", "past", now.Add(-time.Minute)))
	require.NoError(t, err)
	_, err = repo.CreateReminder(ctx, oneOff("alice", "future", now.Add(time.Hour)))
	require.NoError(t, err)

	due := repo.Due(now)
	require.Len(t, due, 1)
	assert.Equal(t, pastID, due[0].ID)

	ok, err := repo.Claim(ctx, pastID, now.Add(-2*time.Minute))
	require.NoError(t, err)
	assert.False(t, ok, "claim with a stale instant must fail")

	ok, err = repo.Claim(ctx, pastID, due[0].FireAt)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Claim(ctx, pastID, due[0].FireAt)
	require.NoError(t, err)
	assert.False(t, ok, "second claim must fail")

	rec := oneOff("alice", "weekly", now.Add(-time.Minute))
	rec.Recurrence = &model.Recurrence{Kind: model.Weekly, Weekday: time.Saturday, Hour: 10}
	weeklyID, err := repo.CreateReminder(ctx, rec)
	require.NoError(t, err)

	next := now.Add(7 * 24 * time.Hour)
	ok, err = repo.Advance(ctx, weeklyID, now.Add(-time.Minute), next)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Advance(ctx, weeklyID, now.Add(-time.Minute), next)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetReminder(ctx, weeklyID)
	require.NoError(t, err)
	assert.True(t, next.Equal(got.FireAt))
}

func TestRepository_LoadAll_Malformed(t *testing.T) {
	repo, _, path := newTestRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	err := repo.LoadAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)

	list, err := repo.ListByOwner(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRepository_LoadAll_SkipsInvalidRecords(t *testing.T) {
	repo, _, path := newTestRepo(t)
	content := `[
  {"id": "alice_1", "owner": "alice", "destination": "telegram:1", "text": "ok", "fire_at": "2024-05-11T10:00:00+10:00", "timezone": "Asia/Vladivostok"},
  {"id": "alice_2", "owner": "alice", "text": "bad time", "fire_at": "tomorrow"},
  {"id": "alice_3", "owner": "alice", "text": "bad rule", "fire_at": "2024-05-11T10:00:00+10:00", "recurrence": {"kind": "daily", "hour": 8, "minute": 0}},
  {"owner": "alice", "text": "no id", "fire_at": "2024-05-11T10:00:00+10:00"},
  {"id": "alice_4", "owner": "alice", "text": "null rule", "fire_at": "2024-05-12T10:00:00+10:00", "recurrence": null}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, repo.LoadAll())

	list, err := repo.ListByOwner(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alice_1", list[0].ID)
	assert.Equal(t, "alice_4", list[1].ID)
	assert.False(t, list[1].IsRecurring())
}

func TestRepository_LoadAll_MissingFile(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	require.NoError(t, repo.LoadAll())

	list, err := repo.ListByOwner(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRepository_PersistFailureKeepsMemory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	repo := NewRepository(filepath.Join(blocker, "reminders.json"), clock.NewMock(), retry.Strategy{Attempts: 1})
	ctx := context.Background()

	id, err := repo.CreateReminder(ctx, oneOff("alice", "x", time.Now()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.NotEmpty(t, id)

	got, err := repo.GetReminder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Text)
}

func TestRepository_CanceledContext(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.CreateReminder(ctx, oneOff("alice", "x", time.Now()))
	assert.ErrorIs(t, err, context.Canceled)
}
