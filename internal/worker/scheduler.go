package worker

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/reminder-notifier/internal/model"
)

//go:generate mockgen -source=scheduler.go -destination=../mocks/worker/mock.go -package=mocks

const DefaultInterval = 30 * time.Second

type reminderStore interface {
	Due(now time.Time) []model.Reminder
	Claim(ctx context.Context, id string, fireAt time.Time) (bool, error)
	Advance(ctx context.Context, id string, fireAt, next time.Time) (bool, error)
}

type sender interface {
	Send(destination, msg string) error
}

// Scheduler polls the store and delivers reminders that are due.
type Scheduler struct {
	store    reminderStore
	sender   sender
	clock    clock.Clock
	interval time.Duration
}

func NewScheduler(store reminderStore, s sender, clk clock.Clock, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Scheduler{
		store:    store,
		sender:   s,
		clock:    clk,
		interval: interval,
	}
}

// Run ticks until ctx is done. The first tick happens immediately so
// reminders that came due while the process was down fire on startup.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := s.clock.Ticker(s.interval)
	defer ticker.Stop()

	zlog.Logger.Printf("scheduler started, interval %s", s.interval)

	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Print("scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick fires every reminder due at the current time and returns how many
// were delivered or attempted.
//
// A one-off is claimed (removed) before delivery and a recurring reminder is
// advanced before delivery, both conditional on the instant still being the
// one that was read. A reminder deleted or edited in between is skipped, and
// no reminder fires twice. Delivery is attempted once; a failed one-off is
// not retried.
func (s *Scheduler) Tick(ctx context.Context) int {
	now := s.clock.Now()
	fired := 0

	for _, rem := range s.store.Due(now) {
		if ctx.Err() != nil {
			break
		}
		if s.fire(ctx, rem, now) {
			fired++
		}
	}

	return fired
}

func (s *Scheduler) fire(ctx context.Context, rem model.Reminder, now time.Time) bool {
	var (
		ok  bool
		err error
	)

	if rem.IsRecurring() {
		next := rem.Recurrence.Next(now, rem.Location())
		ok, err = s.store.Advance(ctx, rem.ID, rem.FireAt, next)
	} else {
		ok, err = s.store.Claim(ctx, rem.ID, rem.FireAt)
	}

	if err != nil {
		// The state change is applied in memory even if the file write
		// failed, so the reminder is still ours to deliver.
		zlog.Logger.Error().Err(err).Str("id", rem.ID).Msg("failed to persist fired reminder")
	}
	if !ok {
		zlog.Logger.Printf("reminder %s changed before firing, skipping", rem.ID)
		return false
	}

	if err := s.sender.Send(rem.Destination, Render(rem)); err != nil {
		zlog.Logger.Error().Err(err).Str("id", rem.ID).Str("destination", rem.Destination).Msg("failed to deliver reminder")
	} else {
		zlog.Logger.Info().Str("id", rem.ID).Msg("reminder fired")
	}

	return true
}

// Render builds the message delivered for a reminder.
func Render(rem model.Reminder) string {
	return "🔔 Напоминание: " + rem.Text
}
