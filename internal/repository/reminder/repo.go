package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/reminder-notifier/internal/model"
	"github.com/aliskhannn/reminder-notifier/internal/storage/jsonfile"
)

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrPersistence      = errors.New("reminder storage failure")
)

// record is the on-disk shape of a reminder. FireAt keeps the offset of the
// reminder's own zone so the file reads naturally and never depends on the
// host zone.
type record struct {
	ID          string            `json:"id"`
	Owner       string            `json:"owner"`
	Destination string            `json:"destination"`
	Text        string            `json:"text"`
	FireAt      string            `json:"fire_at"`
	Timezone    string            `json:"timezone,omitempty"`
	Recurrence  *model.Recurrence `json:"recurrence,omitempty"`
}

// Repository keeps the reminder set in memory, in insertion order, and writes
// the whole set to a JSON file after every mutation.
//
// If a write fails the in-memory change is kept and the error is returned
// wrapped in ErrPersistence; the next successful write catches the file up.
type Repository struct {
	path     string
	clock    clock.Clock
	strategy retry.Strategy

	mu        sync.Mutex
	reminders []model.Reminder
}

// NewRepository creates a repository backed by the file at path. Call
// LoadAll to restore previously stored reminders.
func NewRepository(path string, clk clock.Clock, strategy retry.Strategy) *Repository {
	return &Repository{
		path:     path,
		clock:    clk,
		strategy: strategy,
	}
}

// CreateReminder assigns an id, appends the reminder and persists the set.
// The id is returned even when persisting fails, since the reminder is live
// in memory.
func (r *Repository) CreateReminder(ctx context.Context, reminder model.Reminder) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reminder.ID = r.nextID(reminder.Owner)
	reminder.FireAt = reminder.FireAt.UTC()
	r.reminders = append(r.reminders, reminder)

	return reminder.ID, r.persist()
}

// nextID combines the owner with the creation time in nanoseconds, bumping
// the timestamp until it is unused.
func (r *Repository) nextID(owner string) string {
	nanos := r.clock.Now().UnixNano()
	for {
		id := owner + "_" + strconv.FormatInt(nanos, 10)
		if r.indexOf(id) < 0 {
			return id
		}
		nanos++
	}
}

// ListByOwner returns the owner's reminders in insertion order. The slice is
// empty, not nil, when there are none.
func (r *Repository) ListByOwner(ctx context.Context, owner string) ([]model.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Reminder, 0)
	for _, rem := range r.reminders {
		if rem.Owner == owner {
			out = append(out, clone(rem))
		}
	}

	return out, nil
}

// GetReminder returns the reminder with the given id.
func (r *Repository) GetReminder(ctx context.Context, id string) (model.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return model.Reminder{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Reminder{}, ErrReminderNotFound
	}

	return clone(r.reminders[i]), nil
}

// UpdateTime moves a reminder to a new instant and zone, keeping its id and
// recurrence.
func (r *Repository) UpdateTime(ctx context.Context, id string, fireAt time.Time, timezone string) error {
	return r.update(ctx, id, func(rem *model.Reminder) {
		rem.FireAt = fireAt.UTC()
		rem.Timezone = timezone
	})
}

// UpdateSchedule replaces both the instant and the recurrence of a reminder.
// A nil recurrence turns it into a one-off.
func (r *Repository) UpdateSchedule(ctx context.Context, id string, fireAt time.Time, timezone string, rec *model.Recurrence) error {
	return r.update(ctx, id, func(rem *model.Reminder) {
		rem.FireAt = fireAt.UTC()
		rem.Timezone = timezone
		rem.Recurrence = cloneRecurrence(rec)
	})
}

func (r *Repository) update(ctx context.Context, id string, mutate func(*model.Reminder)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrReminderNotFound
	}
	mutate(&r.reminders[i])

	return r.persist()
}

// DeleteReminder removes a reminder. Deleting an absent id returns
// ErrReminderNotFound.
func (r *Repository) DeleteReminder(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrReminderNotFound
	}
	r.reminders = slices.Delete(r.reminders, i, i+1)

	return r.persist()
}

// Due returns a snapshot of every reminder whose instant is not after now.
func (r *Repository) Due(now time.Time) []model.Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()

	var due []model.Reminder
	for _, rem := range r.reminders {
		if !rem.FireAt.After(now) {
			due = append(due, clone(rem))
		}
	}

	return due
}

// Claim removes a one-off reminder that is about to fire, but only if it
// still exists with the instant the caller saw. It reports whether the
// caller owns the firing. A concurrent delete or edit makes it return false.
func (r *Repository) Claim(ctx context.Context, id string, fireAt time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 || !r.reminders[i].FireAt.Equal(fireAt) {
		return false, nil
	}
	r.reminders = slices.Delete(r.reminders, i, i+1)

	return true, r.persist()
}

// Advance re-arms a recurring reminder at next under the same conditions as Claim.
func (r *Repository) Advance(ctx context.Context, id string, fireAt, next time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 || !r.reminders[i].FireAt.Equal(fireAt) {
		return false, nil
	}
	r.reminders[i].FireAt = next.UTC()

	return true, r.persist()
}

// LoadAll replaces the in-memory set with the contents of the file. A missing
// file is an empty set. An unreadable or malformed file also leaves an empty
// set, and the returned error says why; startup is expected to carry on.
// Individual records that fail validation are skipped with a warning.
func (r *Repository) LoadAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reminders = nil

	data, err := jsonfile.Read(r.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: malformed %s: %w", ErrPersistence, r.path, err)
	}

	schema, err := recordSchema()
	if err != nil {
		return fmt.Errorf("%w: compile schema: %w", ErrPersistence, err)
	}

	for i, item := range raw {
		rem, err := decodeRecord(schema, item)
		if err != nil {
			zlog.Logger.Warn().Err(err).Int("index", i).Str("file", r.path).Msg("skipping invalid reminder record")
			continue
		}
		if r.indexOf(rem.ID) >= 0 {
			zlog.Logger.Warn().Str("id", rem.ID).Str("file", r.path).Msg("skipping duplicate reminder id")
			continue
		}
		r.reminders = append(r.reminders, rem)
	}

	return nil
}

func (r *Repository) persist() error {
	records := make([]record, 0, len(r.reminders))
	for _, rem := range r.reminders {
		records = append(records, toRecord(rem))
	}

	if err := jsonfile.Write(r.path, records, r.strategy); err != nil {
		zlog.Logger.Error().Err(err).Str("file", r.path).Msg("failed to persist reminders")
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return nil
}

func (r *Repository) indexOf(id string) int {
	return slices.IndexFunc(r.reminders, func(rem model.Reminder) bool {
		return rem.ID == id
	})
}

func toRecord(rem model.Reminder) record {
	return record{
		ID:          rem.ID,
		Owner:       rem.Owner,
		Destination: rem.Destination,
		Text:        rem.Text,
		FireAt:      rem.FireAt.In(rem.Location()).Format(time.RFC3339Nano),
		Timezone:    rem.Timezone,
		Recurrence:  rem.Recurrence,
	}
}

func decodeRecord(schema interface{ Validate(any) error }, item json.RawMessage) (model.Reminder, error) {
	dec := json.NewDecoder(bytes.NewReader(item))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return model.Reminder{}, err
	}
	if err := schema.Validate(doc); err != nil {
		return model.Reminder{}, err
	}

	var rec record
	if err := json.Unmarshal(item, &rec); err != nil {
		return model.Reminder{}, err
	}

	fireAt, err := time.Parse(time.RFC3339Nano, rec.FireAt)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("parse fire_at: %w", err)
	}

	return model.Reminder{
		ID:          rec.ID,
		Owner:       rec.Owner,
		Destination: rec.Destination,
		Text:        rec.Text,
		FireAt:      fireAt.UTC(),
		Recurrence:  rec.Recurrence,
		Timezone:    rec.Timezone,
	}, nil
}

func clone(rem model.Reminder) model.Reminder {
	rem.Recurrence = cloneRecurrence(rem.Recurrence)
	return rem
}

func cloneRecurrence(rec *model.Recurrence) *model.Recurrence {
	if rec == nil {
		return nil
	}
	c := *rec
	return &c
}
