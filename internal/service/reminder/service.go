package reminder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/reminder-notifier/internal/dateparse"
	"github.com/aliskhannn/reminder-notifier/internal/model"
	reminderrepo "github.com/aliskhannn/reminder-notifier/internal/repository/reminder"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/reminder/mock.go -package=mocks

var (
	ErrUnknownTimezone = errors.New("unknown timezone")
	ErrUnknownChannel  = errors.New("unknown channel")
)

type reminderRepository interface {
	CreateReminder(context.Context, model.Reminder) (string, error)
	ListByOwner(context.Context, string) ([]model.Reminder, error)
	GetReminder(context.Context, string) (model.Reminder, error)
	UpdateSchedule(ctx context.Context, id string, fireAt time.Time, timezone string, rec *model.Recurrence) error
	DeleteReminder(context.Context, string) error
}

type timezoneRepository interface {
	GetZone(ctx context.Context, owner string) (string, bool, error)
	SetZone(ctx context.Context, owner, zone string) error
}

type Notifier interface {
	Send(to string, msg string) error
}

// Config holds the service defaults.
type Config struct {
	DefaultZone    string // used for owners that never set one
	DefaultChannel string // used for destinations without a "channel:" prefix
}

type Service struct {
	reminders reminderRepository
	zones     timezoneRepository
	notifiers map[string]Notifier
	parser    *dateparse.Parser
	clock     clock.Clock
	cfg       Config
}

func NewService(
	reminders reminderRepository,
	zones timezoneRepository,
	notifiers map[string]Notifier,
	parser *dateparse.Parser,
	clk clock.Clock,
	cfg Config,
) *Service {
	return &Service{
		reminders: reminders,
		zones:     zones,
		notifiers: notifiers,
		parser:    parser,
		clock:     clk,
		cfg:       cfg,
	}
}

// CreateFromText creates a one-off reminder from free text such as
// "завтра в 10:00 купить хлеб". The text left after the date expression
// becomes the note; when nothing is left the whole input is used.
func (s *Service) CreateFromText(ctx context.Context, owner, destination, text string) (model.Reminder, error) {
	zone, loc, err := s.location(ctx, owner)
	if err != nil {
		return model.Reminder{}, err
	}

	fireAt, note, ok := s.parser.Parse(text, loc, s.clock.Now())
	if !ok {
		return model.Reminder{}, fmt.Errorf("%w: %q", dateparse.ErrUnrecognized, text)
	}
	if note == "" {
		note = strings.TrimSpace(text)
	}

	return s.create(ctx, model.Reminder{
		Owner:       owner,
		Destination: destination,
		Text:        note,
		FireAt:      fireAt,
		Timezone:    zone,
	})
}

// CreateDated creates a one-off reminder from "D <month> HH:MM <task>".
func (s *Service) CreateDated(ctx context.Context, owner, destination, text string) (model.Reminder, dateparse.RecurrenceSpec, error) {
	return s.createStructured(ctx, owner, destination, text, dateparse.ParseDated)
}

// CreateWeekly creates a weekly reminder from "<weekday> HH:MM <task>".
func (s *Service) CreateWeekly(ctx context.Context, owner, destination, text string) (model.Reminder, dateparse.RecurrenceSpec, error) {
	return s.createStructured(ctx, owner, destination, text, dateparse.ParseWeekly)
}

// CreateMonthly creates a monthly reminder from "D HH:MM <task>".
func (s *Service) CreateMonthly(ctx context.Context, owner, destination, text string) (model.Reminder, dateparse.RecurrenceSpec, error) {
	return s.createStructured(ctx, owner, destination, text, dateparse.ParseMonthly)
}

func (s *Service) createStructured(
	ctx context.Context,
	owner, destination, text string,
	parse func(string) (dateparse.RecurrenceSpec, error),
) (model.Reminder, dateparse.RecurrenceSpec, error) {
	spec, err := parse(text)
	if err != nil {
		return model.Reminder{}, dateparse.RecurrenceSpec{}, fmt.Errorf("parse schedule: %w", err)
	}

	zone, loc, err := s.location(ctx, owner)
	if err != nil {
		return model.Reminder{}, dateparse.RecurrenceSpec{}, err
	}

	rem, err := s.create(ctx, model.Reminder{
		Owner:       owner,
		Destination: destination,
		Text:        spec.Task,
		FireAt:      spec.FirstFireAt(loc, s.clock.Now()),
		Recurrence:  spec.Recurrence(),
		Timezone:    zone,
	})

	return rem, spec, err
}

// create stores the reminder. A persistence failure still returns the live
// reminder along with the error.
func (s *Service) create(ctx context.Context, rem model.Reminder) (model.Reminder, error) {
	id, err := s.reminders.CreateReminder(ctx, rem)
	if id != "" {
		rem.ID = id
		rem.FireAt = rem.FireAt.UTC()
	}
	if err != nil {
		return rem, fmt.Errorf("create reminder: %w", err)
	}

	zlog.Logger.Info().Str("id", id).Str("owner", rem.Owner).Time("fire_at", rem.FireAt).Msg("reminder created")

	return rem, nil
}

// List returns the owner's reminders in creation order.
func (s *Service) List(ctx context.Context, owner string) ([]model.Reminder, error) {
	reminders, err := s.reminders.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	return reminders, nil
}

// Delete removes one of the owner's reminders. ref is either a reminder id or
// a 1-based position in the List output.
func (s *Service) Delete(ctx context.Context, owner, ref string) (model.Reminder, error) {
	rem, err := s.resolve(ctx, owner, ref)
	if err != nil {
		return model.Reminder{}, err
	}

	if err := s.reminders.DeleteReminder(ctx, rem.ID); err != nil {
		return rem, fmt.Errorf("delete reminder: %w", err)
	}

	return rem, nil
}

func (s *Service) resolve(ctx context.Context, owner, ref string) (model.Reminder, error) {
	reminders, err := s.List(ctx, owner)
	if err != nil {
		return model.Reminder{}, err
	}

	for _, rem := range reminders {
		if rem.ID == ref {
			return rem, nil
		}
	}

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(reminders) {
		return reminders[n-1], nil
	}

	return model.Reminder{}, reminderrepo.ErrReminderNotFound
}

// Reschedule moves one of the owner's reminders to the time described by
// text, keeping its id and note. A recurring reminder given a weekly or
// monthly schedule ("понедельник в 09:00") keeps recurring on the new rule;
// any other expression turns the reminder into a one-off.
func (s *Service) Reschedule(ctx context.Context, owner, id, text string) (model.Reminder, error) {
	rem, err := s.reminders.GetReminder(ctx, id)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("get reminder: %w", err)
	}
	if rem.Owner != owner {
		return model.Reminder{}, reminderrepo.ErrReminderNotFound
	}

	zone, loc, err := s.location(ctx, owner)
	if err != nil {
		return model.Reminder{}, err
	}
	now := s.clock.Now()

	var (
		fireAt time.Time
		rule   *model.Recurrence
	)

	spec, specErr := dateparse.ParseSchedule(text)
	switch {
	case rem.IsRecurring() && specErr == nil && spec.Recurrence() != nil:
		rule = spec.Recurrence()
		fireAt = spec.FirstFireAt(loc, now)
	default:
		t, ok := s.parser.ParseExpression(text, loc, now)
		if !ok {
			return model.Reminder{}, fmt.Errorf("%w: %q", dateparse.ErrUnrecognized, text)
		}
		fireAt = t.UTC()
	}

	rem.FireAt = fireAt
	rem.Recurrence = rule
	rem.Timezone = zone

	if err := s.reminders.UpdateSchedule(ctx, rem.ID, fireAt, zone, rule); err != nil {
		return rem, fmt.Errorf("update reminder: %w", err)
	}

	return rem, nil
}

// SetTimezone validates and stores the owner's IANA zone.
func (s *Service) SetTimezone(ctx context.Context, owner, zone string) error {
	if _, err := loadLocation(zone); err != nil {
		return err
	}

	if err := s.zones.SetZone(ctx, owner, zone); err != nil {
		return fmt.Errorf("set timezone: %w", err)
	}

	return nil
}

// Timezone returns the owner's zone, or the default when none was set.
func (s *Service) Timezone(ctx context.Context, owner string) (string, error) {
	zone, ok, err := s.zones.GetZone(ctx, owner)
	if err != nil {
		return "", fmt.Errorf("get timezone: %w", err)
	}
	if !ok || zone == "" {
		return s.cfg.DefaultZone, nil
	}

	return zone, nil
}

func (s *Service) location(ctx context.Context, owner string) (string, *time.Location, error) {
	zone, err := s.Timezone(ctx, owner)
	if err != nil {
		return "", nil, err
	}

	loc, err := loadLocation(zone)
	if err != nil {
		return "", nil, err
	}

	return zone, loc, nil
}

// loadLocation rejects "Local" so schedules never depend on the host zone.
func loadLocation(zone string) (*time.Location, error) {
	if zone == "" || zone == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, zone)
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, zone)
	}

	return loc, nil
}

// Send delivers msg to destination. A destination is either "channel:address"
// or a bare address for the default channel.
func (s *Service) Send(destination, msg string) error {
	channel, to := s.cfg.DefaultChannel, destination
	if prefix, addr, ok := strings.Cut(destination, ":"); ok {
		channel, to = prefix, addr
	}

	notifier, ok := s.notifiers[channel]
	if !ok {
		return fmt.Errorf("%w %s", ErrUnknownChannel, channel)
	}

	err := notifier.Send(to, msg)
	if err != nil {
		return fmt.Errorf("deliver reminder: %w", err)
	}

	return nil
}
