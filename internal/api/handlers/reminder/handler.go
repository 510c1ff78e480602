package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/reminder-notifier/internal/api/dto"
	"github.com/aliskhannn/reminder-notifier/internal/api/respond"
	"github.com/aliskhannn/reminder-notifier/internal/dateparse"
	"github.com/aliskhannn/reminder-notifier/internal/model"
	reminderrepo "github.com/aliskhannn/reminder-notifier/internal/repository/reminder"
	remindersvc "github.com/aliskhannn/reminder-notifier/internal/service/reminder"
)

// Format hints returned with parse failures.
const (
	hintFreeText = `expected a date expression followed by the note, e.g. "завтра в 10:00 купить хлеб"`
	hintDated    = `expected "D <month> HH:MM <task>", e.g. "15 мая в 10:00 купить хлеб"`
	hintWeekly   = `expected "<weekday> HH:MM <task>", e.g. "понедельник в 08:30 зарядка"`
	hintMonthly  = `expected "D HH:MM <task>", e.g. "15 в 12:00 проверить отчеты"`
	hintWhen     = `expected a date expression, e.g. "послезавтра в 18:00"`
)

// reminderService is what the Handler needs from the reminder service.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/reminder/mock.go -package=mocks
type reminderService interface {
	CreateFromText(ctx context.Context, owner, destination, text string) (model.Reminder, error)
	CreateDated(ctx context.Context, owner, destination, text string) (model.Reminder, dateparse.RecurrenceSpec, error)
	CreateWeekly(ctx context.Context, owner, destination, text string) (model.Reminder, dateparse.RecurrenceSpec, error)
	CreateMonthly(ctx context.Context, owner, destination, text string) (model.Reminder, dateparse.RecurrenceSpec, error)
	List(ctx context.Context, owner string) ([]model.Reminder, error)
	Delete(ctx context.Context, owner, ref string) (model.Reminder, error)
	Reschedule(ctx context.Context, owner, id, text string) (model.Reminder, error)
	SetTimezone(ctx context.Context, owner, zone string) error
	Timezone(ctx context.Context, owner string) (string, error)
}

// Handler serves the per-owner reminder endpoints.
type Handler struct {
	service   reminderService
	validator *validator.Validate
}

func NewHandler(s reminderService, v *validator.Validate) *Handler {
	return &Handler{service: s, validator: v}
}

// Create handles free-text creation of a one-off reminder.
func (h *Handler) Create(c *ginext.Context) {
	owner, req, ok := h.bindCreate(c)
	if !ok {
		return
	}

	rem, err := h.service.CreateFromText(c.Request.Context(), owner, req.Destination, req.Text)
	if err != nil {
		h.fail(c, err, hintFreeText, "failed to create reminder")
		return
	}

	respond.Created(c.Writer, dto.FromModel(rem, 0))
}

// CreateDated handles "15 мая в 10:00 купить хлеб".
func (h *Handler) CreateDated(c *ginext.Context) {
	h.createStructured(c, h.service.CreateDated, hintDated)
}

// CreateWeekly handles "понедельник в 08:30 зарядка".
func (h *Handler) CreateWeekly(c *ginext.Context) {
	h.createStructured(c, h.service.CreateWeekly, hintWeekly)
}

// CreateMonthly handles "15 в 12:00 проверить отчеты".
func (h *Handler) CreateMonthly(c *ginext.Context) {
	h.createStructured(c, h.service.CreateMonthly, hintMonthly)
}

type structuredCreate func(ctx context.Context, owner, destination, text string) (model.Reminder, dateparse.RecurrenceSpec, error)

func (h *Handler) createStructured(c *ginext.Context, create structuredCreate, hint string) {
	owner, req, ok := h.bindCreate(c)
	if !ok {
		return
	}

	rem, spec, err := create(c.Request.Context(), owner, req.Destination, req.Text)
	if err != nil {
		h.fail(c, err, hint, "failed to create reminder")
		return
	}

	out := dto.FromModel(rem, 0)
	out.Schedule = spec.Description()
	respond.Created(c.Writer, out)
}

// List returns the owner's reminders numbered from 1.
func (h *Handler) List(c *ginext.Context) {
	owner, ok := ownerParam(c)
	if !ok {
		return
	}

	reminders, err := h.service.List(c.Request.Context(), owner)
	if err != nil {
		h.fail(c, err, "", "failed to list reminders")
		return
	}

	respond.OK(c.Writer, dto.FromModels(reminders))
}

// Delete removes a reminder by id or by its number in the listing.
func (h *Handler) Delete(c *ginext.Context) {
	owner, ok := ownerParam(c)
	if !ok {
		return
	}

	ref := c.Param("ref")
	if ref == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing reminder reference"))
		return
	}

	rem, err := h.service.Delete(c.Request.Context(), owner, ref)
	if err != nil {
		h.fail(c, err, "", "failed to delete reminder")
		return
	}

	respond.OK(c.Writer, dto.FromModel(rem, 0))
}

// Reschedule moves a reminder to a new time, keeping its id.
func (h *Handler) Reschedule(c *ginext.Context) {
	owner, ok := ownerParam(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return
	}

	var req dto.RescheduleRequest
	if !h.bind(c, &req) {
		return
	}

	rem, err := h.service.Reschedule(c.Request.Context(), owner, id, req.When)
	if err != nil {
		h.fail(c, err, hintWhen, "failed to reschedule reminder")
		return
	}

	respond.OK(c.Writer, dto.FromModel(rem, 0))
}

// SetTimezone stores the zone used to read the owner's date expressions.
func (h *Handler) SetTimezone(c *ginext.Context) {
	owner, ok := ownerParam(c)
	if !ok {
		return
	}

	var req dto.TimezoneRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.service.SetTimezone(c.Request.Context(), owner, req.Timezone); err != nil {
		h.fail(c, err, "", "failed to set timezone")
		return
	}

	respond.OK(c.Writer, dto.TimezoneResponse{Timezone: req.Timezone})
}

// GetTimezone returns the owner's zone, or the default one.
func (h *Handler) GetTimezone(c *ginext.Context) {
	owner, ok := ownerParam(c)
	if !ok {
		return
	}

	zone, err := h.service.Timezone(c.Request.Context(), owner)
	if err != nil {
		h.fail(c, err, "", "failed to get timezone")
		return
	}

	respond.OK(c.Writer, dto.TimezoneResponse{Timezone: zone})
}

func (h *Handler) bindCreate(c *ginext.Context) (string, dto.CreateRequest, bool) {
	var req dto.CreateRequest

	owner, ok := ownerParam(c)
	if !ok {
		return "", req, false
	}

	if !h.bind(c, &req) {
		return "", req, false
	}

	return owner, req, true
}

// bind decodes and validates the JSON body, writing a 400 on failure.
func (h *Handler) bind(c *ginext.Context, req any) bool {
	if err := json.NewDecoder(c.Request.Body).Decode(req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return false
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return false
	}

	return true
}

func ownerParam(c *ginext.Context) (string, bool) {
	owner := c.Param("owner")
	if owner == "" {
		zlog.Logger.Warn().Msg("missing owner")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing owner"))
		return "", false
	}
	return owner, true
}

// fail maps service errors to status codes.
func (h *Handler) fail(c *ginext.Context, err error, hint, msg string) {
	switch {
	case errors.Is(err, dateparse.ErrUnrecognized):
		zlog.Logger.Warn().Err(err).Msg(msg)
		if hint != "" {
			err = fmt.Errorf("%w; %s", err, hint)
		}
		respond.Fail(c.Writer, http.StatusBadRequest, err)
	case errors.Is(err, remindersvc.ErrUnknownTimezone):
		zlog.Logger.Warn().Err(err).Msg(msg)
		respond.Fail(c.Writer, http.StatusBadRequest, err)
	case errors.Is(err, reminderrepo.ErrReminderNotFound):
		zlog.Logger.Warn().Err(err).Msg(msg)
		respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("reminder not found"))
	default:
		zlog.Logger.Error().Err(err).Msg(msg)
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
	}
}
