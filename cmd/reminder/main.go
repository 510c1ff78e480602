package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/reminder-notifier/internal/api/handlers/reminder"
	"github.com/aliskhannn/reminder-notifier/internal/api/router"
	"github.com/aliskhannn/reminder-notifier/internal/api/server"
	"github.com/aliskhannn/reminder-notifier/internal/config"
	"github.com/aliskhannn/reminder-notifier/internal/dateparse"
	reminderrepo "github.com/aliskhannn/reminder-notifier/internal/repository/reminder"
	"github.com/aliskhannn/reminder-notifier/internal/repository/timezone"
	remindersvc "github.com/aliskhannn/reminder-notifier/internal/service/reminder"
	"github.com/aliskhannn/reminder-notifier/internal/worker"
	"github.com/aliskhannn/reminder-notifier/pkg/email"
	"github.com/aliskhannn/reminder-notifier/pkg/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()
	clk := clock.New()

	reminders := reminderrepo.NewRepository(cfg.Storage.RemindersFile, clk, cfg.Retry)
	if err := reminders.LoadAll(); err != nil {
		zlog.Logger.Error().Err(err).Str("file", cfg.Storage.RemindersFile).Msg("failed to load reminders, starting empty")
	}

	zones := timezone.NewRepository(cfg.Storage.TimezonesFile, cfg.Retry)
	if err := zones.LoadAll(); err != nil {
		zlog.Logger.Error().Err(err).Str("file", cfg.Storage.TimezonesFile).Msg("failed to load timezones, starting empty")
	}

	notifiers := map[string]remindersvc.Notifier{
		"telegram": telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.APIURL, cfg.Telegram.Timeout),
	}
	if cfg.Email.Enabled {
		notifiers["email"] = email.NewClient(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.Username,
			cfg.Email.Password,
			cfg.Email.From,
		)
	}

	service := remindersvc.NewService(
		reminders,
		zones,
		notifiers,
		dateparse.New(cfg.Scheduler.DefaultHour),
		clk,
		remindersvc.Config{
			DefaultZone:    cfg.Timezone.Default,
			DefaultChannel: cfg.Delivery.DefaultChannel,
		},
	)
	reminderHandler := reminder.NewHandler(service, val)

	scheduler := worker.NewScheduler(reminders, service, clk, cfg.Scheduler.PollInterval)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scheduler.Run(ctx)
	}()

	r := router.New(reminderHandler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		zlog.Logger.Info().Msgf("http server listening on %s", cfg.Server.HTTPPort)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	wg.Wait()
	zlog.Logger.Info().Msg("scheduler stopped, bye")
}
