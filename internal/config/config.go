package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// Config holds the main configuration for the application.
type Config struct {
	Server    Server         `mapstructure:"server"`
	Storage   Storage        `mapstructure:"storage"`
	Scheduler Scheduler      `mapstructure:"scheduler"`
	Timezone  Timezone       `mapstructure:"timezone"`
	Delivery  Delivery       `mapstructure:"delivery"`
	Email     Email          `mapstructure:"email"`
	Telegram  Telegram       `mapstructure:"telegram"`
	Retry     retry.Strategy `mapstructure:"retry"` // applied to storage writes
}

// Server holds HTTP server-related configuration.
type Server struct {
	HTTPPort        string        `mapstructure:"http_port"` // address to listen on, e.g. ":8080"
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Storage holds the paths of the JSON data files.
type Storage struct {
	RemindersFile string `mapstructure:"reminders_file"`
	TimezonesFile string `mapstructure:"timezones_file"`
}

// Scheduler holds the polling loop settings.
type Scheduler struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	DefaultHour  int           `mapstructure:"default_hour"` // used when an expression has a date but no time
}

// Timezone holds the zone assumed for owners that never set one.
type Timezone struct {
	Default string `mapstructure:"default"`
}

// Delivery selects the channel for destinations without a "channel:" prefix.
type Delivery struct {
	DefaultChannel string `mapstructure:"default_channel"`
}

// Email holds SMTP configuration for sending emails.
type Email struct {
	Enabled  bool   `mapstructure:"enabled"`
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Telegram holds configuration for sending Telegram messages.
type Telegram struct {
	Token   string        `mapstructure:"token"`
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_port", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("storage.reminders_file", "data/reminders.json")
	v.SetDefault("storage.timezones_file", "data/timezones.json")

	v.SetDefault("scheduler.poll_interval", 30*time.Second)
	v.SetDefault("scheduler.default_hour", 9)

	v.SetDefault("timezone.default", "Asia/Vladivostok")
	v.SetDefault("delivery.default_channel", "telegram")

	v.SetDefault("email.smtp_port", 587)

	v.SetDefault("telegram.api_url", "https://api.telegram.org")
	v.SetDefault("telegram.timeout", 10*time.Second)

	v.SetDefault("retry.attempts", 3)
	v.SetDefault("retry.delay", 100*time.Millisecond)
	v.SetDefault("retry.backoff", 2)
}

// bindEnv binds critical environment variables to Viper keys.
func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"server.http_port": "HTTP_PORT",

		"storage.reminders_file": "REMINDERS_FILE",
		"storage.timezones_file": "TIMEZONES_FILE",

		"timezone.default": "DEFAULT_TZ",

		"email.enabled":   "SMTP_ENABLED",
		"email.smtp_host": "SMTP_HOST",
		"email.smtp_port": "SMTP_PORT",
		"email.username":  "SMTP_USER",
		"email.password":  "SMTP_PASS",
		"email.from":      "SMTP_FROM",

		"telegram.token":   "TELEGRAM_TOKEN",
		"telegram.api_url": "TELEGRAM_API_URL",
	}

	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	return nil
}

// Load reads config.yaml from the given directories and applies environment
// overrides. A missing file is not an error; defaults apply.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		zlog.Logger.Warn().Msg("config file not found, using defaults")
	}

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Scheduler.DefaultHour < 0 || cfg.Scheduler.DefaultHour > 23 {
		return nil, fmt.Errorf("scheduler.default_hour must be 0-23, got %d", cfg.Scheduler.DefaultHour)
	}
	if _, err := time.LoadLocation(cfg.Timezone.Default); err != nil || cfg.Timezone.Default == "" || cfg.Timezone.Default == "Local" {
		return nil, fmt.Errorf("timezone.default %q is not an IANA zone", cfg.Timezone.Default)
	}

	return &cfg, nil
}

// Must loads the configuration from ./config and the environment.
//
// It panics if configuration cannot be read or unmarshalled.
func Must() *Config {
	cfg, err := Load("./config")
	if err != nil {
		zlog.Logger.Panic().Err(err).Msg("failed to load config")
	}

	return cfg
}
