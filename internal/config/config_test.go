package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.Scheduler.PollInterval)
	assert.Equal(t, 9, cfg.Scheduler.DefaultHour)
	assert.Equal(t, "Asia/Vladivostok", cfg.Timezone.Default)
	assert.Equal(t, "telegram", cfg.Delivery.DefaultChannel)
	assert.Equal(t, 3, cfg.Retry.Attempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Retry.Delay)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `
scheduler:
  poll_interval: 45s
  default_hour: 8
storage:
  reminders_file: /var/lib/reminders.json
telegram:
  token: from-file
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	t.Setenv("TELEGRAM_TOKEN", "from-env")
	t.Setenv("DEFAULT_TZ", "Europe/Moscow")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Scheduler.PollInterval)
	assert.Equal(t, 8, cfg.Scheduler.DefaultHour)
	assert.Equal(t, "/var/lib/reminders.json", cfg.Storage.RemindersFile)
	assert.Equal(t, "from-env", cfg.Telegram.Token)
	assert.Equal(t, "Europe/Moscow", cfg.Timezone.Default)
	assert.Equal(t, 2525, cfg.Email.SMTPPort)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad hour", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("scheduler:\n  default_hour: 24\n"), 0o644))
		_, err := Load(dir)
		assert.Error(t, err)
	})

	t.Run("bad zone", func(t *testing.T) {
		t.Setenv("DEFAULT_TZ", "Mars/Olympus")
		_, err := Load(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [\n"), 0o644))
		_, err := Load(dir)
		assert.Error(t, err)
	})
}
