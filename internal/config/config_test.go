package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_BOT_USERNAME", "TELEGRAM_DEBUG", "TZ",
		"LOG_LEVEL", "CARD_CATALOG_FILE", "DISPATCH_WORKERS", "DELIVERY_WORKERS",
		"DELIVERY_QUEUE_SIZE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8, cfg.DispatchWorkers)
	assert.Equal(t, 4, cfg.DeliveryWorkers)
	assert.Equal(t, 256, cfg.DeliveryQueueSize)
	assert.False(t, cfg.TelegramDebug)
	require.NotNil(t, cfg.Location)
}

func TestLoad_RequiresToken(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	assert.ErrorContains(t, err, "TELEGRAM_BOT_TOKEN")
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "t")
	t.Setenv("TELEGRAM_BOT_USERNAME", "@cardpay_bot")
	t.Setenv("TZ", "America/New_York")
	t.Setenv("DISPATCH_WORKERS", "2")
	t.Setenv("DELIVERY_WORKERS", "not-a-number")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "cardpay_bot", cfg.BotUsername)
	assert.Equal(t, "America/New_York", cfg.Location.String())
	assert.Equal(t, 2, cfg.DispatchWorkers)
	assert.Equal(t, 4, cfg.DeliveryWorkers)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "t")
	t.Setenv("TZ", "Nowhere/Special")

	_, err := Load("")
	assert.ErrorContains(t, err, "invalid TZ")

	t.Setenv("TZ", "")
	t.Setenv("DELIVERY_QUEUE_SIZE", "0")
	_, err = Load("")
	assert.Error(t, err)
}

// unsetEnv removes keys for the duration of the test. godotenv only fills
// variables that are absent, so an empty t.Setenv value would shadow the file.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		} else {
			t.Cleanup(func() { _ = os.Unsetenv(k) })
		}
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_EnvFile(t *testing.T) {
	unsetEnv(t, "TELEGRAM_BOT_TOKEN", "LOG_LEVEL", "TZ", "DISPATCH_WORKERS", "DELIVERY_WORKERS", "DELIVERY_QUEUE_SIZE")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TELEGRAM_BOT_TOKEN=from-file\nLOG_LEVEL=debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.BotToken)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvFileDoesNotOverrideProcess(t *testing.T) {
	unsetEnv(t, "TELEGRAM_BOT_TOKEN", "LOG_LEVEL", "TZ", "DISPATCH_WORKERS", "DELIVERY_WORKERS", "DELIVERY_QUEUE_SIZE")
	require.NoError(t, os.Setenv("TELEGRAM_BOT_TOKEN", "from-process"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TELEGRAM_BOT_TOKEN=from-file\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-process", cfg.BotToken)
}

func TestLoad_MissingEnvFileIsTolerated(t *testing.T) {
	unsetEnv(t, "TELEGRAM_BOT_TOKEN", "LOG_LEVEL", "TZ", "DISPATCH_WORKERS", "DELIVERY_WORKERS", "DELIVERY_QUEUE_SIZE")
	absent := filepath.Join(t.TempDir(), "absent.env")

	_, err := Load(absent)
	assert.ErrorContains(t, err, "TELEGRAM_BOT_TOKEN", "missing file is skipped, token check still applies")

	require.NoError(t, os.Setenv("TELEGRAM_BOT_TOKEN", "t"))
	cfg, err := Load(absent)
	require.NoError(t, err)
	assert.Equal(t, "t", cfg.BotToken)
}
