package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken      string
	BotUsername   string
	TelegramDebug bool

	Timezone    string
	Location    *time.Location
	LogLevel    string
	CatalogFile string

	DispatchWorkers   int
	DeliveryWorkers   int
	DeliveryQueueSize int
}

// Load reads the environment, after merging envFile into it when the file
// exists. Variables already set in the process win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	bt := os.Getenv("TELEGRAM_BOT_TOKEN")
	if bt == "" {
		return Config{}, errors.New("TELEGRAM_BOT_TOKEN is required")
	}

	tz := getEnv("TZ", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("invalid TZ %q: %w", tz, err)
	}

	cfg := Config{
		BotToken:      bt,
		BotUsername:   strings.TrimPrefix(os.Getenv("TELEGRAM_BOT_USERNAME"), "@"),
		TelegramDebug: getEnvAsBool("TELEGRAM_DEBUG", false),

		Timezone:    tz,
		Location:    loc,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CatalogFile: os.Getenv("CARD_CATALOG_FILE"),

		DispatchWorkers:   getEnvAsInt("DISPATCH_WORKERS", 8),
		DeliveryWorkers:   getEnvAsInt("DELIVERY_WORKERS", 4),
		DeliveryQueueSize: getEnvAsInt("DELIVERY_QUEUE_SIZE", 256),
	}
	if cfg.DispatchWorkers <= 0 || cfg.DeliveryWorkers <= 0 || cfg.DeliveryQueueSize <= 0 {
		return Config{}, errors.New("worker counts and queue size must be positive")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
