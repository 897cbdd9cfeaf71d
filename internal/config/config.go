package config

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrNoBotToken = errors.New("BOT_TOKEN is not set")

type Config struct {
	BotToken    string
	BotDebug    bool
	AdminChatID int64

	AbandonTimeout time.Duration
	SessionTTL     time.Duration
	UpdateWorkers  int

	HTTPAddr    string
	LogFilePath string
	Environment string
}

func (c *Config) IsProduction() bool { return c.Environment == "production" }

// Load читает .env (если есть) и переменные окружения.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("BOT_DEBUG", false)
	v.SetDefault("ADMIN_CHAT_ID", "")
	v.SetDefault("ABANDON_TIMEOUT", "30m")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("UPDATE_WORKERS", 8)
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_FILE_PATH", "")
	v.SetDefault("GO_ENV", "development")

	cfg := &Config{
		BotToken:    strings.TrimSpace(v.GetString("BOT_TOKEN")),
		BotDebug:    v.GetBool("BOT_DEBUG"),
		HTTPAddr:    v.GetString("HTTP_ADDR"),
		LogFilePath: v.GetString("LOG_FILE_PATH"),
		Environment: v.GetString("GO_ENV"),
	}
	if cfg.BotToken == "" {
		return nil, ErrNoBotToken
	}

	adminID, err := parseChatID(v.GetString("ADMIN_CHAT_ID"))
	if err != nil {
		return nil, err
	}
	cfg.AdminChatID = adminID

	if cfg.AbandonTimeout, err = parseDuration(v, "ABANDON_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = parseDuration(v, "SESSION_TTL"); err != nil {
		return nil, err
	}

	cfg.UpdateWorkers, err = strconv.Atoi(strings.TrimSpace(v.GetString("UPDATE_WORKERS")))
	if err != nil || cfg.UpdateWorkers <= 0 {
		return nil, fmt.Errorf("UPDATE_WORKERS must be a positive integer, got %q", v.GetString("UPDATE_WORKERS"))
	}
	return cfg, nil
}

// parseChatID допускает пустое значение: уведомления оператору тогда отключены.
func parseChatID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ADMIN_CHAT_ID: %w", err)
	}
	return id, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}
