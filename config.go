package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment after an
// optional .env load.
type Config struct {
	BotToken      string
	DestinoChatID int64 // destination chat for forwarded files; 0 disables forwarding
	StateBackend  string
	StateFile     string
	DatabaseURL   string
	WebhookURL    string // presence selects webhook mode over long-polling
	ListenAddr    string
	AllowNegative bool
	FetchTimeout  time.Duration
	OCRTimeout    time.Duration
}

// LoadConfig reads configuration from the environment. A ./.env file is
// loaded first without overwriting variables already set.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		StateBackend:  "file",
		StateFile:     "/tmp/bot_state.json",
		ListenAddr:    ":8081",
		AllowNegative: true,
		FetchTimeout:  30 * time.Second,
		OCRTimeout:    60 * time.Second,
	}

	cfg.BotToken = os.Getenv("BOT_TOKEN")
	if cfg.BotToken == "" {
		return nil, errors.New("BOT_TOKEN env variable is required")
	}
	if v := os.Getenv("DESTINO_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("DESTINO_CHAT_ID: %w", err)
		}
		cfg.DestinoChatID = id
	}
	if v := os.Getenv("STATE_BACKEND"); v != "" {
		cfg.StateBackend = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.StateFile = v
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.WebhookURL = os.Getenv("WEBHOOK_URL")
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("PERMITIR_NEGATIVOS"); v != "" {
		allow, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("PERMITIR_NEGATIVOS: %w", err)
		}
		cfg.AllowNegative = allow
	}
	if d, err := envSeconds("FETCH_TIMEOUT_SECONDS"); err != nil {
		return nil, err
	} else if d > 0 {
		cfg.FetchTimeout = d
	}
	if d, err := envSeconds("OCR_TIMEOUT_SECONDS"); err != nil {
		return nil, err
	} else if d > 0 {
		cfg.OCRTimeout = d
	}
	return cfg, nil
}

func envSeconds(key string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return time.Duration(n) * time.Second, nil
}
