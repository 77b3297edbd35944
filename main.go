package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cpnvalentinperez/BotTranferTelegram/pkg/ledger"
	"github.com/cpnvalentinperez/BotTranferTelegram/pkg/store"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("configuración: %v", err)
	}

	st, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("almacenamiento: %v", err)
	}

	led, err := ledger.New(st, ledger.Options{AllowNegative: cfg.AllowNegative})
	if err != nil {
		log.Fatalf("cargando estado: %v", err)
	}

	bot, err := NewBot(cfg, led)
	if err != nil {
		log.Fatalf("creando bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.WebhookURL != "" {
		log.Printf("🤖 Bot activo en modo webhook (%s)...", cfg.ListenAddr)
		if err := bot.runWebhook(ctx); err != nil {
			log.Fatalf("servidor webhook: %v", err)
		}
		return
	}

	log.Println("🤖 Bot activo en modo polling...")
	go func() {
		<-ctx.Done()
		bot.Stop()
	}()
	bot.Start()
}

// buildStore selects the persistence backend from configuration.
func buildStore(cfg *Config) (store.Store, error) {
	switch cfg.StateBackend {
	case "memory":
		return store.NewMemory(), nil
	case "file":
		return store.NewFile(cfg.StateFile), nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres backend")
		}
		db, err := openDB(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store.NewPostgres(db), nil
	default:
		return nil, fmt.Errorf("unknown STATE_BACKEND %q", cfg.StateBackend)
	}
}
