package main

import (
	"fmt"
	"io"
	"log"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/cpnvalentinperez/BotTranferTelegram/pkg/ledger"
)

// Bot wraps the Telegram API, the ledger, and the attachment pipeline.
type Bot struct {
	api    *tgbotapi.BotAPI
	ledger *ledger.Ledger
	cfg    *Config
	client *http.Client // attachment downloads, bounded by FetchTimeout
}

// NewBot creates a bot instance for the given token.
func NewBot(cfg *Config, led *ledger.Ledger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:    api,
		ledger: led,
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.FetchTimeout},
	}, nil
}

// Start runs the long-poll loop until StopReceivingUpdates is called.
// Any previously registered webhook is removed first; Telegram rejects
// getUpdates while a webhook is active.
func (b *Bot) Start() {
	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Printf("error eliminando webhook previo: %v", err)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := b.api.GetUpdatesChan(updateConfig)
	for update := range updates {
		if err := b.HandleUpdate(update); err != nil {
			log.Printf("%v", err)
		}
	}
}

// Stop closes the long-poll channel, letting Start return.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// HandleUpdate dispatches one inbound update. A panicking handler is
// recovered and reported as an error so the transport can answer
// accordingly; the bot keeps serving either way.
func (b *Bot) HandleUpdate(update tgbotapi.Update) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pánico procesando update %d: %v", update.UpdateID, r)
		}
	}()

	msg := update.Message
	if msg == nil {
		return nil
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(msg)
	case len(msg.Photo) > 0:
		b.handlePhoto(msg)
	case msg.Document != nil:
		b.handleDocument(msg)
	}
	return nil
}

// reply sends a plain text message, logging delivery failures.
func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("error enviando mensaje a %d: %v", chatID, err)
	}
}

// fetchFile downloads an attachment through the Bot API file endpoint.
func (b *Bot) fetchFile(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolving file %s: %w", fileID, err)
	}
	resp, err := b.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("downloading file %s: %w", fileID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading file %s: status %d", fileID, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", fileID, err)
	}
	return data, nil
}
