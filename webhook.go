package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// runWebhook registers the webhook with Telegram and serves push updates
// until ctx is canceled.
func (b *Bot) runWebhook(ctx context.Context) error {
	wh, err := tgbotapi.NewWebhook(b.cfg.WebhookURL)
	if err != nil {
		return err
	}
	if _, err := b.api.Request(wh); err != nil {
		return err
	}
	log.Printf("✅ Webhook configurado en: %s", b.cfg.WebhookURL)

	srv := &http.Server{Addr: b.cfg.ListenAddr, Handler: b.router()}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// router builds the webhook HTTP surface.
func (b *Bot) router() *gin.Engine {
	r := gin.Default()
	r.POST("/", b.webhookHandler)
	r.GET("/", b.livenessHandler)
	r.NoRoute(b.livenessHandler)
	return r
}

// webhookHandler processes one pushed Telegram update. A recovered handler
// panic answers 500 so the pushing side sees the failure and can retry.
func (b *Bot) webhookHandler(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo inválido"})
		return
	}
	if err := b.HandleUpdate(update); err != nil {
		log.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno del servidor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// livenessHandler answers anything that is not a webhook push with a status
// payload, including the formatted current balance.
func (b *Bot) livenessHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "Bot funcionando correctamente",
		"saldoActual": formatImporte(b.ledger.Balance()),
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}
