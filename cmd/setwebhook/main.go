// Command setwebhook registers the bot's webhook URL with Telegram: it
// removes any previous webhook, sets the new one, and prints the resulting
// webhook info. Run it once after deploying to a new public URL.
package main

import (
	"log"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("BOT_TOKEN env variable is required")
	}
	url := os.Getenv("WEBHOOK_URL")
	if len(os.Args) > 1 {
		url = os.Args[1]
	}
	if url == "" {
		log.Fatal("pass the webhook URL as an argument or set WEBHOOK_URL")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Fatalf("creando bot: %v", err)
	}

	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Fatalf("eliminando webhook anterior: %v", err)
	}
	log.Println("✅ Webhook anterior eliminado")

	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		log.Fatalf("URL de webhook inválida: %v", err)
	}
	if _, err := api.Request(wh); err != nil {
		log.Fatalf("configurando webhook: %v", err)
	}
	log.Printf("✅ Nuevo webhook configurado: %s", url)

	info, err := api.GetWebhookInfo()
	if err != nil {
		log.Fatalf("consultando webhook: %v", err)
	}
	log.Printf("📋 url=%s pendientes=%d último_error=%q", info.URL, info.PendingUpdateCount, info.LastErrorMessage)
}
