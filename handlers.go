package main

import (
	"context"
	"log"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/cpnvalentinperez/BotTranferTelegram/pkg/extract"
	"github.com/cpnvalentinperez/BotTranferTelegram/pkg/ledger"
)

const (
	msgImporteInvalido = "❌ El valor ingresado no es válido."
	msgUsoAgregar      = "⚠️ Usá el comando así: /agregar 1234.56"
	msgUsoRestaurar    = "⚠️ Usá el comando así: /restaurar 1234.56"
	msgErrorDescarga   = "❌ No se pudo descargar el archivo."
	msgSinImportes     = "🔍 No se detectaron importes en el archivo."
)

const ayudaText = `
📌 *Comandos disponibles:*

💵 *Comandos de saldo:*

• ` + "`/agregar <importe>`" + ` – Suma un importe manual al saldo acumulado.
  _Ejemplo:_ ` + "`/agregar 1234.56`" + `

• ` + "`/saldo`" + ` – Muestra el saldo acumulado actual.

• ` + "`/restaurar <importe>`" + ` – Restaura el saldo acumulado a un valor exacto.

• ` + "`/reset`" + ` – Reinicia el saldo a ` + "`$0,00`" + ` y borra el aviso de millón.

📎 *Archivos:*
Mandá una foto o un PDF de un comprobante y el bot detecta los importes
y lo reenvía al grupo destino.

🎉 *Aviso automático:*
Cuando el saldo acumulado llega o supera *$1.000.000,00*, el bot avisa automáticamente.
`

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "agregar":
		b.handleAgregar(msg)
	case "saldo":
		b.handleSaldo(msg)
	case "reset":
		b.handleReset(msg)
	case "restaurar":
		b.handleRestaurar(msg)
	case "ayuda":
		b.handleAyuda(msg)
	}
}

func (b *Bot) handleAgregar(msg *tgbotapi.Message) {
	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		b.reply(msg.Chat.ID, msgUsoAgregar)
		return
	}
	valor, err := ledger.ParseAmount(arg)
	if err != nil {
		b.reply(msg.Chat.ID, msgImporteInvalido)
		return
	}
	res, err := b.ledger.Add(valor)
	if err != nil {
		b.reply(msg.Chat.ID, msgImporteInvalido)
		return
	}
	b.reply(msg.Chat.ID, "✅ Se sumó "+formatImporte(valor)+". Saldo acumulado: "+formatImporte(res.Total))
	b.notifyMilestone(msg.Chat.ID, res)
}

func (b *Bot) handleRestaurar(msg *tgbotapi.Message) {
	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		b.reply(msg.Chat.ID, msgUsoRestaurar)
		return
	}
	valor, err := ledger.ParseAmount(arg)
	if err != nil {
		b.reply(msg.Chat.ID, msgImporteInvalido)
		return
	}
	res, err := b.ledger.SetBalance(valor)
	if err != nil {
		b.reply(msg.Chat.ID, msgImporteInvalido)
		return
	}
	b.reply(msg.Chat.ID, "✅ Saldo restaurado. Saldo acumulado: "+formatImporte(res.Total))
	b.notifyMilestone(msg.Chat.ID, res)
}

func (b *Bot) handleSaldo(msg *tgbotapi.Message) {
	b.reply(msg.Chat.ID, "💰 Saldo acumulado: "+formatImporte(b.ledger.Balance()))
}

func (b *Bot) handleReset(msg *tgbotapi.Message) {
	if err := b.ledger.Reset(); err != nil {
		log.Printf("error en reset: %v", err)
	}
	b.reply(msg.Chat.ID, "🔄 Saldo reiniciado a $0,00")
}

func (b *Bot) handleAyuda(msg *tgbotapi.Message) {
	reply := tgbotapi.NewMessage(msg.Chat.ID, ayudaText)
	reply.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(reply); err != nil {
		log.Printf("error enviando ayuda a %d: %v", msg.Chat.ID, err)
	}
}

// notifyMilestone sends the one-time celebratory message when a mutation
// crossed the threshold. The ledger guarantees Crossed is true exactly once
// per epoch.
func (b *Bot) notifyMilestone(chatID int64, res ledger.Result) {
	if res.Crossed {
		b.reply(chatID, "🎉 ¡El saldo acumulado alcanzó "+formatImporte(res.Total)+"!")
	}
}

// handlePhoto OCRs the largest rendition of an inbound photo, replies with
// the detected amounts, and copies the original message to the destination
// chat followed by the summary.
func (b *Bot) handlePhoto(msg *tgbotapi.Message) {
	photo := msg.Photo[len(msg.Photo)-1]
	data, err := b.fetchFile(photo.FileID)
	if err != nil {
		log.Printf("error descargando foto: %v", err)
		b.reply(msg.Chat.ID, msgErrorDescarga)
		return
	}

	amounts := b.ocrAmounts(data)
	summary := amountsSummary(amounts)
	b.reply(msg.Chat.ID, summary)

	if b.cfg.DestinoChatID == 0 {
		return
	}
	copyMsg := tgbotapi.NewCopyMessage(b.cfg.DestinoChatID, msg.Chat.ID, msg.MessageID)
	if _, err := b.api.CopyMessage(copyMsg); err != nil {
		log.Printf("error reenviando foto a %d: %v", b.cfg.DestinoChatID, err)
		return
	}
	b.reply(b.cfg.DestinoChatID, summary)
}

// handleDocument extracts amounts from an inbound document (PDF text layer
// first, OCR for image documents), replies with the summary, and forwards
// the document to the destination chat with the summary as caption. When
// nothing was detected the sender's original caption is preserved.
func (b *Bot) handleDocument(msg *tgbotapi.Message) {
	doc := msg.Document
	data, err := b.fetchFile(doc.FileID)
	if err != nil {
		log.Printf("error descargando documento %s: %v", doc.FileName, err)
		b.reply(msg.Chat.ID, msgErrorDescarga)
		return
	}

	var amounts []string
	switch {
	case isPDF(doc):
		text, err := extract.PDFText(data)
		if err != nil {
			log.Printf("error extrayendo texto de %s: %v", doc.FileName, err)
		} else {
			amounts = extract.FindAmounts(text)
		}
	case strings.HasPrefix(doc.MimeType, "image/"):
		amounts = b.ocrAmounts(data)
	}

	summary := amountsSummary(amounts)
	b.reply(msg.Chat.ID, summary)

	if b.cfg.DestinoChatID == 0 {
		return
	}
	fwd := tgbotapi.NewDocument(b.cfg.DestinoChatID, tgbotapi.FileID(doc.FileID))
	fwd.Caption = summary
	if len(amounts) == 0 && msg.Caption != "" {
		fwd.Caption = msg.Caption
	}
	if _, err := b.api.Send(fwd); err != nil {
		log.Printf("error reenviando documento a %d: %v", b.cfg.DestinoChatID, err)
	}
}

// ocrAmounts writes the image to a temp file and extracts amounts under the
// configured OCR budget. A base pass that finds nothing, or whose text looks
// truncated, escalates to the enhanced pass; the escalation result wins only
// when it actually finds amounts.
func (b *Bot) ocrAmounts(data []byte) []string {
	tmp, err := os.CreateTemp("", "recibo-*.jpg")
	if err != nil {
		log.Printf("error creando archivo temporal: %v", err)
		return nil
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		log.Printf("error escribiendo archivo temporal: %v", err)
		return nil
	}
	tmp.Close()

	ctx, cancel := context.WithTimeout(context.Background(), b.cfg.OCRTimeout)
	defer cancel()

	text, err := runOCRPass(ctx, tmp.Name(), extract.ImageText)
	if err != nil {
		log.Printf("error de OCR: %v", err)
		return nil
	}
	amounts := extract.FindAmounts(text)
	if len(amounts) > 0 && !extract.LooksTruncated(text) {
		return amounts
	}

	enhanced, err := runOCRPass(ctx, tmp.Name(), extract.ImageTextEnhanced)
	if err != nil {
		log.Printf("error de OCR (pasada mejorada): %v", err)
		return amounts
	}
	if alt := extract.FindAmounts(enhanced); len(alt) > 0 {
		return alt
	}
	return amounts
}

// runOCRPass bounds a synchronous OCR call with the context deadline. The
// goroutine finishes in the background on timeout; gosseract offers no
// cancellation hook.
func runOCRPass(ctx context.Context, path string, pass func(string) (string, error)) (string, error) {
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := pass(path)
		ch <- result{text, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.text, r.err
	}
}

// amountsSummary renders the detected amounts as a user-facing line.
func amountsSummary(amounts []string) string {
	if len(amounts) == 0 {
		return msgSinImportes
	}
	formatted := make([]string, 0, len(amounts))
	for _, a := range amounts {
		d, err := decimal.NewFromString(a)
		if err != nil {
			continue
		}
		formatted = append(formatted, formatImporte(d))
	}
	if len(formatted) == 0 {
		return msgSinImportes
	}
	return "💵 Importes detectados: " + strings.Join(formatted, ", ")
}

func isPDF(doc *tgbotapi.Document) bool {
	return doc.MimeType == "application/pdf" ||
		strings.HasSuffix(strings.ToLower(doc.FileName), ".pdf")
}
