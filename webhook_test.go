package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpnvalentinperez/BotTranferTelegram/pkg/ledger"
	"github.com/cpnvalentinperez/BotTranferTelegram/pkg/store"
)

// newTestBot builds a bot without a Telegram connection: enough for the
// HTTP surface, and any code path that reaches the API panics.
func newTestBot(t *testing.T) *Bot {
	t.Helper()
	gin.SetMode(gin.TestMode)
	led, err := ledger.New(store.NewMemory(), ledger.Options{AllowNegative: true})
	require.NoError(t, err)
	return &Bot{ledger: led, cfg: &Config{}}
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	b := newTestBot(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{no es json"))

	b.router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookAcknowledgesUpdate(t *testing.T) {
	b := newTestBot(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"update_id": 7}`))

	b.router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestWebhookAnswers500OnHandlerPanic(t *testing.T) {
	// b.api is nil, so dispatching a command panics inside the handler; the
	// webhook must report that as a 500 instead of acknowledging.
	b := newTestBot(t)
	w := httptest.NewRecorder()
	body := `{"update_id": 8, "message": {"message_id": 1, "chat": {"id": 1},` +
		` "text": "/saldo", "entities": [{"type": "bot_command", "offset": 0, "length": 6}]}}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	b.router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLivenessReportsBalance(t *testing.T) {
	b := newTestBot(t)
	_, err := b.ledger.Add(decimal.RequireFromString("1234.50"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	b.router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bot funcionando correctamente")
	assert.Contains(t, w.Body.String(), "$1.234,50")
}
