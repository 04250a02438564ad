package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/trading"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramSendText(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := NewTelegram("TOKEN", "42")
	tg.BaseURL = srv.URL
	require.NoError(t, tg.SendText(context.Background(), "hello"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
}

func TestTelegramRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := NewTelegram("TOKEN", "42")
	tg.BaseURL = srv.URL
	tg.Backoff = time.Millisecond
	require.NoError(t, tg.SendText(context.Background(), "hello"))
	assert.Equal(t, int32(3), hits.Load())
}

func TestTelegramGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tg := NewTelegram("TOKEN", "42")
	tg.BaseURL = srv.URL
	tg.Backoff = time.Millisecond
	err := tg.SendText(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestTelegramRequiresCredentials(t *testing.T) {
	assert.Error(t, NewTelegram("", "42").SendText(context.Background(), "x"))
}

func TestOutcomeMessage(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := outcomeMessage(trading.Outcome{
		Action:     trading.ActionOpenLong,
		Status:     trading.StatusSucceeded,
		Message:    "long 0.02 BTCUSDT",
		Intent:     &trading.OrderIntent{Side: exchange.SideBuy, Quantity: 0.02},
		Entry:      &trading.FilledEntry{OrderID: 1, Price: 100},
		Protection: &trading.ProtectiveOrderPair{StopLoss: 98, TakeProfit: 105, HasTakeProfit: true},
		Orders:     []exchange.OrderAck{{OrderID: 1, Type: exchange.OrderTypeMarket, Side: exchange.SideBuy}},
	}, now)
	text := msg.RenderMarkdown()
	assert.Contains(t, text, "✅ open long")
	assert.Contains(t, text, "- BUY 0.02")
	assert.Contains(t, text, "- stop-loss 98")
	assert.Contains(t, text, "- take-profit 105")
	assert.Contains(t, text, "- #1 MARKET BUY")
	assert.Contains(t, text, "time: 2024-03-01 12:00:00 UTC")
}
