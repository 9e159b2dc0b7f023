package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldSentinel/internal/model"
)

func ptr(v float64) *float64 { return &v }

func sampleDecision() *model.Decision {
	return &model.Decision{
		Time:      time.Date(2025, 5, 6, 10, 25, 0, 0, time.UTC),
		Price:     1100,
		Aux:       "2650.10 USD/oz",
		Regime:    model.RegimeTrend,
		Snapshot:  model.IndicatorSnapshot{RSI14: ptr(100), MAShort: ptr(1090)},
		Levels:    model.LevelSet{Stop: 985, TakeProfit1: 1010, TakeProfit2: 1017.5, Volatility: 5},
		Action:    model.ActionTakeProfit2,
		SoldLevel: model.SoldAll,
		Peak:      ptr(1100),
		PnL:       ptr(25000),
	}
}

func TestFormatDecision(t *testing.T) {
	line := FormatDecision(sampleDecision())
	assert.Equal(t,
		"[2025-05-06 10:25:00] 1100.00 CNY/g (2650.10 USD/oz) | regime=trend rsi=100.0 | stop=985.00 tp1=1010.00 tp2=1017.50 | pnl=+25000.00 | take-profit-2: sell remainder",
		line)

	d := sampleDecision()
	d.PnL = nil
	d.Aux = ""
	d.Snapshot.RSI14 = nil
	d.Action = model.ActionHold
	assert.Equal(t,
		"[2025-05-06 10:25:00] 1100.00 CNY/g | regime=trend | stop=985.00 tp1=1010.00 tp2=1017.50 | hold",
		FormatDecision(d))
}

func TestFormatAlertAndLevels(t *testing.T) {
	d := sampleDecision()
	alert := FormatAlert(d)
	assert.Contains(t, alert, "take-profit-2: sell remainder")
	assert.Contains(t, alert, "2/2")
	assert.Contains(t, alert, "+25000.00")

	levels := FormatLevels(d)
	assert.Contains(t, levels, "止损: 985.00")
	assert.Contains(t, levels, "止盈2: 1017.50")
	assert.Contains(t, levels, "MA长: n/a")
	assert.Contains(t, levels, "MA短: 1090.00")
}

func TestTelegramSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL
	require.NoError(t, tn.Send(context.Background(), "hello"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestTelegramSendWithRetryExhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL
	err := tn.SendWithRetry(context.Background(), "hello", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTelegramSendWithRetryCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := tn.SendWithRetry(ctx, "hello", 3)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStartPollingDispatchesCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var polls int32
	replies := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			if atomic.AddInt32(&polls, 1) == 1 {
				w.Write([]byte(`{"ok":true,"result":[{"update_id":7,"message":{"text":" /status "}}]}`))
				return
			}
			assert.Equal(t, "8", r.URL.Query().Get("offset"))
			<-r.Context().Done()
		case "/botTOKEN/sendMessage":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			replies <- body["text"]
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL

	done := make(chan struct{})
	go func() {
		tn.StartPolling(ctx, func(cmd string) string { return "got " + cmd })
		close(done)
	}()

	select {
	case reply := <-replies:
		assert.Equal(t, "got /status", reply)
	case <-time.After(5 * time.Second):
		t.Fatal("no reply sent")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop")
	}
}
