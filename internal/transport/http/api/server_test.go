package apihttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/trader"
	"hotkeytrader/internal/trading"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Submit(cmd trader.Command, source string) (string, error) {
	args := m.Called(cmd, source)
	return args.String(0), args.Error(1)
}

func (m *mockDispatcher) SubmitSync(ctx context.Context, cmd trader.Command, source string) (trading.Outcome, error) {
	args := m.Called(ctx, cmd, source)
	return args.Get(0).(trading.Outcome), args.Error(1)
}

func (m *mockDispatcher) Busy() bool { return false }

func newTestServer(t *testing.T, d Dispatcher) http.Handler {
	t.Helper()
	srv, err := NewServer(ServerConfig{Dispatcher: d})
	require.NoError(t, err)
	return srv.Handler()
}

func do(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestCommandAccepted(t *testing.T) {
	d := new(mockDispatcher)
	d.On("Submit", trader.CommandOpenLong, "http").Return("trace-1", nil).Once()
	h := newTestServer(t, d)

	rec := do(h, http.MethodPost, "/api/commands/open-long")
	require.Equal(t, http.StatusAccepted, rec.Code)
	var body CommandAccepted
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CommandAccepted{Command: "open-long", TraceID: "trace-1", Status: "accepted"}, body)
	d.AssertExpectations(t)
}

func TestCommandBusy(t *testing.T) {
	d := new(mockDispatcher)
	d.On("Submit", trader.CommandClosePosition, "http").Return("", trader.ErrBusy).Once()
	h := newTestServer(t, d)

	rec := do(h, http.MethodPost, "/api/commands/close")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCommandUnknown(t *testing.T) {
	d := new(mockDispatcher)
	h := newTestServer(t, d)

	rec := do(h, http.MethodPost, "/api/commands/hedge")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	d.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestStatusEndpoint(t *testing.T) {
	d := new(mockDispatcher)
	d.On("SubmitSync", mock.Anything, trader.CommandStatus, "http").Return(trading.Outcome{
		Action:  trading.ActionStatus,
		Status:  trading.StatusSucceeded,
		Message: "ok",
		Snapshot: &trading.StatusSnapshot{
			Exchange: "binance", Network: "testnet", Symbol: "BTCUSDT", QuoteAsset: "USDT",
			WalletBalance: 100, MarkPrice: 50000,
			Limits: exchange.SymbolLimits{MinQty: 0.001, MaxQty: 100, StepSize: 0.001, TickSize: 0.1, PricePrecision: 1},
		},
	}, nil).Once()
	h := newTestServer(t, d)

	rec := do(h, http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)
	var body StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "succeeded", body.Status)
	assert.Equal(t, "testnet", body.Network)
	assert.Equal(t, 50000.0, body.MarkPrice)
	require.NotNil(t, body.Limits)
	assert.Equal(t, 1, body.Limits.PricePrecision)
}

func TestStatusEndpointFailure(t *testing.T) {
	d := new(mockDispatcher)
	d.On("SubmitSync", mock.Anything, trader.CommandStatus, "http").Return(trading.Outcome{
		Action: trading.ActionStatus, Status: trading.StatusFailed, Kind: exchange.KindConnectivity, Message: "exchange unreachable",
	}, nil).Once()
	h := newTestServer(t, d)

	rec := do(h, http.MethodGet, "/api/status")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "connectivity")
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t, new(mockDispatcher))

	rec := do(h, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","busy":false}`, rec.Body.String())

	rec = do(h, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewServerRequiresDispatcher(t *testing.T) {
	_, err := NewServer(ServerConfig{})
	assert.Error(t, err)
}
