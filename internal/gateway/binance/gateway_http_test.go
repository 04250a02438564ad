package binance

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	form   url.Values
}

func newTestGateway(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Gateway, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var seen []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		form := requestParams(r)
		mu.Lock()
		seen = append(seen, recordedRequest{method: r.Method, path: r.URL.Path, form: form})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	g, err := New(Config{APIKey: "k", APISecret: "s", RESTBaseURL: srv.URL})
	require.NoError(t, err)
	return g, &seen
}

// requestParams merges query and body params for every method. net/http only
// parses bodies for POST/PUT/PATCH, and the futures client sends DELETE params
// as a form body.
func requestParams(r *http.Request) url.Values {
	params := url.Values{}
	for k, vs := range r.URL.Query() {
		params[k] = append(params[k], vs...)
	}
	if r.Body == nil {
		return params
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return params
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	fromBody, err := url.ParseQuery(string(body))
	if err != nil {
		return params
	}
	for k, vs := range fromBody {
		params[k] = append(params[k], vs...)
	}
	return params
}

func TestCreateStopMarketClosePosition(t *testing.T) {
	g, seen := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orderId": 7001, "clientOrderId": "hk-x", "symbol": "BTCUSDT", "status": "NEW", "type": "STOP_MARKET", "side": "SELL"}`))
	})

	ack, err := g.CreateOrder(context.Background(), exchange.OrderRequest{
		Symbol:        "BTC/USDT",
		Side:          exchange.SideSell,
		Type:          exchange.OrderTypeStopMarket,
		StopPrice:     98,
		ClosePosition: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7001), ack.OrderID)
	assert.Equal(t, exchange.OrderTypeStopMarket, ack.Type)

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/fapi/v1/order", req.path)
	assert.Equal(t, "BTCUSDT", req.form.Get("symbol"))
	assert.Equal(t, "SELL", req.form.Get("side"))
	assert.Equal(t, "STOP_MARKET", req.form.Get("type"))
	assert.Equal(t, "98", req.form.Get("stopPrice"))
	assert.Equal(t, "true", req.form.Get("closePosition"))
	assert.NotEmpty(t, req.form.Get("newClientOrderId"))
}

func TestCreateReduceOnlyMarket(t *testing.T) {
	g, seen := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orderId": 7002, "symbol": "BTCUSDT", "status": "NEW", "type": "MARKET", "side": "BUY"}`))
	})

	_, err := g.CreateOrder(context.Background(), exchange.OrderRequest{
		Symbol:     "BTCUSDT",
		Side:       exchange.SideBuy,
		Type:       exchange.OrderTypeMarket,
		Quantity:   2,
		ReduceOnly: true,
	})
	require.NoError(t, err)
	req := (*seen)[0]
	assert.Equal(t, "2", req.form.Get("quantity"))
	assert.Equal(t, "true", req.form.Get("reduceOnly"))
	assert.Empty(t, req.form.Get("closePosition"))
}

func TestCreateOrderValidationError(t *testing.T) {
	g, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": -1111, "msg": "Precision is over the maximum defined for this asset."}`))
	})

	_, err := g.CreateOrder(context.Background(), exchange.OrderRequest{
		Symbol: "BTCUSDT", Side: exchange.SideBuy, Type: exchange.OrderTypeMarket, Quantity: 0.0001,
	})
	require.Error(t, err)
	assert.Equal(t, exchange.KindValidation, exchange.KindOf(err))
}

func TestCancelAllOpenOrders(t *testing.T) {
	g, seen := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": 200, "msg": "The operation of cancel all open order is done."}`))
	})

	require.NoError(t, g.CancelAllOpenOrders(context.Background(), "btcusdt"))
	req := (*seen)[0]
	assert.Equal(t, http.MethodDelete, req.method)
	assert.Equal(t, "/fapi/v1/allOpenOrders", req.path)
	assert.Equal(t, "BTCUSDT", req.form.Get("symbol"))
}

func TestMarkPrice(t *testing.T) {
	g, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"symbol": "BTCUSDT", "markPrice": "64000.12000000", "indexPrice": "64001", "lastFundingRate": "0.0001", "nextFundingTime": 0, "time": 0}]`))
	})

	price, err := g.MarkPrice(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, 64000.12, price)

	_, err = g.MarkPrice(context.Background(), "ETHUSDT")
	assert.Equal(t, exchange.KindData, exchange.KindOf(err))
}

func TestConnectivityFailureTripsBreaker(t *testing.T) {
	g, err := New(Config{
		APIKey:           "k",
		APISecret:        "s",
		RESTBaseURL:      "http://127.0.0.1:1",
		BreakerThreshold: 1,
	})
	require.NoError(t, err)
	failures := metrics.GatewayErrors.WithLabelValues("CancelAllOpenOrders", string(exchange.KindConnectivity))
	before := testutil.ToFloat64(failures)

	err = g.CancelAllOpenOrders(context.Background(), "BTCUSDT")
	require.Error(t, err)
	assert.Equal(t, exchange.KindConnectivity, exchange.KindOf(err))

	err = g.CancelAllOpenOrders(context.Background(), "BTCUSDT")
	assert.Equal(t, exchange.KindConnectivity, exchange.KindOf(err))
	assert.ErrorContains(t, err, "circuit breaker is open")
	assert.Equal(t, 2.0, testutil.ToFloat64(failures)-before)
}

func TestSystemStatus(t *testing.T) {
	g, seen := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fapi/v1/time":
			_, _ = w.Write([]byte(`{"serverTime": 1700000000000}`))
		case "/fapi/v1/exchangeInfo":
			_, _ = w.Write([]byte(`{"timezone": "UTC", "serverTime": 1700000000000, "symbols": [
				{"symbol": "BTCUSDT", "status": "TRADING"},
				{"symbol": "ETHUSDT", "status": "SETTLING"}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	st, err := g.SystemStatus(context.Background(), "BTC/USDT")
	require.NoError(t, err)
	assert.True(t, st.Normal)
	assert.Equal(t, int64(1700000000000), st.ServerTime)

	st, err = g.SystemStatus(context.Background(), "ETHUSDT")
	require.NoError(t, err)
	assert.False(t, st.Normal)
	assert.Equal(t, "ETHUSDT status SETTLING", st.Message)

	st, err = g.SystemStatus(context.Background(), "XRPUSDT")
	require.NoError(t, err)
	assert.False(t, st.Normal)
	assert.Equal(t, "XRPUSDT not listed", st.Message)

	require.NotEmpty(t, *seen)
	assert.Equal(t, "/fapi/v1/time", (*seen)[0].path)
}
