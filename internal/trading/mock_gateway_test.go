package trading

import (
	"context"
	"time"

	"hotkeytrader/internal/gateway/exchange"

	"github.com/stretchr/testify/mock"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Name() string { return "binance" }

func (m *mockGateway) SystemStatus(ctx context.Context, symbol string) (exchange.SystemStatus, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(exchange.SystemStatus), args.Error(1)
}

func (m *mockGateway) AccountBalances(ctx context.Context) ([]exchange.AssetBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]exchange.AssetBalance), args.Error(1)
}

func (m *mockGateway) AvailableBalance(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockGateway) SymbolLimits(ctx context.Context, symbol string) (exchange.SymbolLimits, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(exchange.SymbolLimits), args.Error(1)
}

func (m *mockGateway) MarkPrice(ctx context.Context, symbol string) (float64, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockGateway) ChangeLeverage(ctx context.Context, symbol string, leverage int) error {
	args := m.Called(ctx, symbol, leverage)
	return args.Error(0)
}

func (m *mockGateway) CreateOrder(ctx context.Context, req exchange.OrderRequest) (exchange.OrderAck, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(exchange.OrderAck), args.Error(1)
}

func (m *mockGateway) GetOrder(ctx context.Context, symbol string, orderID int64) (exchange.OrderStatus, error) {
	args := m.Called(ctx, symbol, orderID)
	return args.Get(0).(exchange.OrderStatus), args.Error(1)
}

func (m *mockGateway) OpenPositions(ctx context.Context, symbol string) ([]exchange.Position, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]exchange.Position), args.Error(1)
}

func (m *mockGateway) CancelAllOpenOrders(ctx context.Context, symbol string) error {
	args := m.Called(ctx, symbol)
	return args.Error(0)
}

func testSettings() Settings {
	return Settings{
		Symbol:             "BTCUSDT",
		QuoteAsset:         "USDT",
		Network:            "testnet",
		CapitalFraction:    0.10,
		Leverage:           10,
		StopLossFraction:   0.02,
		TakeProfitFraction: 0.05,
		HasTakeProfit:      true,
		FillPollAttempts:   10,
		FillPollInterval:   0,
	}
}

func testLimits() exchange.SymbolLimits {
	return exchange.SymbolLimits{
		Symbol:            "BTCUSDT",
		MinQty:            0.001,
		MaxQty:            1000,
		StepSize:          0.001,
		TickSize:          0.1,
		PricePrecision:    2,
		QuantityPrecision: 3,
	}
}

// newTestService returns a service whose fill waits are recorded instead of slept.
func newTestService(gw *mockGateway, settings Settings) (*Service, *[]int) {
	svc, err := NewServiceWithLimits(gw, settings, testLimits())
	if err != nil {
		panic(err)
	}
	var sleeps []int
	svc.fills.sleep = func(ctx context.Context, _ time.Duration) error {
		sleeps = append(sleeps, 1)
		return ctx.Err()
	}
	return svc, &sleeps
}

func orderOfType(t exchange.OrderType) any {
	return mock.MatchedBy(func(req exchange.OrderRequest) bool { return req.Type == t })
}
