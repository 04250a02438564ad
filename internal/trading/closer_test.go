package trading

import (
	"context"
	"errors"
	"testing"

	"hotkeytrader/internal/gateway/exchange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func reduceOnly(side exchange.Side, qty float64) exchange.OrderRequest {
	return exchange.OrderRequest{Symbol: "BTCUSDT", Side: side, Type: exchange.OrderTypeMarket, Quantity: qty, ReduceOnly: true}
}

func TestClosePositionLong(t *testing.T) {
	gw := new(mockGateway)
	gw.On("OpenPositions", mock.Anything, "BTCUSDT").
		Return([]exchange.Position{{Symbol: "BTCUSDT", Amount: 1.5, EntryPrice: 100}}, nil)
	gw.On("CreateOrder", mock.Anything, reduceOnly(exchange.SideSell, 1.5)).
		Return(exchange.OrderAck{OrderID: 11}, nil).Once()
	gw.On("CancelAllOpenOrders", mock.Anything, "BTCUSDT").Return(nil).Once()
	svc, _ := newTestService(gw, testSettings())

	out := svc.ClosePosition(context.Background())
	require.True(t, out.Succeeded(), out.Message)
	assert.Equal(t, ActionClosePosition, out.Action)
	assert.Len(t, out.Orders, 1)
	gw.AssertExpectations(t)
}

func TestClosePositionShort(t *testing.T) {
	gw := new(mockGateway)
	gw.On("OpenPositions", mock.Anything, "BTCUSDT").
		Return([]exchange.Position{{Symbol: "BTCUSDT", Amount: -2}}, nil)
	gw.On("CreateOrder", mock.Anything, reduceOnly(exchange.SideBuy, 2)).
		Return(exchange.OrderAck{OrderID: 12}, nil).Once()
	gw.On("CancelAllOpenOrders", mock.Anything, "BTCUSDT").Return(nil).Once()
	svc, _ := newTestService(gw, testSettings())

	out := svc.ClosePosition(context.Background())
	require.True(t, out.Succeeded(), out.Message)
	assert.Equal(t, &OrderIntent{Side: exchange.SideBuy, Quantity: 2}, out.Intent)
	gw.AssertExpectations(t)
}

func TestClosePositionFlatStillCancels(t *testing.T) {
	gw := new(mockGateway)
	gw.On("OpenPositions", mock.Anything, "BTCUSDT").
		Return([]exchange.Position{{Symbol: "BTCUSDT", Amount: 0}}, nil)
	gw.On("CancelAllOpenOrders", mock.Anything, "BTCUSDT").Return(nil).Once()
	svc, _ := newTestService(gw, testSettings())

	out := svc.ClosePosition(context.Background())
	require.True(t, out.Skipped())
	assert.Equal(t, exchange.KindState, out.Kind)
	assert.Contains(t, out.Message, "no open position")
	assert.Empty(t, out.Orders)
	gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	gw.AssertExpectations(t)
}

func TestClosePositionMissingSymbol(t *testing.T) {
	gw := new(mockGateway)
	gw.On("OpenPositions", mock.Anything, "BTCUSDT").
		Return([]exchange.Position{{Symbol: "ETHUSDT", Amount: 3}}, nil)
	gw.On("CancelAllOpenOrders", mock.Anything, "BTCUSDT").Return(nil).Once()
	svc, _ := newTestService(gw, testSettings())

	out := svc.ClosePosition(context.Background())
	require.True(t, out.Skipped())
	assert.Contains(t, out.Message, "no position information")
	gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestClosePositionQueryFailure(t *testing.T) {
	gw := new(mockGateway)
	gw.On("OpenPositions", mock.Anything, "BTCUSDT").
		Return(nil, exchange.NewError(exchange.KindConnectivity, "OpenPositions", errors.New("EOF")))
	svc, _ := newTestService(gw, testSettings())

	out := svc.ClosePosition(context.Background())
	require.True(t, out.Failed())
	assert.Equal(t, exchange.KindConnectivity, out.Kind)
	gw.AssertNotCalled(t, "CancelAllOpenOrders", mock.Anything, mock.Anything)
}

func TestClosePositionOrderRejectedSkipsCancel(t *testing.T) {
	gw := new(mockGateway)
	gw.On("OpenPositions", mock.Anything, "BTCUSDT").
		Return([]exchange.Position{{Symbol: "BTCUSDT", Amount: 1}}, nil)
	gw.On("CreateOrder", mock.Anything, mock.Anything).
		Return(exchange.OrderAck{}, exchange.NewError(exchange.KindValidation, "CreateOrder", errors.New("reduce only rejected")))
	svc, _ := newTestService(gw, testSettings())

	out := svc.ClosePosition(context.Background())
	require.True(t, out.Failed())
	assert.Equal(t, exchange.KindValidation, out.Kind)
	gw.AssertNotCalled(t, "CancelAllOpenOrders", mock.Anything, mock.Anything)
}

func TestClosePositionCancelFailure(t *testing.T) {
	gw := new(mockGateway)
	gw.On("OpenPositions", mock.Anything, "BTCUSDT").
		Return([]exchange.Position{{Symbol: "BTCUSDT", Amount: 1}}, nil)
	gw.On("CreateOrder", mock.Anything, reduceOnly(exchange.SideSell, 1)).Return(exchange.OrderAck{OrderID: 5}, nil)
	gw.On("CancelAllOpenOrders", mock.Anything, "BTCUSDT").
		Return(exchange.NewError(exchange.KindConnectivity, "CancelAllOpenOrders", errors.New("timeout")))
	svc, _ := newTestService(gw, testSettings())

	out := svc.ClosePosition(context.Background())
	require.True(t, out.Failed())
	assert.Len(t, out.Orders, 1)
	assert.Contains(t, out.Message, "cancel open orders failed")
}
