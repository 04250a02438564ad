package trader

import (
	"context"

	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/trading"
)

type OpenLongHandler struct{}

func (h *OpenLongHandler) Command() Command { return CommandOpenLong }

func (h *OpenLongHandler) Handle(ctx context.Context, hc *HandlerContext, _ Envelope) trading.Outcome {
	return hc.Actions().PlaceOrder(ctx, exchange.SideBuy)
}

type OpenShortHandler struct{}

func (h *OpenShortHandler) Command() Command { return CommandOpenShort }

func (h *OpenShortHandler) Handle(ctx context.Context, hc *HandlerContext, _ Envelope) trading.Outcome {
	return hc.Actions().PlaceOrder(ctx, exchange.SideSell)
}

type ClosePositionHandler struct{}

func (h *ClosePositionHandler) Command() Command { return CommandClosePosition }

func (h *ClosePositionHandler) Handle(ctx context.Context, hc *HandlerContext, _ Envelope) trading.Outcome {
	return hc.Actions().ClosePosition(ctx)
}

type StatusHandler struct{}

func (h *StatusHandler) Command() Command { return CommandStatus }

func (h *StatusHandler) Handle(ctx context.Context, hc *HandlerContext, _ Envelope) trading.Outcome {
	return hc.Actions().CheckStatus(ctx)
}
