package trader

import (
	"context"

	"hotkeytrader/internal/trading"
)

// CommandHandler runs one command against the trading actions.
type CommandHandler interface {
	Command() Command
	Handle(ctx context.Context, hc *HandlerContext, env Envelope) trading.Outcome
}

// HandlerContext gives handlers what they need without exposing the Trader.
type HandlerContext struct {
	trader *Trader
}

func NewHandlerContext(t *Trader) *HandlerContext {
	return &HandlerContext{trader: t}
}

func (c *HandlerContext) Actions() Actions {
	return c.trader.actions
}
