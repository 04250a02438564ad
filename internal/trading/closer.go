package trading

import (
	"context"
	"fmt"
	"math"

	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/logger"
)

// ClosePosition flattens the symbol's position with a reduce-only market
// order and then cancels every open order on the symbol, including any
// stop-loss and take-profit left from the entry. Cancellation runs even
// when there was nothing to close.
func (s *Service) ClosePosition(ctx context.Context) Outcome {
	out := Outcome{Action: ActionClosePosition}

	positions, err := s.gw.OpenPositions(ctx, s.settings.Symbol)
	if err != nil {
		return out.fail("position query failed", err)
	}

	var (
		found  bool
		amount float64
	)
	for _, p := range positions {
		if p.Symbol == s.settings.Symbol {
			found = true
			amount = p.Amount
			break
		}
	}

	var skipped string
	switch {
	case !found:
		skipped = fmt.Sprintf("no position information for %s", s.settings.Symbol)
	case amount == 0:
		skipped = fmt.Sprintf("no open position on %s", s.settings.Symbol)
	default:
		side := exchange.SideSell
		if amount < 0 {
			side = exchange.SideBuy
		}
		qty := math.Abs(amount)
		ack, err := s.gw.CreateOrder(ctx, exchange.OrderRequest{
			Symbol:     s.settings.Symbol,
			Side:       side,
			Type:       exchange.OrderTypeMarket,
			Quantity:   qty,
			ReduceOnly: true,
		})
		if err != nil {
			return out.fail("close order rejected", err)
		}
		out.Orders = append(out.Orders, ack)
		out.Intent = &OrderIntent{Side: side, Quantity: qty}
		logger.Infof("closer: reduce-only %s %v %s accepted as %d", side, qty, s.settings.Symbol, ack.OrderID)
	}

	if err := s.gw.CancelAllOpenOrders(ctx, s.settings.Symbol); err != nil {
		return out.fail("cancel open orders failed", err)
	}

	if skipped != "" {
		logger.Warnf("closer: %s, open orders cancelled", skipped)
		return out.skip(skipped + ", open orders cancelled")
	}
	out.Status = StatusSucceeded
	out.Message = fmt.Sprintf("closed %v %s and cancelled open orders", out.Intent.Quantity, s.settings.Symbol)
	return out
}
