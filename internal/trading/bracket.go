package trading

import (
	"context"
	"fmt"

	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/logger"
)

// PlaceOrder opens a market position on side and protects it with a
// close-position stop-loss and, when configured, a take-profit. Steps run in
// order and the first failure ends the action; accepted orders are kept on
// the outcome and never rolled back.
func (s *Service) PlaceOrder(ctx context.Context, side exchange.Side) Outcome {
	out := Outcome{Action: actionForSide(side)}
	word := side.PositionWord()

	qty, err := s.sizer.ComputeQuantity(ctx)
	if err != nil {
		return out.fail("quantity computation failed", err)
	}
	if qty <= 0 {
		return out.skip(fmt.Sprintf("computed quantity is %v, no %s opened", qty, word))
	}
	out.Intent = &OrderIntent{Side: side, Quantity: qty}

	entryAck, err := s.gw.CreateOrder(ctx, exchange.OrderRequest{
		Symbol:   s.settings.Symbol,
		Side:     side,
		Type:     exchange.OrderTypeMarket,
		Quantity: qty,
	})
	if err != nil {
		return out.fail(fmt.Sprintf("%s entry order rejected", word), err)
	}
	out.Orders = append(out.Orders, entryAck)
	logger.Infof("bracket: %s entry %d accepted qty=%v", word, entryAck.OrderID, qty)

	price, fallback, err := s.fills.ResolveEntryPrice(ctx, entryAck.OrderID)
	if err != nil {
		return out.fail("entry price unresolved", err)
	}
	out.Entry = &FilledEntry{OrderID: entryAck.OrderID, Price: price, Side: side, Fallback: fallback}

	pair := protectivePrices(price, side, s.settings.StopLossFraction,
		s.settings.TakeProfitFraction, s.settings.HasTakeProfit, s.limits.PricePrecision)
	out.Protection = &pair

	exit := side.Opposite()
	slAck, err := s.gw.CreateOrder(ctx, exchange.OrderRequest{
		Symbol:        s.settings.Symbol,
		Side:          exit,
		Type:          exchange.OrderTypeStopMarket,
		StopPrice:     pair.StopLoss,
		ClosePosition: true,
	})
	if err != nil {
		return out.fail("stop-loss order rejected", err)
	}
	out.Orders = append(out.Orders, slAck)

	if pair.HasTakeProfit {
		tpAck, err := s.gw.CreateOrder(ctx, exchange.OrderRequest{
			Symbol:        s.settings.Symbol,
			Side:          exit,
			Type:          exchange.OrderTypeTakeProfitMarket,
			StopPrice:     pair.TakeProfit,
			ClosePosition: true,
		})
		if err != nil {
			return out.fail("take-profit order rejected", err)
		}
		out.Orders = append(out.Orders, tpAck)
	}

	out.Status = StatusSucceeded
	out.Message = fmt.Sprintf("%s %v %s entry=%v sl=%v", word, qty, s.settings.Symbol, price, pair.StopLoss)
	if pair.HasTakeProfit {
		out.Message += fmt.Sprintf(" tp=%v", pair.TakeProfit)
	}
	if fallback {
		out.Message += " (entry from mark price)"
	}
	return out
}
