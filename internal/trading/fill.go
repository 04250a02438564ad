package trading

import (
	"context"
	"fmt"
	"math"
	"time"

	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/logger"
)

// FillResolver finds the realized entry price of a market order. The
// exchange reports avgPrice asynchronously, so it polls a bounded number of
// times before settling for the mark price.
type FillResolver struct {
	gw        exchange.Gateway
	symbol    string
	attempts  int
	interval  time.Duration
	precision int
	sleep     func(ctx context.Context, d time.Duration) error
}

func newFillResolver(gw exchange.Gateway, settings Settings, limits exchange.SymbolLimits) *FillResolver {
	return &FillResolver{
		gw:        gw,
		symbol:    settings.Symbol,
		attempts:  settings.FillPollAttempts,
		interval:  settings.FillPollInterval,
		precision: limits.PricePrecision,
		sleep:     sleepContext,
	}
}

// ResolveEntryPrice returns the entry price rounded to the symbol's price
// precision and whether it is the mark-price fallback.
func (f *FillResolver) ResolveEntryPrice(ctx context.Context, orderID int64) (float64, bool, error) {
	for attempt := 1; attempt <= f.attempts; attempt++ {
		st, err := f.gw.GetOrder(ctx, f.symbol, orderID)
		if err != nil {
			return 0, false, fmt.Errorf("poll order %d: %w", orderID, err)
		}
		if st.AvgPrice > 0 {
			logger.Debugf("fill: order %d filled at %v after %d poll(s)", orderID, st.AvgPrice, attempt)
			return roundPrice(st.AvgPrice, f.precision), false, nil
		}
		if attempt == f.attempts {
			break
		}
		if err := f.sleep(ctx, f.interval); err != nil {
			return 0, false, fmt.Errorf("wait for fill of order %d: %w", orderID, err)
		}
	}

	mark, err := f.gw.MarkPrice(ctx, f.symbol)
	if err != nil {
		return 0, false, fmt.Errorf("mark price fallback for order %d: %w", orderID, err)
	}
	if !(mark > 0) || math.IsInf(mark, 1) {
		return 0, false, exchange.DataError("ResolveEntryPrice", "mark price %v for %s is not positive", mark, f.symbol)
	}
	logger.Warnf("fill: no average price for order %d after %d polls, using mark price %v as entry",
		orderID, f.attempts, mark)
	return roundPrice(mark, f.precision), true, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
