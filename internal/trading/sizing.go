package trading

import (
	"context"
	"fmt"
	"math"

	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/logger"
)

// Sizer turns available margin into an exchange-compliant order quantity.
type Sizer struct {
	gw       exchange.Gateway
	settings Settings
	limits   exchange.SymbolLimits
}

func newSizer(gw exchange.Gateway, settings Settings, limits exchange.SymbolLimits) *Sizer {
	return &Sizer{gw: gw, settings: settings, limits: limits}
}

// ComputeQuantity reads balance and mark price fresh on every call. On any
// failure it returns 0 together with the error so callers can report it.
func (z *Sizer) ComputeQuantity(ctx context.Context) (float64, error) {
	balance, err := z.gw.AvailableBalance(ctx)
	if err != nil {
		return 0, fmt.Errorf("read available balance: %w", err)
	}
	mark, err := z.gw.MarkPrice(ctx, z.settings.Symbol)
	if err != nil {
		return 0, fmt.Errorf("read mark price: %w", err)
	}
	if !(mark > 0) || math.IsInf(mark, 1) {
		return 0, exchange.DataError("ComputeQuantity", "mark price %v for %s is not positive", mark, z.settings.Symbol)
	}

	qty, clamp := sizeQuantity(balance, z.settings.CapitalFraction, z.settings.Leverage, mark, z.limits)
	switch clamp {
	case clampedToMin:
		// Raises exposure above the configured capital fraction.
		logger.Warnf("sizing: balance %.4f at mark %v is below the minimum lot, using min quantity %v",
			balance, mark, qty)
	case clampedToMax:
		logger.Warnf("sizing: quantity capped at max quantity %v", qty)
	}
	logger.Debugf("sizing: balance=%.4f fraction=%v leverage=%d mark=%v qty=%v",
		balance, z.settings.CapitalFraction, z.settings.Leverage, mark, qty)
	return qty, nil
}
