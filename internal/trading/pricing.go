package trading

import (
	"math"

	"hotkeytrader/internal/gateway/exchange"

	"github.com/shopspring/decimal"
)

var decOne = decimal.NewFromInt(1)

func decFromFloat(val float64) decimal.Decimal {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(val)
}

// roundPrice rounds half away from zero to precision decimals.
func roundPrice(price float64, precision int) float64 {
	return decFromFloat(price).Round(int32(precision)).InexactFloat64()
}

type clampResult int

const (
	notClamped clampResult = iota
	clampedToMin
	clampedToMax
)

// sizeQuantity converts margin into a lot-aligned quantity:
// floor((balance*fraction*leverage/mark)/step)*step, then clamped into
// [min, max]. Truncation never rounds up.
func sizeQuantity(balance, fraction float64, leverage int, mark float64, limits exchange.SymbolLimits) (float64, clampResult) {
	capital := decFromFloat(balance).Mul(decFromFloat(fraction)).Mul(decimal.NewFromInt(int64(leverage)))
	raw := capital.Div(decFromFloat(mark))
	step := decFromFloat(limits.StepSize)
	truncated := raw.Div(step).Floor().Mul(step)

	minQty := decFromFloat(limits.MinQty)
	maxQty := decFromFloat(limits.MaxQty)
	switch {
	case truncated.LessThan(minQty):
		return minQty.InexactFloat64(), clampedToMin
	case truncated.GreaterThan(maxQty):
		return maxQty.InexactFloat64(), clampedToMax
	default:
		return truncated.InexactFloat64(), notClamped
	}
}

// protectivePrices derives the stop-loss and optional take-profit triggers
// from the entry: a long stops below and takes profit above, a short the reverse.
func protectivePrices(entry float64, side exchange.Side, stopFraction, takeFraction float64, hasTake bool, precision int) ProtectiveOrderPair {
	base := decFromFloat(entry)
	sl := decFromFloat(stopFraction)
	var slFactor decimal.Decimal
	if side == exchange.SideBuy {
		slFactor = decOne.Sub(sl)
	} else {
		slFactor = decOne.Add(sl)
	}
	pair := ProtectiveOrderPair{
		StopLoss: base.Mul(slFactor).Round(int32(precision)).InexactFloat64(),
	}
	if !hasTake {
		return pair
	}
	tp := decFromFloat(takeFraction)
	var tpFactor decimal.Decimal
	if side == exchange.SideBuy {
		tpFactor = decOne.Add(tp)
	} else {
		tpFactor = decOne.Sub(tp)
	}
	pair.TakeProfit = base.Mul(tpFactor).Round(int32(precision)).InexactFloat64()
	pair.HasTakeProfit = true
	return pair
}
