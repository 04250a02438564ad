package binance

import (
	"fmt"
	"strconv"
	"strings"

	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/pkg/convert"

	"github.com/adshao/go-binance/v2/futures"
)

// limitsFromSymbol reads LOT_SIZE and PRICE_FILTER. Price precision is the
// number of decimals in the tick size, not the exchange's pricePrecision
// field, because orders are rejected on tick alignment.
func limitsFromSymbol(s *futures.Symbol) (exchange.SymbolLimits, error) {
	lot := s.LotSizeFilter()
	if lot == nil {
		return exchange.SymbolLimits{}, fmt.Errorf("symbol %s has no LOT_SIZE filter", s.Symbol)
	}
	price := s.PriceFilter()
	if price == nil {
		return exchange.SymbolLimits{}, fmt.Errorf("symbol %s has no PRICE_FILTER filter", s.Symbol)
	}
	minQty, err := convert.ParseFloat("minQty", lot.MinQuantity)
	if err != nil {
		return exchange.SymbolLimits{}, err
	}
	maxQty, err := convert.ParseFloat("maxQty", lot.MaxQuantity)
	if err != nil {
		return exchange.SymbolLimits{}, err
	}
	step, err := convert.ParseFloat("stepSize", lot.StepSize)
	if err != nil {
		return exchange.SymbolLimits{}, err
	}
	tick, err := convert.ParseFloat("tickSize", price.TickSize)
	if err != nil {
		return exchange.SymbolLimits{}, err
	}
	limits := exchange.SymbolLimits{
		Symbol:            s.Symbol,
		MinQty:            minQty,
		MaxQty:            maxQty,
		StepSize:          step,
		TickSize:          tick,
		PricePrecision:    convert.DecimalPlaces(price.TickSize),
		QuantityPrecision: convert.DecimalPlaces(lot.StepSize),
	}
	if limits.StepSize <= 0 {
		return exchange.SymbolLimits{}, fmt.Errorf("symbol %s step size must be > 0, got %s", s.Symbol, lot.StepSize)
	}
	if limits.MinQty > limits.MaxQty {
		return exchange.SymbolLimits{}, fmt.Errorf("symbol %s minQty %s exceeds maxQty %s", s.Symbol, lot.MinQuantity, lot.MaxQuantity)
	}
	return limits, nil
}

func orderStatusFrom(o *futures.Order) (exchange.OrderStatus, error) {
	out := exchange.OrderStatus{OrderID: o.OrderID, Status: string(o.Status)}
	// avgPrice is "0" or "0.00000" until the fill is reported.
	if strings.TrimSpace(o.AvgPrice) != "" {
		avg, err := convert.ParseFloat("avgPrice", o.AvgPrice)
		if err != nil {
			return exchange.OrderStatus{}, exchange.NewError(exchange.KindData, "GetOrder", err)
		}
		out.AvgPrice = avg
	}
	if strings.TrimSpace(o.ExecutedQuantity) != "" {
		qty, err := convert.ParseFloat("executedQty", o.ExecutedQuantity)
		if err != nil {
			return exchange.OrderStatus{}, exchange.NewError(exchange.KindData, "GetOrder", err)
		}
		out.ExecutedQty = qty
	}
	return out, nil
}

func positionFromRisk(r *futures.PositionRisk) (exchange.Position, error) {
	amt, err := convert.ParseFloat("positionAmt", r.PositionAmt)
	if err != nil {
		return exchange.Position{}, err
	}
	pos := exchange.Position{Symbol: r.Symbol, Amount: amt}
	if v, err := convert.ParseFloat("entryPrice", r.EntryPrice); err == nil {
		pos.EntryPrice = v
	}
	if v, err := convert.ParseFloat("markPrice", r.MarkPrice); err == nil {
		pos.MarkPrice = v
	}
	if lev, err := strconv.Atoi(strings.TrimSpace(r.Leverage)); err == nil {
		pos.Leverage = lev
	}
	return pos, nil
}
