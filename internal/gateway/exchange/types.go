// Package exchange defines the exchange-facing types shared by the trading
// actions and the concrete gateway implementations.
package exchange

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Opposite is the side that reduces a position opened with s.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// PositionWord renders the side as the position it opens.
func (s Side) PositionWord() string {
	if s == SideBuy {
		return "long"
	}
	return "short"
}

type OrderType string

const (
	OrderTypeMarket           OrderType = "MARKET"
	OrderTypeStopMarket       OrderType = "STOP_MARKET"
	OrderTypeTakeProfitMarket OrderType = "TAKE_PROFIT_MARKET"
)

// OrderRequest describes a futures order. Quantity is ignored when
// ClosePosition is set; StopPrice only applies to trigger orders.
type OrderRequest struct {
	Symbol        string
	Side          Side
	Type          OrderType
	Quantity      float64
	StopPrice     float64
	ReduceOnly    bool
	ClosePosition bool
}

// OrderAck is the exchange's acknowledgement of an accepted order.
type OrderAck struct {
	OrderID       int64
	ClientOrderID string
	Symbol        string
	Side          Side
	Type          OrderType
	Status        string
	Quantity      float64
	StopPrice     float64
}

// OrderStatus is a point-in-time view of an order; AvgPrice stays zero until the
// exchange reports a fill.
type OrderStatus struct {
	OrderID     int64
	Status      string
	AvgPrice    float64
	ExecutedQty float64
}

// SymbolLimits are the trading filters for one symbol.
type SymbolLimits struct {
	Symbol            string
	MinQty            float64
	MaxQty            float64
	StepSize          float64
	TickSize          float64
	PricePrecision    int
	QuantityPrecision int
}

// Position is the exchange's view of the position on a symbol. Amount is
// signed: positive long, negative short, zero flat.
type Position struct {
	Symbol     string
	Amount     float64
	EntryPrice float64
	MarkPrice  float64
	Leverage   int
}

type AssetBalance struct {
	Asset            string
	Balance          float64
	AvailableBalance float64
}

type SystemStatus struct {
	Normal     bool
	Message    string
	ServerTime int64
}
