package exchange

import "context"

// Gateway is the narrow slice of a futures exchange the trading actions use.
// Every call is a blocking remote request.
type Gateway interface {
	Name() string

	// SystemStatus reports whether the exchange is accepting orders for symbol.
	SystemStatus(ctx context.Context, symbol string) (SystemStatus, error)

	AccountBalances(ctx context.Context) ([]AssetBalance, error)

	// AvailableBalance returns the futures account's available margin.
	AvailableBalance(ctx context.Context) (float64, error)

	SymbolLimits(ctx context.Context, symbol string) (SymbolLimits, error)

	MarkPrice(ctx context.Context, symbol string) (float64, error)

	ChangeLeverage(ctx context.Context, symbol string, leverage int) error

	CreateOrder(ctx context.Context, req OrderRequest) (OrderAck, error)

	GetOrder(ctx context.Context, symbol string, orderID int64) (OrderStatus, error)

	OpenPositions(ctx context.Context, symbol string) ([]Position, error)

	CancelAllOpenOrders(ctx context.Context, symbol string) error
}
