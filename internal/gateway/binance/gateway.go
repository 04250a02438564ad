package binance

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/logger"
	"hotkeytrader/internal/metrics"
	"hotkeytrader/internal/pkg/circuit"
	"hotkeytrader/internal/pkg/convert"
	symbolpkg "hotkeytrader/internal/pkg/symbol"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/google/uuid"
)

// Gateway implements exchange.Gateway on top of the go-binance USDⓈ-M futures client.
type Gateway struct {
	cfg     Config
	client  *futures.Client
	breaker *circuit.Breaker
}

var _ exchange.Gateway = (*Gateway)(nil)

const symbolStatusTrading = "TRADING"

func New(cfg Config) (*Gateway, error) {
	final := cfg.withDefaults()
	if final.APIKey == "" || final.APISecret == "" {
		return nil, fmt.Errorf("binance api key and secret are required")
	}
	client := futures.NewClient(final.APIKey, final.APISecret)
	client.BaseURL = final.RESTBaseURL
	httpClient := &http.Client{Timeout: final.HTTPTimeout}
	if final.ProxyURL != "" {
		proxyURL, err := url.Parse(final.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REST proxy url: %w", err)
		}
		baseTransport, ok := http.DefaultTransport.(*http.Transport)
		if !ok || baseTransport == nil {
			return nil, fmt.Errorf("http DefaultTransport is not *http.Transport")
		}
		transport := baseTransport.Clone()
		transport.Proxy = http.ProxyURL(proxyURL)
		httpClient.Transport = transport
	}
	client.HTTPClient = httpClient

	breaker := circuit.New("binance-futures", final.BreakerThreshold, final.BreakerCooldown).
		CountIf(func(err error) bool { return classify(err) == exchange.KindConnectivity })

	logger.Infof("binance gateway ready (base=%s testnet=%t timeout=%s)", final.RESTBaseURL, final.Testnet, final.HTTPTimeout)
	return &Gateway{cfg: final, client: client, breaker: breaker}, nil
}

func (g *Gateway) Name() string {
	if g.cfg.Testnet {
		return "binance-futures-testnet"
	}
	return "binance-futures"
}

// call runs fn behind the breaker and tags any failure with its kind.
func (g *Gateway) call(op string, fn func() error) error {
	err := g.breaker.Execute(fn)
	if err == nil {
		return nil
	}
	kind := classify(err)
	metrics.GatewayErrors.WithLabelValues(op, string(kind)).Inc()
	return exchange.NewError(kind, op, err)
}

// SystemStatus reports server time and the trading status Binance publishes
// for symbol in the futures exchange info. Anything but TRADING is abnormal.
func (g *Gateway) SystemStatus(ctx context.Context, symbol string) (exchange.SystemStatus, error) {
	symbol = symbolpkg.ToBinance(symbol)
	var (
		serverTime int64
		info       *futures.ExchangeInfo
	)
	err := g.call("SystemStatus", func() error {
		var err error
		if serverTime, err = g.client.NewServerTimeService().Do(ctx); err != nil {
			return err
		}
		info, err = g.client.NewExchangeInfoService().Do(ctx)
		return err
	})
	if err != nil {
		return exchange.SystemStatus{}, err
	}
	if info == nil {
		return exchange.SystemStatus{}, exchange.DataError("SystemStatus", "empty exchange info")
	}
	for i := range info.Symbols {
		if info.Symbols[i].Symbol != symbol {
			continue
		}
		state := info.Symbols[i].Status
		if state == symbolStatusTrading {
			return exchange.SystemStatus{Normal: true, Message: "normal", ServerTime: serverTime}, nil
		}
		return exchange.SystemStatus{Message: fmt.Sprintf("%s status %s", symbol, state), ServerTime: serverTime}, nil
	}
	return exchange.SystemStatus{Message: fmt.Sprintf("%s not listed", symbol), ServerTime: serverTime}, nil
}

func (g *Gateway) AccountBalances(ctx context.Context) ([]exchange.AssetBalance, error) {
	var res []*futures.Balance
	err := g.call("AccountBalances", func() error {
		var err error
		res, err = g.client.NewGetBalanceService().Do(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]exchange.AssetBalance, 0, len(res))
	for _, b := range res {
		if b == nil {
			continue
		}
		total, err := convert.ParseFloat("balance", b.Balance)
		if err != nil {
			return nil, exchange.NewError(exchange.KindData, "AccountBalances", err)
		}
		avail, err := convert.ParseFloat("availableBalance", b.AvailableBalance)
		if err != nil {
			return nil, exchange.NewError(exchange.KindData, "AccountBalances", err)
		}
		out = append(out, exchange.AssetBalance{Asset: b.Asset, Balance: total, AvailableBalance: avail})
	}
	return out, nil
}

func (g *Gateway) AvailableBalance(ctx context.Context) (float64, error) {
	var acct *futures.Account
	err := g.call("AvailableBalance", func() error {
		var err error
		acct, err = g.client.NewGetAccountService().Do(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	if acct == nil {
		return 0, exchange.DataError("AvailableBalance", "empty account response")
	}
	avail, err := convert.ParseFloat("availableBalance", acct.AvailableBalance)
	if err != nil {
		return 0, exchange.NewError(exchange.KindData, "AvailableBalance", err)
	}
	return avail, nil
}

func (g *Gateway) SymbolLimits(ctx context.Context, symbol string) (exchange.SymbolLimits, error) {
	symbol = symbolpkg.ToBinance(symbol)
	var info *futures.ExchangeInfo
	err := g.call("SymbolLimits", func() error {
		var err error
		info, err = g.client.NewExchangeInfoService().Do(ctx)
		return err
	})
	if err != nil {
		return exchange.SymbolLimits{}, err
	}
	if info == nil {
		return exchange.SymbolLimits{}, exchange.DataError("SymbolLimits", "empty exchange info")
	}
	for i := range info.Symbols {
		if info.Symbols[i].Symbol == symbol {
			limits, err := limitsFromSymbol(&info.Symbols[i])
			if err != nil {
				return exchange.SymbolLimits{}, exchange.NewError(exchange.KindData, "SymbolLimits", err)
			}
			return limits, nil
		}
	}
	return exchange.SymbolLimits{}, exchange.DataError("SymbolLimits", "symbol %s not listed", symbol)
}

func (g *Gateway) MarkPrice(ctx context.Context, symbol string) (float64, error) {
	symbol = symbolpkg.ToBinance(symbol)
	var res []*futures.PremiumIndex
	err := g.call("MarkPrice", func() error {
		var err error
		res, err = g.client.NewPremiumIndexService().Symbol(symbol).Do(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	for _, idx := range res {
		if idx == nil || idx.Symbol != symbol {
			continue
		}
		price, err := convert.ParseFloat("markPrice", idx.MarkPrice)
		if err != nil {
			return 0, exchange.NewError(exchange.KindData, "MarkPrice", err)
		}
		return price, nil
	}
	return 0, exchange.DataError("MarkPrice", "no mark price for %s", symbol)
}

func (g *Gateway) ChangeLeverage(ctx context.Context, symbol string, leverage int) error {
	symbol = symbolpkg.ToBinance(symbol)
	return g.call("ChangeLeverage", func() error {
		_, err := g.client.NewChangeLeverageService().Symbol(symbol).Leverage(leverage).Do(ctx)
		return err
	})
}

func (g *Gateway) CreateOrder(ctx context.Context, req exchange.OrderRequest) (exchange.OrderAck, error) {
	symbol := symbolpkg.ToBinance(req.Symbol)
	clientID := newClientOrderID()
	svc := g.client.NewCreateOrderService().
		Symbol(symbol).
		Side(futures.SideType(req.Side)).
		Type(futures.OrderType(req.Type)).
		NewClientOrderID(clientID)
	if req.ClosePosition {
		svc = svc.ClosePosition(true)
	} else {
		svc = svc.Quantity(formatNumber(req.Quantity))
	}
	if req.ReduceOnly {
		svc = svc.ReduceOnly(true)
	}
	if req.StopPrice > 0 {
		svc = svc.StopPrice(formatNumber(req.StopPrice))
	}

	var res *futures.CreateOrderResponse
	err := g.call("CreateOrder", func() error {
		var err error
		res, err = svc.Do(ctx)
		return err
	})
	if err != nil {
		return exchange.OrderAck{}, err
	}
	if res == nil {
		return exchange.OrderAck{}, exchange.DataError("CreateOrder", "empty order response")
	}
	metrics.Orders.WithLabelValues(string(req.Type), string(req.Side)).Inc()
	logger.Debugf("binance order accepted id=%d client=%s type=%s side=%s status=%s",
		res.OrderID, res.ClientOrderID, res.Type, res.Side, res.Status)
	return exchange.OrderAck{
		OrderID:       res.OrderID,
		ClientOrderID: res.ClientOrderID,
		Symbol:        symbol,
		Side:          req.Side,
		Type:          req.Type,
		Status:        string(res.Status),
		Quantity:      req.Quantity,
		StopPrice:     req.StopPrice,
	}, nil
}

func (g *Gateway) GetOrder(ctx context.Context, symbol string, orderID int64) (exchange.OrderStatus, error) {
	symbol = symbolpkg.ToBinance(symbol)
	var order *futures.Order
	err := g.call("GetOrder", func() error {
		var err error
		order, err = g.client.NewGetOrderService().Symbol(symbol).OrderID(orderID).Do(ctx)
		return err
	})
	if err != nil {
		return exchange.OrderStatus{}, err
	}
	if order == nil {
		return exchange.OrderStatus{}, exchange.DataError("GetOrder", "empty order %d", orderID)
	}
	return orderStatusFrom(order)
}

func (g *Gateway) OpenPositions(ctx context.Context, symbol string) ([]exchange.Position, error) {
	symbol = symbolpkg.ToBinance(symbol)
	var risks []*futures.PositionRisk
	err := g.call("OpenPositions", func() error {
		var err error
		risks, err = g.client.NewGetPositionRiskService().Symbol(symbol).Do(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]exchange.Position, 0, len(risks))
	for _, r := range risks {
		if r == nil {
			continue
		}
		pos, err := positionFromRisk(r)
		if err != nil {
			return nil, exchange.NewError(exchange.KindData, "OpenPositions", err)
		}
		out = append(out, pos)
	}
	return out, nil
}

func (g *Gateway) CancelAllOpenOrders(ctx context.Context, symbol string) error {
	symbol = symbolpkg.ToBinance(symbol)
	return g.call("CancelAllOpenOrders", func() error {
		return g.client.NewCancelAllOpenOrdersService().Symbol(symbol).Do(ctx)
	})
}

func newClientOrderID() string {
	return "hk-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
