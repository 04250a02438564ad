package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"hotkeytrader/internal/config"
	"hotkeytrader/internal/gateway"
	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/hotkey"
	"hotkeytrader/internal/logger"
	"hotkeytrader/internal/notifier"
	"hotkeytrader/internal/trader"
	"hotkeytrader/internal/trading"
	apihttp "hotkeytrader/internal/transport/http/api"
)

type AppBuilder struct {
	cfg *config.Config

	gatewayFn func(config.Config) (exchange.Gateway, error)
	serviceFn func(context.Context, exchange.Gateway, trading.Settings) (*trading.Service, error)
	httpFn    func(config.AppConfig, apihttp.Dispatcher) (*apihttp.Server, error)

	stdin  io.Reader
	stdout io.Writer
}

type AppBuilderOption func(*AppBuilder)

// WithGateway replaces the exchange connection, mainly for tests.
func WithGateway(fn func(config.Config) (exchange.Gateway, error)) AppBuilderOption {
	return func(b *AppBuilder) { b.gatewayFn = fn }
}

// WithConsoleIO replaces stdin and stdout.
func WithConsoleIO(in io.Reader, out io.Writer) AppBuilderOption {
	return func(b *AppBuilder) {
		b.stdin = in
		b.stdout = out
	}
}

func NewAppBuilder(cfg *config.Config, opts ...AppBuilderOption) *AppBuilder {
	b := &AppBuilder{
		cfg:       cfg,
		gatewayFn: gateway.NewFromConfig,
		serviceFn: trading.NewService,
		httpFn:    buildHTTPServer,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if b.cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	cfg := *b.cfg

	gw, err := b.gatewayFn(cfg)
	if err != nil {
		return nil, fmt.Errorf("init exchange gateway: %w", err)
	}
	svc, err := b.serviceFn(ctx, gw, tradingSettings(cfg))
	if err != nil {
		return nil, fmt.Errorf("init trading service: %w", err)
	}

	notifiers := buildNotifiers(cfg, b.stdout)
	tr := trader.NewTrader(svc, notifiers)

	bindings, err := hotkey.NewBindings(cfg.Hotkeys)
	if err != nil {
		return nil, fmt.Errorf("init hotkeys: %w", err)
	}
	var console *hotkey.ConsoleReader
	if cfg.App.Console {
		console = hotkey.NewConsoleReader(b.stdin, b.stdout, bindings, tr)
	}

	var server *apihttp.Server
	if cfg.App.HTTPAddr != "" {
		server, err = b.httpFn(cfg.App, tr)
		if err != nil {
			return nil, fmt.Errorf("init http server: %w", err)
		}
	}

	return &App{
		cfg:     b.cfg,
		trader:  tr,
		console: console,
		http:    server,
		Summary: buildSummary(cfg, svc, bindings, len(notifiers)),
	}, nil
}

func tradingSettings(cfg config.Config) trading.Settings {
	tp, hasTP := cfg.Trading.TakeProfitFraction()
	return trading.Settings{
		Symbol:             cfg.Trading.Symbol,
		QuoteAsset:         cfg.Trading.QuoteAsset,
		Network:            cfg.Binance.Network(),
		CapitalFraction:    cfg.Trading.CapitalFraction(),
		Leverage:           cfg.Trading.Leverage,
		StopLossFraction:   cfg.Trading.StopLossFraction(),
		TakeProfitFraction: tp,
		HasTakeProfit:      hasTP,
		FillPollAttempts:   cfg.Trading.FillPollAttempts,
		FillPollInterval:   time.Duration(cfg.Trading.FillPollIntervalMs) * time.Millisecond,
	}
}

func buildNotifiers(cfg config.Config, stdout io.Writer) notifier.Multi {
	out := notifier.Multi{notifier.NewConsole(stdout)}
	if cfg.Sound.Enabled {
		out = append(out, notifier.NewSound(notifier.SoundConfig{
			Player:      cfg.Sound.Player,
			PlayerArgs:  cfg.Sound.PlayerArgs,
			SuccessFile: cfg.Sound.SuccessFile,
			ErrorFile:   cfg.Sound.ErrorFile,
		}))
	}
	if tg := cfg.Notify.Telegram; tg.Enabled {
		out = append(out, notifier.NewTelegram(tg.BotToken, tg.ChatID))
		logger.Infof("telegram notifications enabled chat=%s", tg.ChatID)
	}
	return out
}

func buildHTTPServer(cfg config.AppConfig, d apihttp.Dispatcher) (*apihttp.Server, error) {
	return apihttp.NewServer(apihttp.ServerConfig{Addr: cfg.HTTPAddr, Dispatcher: d})
}
