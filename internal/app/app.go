package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotkeytrader/internal/config"
	"hotkeytrader/internal/hotkey"
	"hotkeytrader/internal/logger"
	"hotkeytrader/internal/trader"
	apihttp "hotkeytrader/internal/transport/http/api"

	"golang.org/x/sync/errgroup"
)

// App wires input surfaces, the trader actor and notifiers together.
type App struct {
	cfg     *config.Config
	trader  *trader.Trader
	console *hotkey.ConsoleReader
	http    *apihttp.Server
	Summary *StartupSummary
}

// NewApp connects to the exchange, applies leverage and loads symbol limits.
// It does not start any goroutines.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(context.Background(), cfg)
}

// Run starts the worker, performs the startup status check and serves the
// console and HTTP surfaces until ctx is cancelled or the user quits.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil || a.trader == nil {
		return fmt.Errorf("app not initialized")
	}
	if a.Summary != nil {
		a.Summary.Print()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.trader.Start(ctx)
	defer a.trader.Stop()

	a.startupStatus(ctx)

	group, gctx := errgroup.WithContext(ctx)
	if a.http != nil {
		group.Go(func() error {
			logger.Infof("HTTP control surface listening on %s", a.http.Addr())
			if err := a.http.Start(gctx); err != nil {
				return fmt.Errorf("http server error: %w", err)
			}
			return nil
		})
	}
	if a.console != nil {
		group.Go(func() error {
			err := a.console.Run(gctx)
			if errors.Is(err, hotkey.ErrQuit) {
				logger.Infof("quit requested from console")
				cancel()
				return nil
			}
			return err
		})
	}
	group.Go(func() error {
		<-gctx.Done()
		return nil
	})

	err := group.Wait()
	logger.Infof("shutting down")
	return err
}

// startupStatus reports connectivity once before accepting commands. A
// failure is reported like any other action and does not stop the app.
func (a *App) startupStatus(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	out, err := a.trader.SubmitSync(ctx, trader.CommandStatus, "startup")
	if err != nil {
		logger.Warnf("startup status check not run: %v", err)
		return
	}
	if out.Failed() {
		logger.Warnf("startup status check failed: %s", out.Message)
	}
}
