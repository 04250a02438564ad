package trading

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/logger"
	symbolpkg "hotkeytrader/internal/pkg/symbol"
)

// Settings is the immutable trading configuration one Service acts on.
type Settings struct {
	Symbol             string
	QuoteAsset         string
	Network            string
	CapitalFraction    float64
	Leverage           int
	StopLossFraction   float64
	TakeProfitFraction float64
	HasTakeProfit      bool
	FillPollAttempts   int
	FillPollInterval   time.Duration
}

func (s Settings) validate() error {
	if strings.TrimSpace(s.Symbol) == "" {
		return fmt.Errorf("symbol is required")
	}
	if s.CapitalFraction <= 0 || s.CapitalFraction > 1 {
		return fmt.Errorf("capital fraction must be in (0, 1], got %v", s.CapitalFraction)
	}
	if s.Leverage < 1 {
		return fmt.Errorf("leverage must be >= 1, got %d", s.Leverage)
	}
	if s.StopLossFraction <= 0 {
		return fmt.Errorf("stop-loss fraction must be > 0, got %v", s.StopLossFraction)
	}
	if s.HasTakeProfit && s.TakeProfitFraction <= 0 {
		return fmt.Errorf("take-profit fraction must be > 0, got %v", s.TakeProfitFraction)
	}
	if s.FillPollAttempts < 1 {
		return fmt.Errorf("fill poll attempts must be >= 1")
	}
	return nil
}

// Service owns the exchange connection and the cached symbol limits, and
// runs the user-facing actions. It holds no mutable state after construction.
type Service struct {
	gw       exchange.Gateway
	settings Settings
	limits   exchange.SymbolLimits
	sizer    *Sizer
	fills    *FillResolver
}

// NewService applies the configured leverage to the symbol and caches its
// trading limits; both must succeed before any action can run.
func NewService(ctx context.Context, gw exchange.Gateway, settings Settings) (*Service, error) {
	settings.Symbol = symbolpkg.ToBinance(settings.Symbol)
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if err := gw.ChangeLeverage(ctx, settings.Symbol, settings.Leverage); err != nil {
		return nil, fmt.Errorf("set leverage %dx on %s: %w", settings.Leverage, settings.Symbol, err)
	}
	limits, err := gw.SymbolLimits(ctx, settings.Symbol)
	if err != nil {
		return nil, fmt.Errorf("load trade limits for %s: %w", settings.Symbol, err)
	}
	svc, err := NewServiceWithLimits(gw, settings, limits)
	if err != nil {
		return nil, err
	}
	logger.Infof("trading service ready symbol=%s leverage=%dx min=%v max=%v step=%v pricePrecision=%d",
		settings.Symbol, settings.Leverage, limits.MinQty, limits.MaxQty, limits.StepSize, limits.PricePrecision)
	return svc, nil
}

// NewServiceWithLimits builds a Service from limits obtained elsewhere.
func NewServiceWithLimits(gw exchange.Gateway, settings Settings, limits exchange.SymbolLimits) (*Service, error) {
	settings.Symbol = symbolpkg.ToBinance(settings.Symbol)
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if limits.StepSize <= 0 {
		return nil, fmt.Errorf("step size for %s must be > 0", settings.Symbol)
	}
	if limits.MinQty > limits.MaxQty {
		return nil, fmt.Errorf("min quantity %v exceeds max quantity %v for %s", limits.MinQty, limits.MaxQty, settings.Symbol)
	}
	return &Service{
		gw:       gw,
		settings: settings,
		limits:   limits,
		sizer:    newSizer(gw, settings, limits),
		fills:    newFillResolver(gw, settings, limits),
	}, nil
}

func (s *Service) Settings() Settings { return s.settings }

func (s *Service) Limits() exchange.SymbolLimits { return s.limits }

func (s *Service) Sizer() *Sizer { return s.sizer }
