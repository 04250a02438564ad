package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"hotkeytrader/internal/config"
	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/hotkey"
	"hotkeytrader/internal/trading"
)

type StartupSummary struct {
	Network   string
	Trading   TradingSummary
	Limits    exchange.SymbolLimits
	Hotkeys   []hotkey.Binding
	HTTPAddr  string
	Console   bool
	Notifiers int
}

type TradingSummary struct {
	Symbol      string
	Leverage    int
	CapitalPct  float64
	StopLossPct float64
	TakeProfit  string
	FillPolling string
}

func buildSummary(cfg config.Config, svc *trading.Service, bindings *hotkey.Bindings, notifiers int) *StartupSummary {
	settings := svc.Settings()
	tp := "-"
	if cfg.Trading.TakeProfitPct != nil {
		tp = fmt.Sprintf("%v%%", *cfg.Trading.TakeProfitPct)
	}
	return &StartupSummary{
		Network: settings.Network,
		Trading: TradingSummary{
			Symbol:      settings.Symbol,
			Leverage:    settings.Leverage,
			CapitalPct:  cfg.Trading.CapitalPct,
			StopLossPct: cfg.Trading.StopLossPct,
			TakeProfit:  tp,
			FillPolling: fmt.Sprintf("%d x %v", settings.FillPollAttempts, settings.FillPollInterval),
		},
		Limits:    svc.Limits(),
		Hotkeys:   bindings.List(),
		HTTPAddr:  cfg.App.HTTPAddr,
		Console:   cfg.App.Console,
		Notifiers: notifiers,
	}
}

func (s *StartupSummary) Print() { s.Fprint(os.Stdout) }

func (s *StartupSummary) Fprint(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	title := "HOTKEY TRADER (" + strings.ToUpper(s.Network) + ")"
	fmt.Fprintf(w, "%*s\n", 30+len(title)/2, title)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintln(w, "[TRADING]")
	fmt.Fprintf(w, "  symbol     : %s\n", s.Trading.Symbol)
	fmt.Fprintf(w, "  leverage   : %dx\n", s.Trading.Leverage)
	fmt.Fprintf(w, "  capital    : %v%% of available balance\n", s.Trading.CapitalPct)
	fmt.Fprintf(w, "  stop-loss  : %v%%\n", s.Trading.StopLossPct)
	fmt.Fprintf(w, "  take-profit: %s\n", s.Trading.TakeProfit)
	fmt.Fprintf(w, "  fill poll  : %s\n", s.Trading.FillPolling)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[LIMITS]")
	fmt.Fprintf(w, "  quantity   : %v .. %v step %v\n", s.Limits.MinQty, s.Limits.MaxQty, s.Limits.StepSize)
	fmt.Fprintf(w, "  tick size  : %v (%d decimals)\n", s.Limits.TickSize, s.Limits.PricePrecision)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[INPUT]")
	if s.Console {
		for _, b := range s.Hotkeys {
			fmt.Fprintf(w, "  %-12s -> %s\n", b.Trigger, b.Command)
		}
	} else {
		fmt.Fprintln(w, "  console    : off")
	}
	fmt.Fprintf(w, "  http       : %s\n", orDash(s.HTTPAddr))
	fmt.Fprintf(w, "  notifiers  : %d\n", s.Notifiers)
	fmt.Fprintln(w, strings.Repeat("=", 60))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
