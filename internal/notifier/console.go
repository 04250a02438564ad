package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"hotkeytrader/internal/trading"
)

const (
	iconSuccess = "✅"
	iconWarning = "⚠️"
	iconFailure = "❌"
)

// Console prints one status line per outcome, plus detail lines for fill
// fallbacks and status reports.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{out: w}
}

func (c *Console) Notify(_ context.Context, out trading.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range consoleLines(out) {
		fmt.Fprintln(c.out, line)
	}
}

func consoleLines(out trading.Outcome) []string {
	label := fmt.Sprintf("[%s]", out.Action)
	var lines []string
	switch out.Status {
	case trading.StatusSucceeded:
		lines = append(lines, fmt.Sprintf("%s %s %s", iconSuccess, label, out.Message))
	case trading.StatusSkipped:
		lines = append(lines, fmt.Sprintf("%s %s %s", iconWarning, label, out.Message))
	default:
		msg := out.Message
		if out.Kind != "" {
			msg = fmt.Sprintf("%s [%s]", msg, out.Kind)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", iconFailure, label, msg))
	}
	if out.Entry != nil && out.Entry.Fallback {
		lines = append(lines, fmt.Sprintf("%s %s fill price for order %d was not reported, protective orders priced from mark %v",
			iconWarning, label, out.Entry.OrderID, out.Entry.Price))
	}
	if snap := out.Snapshot; snap != nil && out.Status != trading.StatusFailed {
		lines = append(lines, statusLines(snap)...)
	}
	return lines
}

func statusLines(snap *trading.StatusSnapshot) []string {
	lines := make([]string, 0, 5)
	if strings.EqualFold(snap.Network, "testnet") {
		lines = append(lines, "    *** TESTNET ***")
	}
	lines = append(lines,
		fmt.Sprintf("    exchange : %s (%s)", snap.Exchange, snap.ExchangeStatus),
		fmt.Sprintf("    balance  : %.2f %s (available %.2f)", snap.WalletBalance, snap.QuoteAsset, snap.AvailableBalance),
		fmt.Sprintf("    %-9s: mark %v", snap.Symbol, snap.MarkPrice),
		fmt.Sprintf("    limits   : qty %v..%v step %v tick %v", snap.Limits.MinQty, snap.Limits.MaxQty, snap.Limits.StepSize, snap.Limits.TickSize),
	)
	return lines
}
