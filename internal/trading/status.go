package trading

import (
	"context"
	"fmt"
	"strings"

	"hotkeytrader/internal/gateway/exchange"
)

// CheckStatus verifies connectivity and reports the account's balance in
// the quote asset together with the symbol's mark price. It places no orders.
func (s *Service) CheckStatus(ctx context.Context) Outcome {
	out := Outcome{Action: ActionStatus}
	snap := &StatusSnapshot{
		Exchange:   s.gw.Name(),
		Network:    s.settings.Network,
		Symbol:     s.settings.Symbol,
		QuoteAsset: s.settings.QuoteAsset,
		Limits:     s.limits,
	}
	out.Snapshot = snap

	sys, err := s.gw.SystemStatus(ctx, s.settings.Symbol)
	if err != nil {
		return out.fail("exchange unreachable", err)
	}
	snap.ExchangeStatus = sys.Message
	if snap.ExchangeStatus == "" {
		snap.ExchangeStatus = "normal"
	}

	balances, err := s.gw.AccountBalances(ctx)
	if err != nil {
		return out.fail("balance query failed", err)
	}
	var found bool
	for _, b := range balances {
		if strings.EqualFold(b.Asset, s.settings.QuoteAsset) {
			snap.WalletBalance = b.Balance
			snap.AvailableBalance = b.AvailableBalance
			found = true
			break
		}
	}
	if !found {
		return out.fail("balance query failed",
			exchange.DataError("CheckStatus", "no %s balance in account", s.settings.QuoteAsset))
	}

	mark, err := s.gw.MarkPrice(ctx, s.settings.Symbol)
	if err != nil {
		return out.fail("mark price query failed", err)
	}
	snap.MarkPrice = mark

	if !sys.Normal {
		return out.skip(fmt.Sprintf("exchange reports %q", snap.ExchangeStatus))
	}
	out.Status = StatusSucceeded
	out.Message = fmt.Sprintf("%s %s ok: %s balance %.2f (available %.2f), %s mark %v",
		snap.Exchange, snap.Network, snap.QuoteAsset, snap.WalletBalance, snap.AvailableBalance, snap.Symbol, snap.MarkPrice)
	return out
}
