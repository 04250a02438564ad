package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	if err := c.Binance.validate(); err != nil {
		return err
	}
	if err := c.Trading.validate(); err != nil {
		return err
	}
	if err := c.Hotkeys.validate(); err != nil {
		return err
	}
	if err := c.Notify.validate(); err != nil {
		return err
	}
	if c.Circuit.FailureThreshold < 0 {
		return fmt.Errorf("circuit.failure_threshold must be >= 0")
	}
	return nil
}

func (b *BinanceConfig) validate() error {
	key, secret := b.Credentials()
	if key == "" || secret == "" {
		return fmt.Errorf("binance credentials for %s network are missing", b.Network())
	}
	if b.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("binance.http_timeout_seconds must be > 0")
	}
	return nil
}

func (t *TradingConfig) validate() error {
	if t.Symbol == "" {
		return fmt.Errorf("trading.symbol is required")
	}
	if t.CapitalPct <= 0 || t.CapitalPct > 100 {
		return fmt.Errorf("trading.capital_pct must be in (0, 100], got %v", t.CapitalPct)
	}
	if t.Leverage < 1 {
		return fmt.Errorf("trading.leverage must be >= 1, got %d", t.Leverage)
	}
	if t.StopLossPct <= 0 || t.StopLossPct >= 100 {
		return fmt.Errorf("trading.stop_loss_pct must be in (0, 100), got %v", t.StopLossPct)
	}
	if t.TakeProfitPct != nil && *t.TakeProfitPct <= 0 {
		return fmt.Errorf("trading.take_profit_pct must be > 0 when set, got %v", *t.TakeProfitPct)
	}
	if t.FillPollAttempts < 1 {
		return fmt.Errorf("trading.fill_poll_attempts must be >= 1")
	}
	if t.FillPollIntervalMs < 0 {
		return fmt.Errorf("trading.fill_poll_interval_ms must be >= 0")
	}
	return nil
}

func (h *HotkeyConfig) validate() error {
	seen := make(map[string]string, 3)
	for name, chord := range map[string]string{
		"hotkeys.open_long":      h.OpenLong,
		"hotkeys.open_short":     h.OpenShort,
		"hotkeys.close_position": h.ClosePosition,
	} {
		norm := strings.ToLower(strings.TrimSpace(chord))
		if norm == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
		if other, dup := seen[norm]; dup {
			return fmt.Errorf("%s and %s share chord %q", name, other, chord)
		}
		seen[norm] = name
	}
	return nil
}

func (n *NotifyConfig) validate() error {
	tg := n.Telegram
	if !tg.Enabled {
		return nil
	}
	if strings.TrimSpace(tg.BotToken) == "" || strings.TrimSpace(tg.ChatID) == "" {
		return fmt.Errorf("notify.telegram requires bot_token and chat_id when enabled")
	}
	return nil
}
