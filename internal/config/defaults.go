package config

import "strings"

const (
	defaultLogLevel         = "info"
	defaultQuoteAsset       = "USDT"
	defaultLeverage         = 1
	defaultFillAttempts     = 10
	defaultFillIntervalMs   = 200
	defaultHTTPTimeoutSec   = 15
	defaultOpenLongChord    = "ctrl+alt+b"
	defaultOpenShortChord   = "ctrl+alt+s"
	defaultCloseChord       = "ctrl+alt+x"
	defaultSuccessSound     = "success.mp3"
	defaultErrorSound       = "error.mp3"
	defaultCircuitThreshold = 5
	defaultCircuitCooldown  = 30
)

func (c *Config) applyDefaults(keys keySet) {
	c.App.applyDefaults(keys)
	c.Binance.applyDefaults(keys)
	c.Trading.applyDefaults(keys)
	c.Hotkeys.applyDefaults(keys)
	c.Sound.applyDefaults(keys)
	c.Circuit.applyDefaults(keys)
}

func (a *AppConfig) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		stringFieldDefault("app.log_level", &a.LogLevel, defaultLogLevel),
		boolFieldDefault("app.console", &a.Console, true),
	)
}

func (b *BinanceConfig) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		intFieldDefault("binance.http_timeout_seconds", &b.HTTPTimeoutSeconds, defaultHTTPTimeoutSec),
	)
	b.RESTBaseURL = strings.TrimSpace(b.RESTBaseURL)
	b.ProxyURL = strings.TrimSpace(b.ProxyURL)
}

func (t *TradingConfig) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		stringFieldDefault("trading.quote_asset", &t.QuoteAsset, defaultQuoteAsset),
		intFieldDefault("trading.leverage", &t.Leverage, defaultLeverage),
		intFieldDefault("trading.fill_poll_attempts", &t.FillPollAttempts, defaultFillAttempts),
		intFieldDefault("trading.fill_poll_interval_ms", &t.FillPollIntervalMs, defaultFillIntervalMs),
	)
	t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))
	t.QuoteAsset = strings.ToUpper(strings.TrimSpace(t.QuoteAsset))
}

func (h *HotkeyConfig) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		stringFieldDefault("hotkeys.open_long", &h.OpenLong, defaultOpenLongChord),
		stringFieldDefault("hotkeys.open_short", &h.OpenShort, defaultOpenShortChord),
		stringFieldDefault("hotkeys.close_position", &h.ClosePosition, defaultCloseChord),
	)
}

func (s *SoundConfig) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		boolFieldDefault("sound.enabled", &s.Enabled, true),
		stringFieldDefault("sound.success_file", &s.SuccessFile, defaultSuccessSound),
		stringFieldDefault("sound.error_file", &s.ErrorFile, defaultErrorSound),
	)
}

func (c *CircuitConfig) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		intFieldDefault("circuit.failure_threshold", &c.FailureThreshold, defaultCircuitThreshold),
		intFieldDefault("circuit.cooldown_seconds", &c.CooldownSeconds, defaultCircuitCooldown),
	)
}

func applyFieldDefaults(keys keySet, defs ...fieldDefault) {
	for _, def := range defs {
		if def.apply == nil {
			continue
		}
		if def.key != "" && keys.isSet(def.key) {
			continue
		}
		if def.need != nil && !def.need() {
			continue
		}
		def.apply()
	}
}

func stringFieldDefault(key string, target *string, def string) fieldDefault {
	return fieldDefault{
		key:   key,
		need:  func() bool { return target != nil && strings.TrimSpace(*target) == "" },
		apply: func() { *target = def },
	}
}

func intFieldDefault(key string, target *int, def int) fieldDefault {
	return fieldDefault{
		key:   key,
		need:  func() bool { return target != nil && *target <= 0 },
		apply: func() { *target = def },
	}
}

func boolFieldDefault(key string, target *bool, def bool) fieldDefault {
	return fieldDefault{
		key:   key,
		need:  func() bool { return target != nil },
		apply: func() { *target = def },
	}
}
