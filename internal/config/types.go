package config

import "strings"

// Config is the root settings object; it is loaded once and treated as read-only.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Binance BinanceConfig `mapstructure:"binance"`
	Trading TradingConfig `mapstructure:"trading"`
	Hotkeys HotkeyConfig  `mapstructure:"hotkeys"`
	Sound   SoundConfig   `mapstructure:"sound"`
	Notify  NotifyConfig  `mapstructure:"notify"`
	Circuit CircuitConfig `mapstructure:"circuit"`
}

type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
	LogPath  string `mapstructure:"log_path"`
	// HTTPAddr enables the command/status HTTP surface when non-empty.
	HTTPAddr string `mapstructure:"http_addr"`
	Console  bool   `mapstructure:"console"`
}

// BinanceConfig selects the network and holds one credential pair per network.
type BinanceConfig struct {
	Testnet            bool   `mapstructure:"testnet"`
	APIKey             string `mapstructure:"api_key"`
	APISecret          string `mapstructure:"api_secret"`
	APIKeyTestnet      string `mapstructure:"api_key_testnet"`
	APISecretTestnet   string `mapstructure:"api_secret_testnet"`
	RESTBaseURL        string `mapstructure:"rest_base_url"`
	HTTPTimeoutSeconds int    `mapstructure:"http_timeout_seconds"`
	ProxyURL           string `mapstructure:"proxy_url"`
}

// Credentials returns the key pair for the active network.
func (b BinanceConfig) Credentials() (key, secret string) {
	if b.Testnet {
		return strings.TrimSpace(b.APIKeyTestnet), strings.TrimSpace(b.APISecretTestnet)
	}
	return strings.TrimSpace(b.APIKey), strings.TrimSpace(b.APISecret)
}

// Network names the active environment for logs and status output.
func (b BinanceConfig) Network() string {
	if b.Testnet {
		return "testnet"
	}
	return "live"
}

// TradingConfig carries the sizing and protection parameters for the single traded symbol.
// Percentages are stored as configured (0-100) and exposed as fractions.
type TradingConfig struct {
	Symbol             string   `mapstructure:"symbol"`
	QuoteAsset         string   `mapstructure:"quote_asset"`
	CapitalPct         float64  `mapstructure:"capital_pct"`
	Leverage           int      `mapstructure:"leverage"`
	StopLossPct        float64  `mapstructure:"stop_loss_pct"`
	TakeProfitPct      *float64 `mapstructure:"take_profit_pct"`
	FillPollAttempts   int      `mapstructure:"fill_poll_attempts"`
	FillPollIntervalMs int      `mapstructure:"fill_poll_interval_ms"`
}

func (t TradingConfig) CapitalFraction() float64 { return t.CapitalPct / 100 }

func (t TradingConfig) StopLossFraction() float64 { return t.StopLossPct / 100 }

// TakeProfitFraction reports false when no take-profit is configured.
func (t TradingConfig) TakeProfitFraction() (float64, bool) {
	if t.TakeProfitPct == nil {
		return 0, false
	}
	return *t.TakeProfitPct / 100, true
}

// HotkeyConfig maps key chords to the three trading commands.
type HotkeyConfig struct {
	OpenLong      string `mapstructure:"open_long"`
	OpenShort     string `mapstructure:"open_short"`
	ClosePosition string `mapstructure:"close_position"`
}

type SoundConfig struct {
	Enabled     bool     `mapstructure:"enabled"`
	Player      string   `mapstructure:"player"`
	PlayerArgs  []string `mapstructure:"player_args"`
	SuccessFile string   `mapstructure:"success_file"`
	ErrorFile   string   `mapstructure:"error_file"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// CircuitConfig tunes the breaker in front of exchange calls.
type CircuitConfig struct {
	FailureThreshold int `mapstructure:"failure_threshold"`
	CooldownSeconds  int `mapstructure:"cooldown_seconds"`
}

type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return false
	}
	_, ok := k[path]
	return ok
}

// fieldDefault applies a default only when the key was absent from the file.
type fieldDefault struct {
	key   string
	need  func() bool
	apply func()
}
