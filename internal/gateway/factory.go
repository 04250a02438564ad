package gateway

import (
	"fmt"
	"time"

	"hotkeytrader/internal/config"
	"hotkeytrader/internal/gateway/binance"
	"hotkeytrader/internal/gateway/exchange"
)

// NewFromConfig builds the exchange gateway for the configured network,
// picking the credential pair that belongs to it.
func NewFromConfig(cfg config.Config) (exchange.Gateway, error) {
	key, secret := cfg.Binance.Credentials()
	if key == "" || secret == "" {
		return nil, fmt.Errorf("missing %s api credentials", cfg.Binance.Network())
	}
	return binance.New(binance.Config{
		APIKey:           key,
		APISecret:        secret,
		Testnet:          cfg.Binance.Testnet,
		RESTBaseURL:      cfg.Binance.RESTBaseURL,
		HTTPTimeout:      time.Duration(cfg.Binance.HTTPTimeoutSeconds) * time.Second,
		ProxyURL:         cfg.Binance.ProxyURL,
		BreakerThreshold: cfg.Circuit.FailureThreshold,
		BreakerCooldown:  time.Duration(cfg.Circuit.CooldownSeconds) * time.Second,
	})
}
