package binance

import (
	"strings"
	"time"
)

const (
	liveRESTBaseURL    = "https://fapi.binance.com"
	testnetRESTBaseURL = "https://testnet.binancefuture.com"
)

type Config struct {
	APIKey    string
	APISecret string
	Testnet   bool

	// RESTBaseURL overrides the network's default endpoint.
	RESTBaseURL string
	HTTPTimeout time.Duration
	ProxyURL    string

	BreakerThreshold int
	BreakerCooldown  time.Duration
}

func (c *Config) withDefaults() Config {
	out := *c
	out.RESTBaseURL = strings.TrimSpace(out.RESTBaseURL)
	if out.RESTBaseURL == "" {
		out.RESTBaseURL = liveRESTBaseURL
		if out.Testnet {
			out.RESTBaseURL = testnetRESTBaseURL
		}
	}
	if out.HTTPTimeout <= 0 {
		out.HTTPTimeout = 15 * time.Second
	}
	if out.BreakerCooldown <= 0 {
		out.BreakerCooldown = 30 * time.Second
	}
	out.ProxyURL = strings.TrimSpace(out.ProxyURL)
	return out
}
