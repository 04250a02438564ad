package binance

import (
	"encoding/json"
	"errors"

	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/pkg/circuit"

	"github.com/adshao/go-binance/v2/common"
)

// Binance API codes that describe the transport rather than the request.
var connectivityCodes = map[int64]bool{
	-1000: true, // UNKNOWN
	-1001: true, // DISCONNECTED
	-1003: true, // TOO_MANY_REQUESTS
	-1007: true, // TIMEOUT
	-1008: true, // SERVER_BUSY
}

func classify(err error) exchange.ErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, circuit.ErrOpen) {
		return exchange.KindConnectivity
	}
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		if connectivityCodes[apiErr.Code] {
			return exchange.KindConnectivity
		}
		return exchange.KindValidation
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return exchange.KindData
	}
	// Everything else surfaced from the HTTP round trip: dial failures,
	// timeouts, cancelled contexts, non-JSON gateway pages.
	return exchange.KindConnectivity
}
