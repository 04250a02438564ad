package apihttp

import (
	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/trading"
)

// CommandAccepted is returned once a command has been handed to the worker.
type CommandAccepted struct {
	Command string `json:"command"`
	TraceID string `json:"trace_id"`
	Status  string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse mirrors trading.StatusSnapshot for the status endpoint.
type StatusResponse struct {
	Status           string         `json:"status"`
	Message          string         `json:"message"`
	Exchange         string         `json:"exchange"`
	Network          string         `json:"network"`
	ExchangeStatus   string         `json:"exchange_status"`
	Symbol           string         `json:"symbol"`
	QuoteAsset       string         `json:"quote_asset"`
	WalletBalance    float64        `json:"wallet_balance"`
	AvailableBalance float64        `json:"available_balance"`
	MarkPrice        float64        `json:"mark_price"`
	Limits           *LimitsPayload `json:"limits,omitempty"`
	ErrorKind        string         `json:"error_kind,omitempty"`
}

type LimitsPayload struct {
	MinQty         float64 `json:"min_qty"`
	MaxQty         float64 `json:"max_qty"`
	StepSize       float64 `json:"step_size"`
	TickSize       float64 `json:"tick_size"`
	PricePrecision int     `json:"price_precision"`
}

func statusResponseFrom(out trading.Outcome) StatusResponse {
	resp := StatusResponse{
		Status:    string(out.Status),
		Message:   out.Message,
		ErrorKind: string(out.Kind),
	}
	if snap := out.Snapshot; snap != nil {
		resp.Exchange = snap.Exchange
		resp.Network = snap.Network
		resp.ExchangeStatus = snap.ExchangeStatus
		resp.Symbol = snap.Symbol
		resp.QuoteAsset = snap.QuoteAsset
		resp.WalletBalance = snap.WalletBalance
		resp.AvailableBalance = snap.AvailableBalance
		resp.MarkPrice = snap.MarkPrice
		resp.Limits = limitsPayload(snap.Limits)
	}
	return resp
}

func limitsPayload(l exchange.SymbolLimits) *LimitsPayload {
	if l.StepSize == 0 && l.TickSize == 0 {
		return nil
	}
	return &LimitsPayload{
		MinQty:         l.MinQty,
		MaxQty:         l.MaxQty,
		StepSize:       l.StepSize,
		TickSize:       l.TickSize,
		PricePrecision: l.PricePrecision,
	}
}
