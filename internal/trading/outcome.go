package trading

import (
	"fmt"

	"hotkeytrader/internal/gateway/exchange"
)

// Action names one user-triggerable operation.
type Action string

const (
	ActionOpenLong      Action = "open_long"
	ActionOpenShort     Action = "open_short"
	ActionClosePosition Action = "close_position"
	ActionStatus        Action = "status"
)

// Status is the terminal state of an action.
type Status string

const (
	// StatusSucceeded: every step completed.
	StatusSucceeded Status = "succeeded"
	// StatusSkipped: a deliberate no-op (zero quantity, flat position); warn, no cue.
	StatusSkipped Status = "skipped"
	// StatusFailed: a step failed; later steps were not attempted.
	StatusFailed Status = "failed"
)

// Outcome is the result of one action. Notifiers branch on Status and Kind
// instead of inspecting errors.
type Outcome struct {
	Action  Action
	Status  Status
	Kind    exchange.ErrorKind
	Message string
	Err     error

	Intent     *OrderIntent
	Entry      *FilledEntry
	Protection *ProtectiveOrderPair
	// Orders lists every order the exchange accepted during the action, in
	// submission order, including those left behind by a later failure.
	Orders   []exchange.OrderAck
	Snapshot *StatusSnapshot
}

func (o Outcome) Succeeded() bool { return o.Status == StatusSucceeded }
func (o Outcome) Skipped() bool   { return o.Status == StatusSkipped }
func (o Outcome) Failed() bool    { return o.Status == StatusFailed }

func (o Outcome) fail(step string, err error) Outcome {
	o.Status = StatusFailed
	o.Kind = exchange.KindOf(err)
	o.Err = err
	o.Message = fmt.Sprintf("%s: %v", step, err)
	if n := len(o.Orders); n > 0 {
		o.Message += fmt.Sprintf(" (%d order(s) already on the exchange, not rolled back)", n)
	}
	return o
}

func (o Outcome) skip(message string) Outcome {
	o.Status = StatusSkipped
	o.Kind = exchange.KindState
	o.Message = message
	return o
}

// OrderIntent is the sized entry about to be submitted.
type OrderIntent struct {
	Side     exchange.Side
	Quantity float64
}

// FilledEntry is the resolved entry of a freshly opened position. Fallback
// is true when the price came from the mark price rather than a reported fill.
type FilledEntry struct {
	OrderID  int64
	Price    float64
	Side     exchange.Side
	Fallback bool
}

// ProtectiveOrderPair holds the trigger prices derived from an entry.
type ProtectiveOrderPair struct {
	StopLoss      float64
	TakeProfit    float64
	HasTakeProfit bool
}

// StatusSnapshot is the connectivity report produced by CheckStatus.
type StatusSnapshot struct {
	Exchange         string
	Network          string
	ExchangeStatus   string
	Symbol           string
	QuoteAsset       string
	WalletBalance    float64
	AvailableBalance float64
	MarkPrice        float64
	Limits           exchange.SymbolLimits
}

func actionForSide(side exchange.Side) Action {
	if side == exchange.SideBuy {
		return ActionOpenLong
	}
	return ActionOpenShort
}
