// Package notifier reports finished trading actions to the user.
package notifier

import (
	"context"

	"hotkeytrader/internal/trading"
)

// Notifier receives every finished action exactly once. Implementations log
// their own delivery failures; nothing is returned to the caller.
type Notifier interface {
	Notify(ctx context.Context, out trading.Outcome)
}

// Multi fans an outcome out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, out trading.Outcome) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, out)
		}
	}
}
