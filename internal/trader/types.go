package trader

import (
	"fmt"
	"strings"

	"hotkeytrader/internal/trading"
)

// Command is a user intent delivered by a hotkey, the console or HTTP.
type Command string

const (
	CommandOpenLong      Command = "open-long"
	CommandOpenShort     Command = "open-short"
	CommandClosePosition Command = "close"
	CommandStatus        Command = "status"
)

var commandAliases = map[string]Command{
	"open-long":      CommandOpenLong,
	"open_long":      CommandOpenLong,
	"long":           CommandOpenLong,
	"buy":            CommandOpenLong,
	"open-short":     CommandOpenShort,
	"open_short":     CommandOpenShort,
	"short":          CommandOpenShort,
	"sell":           CommandOpenShort,
	"close":          CommandClosePosition,
	"close-position": CommandClosePosition,
	"close_position": CommandClosePosition,
	"status":         CommandStatus,
}

// ParseCommand accepts the canonical names and a few aliases, case-insensitively.
func ParseCommand(raw string) (Command, error) {
	if cmd, ok := commandAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return cmd, nil
	}
	return "", fmt.Errorf("unknown command %q", raw)
}

func (c Command) String() string { return string(c) }

// Action maps the command onto the trading action it runs.
func (c Command) Action() trading.Action {
	switch c {
	case CommandOpenLong:
		return trading.ActionOpenLong
	case CommandOpenShort:
		return trading.ActionOpenShort
	case CommandClosePosition:
		return trading.ActionClosePosition
	case CommandStatus:
		return trading.ActionStatus
	default:
		return trading.Action(c)
	}
}

// Envelope is one queued command. ReplyCh, when set, receives the outcome
// once the notifier has been called.
type Envelope struct {
	Command Command
	Source  string
	TraceID string
	ReplyCh chan trading.Outcome
}
