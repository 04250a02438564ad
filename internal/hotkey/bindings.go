// Package hotkey maps key chords and short console aliases onto trader
// commands.
package hotkey

import (
	"fmt"
	"sort"
	"strings"

	"hotkeytrader/internal/config"
	"hotkeytrader/internal/trader"
)

var modifierOrder = map[string]int{"ctrl": 0, "alt": 1, "shift": 2, "cmd": 3}

var modifierAliases = map[string]string{
	"control": "ctrl",
	"option":  "alt",
	"opt":     "alt",
	"command": "cmd",
	"super":   "cmd",
	"win":     "cmd",
}

var defaultAliases = map[string]trader.Command{
	"b":      trader.CommandOpenLong,
	"s":      trader.CommandOpenShort,
	"x":      trader.CommandClosePosition,
	"status": trader.CommandStatus,
}

// NormalizeChord canonicalises a chord so "Alt+Ctrl+B" and "ctrl+alt+b"
// compare equal: lower-case, modifiers first in a fixed order, key last.
func NormalizeChord(raw string) string {
	parts := strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool { return r == '+' || r == ' ' })
	if len(parts) == 0 {
		return ""
	}
	var mods []string
	var keys []string
	for _, p := range parts {
		if alias, ok := modifierAliases[p]; ok {
			p = alias
		}
		if _, ok := modifierOrder[p]; ok {
			mods = append(mods, p)
		} else {
			keys = append(keys, p)
		}
	}
	sort.SliceStable(mods, func(i, j int) bool { return modifierOrder[mods[i]] < modifierOrder[mods[j]] })
	return strings.Join(append(mods, keys...), "+")
}

// Binding is one chord or alias and the command it fires.
type Binding struct {
	Trigger string
	Command trader.Command
}

// Bindings resolves typed input into commands.
type Bindings struct {
	byTrigger map[string]trader.Command
}

// NewBindings registers the configured chords plus the single-key aliases.
// A configured chord wins over an alias with the same spelling.
func NewBindings(cfg config.HotkeyConfig) (*Bindings, error) {
	b := &Bindings{byTrigger: make(map[string]trader.Command, 8)}
	for alias, cmd := range defaultAliases {
		b.byTrigger[alias] = cmd
	}
	chords := []Binding{
		{cfg.OpenLong, trader.CommandOpenLong},
		{cfg.OpenShort, trader.CommandOpenShort},
		{cfg.ClosePosition, trader.CommandClosePosition},
	}
	seen := make(map[string]trader.Command, len(chords))
	for _, c := range chords {
		key := NormalizeChord(c.Trigger)
		if key == "" {
			return nil, fmt.Errorf("empty hotkey for %s", c.Command)
		}
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("hotkey %q bound to both %s and %s", c.Trigger, prev, c.Command)
		}
		seen[key] = c.Command
		b.byTrigger[key] = c.Command
	}
	return b, nil
}

// Resolve looks up typed input.
func (b *Bindings) Resolve(input string) (trader.Command, bool) {
	cmd, ok := b.byTrigger[NormalizeChord(input)]
	return cmd, ok
}

// List returns every binding sorted by trigger.
func (b *Bindings) List() []Binding {
	out := make([]Binding, 0, len(b.byTrigger))
	for trigger, cmd := range b.byTrigger {
		out = append(out, Binding{Trigger: trigger, Command: cmd})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Trigger < out[j].Trigger })
	return out
}
