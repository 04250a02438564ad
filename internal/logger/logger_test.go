package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetLevel("info")
	})

	SetLevel("warn")
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "shown 2")

	SetLevel("debug")
	Debugf("trace %s", "on")
	With("symbol", "BTCUSDT").Info("tagged")
	out := buf.String()
	assert.Contains(t, out, "trace on")
	assert.Contains(t, out, "symbol=BTCUSDT")
}
