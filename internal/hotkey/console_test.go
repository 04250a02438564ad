package hotkey

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"hotkeytrader/internal/trader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(cmd trader.Command, source string) (string, error) {
	args := m.Called(cmd, source)
	return args.String(0), args.Error(1)
}

func newReader(t *testing.T, input string, sink Submitter) (*ConsoleReader, *bytes.Buffer) {
	t.Helper()
	b, err := NewBindings(defaultHotkeys())
	require.NoError(t, err)
	var out bytes.Buffer
	return NewConsoleReader(strings.NewReader(input), &out, b, sink), &out
}

func TestConsoleReaderSubmitsBoundCommands(t *testing.T) {
	sink := new(mockSubmitter)
	sink.On("Submit", trader.CommandOpenLong, "console").Return("t1", nil).Once()
	sink.On("Submit", trader.CommandClosePosition, "console").Return("t2", nil).Once()
	sink.On("Submit", trader.CommandStatus, "console").Return("t3", nil).Once()

	r, out := newReader(t, "ctrl+alt+b\n\nx\nstatus\nnope\n", sink)
	require.NoError(t, r.Run(context.Background()))

	sink.AssertExpectations(t)
	assert.Contains(t, out.String(), `unknown key "nope"`)
}

func TestConsoleReaderReportsBusy(t *testing.T) {
	sink := new(mockSubmitter)
	sink.On("Submit", trader.CommandOpenShort, "console").Return("", trader.ErrBusy).Once()

	r, out := newReader(t, "s\n", sink)
	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), "busy: open-short ignored")
}

func TestConsoleReaderQuit(t *testing.T) {
	sink := new(mockSubmitter)
	r, _ := newReader(t, "q\nb\n", sink)
	assert.ErrorIs(t, r.Run(context.Background()), ErrQuit)
	sink.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestConsoleReaderStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, _ := newReader(t, "", new(mockSubmitter))
	assert.NoError(t, r.Run(ctx))
}
