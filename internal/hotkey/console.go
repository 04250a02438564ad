package hotkey

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"hotkeytrader/internal/logger"
	"hotkeytrader/internal/trader"
)

// ErrQuit is returned by ConsoleReader.Run when the user asks to exit.
var ErrQuit = errors.New("quit requested")

// Submitter accepts commands for execution.
type Submitter interface {
	Submit(cmd trader.Command, source string) (string, error)
}

// ConsoleReader reads one chord or alias per line and submits the bound
// command. It stands in for a global keyboard hook on terminals.
type ConsoleReader struct {
	in       io.Reader
	out      io.Writer
	bindings *Bindings
	sink     Submitter
}

func NewConsoleReader(in io.Reader, out io.Writer, bindings *Bindings, sink Submitter) *ConsoleReader {
	return &ConsoleReader{in: in, out: out, bindings: bindings, sink: sink}
}

// Run blocks until input ends, the user quits or ctx is cancelled. EOF is
// not an error.
func (r *ConsoleReader) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	r.printHelp()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-scanErr:
			if err != nil {
				return fmt.Errorf("console input: %w", err)
			}
			logger.Infof("console: input closed")
			return nil
		case line := <-lines:
			if err := r.handleLine(line); err != nil {
				return err
			}
		}
	}
}

func (r *ConsoleReader) handleLine(line string) error {
	input := strings.TrimSpace(line)
	switch strings.ToLower(input) {
	case "":
		return nil
	case "q", "quit", "exit":
		return ErrQuit
	case "?", "h", "help":
		r.printHelp()
		return nil
	}
	cmd, ok := r.bindings.Resolve(input)
	if !ok {
		fmt.Fprintf(r.out, "unknown key %q, type ? for help\n", input)
		return nil
	}
	traceID, err := r.sink.Submit(cmd, "console")
	switch {
	case errors.Is(err, trader.ErrBusy):
		fmt.Fprintf(r.out, "busy: %s ignored until the running action finishes\n", cmd)
	case err != nil:
		fmt.Fprintf(r.out, "%s not submitted: %v\n", cmd, err)
	default:
		logger.Debugf("console: %s submitted trace=%s", cmd, traceID)
	}
	return nil
}

func (r *ConsoleReader) printHelp() {
	fmt.Fprintln(r.out, "keys:")
	for _, b := range r.bindings.List() {
		fmt.Fprintf(r.out, "  %-14s %s\n", b.Trigger, b.Command)
	}
	fmt.Fprintf(r.out, "  %-14s %s\n", "q", "quit")
}
