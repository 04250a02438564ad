package trader

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"hotkeytrader/internal/gateway/exchange"
	"hotkeytrader/internal/logger"
	"hotkeytrader/internal/metrics"
	"hotkeytrader/internal/trading"

	"github.com/google/uuid"
)

var (
	// ErrBusy is returned when a command arrives while another is running.
	// Such commands are dropped, never queued.
	ErrBusy = errors.New("another action is still running")
	// ErrStopped is returned once the trader has shut down.
	ErrStopped = errors.New("trader is stopped")
	// ErrUnknownCommand is returned for commands without a handler.
	ErrUnknownCommand = errors.New("unknown command")
)

// Actions is the set of trading operations the commands map onto.
type Actions interface {
	PlaceOrder(ctx context.Context, side exchange.Side) trading.Outcome
	ClosePosition(ctx context.Context) trading.Outcome
	CheckStatus(ctx context.Context) trading.Outcome
}

// Notifier reports each finished action to the user.
type Notifier interface {
	Notify(ctx context.Context, out trading.Outcome)
}

// Trader is a single-worker actor: at most one action runs at a time, and
// every action ends with exactly one notification.
type Trader struct {
	actions  Actions
	notifier Notifier
	registry *HandlerRegistry

	msgCh  chan Envelope
	stopCh chan struct{}
	stop   sync.Once
	wg     sync.WaitGroup
	busy   atomic.Bool

	slowThreshold time.Duration
}

func NewTrader(actions Actions, notifier Notifier) *Trader {
	reg := NewHandlerRegistry()
	reg.RegisterDefaultHandlers()
	return &Trader{
		actions:       actions,
		notifier:      notifier,
		registry:      reg,
		msgCh:         make(chan Envelope, 1),
		stopCh:        make(chan struct{}),
		slowThreshold: 10 * time.Second,
	}
}

// Start runs the worker until ctx is cancelled or Stop is called. Actions
// in flight see ctx and abort their waits when it is cancelled.
func (t *Trader) Start(ctx context.Context) {
	t.wg.Add(1)
	go t.runLoop(ctx)
}

func (t *Trader) Stop() {
	t.stop.Do(func() { close(t.stopCh) })
	t.wg.Wait()
}

// Busy reports whether an action is queued or running.
func (t *Trader) Busy() bool { return t.busy.Load() }

// Submit hands cmd to the worker without waiting for it to run.
func (t *Trader) Submit(cmd Command, source string) (string, error) {
	env, err := t.enqueue(cmd, source, nil)
	if err != nil {
		return "", err
	}
	return env.TraceID, nil
}

// SubmitSync hands cmd to the worker and waits for its outcome.
func (t *Trader) SubmitSync(ctx context.Context, cmd Command, source string) (trading.Outcome, error) {
	reply := make(chan trading.Outcome, 1)
	if _, err := t.enqueue(cmd, source, reply); err != nil {
		return trading.Outcome{}, err
	}
	select {
	case out := <-reply:
		return out, nil
	case <-ctx.Done():
		return trading.Outcome{}, ctx.Err()
	case <-t.stopCh:
		return trading.Outcome{}, fmt.Errorf("trader stopped during sync call")
	}
}

func (t *Trader) enqueue(cmd Command, source string, reply chan trading.Outcome) (Envelope, error) {
	if !t.registry.Has(cmd) {
		return Envelope{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	select {
	case <-t.stopCh:
		return Envelope{}, ErrStopped
	default:
	}
	if !t.busy.CompareAndSwap(false, true) {
		metrics.BusyRejections.Inc()
		logger.Warnf("Trader: %s from %s ignored, %v", cmd, source, ErrBusy)
		return Envelope{}, ErrBusy
	}
	env := Envelope{Command: cmd, Source: source, TraceID: uuid.NewString(), ReplyCh: reply}
	select {
	case t.msgCh <- env:
		return env, nil
	default:
		// The slot is only free while busy is false.
		t.busy.Store(false)
		return Envelope{}, ErrBusy
	}
}

func (t *Trader) runLoop(ctx context.Context) {
	defer t.wg.Done()
	logger.Infof("Trader actor started")
	for {
		select {
		case env := <-t.msgCh:
			t.handle(ctx, env)
		case <-ctx.Done():
			logger.Infof("Trader actor stopping: %v", ctx.Err())
			return
		case <-t.stopCh:
			logger.Infof("Trader actor stopping")
			return
		}
	}
}

func (t *Trader) handle(ctx context.Context, env Envelope) {
	start := time.Now()
	log := logger.With("trace", env.TraceID, "command", env.Command.String(), "source", env.Source)
	log.Info("action started")

	var out trading.Outcome
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("Trader panic handling %s: %v", env.Command, r)
			debug.PrintStack()
			out = trading.Outcome{
				Action:  env.Command.Action(),
				Status:  trading.StatusFailed,
				Kind:    exchange.KindUnknown,
				Err:     fmt.Errorf("panic: %v", r),
				Message: fmt.Sprintf("internal error: %v", r),
			}
		}
		t.finish(ctx, env, out)
		dur := time.Since(start)
		log.Info("action finished", "status", string(out.Status), "duration", dur.String())
		if dur > t.slowThreshold {
			logger.Warnf("Slow action %s took %v", env.Command, dur)
		}
	}()

	handler, _ := t.registry.Get(env.Command)
	out = handler.Handle(ctx, NewHandlerContext(t), env)
}

func (t *Trader) finish(ctx context.Context, env Envelope, out trading.Outcome) {
	metrics.Actions.WithLabelValues(string(out.Action), string(out.Status)).Inc()
	if out.Entry != nil && out.Entry.Fallback {
		metrics.FillFallbacks.Inc()
	}
	if t.notifier != nil {
		t.notifier.Notify(ctx, out)
	}
	// Released after the notification and before the reply so a caller
	// woken by ReplyCh can submit again immediately.
	t.busy.Store(false)
	if env.ReplyCh != nil {
		env.ReplyCh <- out
		close(env.ReplyCh)
	}
}
