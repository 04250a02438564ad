package trader

import "hotkeytrader/internal/logger"

// HandlerRegistry maps commands to their handlers.
type HandlerRegistry struct {
	handlers map[Command]CommandHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[Command]CommandHandler),
	}
}

// Register adds h, replacing any handler for the same command.
func (r *HandlerRegistry) Register(h CommandHandler) {
	if h == nil {
		return
	}
	r.handlers[h.Command()] = h
}

func (r *HandlerRegistry) Get(c Command) (CommandHandler, bool) {
	h, ok := r.handlers[c]
	return h, ok
}

// Has reports whether c can be dispatched.
func (r *HandlerRegistry) Has(c Command) bool {
	_, ok := r.handlers[c]
	return ok
}

func (r *HandlerRegistry) RegisterDefaultHandlers() {
	r.Register(&OpenLongHandler{})
	r.Register(&OpenShortHandler{})
	r.Register(&ClosePositionHandler{})
	r.Register(&StatusHandler{})
	logger.Debugf("Trader: registered %d command handlers", len(r.handlers))
}
