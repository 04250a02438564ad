package apihttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hotkeytrader/internal/logger"
	"hotkeytrader/internal/trader"
	"hotkeytrader/internal/trading"

	"github.com/gin-gonic/gin"
)

// Dispatcher is the subset of the trader actor the HTTP surface drives.
type Dispatcher interface {
	Submit(cmd trader.Command, source string) (string, error)
	SubmitSync(ctx context.Context, cmd trader.Command, source string) (trading.Outcome, error)
	Busy() bool
}

// Router exposes command triggers and the status check under /api.
type Router struct {
	dispatcher    Dispatcher
	statusTimeout time.Duration
}

func NewRouter(d Dispatcher, statusTimeout time.Duration) *Router {
	if statusTimeout <= 0 {
		statusTimeout = 30 * time.Second
	}
	return &Router{dispatcher: d, statusTimeout: statusTimeout}
}

func (r *Router) Register(group *gin.RouterGroup) {
	if group == nil {
		return
	}
	group.POST("/commands/:command", r.handleCommand)
	group.GET("/status", r.handleStatus)
}

func (r *Router) handleCommand(c *gin.Context) {
	cmd, err := trader.ParseCommand(c.Param("command"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	traceID, err := r.dispatcher.Submit(cmd, "http")
	if err != nil {
		c.JSON(statusForSubmitError(err), ErrorResponse{Error: err.Error()})
		return
	}
	logger.Infof("HTTP: %s accepted trace=%s", cmd, traceID)
	c.JSON(http.StatusAccepted, CommandAccepted{Command: cmd.String(), TraceID: traceID, Status: "accepted"})
}

func (r *Router) handleStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), r.statusTimeout)
	defer cancel()
	out, err := r.dispatcher.SubmitSync(ctx, trader.CommandStatus, "http")
	if err != nil {
		c.JSON(statusForSubmitError(err), ErrorResponse{Error: err.Error()})
		return
	}
	code := http.StatusOK
	if out.Failed() {
		code = http.StatusBadGateway
	}
	c.JSON(code, statusResponseFrom(out))
}

func statusForSubmitError(err error) int {
	switch {
	case errors.Is(err, trader.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, trader.ErrUnknownCommand):
		return http.StatusNotFound
	case errors.Is(err, trader.ErrStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
