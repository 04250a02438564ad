package exchange

import (
	"errors"
	"fmt"
)

// ErrorKind tags why an exchange interaction failed.
type ErrorKind string

const (
	KindConnectivity ErrorKind = "connectivity"
	KindValidation   ErrorKind = "validation"
	KindState        ErrorKind = "state"
	KindData         ErrorKind = "data"
	KindUnknown      ErrorKind = "unknown"
)

// Error wraps a failed operation with its kind.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// DataError reports a response that lacked or mangled an expected field.
func DataError(op, format string, args ...any) error {
	return &Error{Kind: KindData, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
