package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindPermission Kind = "permission"
	KindNotFound   Kind = "not_found"
	KindTransport  Kind = "transport"
)

// Error carries the failure kind callers branch on. Err holds the cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Kind) + " error"
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Permission(format string, args ...any) *Error {
	return &Error{Kind: KindPermission, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Transport wraps a storage or broker failure.
func Transport(msg string, err error) *Error {
	return &Error{Kind: KindTransport, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsPermission(err error) bool { return KindOf(err) == KindPermission }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsTransport(err error) bool  { return KindOf(err) == KindTransport }
