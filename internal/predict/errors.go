package predict

import (
	"errors"
	"fmt"
)

// Kind classifies prediction failures so callers can map them to responses.
type Kind string

const (
	KindRange           Kind = "RANGE"
	KindNotFound        Kind = "NOT_FOUND"
	KindValidation      Kind = "VALIDATION"
	KindDataUnavailable Kind = "DATA_UNAVAILABLE"
)

var (
	ErrRange           = &Error{Kind: KindRange}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrValidation      = &Error{Kind: KindValidation}
	ErrDataUnavailable = &Error{Kind: KindDataUnavailable}
)

// Error carries the failing field alongside its kind.
type Error struct {
	Kind  Kind
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrRange) works
// for every range failure.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func rangeError(field string, format string, args ...any) error {
	return &Error{Kind: KindRange, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func validationError(field string, format string, args ...any) error {
	return &Error{Kind: KindValidation, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// NotFound reports an unknown team or player id.
func NotFound(field string, id int) error {
	return &Error{Kind: KindNotFound, Field: field, Msg: fmt.Sprintf("no entry with id %d", id)}
}

// DataUnavailable wraps a snapshot provider failure.
func DataUnavailable(err error) error {
	return &Error{Kind: KindDataUnavailable, Field: "snapshot", Msg: "league data unavailable", Err: err}
}

// KindOf returns the kind of err, or "" when err is not a prediction error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
