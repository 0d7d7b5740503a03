package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories returned by payout operations.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindAuthorization
	KindNotFound
	KindInvalidTransition
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is the typed failure of a payout or vendor operation.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string

	// Entity is set for KindNotFound ("payout", "vendor").
	Entity string

	// Required and Actual are set for KindInvalidTransition.
	Required PayoutStatus
	Actual   PayoutStatus

	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// AsError extracts the *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func ValidationError(op, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

func AuthorizationError(op string, role Role) *Error {
	return &Error{Kind: KindAuthorization, Op: op, Message: fmt.Sprintf("role %q is not permitted", role)}
}

func NotFoundError(op, entity string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Entity: entity, Message: entity + " not found"}
}

func InvalidTransitionError(op string, required, actual PayoutStatus) *Error {
	return &Error{
		Kind:     KindInvalidTransition,
		Op:       op,
		Required: required,
		Actual:   actual,
		Message:  fmt.Sprintf("payout must be in status %s, current status is %s", required, actual),
	}
}

func StorageError(op string, err error) *Error {
	return &Error{Kind: KindStorage, Op: op, Message: "storage failure", Err: err}
}
