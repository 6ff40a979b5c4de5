package apperr

import (
	"errors"
	"fmt"
)

// Kind is the stable error category exposed to handlers and clients.
type Kind string

const (
	KindInvalidInput       Kind = "INVALID_INPUT"
	KindServiceUnavailable Kind = "SERVICE_UNAVAILABLE"
	KindSlotConflict       Kind = "SLOT_CONFLICT"
	KindInvalidTransition  Kind = "INVALID_TRANSITION"
	KindForbidden          Kind = "FORBIDDEN"
	KindNotFound           Kind = "NOT_FOUND"
	KindPersistence        Kind = "PERSISTENCE_FAILURE"
)

// Error carries a stable kind plus a human-readable reason so the
// presentation layer can render an actionable message without
// inspecting internals.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match two apperr values by kind alone.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, reason string) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

// KindOf extracts the kind from any error in the chain. Unclassified
// errors are treated as storage faults.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
