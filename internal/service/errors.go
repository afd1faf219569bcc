package service

import "errors"

// Kind classifies a service failure. The transport adapter maps kinds to
// status codes; the service itself never speaks HTTP.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindBadReference
	KindConflict
)

// Error is a typed service failure with a human-readable reason.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// NewError builds a typed failure.
func NewError(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// KindOf extracts the failure kind; unrecognized errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func validationError(reason string) *Error {
	return NewError(KindValidation, reason)
}

func notFoundError(reason string) *Error {
	return NewError(KindNotFound, reason)
}

func badReferenceError(reason string) *Error {
	return NewError(KindBadReference, reason)
}

func conflictError(reason string) *Error {
	return NewError(KindConflict, reason)
}
