package domain

import (
	"errors"
	"fmt"
)

// Kind is the stable, machine-readable category of a domain failure.
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindNotAuthorized     Kind = "NOT_AUTHORIZED"
	KindSelfApproval      Kind = "SELF_APPROVAL_FORBIDDEN"
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindConflict          Kind = "CONFLICT"
	KindPaymentRequired   Kind = "PAYMENT_REQUIRED"
	KindPaymentGateway    Kind = "PAYMENT_GATEWAY_ERROR"
	KindUnauthenticated   Kind = "UNAUTHENTICATED"
	KindInternal          Kind = "INTERNAL_ERROR"
)

// Kind sentinels. Any *Error matches the sentinel of its kind with errors.Is.
var (
	ErrNotFound          = &Error{Kind: KindNotFound, Code: string(KindNotFound), Message: "resource not found"}
	ErrNotAuthorized     = &Error{Kind: KindNotAuthorized, Code: string(KindNotAuthorized), Message: "not authorized"}
	ErrSelfApproval      = &Error{Kind: KindSelfApproval, Code: string(KindSelfApproval), Message: "a quote cannot be approved or declined by its author"}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput, Code: string(KindInvalidInput), Message: "invalid input"}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition, Code: string(KindInvalidTransition), Message: "invalid state transition"}
	ErrConflict          = &Error{Kind: KindConflict, Code: string(KindConflict), Message: "concurrent modification"}
	ErrPaymentRequired   = &Error{Kind: KindPaymentRequired, Code: string(KindPaymentRequired), Message: "payment required"}
	ErrPaymentGateway    = &Error{Kind: KindPaymentGateway, Code: string(KindPaymentGateway), Message: "payment gateway error"}
	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated, Code: string(KindUnauthenticated), Message: "authentication invalid"}
)

// Error is a classified domain failure. Code refines Kind for clients (e.g. QUOTE_NOT_FOUND).
type Error struct {
	Kind      Kind
	Code      string
	Message   string
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches kind sentinels (Code == Kind) by kind and everything else by identity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t == e {
		return true
	}
	if t.Code == string(t.Kind) {
		return t.Kind == e.Kind
	}
	return false
}

// New builds a coded domain error.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches a cause to a new error of the given kind.
func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Invalid is shorthand for an INVALID_INPUT error with a field specific message.
func Invalid(message string) *Error {
	return &Error{Kind: KindInvalidInput, Code: string(KindInvalidInput), Message: message}
}

// KindOf reports the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
