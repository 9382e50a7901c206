package service

import (
	"errors"
	"fmt"
)

// Kind enumerates the failure categories a stock operation can report.
type Kind int

const (
	// KindStore covers any failure of the underlying record store.
	KindStore Kind = iota
	// KindMissingParameter means the code query parameter was absent.
	KindMissingParameter
	// KindInvalidParameter means the code query parameter was not a single value.
	KindInvalidParameter
	// KindNotFound means no document matched the code.
	KindNotFound
	// KindAmbiguous means more than one document matched the code.
	KindAmbiguous
	// KindExists means a document already matched when creating.
	KindExists
)

var kindMessages = map[Kind]string{
	KindStore:            "Record store error!",
	KindMissingParameter: "No query found!",
	KindInvalidParameter: "Invalid query found!",
	KindNotFound:         "No record found!",
	KindAmbiguous:        "More than 1 record found!",
	KindExists:           "There is a record found!",
}

// Message is the client-facing text for the kind.
func (k Kind) Message() string {
	if m, ok := kindMessages[k]; ok {
		return m
	}
	return kindMessages[KindStore]
}

func (k Kind) String() string {
	switch k {
	case KindMissingParameter:
		return "missing_parameter"
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindNotFound:
		return "not_found"
	case KindAmbiguous:
		return "ambiguous"
	case KindExists:
		return "exists"
	default:
		return "store"
	}
}

// Error is a tagged stock operation failure. Err carries the cause, if any.
type Error struct {
	Kind Kind
	Err  error
}

// NewError builds an *Error of the given kind.
func NewError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Message()
	}
	return fmt.Sprintf("%s: %v", e.Kind.Message(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of err. Untagged errors are store failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}
