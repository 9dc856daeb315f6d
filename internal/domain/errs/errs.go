package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the outer request boundary.
type Kind int

const (
	// Processing is any unexpected failure while building matrices or statistics.
	Processing Kind = iota
	// Input means the caller sent no usable company names.
	Input
	// DataUnavailable means the price source returned nothing usable.
	DataUnavailable
	// Alignment means the joined price data cannot yield a single return row.
	Alignment
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case Input:
		return "input_error"
	case DataUnavailable:
		return "data_unavailable"
	case Alignment:
		return "alignment_error"
	default:
		return "processing_error"
	}
}

// Error is the typed failure carried through the request pipeline.
//
// Msg is the caller-facing message; Err (optional) is the underlying cause and
// is appended to Error() so the message reaches the client verbatim.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, errs.ErrAlignment) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Msg == "" && t.Err == nil
}

// Sentinels for errors.Is checks.
var (
	ErrInput           = &Error{Kind: Input}
	ErrDataUnavailable = &Error{Kind: DataUnavailable}
	ErrAlignment       = &Error{Kind: Alignment}
	ErrProcessing      = &Error{Kind: Processing}
)

func NewInput(msg string) error { return &Error{Kind: Input, Msg: msg} }

func NewDataUnavailable(msg string, cause error) error {
	return &Error{Kind: DataUnavailable, Msg: msg, Err: cause}
}

func NewAlignment(msg string) error { return &Error{Kind: Alignment, Msg: msg} }

func NewProcessing(msg string, cause error) error {
	return &Error{Kind: Processing, Msg: msg, Err: cause}
}

// KindOf reports the kind of err. Untyped errors are Processing.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Processing
}

// IsClientFault reports whether err belongs to the client-input category.
func IsClientFault(err error) bool {
	return err != nil && KindOf(err) == Input
}

// Generic returns the redacted, detail-free message for a kind.
func Generic(k Kind) string {
	switch k {
	case Input:
		return "invalid request"
	case DataUnavailable:
		return "price data unavailable"
	case Alignment:
		return "insufficient aligned price data"
	default:
		return "internal server error"
	}
}
