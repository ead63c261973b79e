// Package aterror defines the error taxonomy surfaced at the public
// boundary of this module as an *Error carrying a Kind. Some exported
// operations (atsecrets.Load and Unwrap, and atclient.Dial when it
// unwraps secrets) return that *Error annotated with juju/errors; Is
// and IsCode match only an *Error that has not been wrapped.
package aterror

import "fmt"

// Kind categorizes a failure the way a caller needs to branch on it.
type Kind string

// Kinds named in the error handling design.
const (
	// InvalidEncoding is returned when base64 (or similar) decoding
	// encounters bytes outside the expected alphabet.
	InvalidEncoding Kind = "InvalidEncoding"
	// InvalidKey is returned when key material fails to parse, fails
	// to self-verify, or is otherwise unusable.
	InvalidKey Kind = "InvalidKey"
	// InvalidConfig is returned when a secrets bundle or client config
	// is missing a required field.
	InvalidConfig Kind = "InvalidConfig"
	// InvalidAtKey is returned when an AtKey fails a construction or
	// length invariant.
	InvalidAtKey Kind = "InvalidAtKey"
	// ProtocolError is returned when a wire response violates the
	// verb protocol's framing (bad UTF-8, wrong prefix).
	ProtocolError Kind = "ProtocolError"
	// AuthFailure is returned when pkam authentication is rejected.
	AuthFailure Kind = "AuthFailure"
	// Server wraps a categorical server-side error code (§4.8).
	Server Kind = "Server"
	// Transport is returned for I/O and TLS failures; the client must
	// be discarded after one.
	Transport Kind = "Transport"
	// UnknownAtSign is returned when root-server discovery replies
	// "@null" for the requested label.
	UnknownAtSign Kind = "UnknownAtSign"
)

// Error is the concrete type every exported operation returns on failure.
type Error struct {
	Kind    Kind
	Code    string // wire code, e.g. "AT0015"; empty unless Kind == Server
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
		}
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithCause builds an Error wrapping an underlying cause.
func WithCause(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// WithCausef builds an Error wrapping an underlying cause with a
// formatted message.
func WithCausef(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// ServerError builds a Server-kind Error for a wire code, looking up the
// human-readable name via CodeMessage.
func ServerError(code string) *Error {
	return &Error{Kind: Server, Code: code, Message: CodeMessage(code)}
}

// Is reports whether err is an *Error of the given Kind. It is the
// idiomatic way for callers to branch: `if aterror.Is(err, aterror.AuthFailure) { ... }`.
func Is(err error, kind Kind) bool {
	ae, ok := err.(*Error)
	if !ok {
		return false
	}
	return ae.Kind == kind
}

// IsCode reports whether err is a Server error carrying the given wire code.
func IsCode(err error, code string) bool {
	ae, ok := err.(*Error)
	if !ok || ae.Kind != Server {
		return false
	}
	return ae.Code == code
}
