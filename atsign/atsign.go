// Package atsign implements the AtSign identity type: an opaque,
// case-insensitive label of at most 54 characters, rendered as "@label".
package atsign

import (
	"strings"

	"github.com/atsign-foundation/atclientgo/aterror"
)

// MaxLength is the maximum length of an AtSign's label, excluding the
// leading "@".
const MaxLength = 54

// AtSign is an immutable identity label. The zero value is not valid;
// use New or Parse to construct one.
type AtSign struct {
	label string // without leading "@"
}

// New validates and constructs an AtSign from a label that may or may
// not carry a leading "@".
func New(label string) (AtSign, error) {
	label = strings.TrimPrefix(strings.TrimSpace(label), "@")
	if label == "" {
		return AtSign{}, aterror.New(aterror.InvalidAtKey, "atsign: label must not be empty")
	}
	if len(label) > MaxLength {
		return AtSign{}, aterror.Newf(aterror.InvalidAtKey,
			"atsign: label %q exceeds %d characters", label, MaxLength)
	}
	return AtSign{label: label}, nil
}

// MustNew is like New but panics on error; intended for literal test
// fixtures and package-level constants, never for user input.
func MustNew(label string) AtSign {
	a, err := New(label)
	if err != nil {
		panic(err)
	}
	return a
}

// WithoutPrefix returns the label without the leading "@".
func (a AtSign) WithoutPrefix() string {
	return a.label
}

// WithPrefix returns the label with a leading "@".
func (a AtSign) WithPrefix() string {
	return "@" + a.label
}

// String implements fmt.Stringer, rendering with the leading "@".
func (a AtSign) String() string {
	return a.WithPrefix()
}

// IsZero reports whether a is the unconstructed zero value.
func (a AtSign) IsZero() bool {
	return a.label == ""
}

// Equal compares two AtSigns case-insensitively, as the protocol treats
// labels as case-insensitive.
func (a AtSign) Equal(other AtSign) bool {
	return strings.EqualFold(a.label, other.label)
}
