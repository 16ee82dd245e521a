package dn

import (
	"fmt"

	"braces.dev/errtrace"

	"github.com/ghettovoice/ldapdn/internal/errorutil"
)

// Error is a sentinel error of the dn package.
type Error string

func (e Error) Error() string { return string(e) }

// Grammar reports whether the error is caused by input that does not follow the DN grammar.
func (e Error) Grammar() bool { return e == ErrMalformedGrammar || e == ErrTrailingInput }

const (
	// ErrNullInput is returned when parsing is called with no input at all (a nil byte slice).
	ErrNullInput Error = "null input"
	// ErrMalformedGrammar is returned when the first RDN of a name,
	// or the first component of a multi-valued RDN, does not match the grammar.
	ErrMalformedGrammar Error = "malformed distinguished name"
	// ErrTrailingInput is returned in strict mode when input remains after the last RDN.
	ErrTrailingInput Error = "unexpected trailing input"
	// ErrNormalization is returned when a normalized form can not be computed.
	ErrNormalization Error = "normalization failed"
)

// ParseError describes a failed parse.
//
// The error message embeds the input text. DN text may be sensitive,
// redact it before writing the error to logs or responses.
type ParseError struct {
	// Input is the text that was parsed, a name or the component of a multi-valued RDN.
	Input string
	// Offset is the byte offset in Input where matching failed.
	Offset int
	// Err is the cause, it always wraps one of the package sentinels.
	Err error
}

func newParseError(input string, off int, sentinel error, cause error) error {
	var err error
	if cause == nil {
		err = sentinel
	} else {
		err = errorutil.NewWrapperError(sentinel, cause)
	}
	return &ParseError{Input: input, Offset: off, Err: err} //errtrace:skip
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("parse %q at offset %d: %v", e.Input, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Grammar reports whether the parse failed because of the input syntax.
func (e *ParseError) Grammar() bool { return e != nil && errorutil.IsGrammarErr(e.Err) }

// NormalizeError describes a failure to normalize an RDN.
//
// As [ParseError] it embeds DN text in its message.
type NormalizeError struct {
	// Type and Value are the attribute type and value text at the time of failure.
	Type, Value string
	// Err is the underlying fault.
	Err error
}

func newNormalizeError(typ, val string, err error) error {
	return errtrace.Wrap(&NormalizeError{Type: typ, Value: val, Err: err})
}

func (e *NormalizeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v: %s=%q: %v", ErrNormalization, e.Type, e.Value, e.Err)
}

func (e *NormalizeError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return []error{ErrNormalization, e.Err}
}
