package dn

import (
	"slices"

	"github.com/ghettovoice/ldapdn/internal/grammar"
	"github.com/ghettovoice/ldapdn/internal/util"
)

// Canonicalizer performs the two pluggable steps of value normalization.
// Implementations must be safe for concurrent use.
type Canonicalizer interface {
	// Unquote converts a quoted attribute value to its backslash-escaped form.
	Unquote(s string) (string, error)
	// CanonicalizeEscapes rewrites hex escapes of an unquoted attribute value to their minimal form.
	CanonicalizeEscapes(s string) (string, error)
}

type rfc2253Canonicalizer struct{}

func (rfc2253Canonicalizer) Unquote(s string) (string, error) { return grammar.Unquote(s), nil }

func (rfc2253Canonicalizer) CanonicalizeEscapes(s string) (string, error) {
	return grammar.CanonicalizeEscapes(s), nil
}

// DefaultCanonicalizer implements RFC 2253 unquoting and escape canonicalization.
var DefaultCanonicalizer Canonicalizer = rfc2253Canonicalizer{}

// ParseOptions tunes parsing and the normalization of parsed values.
// A nil *ParseOptions is valid and means defaults.
type ParseOptions struct {
	// CaseSensitiveTypes lists attribute types whose names keep their case on normalization.
	CaseSensitiveTypes []string `json:"case_sensitive_types,omitempty" yaml:"case_sensitive_types,omitempty"`
	// CaseIgnoreValues lists attribute types whose values are lowercased on normalization,
	// e.g. "dc" or "mail".
	CaseIgnoreValues []string `json:"case_ignore_values,omitempty" yaml:"case_ignore_values,omitempty"`
	// Canonicalizer replaces [DefaultCanonicalizer].
	Canonicalizer Canonicalizer `json:"-" yaml:"-"`
	// Strict rejects unparsable text after the first RDN with [ErrTrailingInput].
	// By default such text is skipped silently.
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty"`
}

func (o *ParseOptions) isStrict() bool { return o != nil && o.Strict }

func (o *ParseOptions) canonicalizer() Canonicalizer {
	if o == nil || o.Canonicalizer == nil {
		return DefaultCanonicalizer
	}
	return o.Canonicalizer
}

func (o *ParseOptions) typeCaseSensitive(typ string) bool {
	return o != nil && containsFold(o.CaseSensitiveTypes, typ)
}

func (o *ParseOptions) valueCaseSensitive(typ string) bool {
	return o == nil || !containsFold(o.CaseIgnoreValues, typ)
}

func containsFold(list []string, s string) bool {
	s = stripOIDPrefix(s)
	return slices.ContainsFunc(list, func(v string) bool { return util.EqFold(stripOIDPrefix(v), s) })
}
