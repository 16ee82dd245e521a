package dn

import (
	"github.com/ghettovoice/ldapdn/internal/constraints"
	"github.com/ghettovoice/ldapdn/internal/grammar"
)

// Unquote converts a quoted attribute value like `"a, b"` to the escaped form `a\, b`.
// Specials inside the quotes are backslash-escaped, a space right after the opening or
// right before the closing quote becomes "\20". Values not enclosed in quotes are returned as is.
func Unquote[T constraints.Byteseq](s T) T { return grammar.Unquote(s) }

// CanonicalizeEscapes rewrites hex escapes of an unquoted attribute value to the minimal form:
// escaped specials become backslash pairs (`\2C` => `\,`), printable ASCII is unescaped
// (`\41` => `A`), other bytes keep the hex form with uppercase digits (`\0d` => `\0D`).
// A "\20" at the start or end is kept.
func CanonicalizeEscapes[T constraints.Byteseq](s T) T { return grammar.CanonicalizeEscapes(s) }

// LowerUnescaped lowercases ASCII letters that are not part of an escape sequence.
func LowerUnescaped[T constraints.Byteseq](s T) T { return grammar.LowerUnescaped(s) }

// EscapeValue escapes a raw attribute value for use in DN text.
// The result is already in canonical form.
func EscapeValue[T constraints.Byteseq](s T) T { return grammar.EscapeValue(s) }

// IsAttributeType reports whether s is a valid attribute type.
func IsAttributeType[T constraints.Byteseq](s T) bool { return grammar.IsAttributeType(s) }

// IsAttributeValue reports whether s is a valid attribute value in any of the accepted forms.
func IsAttributeValue[T constraints.Byteseq](s T) bool { return grammar.IsAttributeValue(s) }
