package grammar

import (
	"bytes"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ghettovoice/ldapdn/internal/constraints"
	"github.com/ghettovoice/ldapdn/internal/util"
)

const upperhex = "0123456789ABCDEF"

// escapedSP is the hex form of a significant leading or trailing space.
const escapedSP = `\20`

// IsSpecialChar checks the RFC 2253 special rule: one of , = + < > # ;
func IsSpecialChar(c byte) bool {
	switch c {
	case ',', '=', '+', '<', '>', '#', ';':
		return true
	}
	return false
}

// isPrintableASCII reports whether c is a 7-bit printable character, SP included.
func isPrintableASCII(c byte) bool { return 0x20 <= c && c < 0x7F }

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func isHexEscape[T constraints.Byteseq](s T, i int) bool {
	return s[i] == '\\' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2])
}

// Unquote removes enclosing double quotes from s and backslash-escapes every special
// character that was protected only by the quoting. A literal SP directly after the opening
// quote or directly before the closing quote is replaced with "\20". Escape pairs already
// present are copied as-is, no other normalization happens.
// If s is not enclosed in double quotes it is returned unchanged.
func Unquote[T constraints.Byteseq](s T) T {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}

	in := s[1 : len(s)-1]
	var b bytes.Buffer
	b.Grow(len(in) + 8)

	trailingSP := false
	for i := 0; i < len(in); i++ {
		trailingSP = false
		c := in[i]
		switch {
		case c == '\\' && i+1 < len(in):
			b.WriteByte(c)
			b.WriteByte(in[i+1])
			i++
		case c == ' ' && i == 0:
			b.WriteString(escapedSP)
		case c == ' ':
			b.WriteByte(c)
			trailingSP = true
		case IsSpecialChar(c):
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	if trailingSP {
		b.Truncate(b.Len() - 1)
		b.WriteString(escapedSP)
	}
	return T(b.Bytes())
}

// CanonicalizeEscapes rewrites every hex escape "\XX" of s into its minimal canonical form
// in a single left-to-right pass:
//   - special characters, "\" and DQUOTE become a backslash pair, e.g. "\2b" => "\+";
//   - other printable 7-bit characters are unescaped, e.g. "\41" => "A",
//     except "\20" at the very start or end of s, which keeps the space significant;
//   - everything else stays hex-escaped with uppercase digits, e.g. "\0d" => "\0D".
//
// Backslash pairs like "\+" or "\\" are copied unchanged.
func CanonicalizeEscapes[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case isHexEscape(s, i):
			c := unhex(s[i+1])<<4 | unhex(s[i+2])
			switch {
			case IsSpecialChar(c) || c == '\\' || c == '"':
				b.WriteByte('\\')
				b.WriteByte(c)
			case c == ' ' && (i == 0 || i+3 == len(s)):
				b.WriteString(escapedSP)
			case isPrintableASCII(c):
				b.WriteByte(c)
			default:
				b.WriteByte('\\')
				b.WriteByte(upperhex[c>>4])
				b.WriteByte(upperhex[c&15])
			}
			i += 2
		case s[i] == '\\' && i+1 < len(s):
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			i++
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// LowerUnescaped lowercases every maximal run of uppercase ASCII letters that is not part
// of an escape sequence. Escapes are read left to right: "\XX" with two hex digits
// and "\" followed by any other byte are copied untouched.
func LowerUnescaped[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}

	lower := cases.Lower(language.Und)
	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); {
		switch {
		case s[i] == '\\':
			n := 2
			if isHexEscape(s, i) {
				n = 3
			}
			n = min(n, len(s)-i)
			b.Write([]byte(s[i : i+n]))
			i += n
		case util.IsUpperASCII(s[i]):
			j := i + 1
			for j < len(s) && util.IsUpperASCII(s[j]) {
				j++
			}
			b.Write(lower.Bytes([]byte(s[i:j])))
			i = j
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return T(b.Bytes())
}

// TrimValue trims SP around a raw attribute value capture.
// A trailing SP survives when it is escaped by an odd number of backslashes.
func TrimValue(s string) string {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	j := len(s)
	for j > i && s[j-1] == ' ' {
		k := j - 2
		for k >= i && s[k] == '\\' {
			k--
		}
		if (j-2-k)%2 == 1 {
			break
		}
		j--
	}
	return s[i:j]
}

// EscapeValue converts a raw attribute value to the canonical escaped form:
// specials, "\" and DQUOTE get a backslash, leading and trailing SP become "\20",
// control and non-ASCII bytes become uppercase hex escapes.
func EscapeValue[T constraints.Byteseq](s T) T {
	var b bytes.Buffer
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case IsSpecialChar(c) || c == '\\' || c == '"':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == ' ' && (i == 0 || i == len(s)-1):
			b.WriteString(escapedSP)
		case isPrintableASCII(c):
			b.WriteByte(c)
		default:
			b.WriteByte('\\')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return T(b.Bytes())
}
