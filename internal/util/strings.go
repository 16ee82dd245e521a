// Package util provides common string helpers.
package util

import (
	"strings"
	"sync"
)

func EqFold[T1, T2 ~string](s1 T1, s2 T2) bool {
	return strings.EqualFold(string(s1), string(s2))
}

// TrimSP trims leading and trailing SP (0x20) characters only.
// Other whitespace is significant in distinguished names.
func TrimSP[T ~string](s T) T { return T(strings.Trim(string(s), " ")) }

// IsUpperASCII reports whether c is in range A-Z.
func IsUpperASCII(c byte) bool { return 'A' <= c && c <= 'Z' }

var strBldrPool = &sync.Pool{
	New: func() any {
		sb := new(strings.Builder)
		sb.Grow(256)
		return sb
	},
}

func GetStringBuilder() *strings.Builder {
	return strBldrPool.Get().(*strings.Builder) //nolint:forcetypeassert
}

func FreeStringBuilder(sb *strings.Builder) {
	sb.Reset()
	strBldrPool.Put(sb)
}
