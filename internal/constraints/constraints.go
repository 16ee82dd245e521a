// Package constraints provides generic type constraints shared by internal packages.
package constraints

// Byteseq is an ASCII/UTF-8 byte string passed either as a string or a byte slice.
type Byteseq interface {
	~string | ~[]byte
}
