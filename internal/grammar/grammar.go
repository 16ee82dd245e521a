// Package grammar implements the RFC 2253 distinguished name productions
// (with RFC 1779 / LDAPv2 input tolerances) as ABNF operators
// and the matcher that applies them to input strings.
package grammar

//go:generate go tool errtrace -w .

import (
	"fmt"

	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/ldapdn/internal/errorutil"
)

func init() {
	abnf.EnableNodeCache(1024)
}

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrNodeNotFound   Error = "node not found"
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

// MustGetNode returns the first node with the given key found in n or its descendants.
func MustGetNode(n *abnf.Node, k string) *abnf.Node {
	sn, ok := findNode(n, k)
	if !ok {
		panic(fmt.Errorf("get node %q from node %q: %w", k, n.Key, ErrNodeNotFound))
	}
	return sn
}

// findNode searches n and its descendants depth-first.
func findNode(n *abnf.Node, k string) (*abnf.Node, bool) {
	if n == nil {
		return nil, false
	}
	if n.Key == k {
		return n, true
	}
	for _, c := range n.Children {
		if sn, ok := findNode(c, k); ok {
			return sn, true
		}
	}
	return nil, false
}

// findNodes collects nodes with the given key in document order.
// It does not descend into a node once it matched.
func findNodes(n *abnf.Node, k string, dst []*abnf.Node) []*abnf.Node {
	if n == nil {
		return dst
	}
	if n.Key == k {
		return append(dst, n)
	}
	for _, c := range n.Children {
		dst = findNodes(c, k, dst)
	}
	return dst
}

func containsNode(n *abnf.Node, k string) bool {
	sn, ok := findNode(n, k)
	return ok && sn.Len() > 0
}
