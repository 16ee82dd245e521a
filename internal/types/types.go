// Package types contains common contracts implemented by the dn package values.
package types

import (
	"io"

	"github.com/google/go-cmp/cmp"
)

// Renderer is an interface that is used to render a type to a string or a writer.
type Renderer interface {
	// Render renders the type to a string with the given options.
	Render(opts *RenderOptions) (string, error)
	// RenderTo renders the type to a writer with the given options.
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

// RenderOptions is a struct that is used to pass options to rendering methods.
type RenderOptions struct {
	// Canonical renders the normalized (canonical) form instead of the current state.
	Canonical bool `json:"canonical,omitempty" yaml:"canonical,omitempty"`
}

// IsCanonical reports whether opts requests canonical rendering. Nil options render the current state.
func (opts *RenderOptions) IsCanonical() bool { return opts != nil && opts.Canonical }

type Equalable interface {
	Equal(val any) bool
}

// IsEqual returns true if the values are equal.
// Values implementing [Equalable] decide themselves, others are compared with [cmp.Equal].
func IsEqual(v1, v2 any) bool {
	if e, ok := v1.(Equalable); ok {
		return e.Equal(v2)
	}
	return cmp.Equal(v1, v2)
}

type Cloneable[T any] interface {
	Clone() T
}
