package dn

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/ldapdn/internal/ioutil"
	"github.com/ghettovoice/ldapdn/internal/log"
	"github.com/ghettovoice/ldapdn/internal/types"
	"github.com/ghettovoice/ldapdn/internal/util"
)

// RenderOptions controls rendering of a DN.
type RenderOptions = types.RenderOptions

var (
	_ types.Renderer        = (*DN)(nil)
	_ types.Equalable       = (*DN)(nil)
	_ types.Cloneable[*DN]  = (*DN)(nil)
	_ types.Equalable       = (*RDN)(nil)
	_ types.Cloneable[*RDN] = (*RDN)(nil)
)

// DN is a distinguished name, an ordered sequence of RDNs.
// The order of RDNs is the parse order and never changes.
type DN struct {
	rdns []*RDN
}

// Empty returns the empty DN. It holds a single RDN with empty type and value.
func Empty() *DN { return &DN{rdns: []*RDN{emptyRDN}} }

// RDNs returns the RDNs of the DN.
func (dn *DN) RDNs() []*RDN {
	if dn == nil {
		return nil
	}
	return slices.Clone(dn.rdns)
}

// Len returns the number of RDNs.
func (dn *DN) Len() int {
	if dn == nil {
		return 0
	}
	return len(dn.rdns)
}

// IsEmpty reports whether dn is the empty DN.
func (dn *DN) IsEmpty() bool {
	if dn == nil || len(dn.rdns) == 0 {
		return true
	}
	if len(dn.rdns) > 1 {
		return false
	}
	s, err := dn.rdns[0].Normalized()
	return err == nil && s == ""
}

// Normalized returns the canonical form of the DN without changing it.
// It is safe for concurrent use as long as no commit happens at the same time.
func (dn *DN) Normalized() (string, error) {
	return errtrace.Wrap2(dn.AsNormalized(false))
}

// AsNormalized returns the canonical form of the DN: lowercase types,
// no quoting, minimal escaping, uppercase hex digits, sorted multi-valued RDNs.
//
// When commit is true every RDN stores its normalized form, and the nested RDNs of
// multi-valued RDNs are reordered. This mode is not safe for concurrent use.
// If an RDN fails to normalize, RDNs before it stay committed.
func (dn *DN) AsNormalized(commit bool) (string, error) {
	if dn == nil {
		return "", nil
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, r := range dn.rdns {
		s, err := r.AsNormalized(commit)
		if err != nil {
			return "", errtrace.Wrap(err)
		}
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// Normalize commits the canonical form into dn.
// It is not safe for concurrent use.
func (dn *DN) Normalize() error {
	_, err := dn.AsNormalized(true)
	return errtrace.Wrap(err)
}

// NormalizedCopy returns a normalized deep copy of dn, dn itself is left unchanged.
func (dn *DN) NormalizedCopy() (*DN, error) {
	if dn == nil {
		return nil, nil
	}
	dn2 := dn.Clone()
	if err := dn2.Normalize(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return dn2, nil
}

// String returns the current text of the DN, RDNs joined with ",".
func (dn *DN) String() string {
	if dn == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	dn.RenderTo(sb, nil) //nolint:errcheck
	return sb.String()
}

// RenderTo writes the DN to w. With opts.Canonical the normalized form is written.
func (dn *DN) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if dn == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	if opts.IsCanonical() {
		s, err := dn.Normalized()
		if err != nil {
			return 0, errtrace.Wrap(err)
		}
		cw.WriteString(s) //nolint:errcheck
		return errtrace.Wrap2(cw.Result())
	}

	for i, r := range dn.rdns {
		if i > 0 {
			cw.WriteString(",") //nolint:errcheck
		}
		cw.WriteString(r.String()) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the DN text. With opts.Canonical the normalized form is returned.
func (dn *DN) Render(opts *RenderOptions) (string, error) {
	if dn == nil {
		return "", nil
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if _, err := dn.RenderTo(sb, opts); err != nil {
		return "", errtrace.Wrap(err)
	}
	return sb.String(), nil
}

// Format implements [fmt.Formatter].
// "%s" prints the current text, "%+s" the normalized form, "%q" the quoted current text.
func (dn *DN) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			if s, err := dn.Normalized(); err == nil {
				fmt.Fprint(f, s)
				return
			}
		}
		fmt.Fprint(f, dn.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(dn.String()))
		return
	default:
		type hideMethods DN
		type DN hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*DN)(dn))
		return
	}
}

// Equal reports whether val is a DN with the same canonical form.
func (dn *DN) Equal(val any) bool {
	var other *DN
	switch v := val.(type) {
	case DN:
		other = &v
	case *DN:
		other = v
	default:
		return false
	}

	if dn == other {
		return true
	} else if dn == nil || other == nil {
		return false
	}

	s1, err := dn.Normalized()
	if err != nil {
		return false
	}
	s2, err := other.Normalized()
	if err != nil {
		return false
	}
	return s1 == s2
}

// Compare compares canonical forms of dn and other lexicographically.
// A DN that fails to normalize is compared by its current text.
func (dn *DN) Compare(other *DN) int {
	return strings.Compare(dn.sortKey(), other.sortKey())
}

func (dn *DN) sortKey() string {
	s, err := dn.Normalized()
	if err != nil {
		return dn.String()
	}
	return s
}

// Clone returns a deep copy of dn.
func (dn *DN) Clone() *DN {
	if dn == nil {
		return nil
	}
	dn2 := &DN{rdns: make([]*RDN, len(dn.rdns))}
	for i, r := range dn.rdns {
		dn2.rdns[i] = r.Clone()
	}
	return dn2
}

// Parent returns the DN without its first RDN.
// The parent of a DN with a single RDN is the empty DN.
func (dn *DN) Parent() *DN {
	if dn.Len() <= 1 {
		return Empty()
	}
	dn2 := &DN{rdns: make([]*RDN, len(dn.rdns)-1)}
	for i, r := range dn.rdns[1:] {
		dn2.rdns[i] = r.Clone()
	}
	return dn2
}

// IsAncestorOf reports whether the RDNs of dn are a proper suffix of the RDNs of other,
// compared in canonical form. The empty DN is an ancestor of every non-empty DN.
func (dn *DN) IsAncestorOf(other *DN) bool {
	if other.IsEmpty() {
		return false
	}
	if dn.IsEmpty() {
		return true
	}
	if dn.Len() >= other.Len() {
		return false
	}

	off := other.Len() - dn.Len()
	for i, r := range dn.rdns {
		if !r.Equal(other.rdns[off+i]) {
			return false
		}
	}
	return true
}

// MarshalText implements [encoding.TextMarshaler]. The canonical form is marshaled.
func (dn *DN) MarshalText() ([]byte, error) {
	s, err := dn.Normalized()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (dn *DN) UnmarshalText(text []byte) error {
	dn1, err := ParseWithOptions(string(text), nil)
	if err != nil {
		*dn = DN{}
		return errtrace.Wrap(err)
	}
	*dn = *dn1
	return nil
}

// LogValue implements [slog.LogValuer].
// Attribute values are not logged, only their lengths.
func (dn *DN) LogValue() slog.Value {
	if dn == nil {
		return slog.Value{}
	}

	attrs := make([]slog.Attr, 0, len(dn.rdns)+1)
	attrs = append(attrs, slog.Int("rdns", len(dn.rdns)))
	for i, r := range dn.rdns {
		for _, v := range r.Values() {
			attrs = append(attrs, slog.Any(strconv.Itoa(i)+"."+v.typ.text, log.RedactedValue(v.val.text)))
		}
	}
	return slog.GroupValue(attrs...)
}
