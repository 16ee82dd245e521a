package dn

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"
)

// RDN is a relative distinguished name: one attribute type and value pair,
// or a multi-valued aggregate of "+"-joined pairs.
type RDN struct {
	typ AttributeType
	val AttributeValue
}

// emptyRDN is the only RDN of the empty DN. It is created normalized,
// so committing normalization on it never writes.
var emptyRDN = &RDN{
	typ: AttributeType{normalized: true},
	val: AttributeValue{caseSensitive: true, normalized: true},
}

// Type returns the attribute type. For a multi-valued RDN its text is [MultiValuedType].
func (r *RDN) Type() *AttributeType {
	if r == nil {
		return nil
	}
	return &r.typ
}

// Value returns the attribute value. For a multi-valued RDN it holds the whole component text.
func (r *RDN) Value() *AttributeValue {
	if r == nil {
		return nil
	}
	return &r.val
}

// IsMultiValued reports whether r aggregates several type and value pairs.
func (r *RDN) IsMultiValued() bool { return r != nil && r.val.IsMultiValued() }

// Values returns the nested RDNs of a multi-valued RDN, or r itself otherwise.
func (r *RDN) Values() []*RDN {
	if r == nil {
		return nil
	}
	if r.IsMultiValued() {
		return slices.Clone(r.val.multi)
	}
	return []*RDN{r}
}

// String returns the current text of the RDN.
func (r *RDN) String() string {
	if r == nil {
		return ""
	}
	if r.IsMultiValued() {
		return r.val.text
	}
	return joinTypeAndValue(r.typ.text, r.val.text)
}

// joinTypeAndValue renders a pair, the pair of empty type and value renders empty.
func joinTypeAndValue(typ, val string) string {
	if typ == "" && val == "" {
		return ""
	}
	return typ + "=" + val
}

// Normalized returns the canonical form of the RDN without changing it.
func (r *RDN) Normalized() (string, error) {
	return errtrace.Wrap2(r.AsNormalized(false))
}

// AsNormalized returns the canonical form of the RDN.
// When commit is true the normalized texts are stored back into r,
// this mode is not safe for concurrent use.
func (r *RDN) AsNormalized(commit bool) (string, error) {
	if r == nil {
		return "", nil
	}
	if r.IsMultiValued() {
		s, err := r.val.normalize(commit)
		if err != nil {
			return "", errtrace.Wrap(wrapNormalizeErr(r.typ.text, r.val.text, err))
		}
		return s, nil
	}

	typ, val, err := r.normalizeParts(commit)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return joinTypeAndValue(typ, val), nil
}

// Normalize is equivalent to AsNormalized(true) with the result dropped.
func (r *RDN) Normalize() error {
	_, err := r.AsNormalized(true)
	return errtrace.Wrap(err)
}

func (r *RDN) normalizeParts(commit bool) (typ, val string, err error) {
	rawTyp := r.typ.text
	typ = r.typ.normalize(commit)
	if val, err = r.val.normalize(commit); err != nil {
		return "", "", errtrace.Wrap(wrapNormalizeErr(rawTyp, r.val.text, err))
	}
	return typ, val, nil
}

// wrapNormalizeErr tags err with the RDN text unless a nested RDN already did.
func wrapNormalizeErr(typ, val string, err error) error {
	var nerr *NormalizeError
	if errors.As(err, &nerr) {
		return err //errtrace:skip
	}
	return newNormalizeError(typ, val, err) //errtrace:skip
}

// Compare orders RDNs by normalized type, then by normalized value.
// Forms that fail to normalize are compared by their current text.
func (r *RDN) Compare(other *RDN) int {
	typ1, val1 := r.sortKey()
	typ2, val2 := other.sortKey()
	return cmp.Or(strings.Compare(typ1, typ2), strings.Compare(val1, val2))
}

func (r *RDN) sortKey() (typ, val string) {
	if r == nil {
		return "", ""
	}
	if r.IsMultiValued() {
		s, err := r.val.normalize(false)
		if err != nil {
			s = r.val.text
		}
		return r.typ.text, s
	}
	typ, val, err := r.normalizeParts(false)
	if err != nil {
		return r.typ.text, r.val.text
	}
	return typ, val
}

// Equal reports whether val is an RDN with the same canonical form.
func (r *RDN) Equal(val any) bool {
	var other *RDN
	switch v := val.(type) {
	case RDN:
		other = &v
	case *RDN:
		other = v
	default:
		return false
	}

	if r == other {
		return true
	} else if r == nil || other == nil {
		return false
	}

	s1, err := r.Normalized()
	if err != nil {
		return false
	}
	s2, err := other.Normalized()
	if err != nil {
		return false
	}
	return s1 == s2
}

// Clone returns a deep copy of r.
func (r *RDN) Clone() *RDN {
	if r == nil {
		return nil
	}
	if r == emptyRDN {
		return r
	}
	return &RDN{typ: r.typ, val: r.val.clone()}
}

// Format implements [fmt.Formatter].
func (r *RDN) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, r.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(r.String()))
		return
	default:
		type hideMethods RDN
		type RDN hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*RDN)(r))
		return
	}
}
