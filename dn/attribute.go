package dn

import (
	"cmp"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/ldapdn/internal/grammar"
	"github.com/ghettovoice/ldapdn/internal/util"
)

// MultiValuedType is the type text of an RDN that aggregates "+"-joined components.
const MultiValuedType = "MULTIPLE VALUES"

// AttributeType is the attribute type of an RDN, a short name like "cn" or an OID.
//
// Flags are fixed on parsing, only the text changes when normalization is committed.
type AttributeType struct {
	text          string
	oid           bool
	caseSensitive bool
	normalized    bool
}

// String returns the current text of the type.
func (t *AttributeType) String() string {
	if t == nil {
		return ""
	}
	return t.text
}

// IsOID reports whether the type is in dotted-decimal form, optionally "oid." prefixed.
func (t *AttributeType) IsOID() bool { return t != nil && t.oid }

// IsCaseSensitive reports whether normalization keeps the case of the type.
func (t *AttributeType) IsCaseSensitive() bool { return t != nil && t.caseSensitive }

// IsNormalized reports whether the current text is the committed normalized form.
func (t *AttributeType) IsNormalized() bool { return t != nil && t.normalized }

// Normalized returns the normalized type without changing t.
func (t *AttributeType) Normalized() string { return t.normalize(false) }

// Normalize replaces the text of t with its normalized form.
// It is not safe to call concurrently with any other method of t.
func (t *AttributeType) Normalize() { t.normalize(true) }

func (t *AttributeType) normalize(commit bool) string {
	if t == nil {
		return ""
	}
	if t.normalized {
		return t.text
	}

	s := t.text
	switch {
	case t.oid:
		s = stripOIDPrefix(s)
	case !t.caseSensitive:
		s = grammar.LowerUnescaped(s)
	}

	if commit {
		t.text = s
		t.normalized = true
	}
	return s
}

// stripOIDPrefix removes the LDAPv2 "oid." prefix.
// Only the all lower and all upper case spellings are recognized.
func stripOIDPrefix(s string) string {
	if strings.HasPrefix(s, "oid.") || strings.HasPrefix(s, "OID.") {
		return s[4:]
	}
	return s
}

// AttributeValue is the attribute value of an RDN.
// The value of a multi-valued RDN holds the nested RDNs.
type AttributeValue struct {
	text          string
	caseSensitive bool
	quoted        bool
	hexString     bool
	normalized    bool
	multi         []*RDN
	canon         Canonicalizer
}

// String returns the current text of the value.
func (v *AttributeValue) String() string {
	if v == nil {
		return ""
	}
	return v.text
}

// IsQuoted reports whether the value was parsed from the quoted form.
func (v *AttributeValue) IsQuoted() bool { return v != nil && v.quoted }

// IsHexString reports whether the value was parsed from the "#" hex form.
func (v *AttributeValue) IsHexString() bool { return v != nil && v.hexString }

// IsCaseSensitive reports whether normalization keeps the case of the value.
func (v *AttributeValue) IsCaseSensitive() bool { return v != nil && v.caseSensitive }

// IsNormalized reports whether the current text is the committed normalized form.
func (v *AttributeValue) IsNormalized() bool { return v != nil && v.normalized }

// IsMultiValued reports whether the value aggregates the components of a multi-valued RDN.
func (v *AttributeValue) IsMultiValued() bool { return v != nil && len(v.multi) > 0 }

// Normalized returns the normalized value without changing v.
func (v *AttributeValue) Normalized() (string, error) {
	return errtrace.Wrap2(v.normalize(false))
}

// Normalize replaces the text of v with its normalized form.
// For a multi-valued value the nested RDNs are normalized and sorted in place.
// It is not safe to call concurrently with any other method of v.
func (v *AttributeValue) Normalize() error {
	_, err := v.normalize(true)
	return errtrace.Wrap(err)
}

func (v *AttributeValue) canonicalizer() Canonicalizer {
	if v.canon == nil {
		return DefaultCanonicalizer
	}
	return v.canon
}

func (v *AttributeValue) normalize(commit bool) (string, error) {
	if v == nil {
		return "", nil
	}
	if v.normalized {
		return v.text, nil
	}

	var (
		s   string
		err error
	)
	switch {
	case len(v.multi) > 0:
		s, err = v.normalizeMulti(commit)
	case v.hexString:
		s = v.text
		if !strings.HasPrefix(s, "#") {
			s = "#" + s
		}
	default:
		s, err = v.normalizeString()
	}
	if err != nil {
		return "", errtrace.Wrap(err)
	}

	if commit {
		v.text = s
		v.normalized = true
	}
	return s, nil
}

func (v *AttributeValue) normalizeString() (string, error) {
	s := v.text
	canon := v.canonicalizer()
	if v.quoted {
		var err error
		if s, err = canon.Unquote(s); err != nil {
			return "", errtrace.Wrap(err)
		}
	}
	if !v.caseSensitive {
		s = grammar.LowerUnescaped(s)
	}
	s, err := canon.CanonicalizeEscapes(s)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	// decoded hex escapes may yield new uppercase letters
	if !v.caseSensitive {
		s = grammar.LowerUnescaped(s)
	}
	return s, nil
}

type rdnKey struct {
	rdn      *RDN
	typ, val string
}

func compareRDNKeys(a, b rdnKey) int {
	return cmp.Or(strings.Compare(a.typ, b.typ), strings.Compare(a.val, b.val))
}

func (v *AttributeValue) normalizeMulti(commit bool) (string, error) {
	keys := make([]rdnKey, len(v.multi))
	for i, r := range v.multi {
		typ, val, err := r.normalizeParts(commit)
		if err != nil {
			return "", errtrace.Wrap(err)
		}
		keys[i] = rdnKey{r, typ, val}
	}

	slices.SortStableFunc(keys, compareRDNKeys)
	if commit {
		for i := range keys {
			v.multi[i] = keys[i].rdn
		}
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i := range keys {
		if i > 0 {
			sb.WriteByte('+')
		}
		sb.WriteString(joinTypeAndValue(keys[i].typ, keys[i].val))
	}
	return sb.String(), nil
}

func (v *AttributeValue) clone() AttributeValue {
	v2 := *v
	if v.multi != nil {
		v2.multi = make([]*RDN, len(v.multi))
		for i, r := range v.multi {
			v2.multi[i] = r.Clone()
		}
	}
	return v2
}
