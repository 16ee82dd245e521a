package dn

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/ldapdn/internal/constraints"
	"github.com/ghettovoice/ldapdn/internal/grammar"
	"github.com/ghettovoice/ldapdn/internal/util"
)

// Parse parses a distinguished name in RFC 2253 syntax with default options.
// See [ParseWithOptions].
func Parse[T constraints.Byteseq](s T) (*DN, error) {
	if b, ok := any(s).([]byte); ok && b == nil {
		return nil, errtrace.Wrap(ErrNullInput)
	}
	return errtrace.Wrap2(ParseWithOptions(string(s), nil))
}

// ParseWithOptions parses a distinguished name in RFC 2253 syntax.
// RFC 1779 forms are accepted too: quoted values, ";" RDN separators,
// spaces around separators and "=", "oid." prefixed types.
//
// An empty string yields the empty DN. Input that does not start with a valid RDN
// fails with [ErrMalformedGrammar]. Unparsable text after the first RDN is skipped,
// parsing resumes at the next valid RDN separator, e.g. "CN=a,junk,O=b" has two RDNs.
// With opts.Strict such text is rejected with [ErrTrailingInput].
func ParseWithOptions(s string, opts *ParseOptions) (*DN, error) {
	if s == "" {
		return Empty(), nil
	}

	rdns, err := parseSequence(s, grammar.Name, grammar.NextName, opts)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &DN{rdns: rdns}, nil
}

// parseSequence matches first at the start of s, then next repeatedly
// until the input is consumed. Text where next does not match is skipped
// up to the next offset where it does, or rejected in strict mode.
func parseSequence(s string, first, next grammar.Pattern, opts *ParseOptions) ([]*RDN, error) {
	m, err := grammar.MatchPattern(first, s)
	if err != nil {
		return nil, errtrace.Wrap(newParseError(s, 0, ErrMalformedGrammar, err))
	}

	var rdns []*RDN
	for pos := 0; ; {
		r, err := newRDN(m, opts)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		rdns = append(rdns, r)

		if pos += m.Len; pos >= len(s) {
			break
		}
		if m, err = grammar.MatchPattern(next, s[pos:]); err != nil {
			if opts.isStrict() {
				return nil, errtrace.Wrap(newParseError(s, pos, ErrTrailingInput, nil))
			}
			if m, pos = seekPattern(next, s, pos+1); m == nil {
				break
			}
		}
	}
	return rdns, nil
}

// seekPattern finds the first offset at or after from where p matches.
func seekPattern(p grammar.Pattern, s string, from int) (*grammar.Match, int) {
	for i := from; i < len(s); i++ {
		if m, err := grammar.MatchPattern(p, s[i:]); err == nil {
			return m, i
		}
	}
	return nil, len(s)
}

func newRDN(m *grammar.Match, opts *ParseOptions) (*RDN, error) {
	if m.SubComponents {
		comp := grammar.TrimValue(m.Component)
		nested, err := parseSequence(comp, grammar.AttributeTypeAndValue, grammar.NextAttributeTypeAndValue, opts)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return &RDN{
			typ: AttributeType{text: MultiValuedType, oid: m.OID, caseSensitive: true},
			val: AttributeValue{
				text:          comp,
				caseSensitive: true,
				quoted:        m.Quoted,
				hexString:     m.HexString,
				multi:         nested,
				canon:         opts.canonicalizer(),
			},
		}, nil
	}

	typ := util.TrimSP(m.AttributeType)
	return &RDN{
		typ: AttributeType{
			text:          typ,
			oid:           m.OID,
			caseSensitive: opts.typeCaseSensitive(typ),
		},
		val: AttributeValue{
			text:          grammar.TrimValue(m.AttributeValue),
			caseSensitive: opts.valueCaseSensitive(typ),
			quoted:        m.Quoted,
			hexString:     m.HexString,
			canon:         opts.canonicalizer(),
		},
	}, nil
}
