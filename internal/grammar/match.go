package grammar

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/ldapdn/internal/constraints"
)

// Pattern selects one of the entry productions applied by [MatchPattern].
type Pattern uint8

const (
	// Name matches a name-component at the start of a DN.
	Name Pattern = iota
	// NextName matches *SP ("," / ";") *SP name-component.
	NextName
	// AttributeTypeAndValue matches a single attributeTypeAndValue.
	AttributeTypeAndValue
	// NextAttributeTypeAndValue matches *SP "+" *SP attributeTypeAndValue.
	NextAttributeTypeAndValue
)

var patterns = [...]abnf.Operator{
	Name:                      nameComponent,
	NextName:                  nextName,
	AttributeTypeAndValue:     attributeTypeAndValue,
	NextAttributeTypeAndValue: nextAttributeTypeAndValue,
}

func (p Pattern) String() string {
	switch p {
	case Name:
		return "name"
	case NextName:
		return "next-name"
	case AttributeTypeAndValue:
		return "attributeTypeAndValue"
	case NextAttributeTypeAndValue:
		return "next-attributeTypeAndValue"
	default:
		return "unknown"
	}
}

// Match is a successful application of a [Pattern].
type Match struct {
	// Len is the number of consumed bytes, delimiters and spaces included.
	Len int
	// Component is the matched name-component (or attributeTypeAndValue) text
	// without the leading delimiter.
	Component string
	// AttributeType and AttributeValue are the raw captures of the first
	// attributeTypeAndValue in the component, untrimmed.
	AttributeType  string
	AttributeValue string
	// OID, Quoted and HexString are set when any attributeTypeAndValue
	// of the component used the corresponding alternative.
	OID       bool
	Quoted    bool
	HexString bool
	// SubComponents is set when the component is a "+"-joined multi-valued RDN.
	SubComponents bool
}

// MatchPattern applies p to s anchored at offset 0.
// The match does not have to consume the whole input, callers advance past [Match.Len]
// and apply the next pattern to the rest.
func MatchPattern[T constraints.Byteseq](p Pattern, s T) (*Match, error) {
	if len(s) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}
	if int(p) >= len(patterns) {
		return nil, errtrace.Wrap(newMalformedInputErr("unknown pattern %d", p))
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := patterns[p]([]byte(s), 0, ns); err != nil {
		return nil, errtrace.Wrap(newMalformedInputErr(err))
	}

	n := ns.Best()
	if n == nil || n.Len() == 0 {
		return nil, errtrace.Wrap(newMalformedInputErr("no %s at input start", p))
	}
	return buildMatch(p, n), nil
}

func buildMatch(p Pattern, n *abnf.Node) *Match {
	comp := n
	switch p {
	case NextName:
		comp = MustGetNode(n, keyNameComponent)
	case NextAttributeTypeAndValue:
		comp = MustGetNode(n, keyAttrTypeAndVal)
	}

	atvs := findNodes(comp, keyAttrTypeAndVal, nil)
	first := atvs[0]
	m := &Match{
		Len:            n.Len(),
		Component:      comp.String(),
		AttributeType:  MustGetNode(first, keyAttrType).String(),
		AttributeValue: MustGetNode(first, keyAttrValue).String(),
		SubComponents:  len(atvs) > 1,
	}
	for _, atv := range atvs {
		typ := MustGetNode(atv, keyAttrType)
		val := MustGetNode(atv, keyAttrValue)
		m.OID = m.OID || containsNode(typ, keyOID)
		m.Quoted = m.Quoted || containsNode(val, keyQuotedValue)
		m.HexString = m.HexString || containsNode(val, keyHexString)
	}
	return m
}

// IsAttributeType reports whether s as a whole is a valid attributeType.
func IsAttributeType[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return false
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := attributeType([]byte(s), 0, ns); err != nil {
		return false
	}
	n := ns.Best()
	return n != nil && n.Len() == len(s)
}

// IsAttributeValue reports whether s as a whole is a valid attributeValue
// (hexstring, quoted value or unquoted escaped value).
func IsAttributeValue[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return true
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := attributeValue([]byte(s), 0, ns); err != nil {
		return false
	}
	n := ns.Best()
	return n != nil && n.Len() == len(s)
}
