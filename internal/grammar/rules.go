package grammar

import (
	"github.com/ghettovoice/abnf"
)

// Node keys captured by the matcher.
const (
	keyNameComponent   = "name-component"
	keySubComponents   = "sub-components"
	keyAttrTypeAndVal  = "attributeTypeAndValue"
	keyAttrType        = "attributeType"
	keyAttrValue       = "attributeValue"
	keyOID             = "oid"
	keyHexString       = "hexstring"
	keyQuotedValue     = "quoted-value"
	keyUnquotedValue   = "string"
	keyRDNDelimiter    = "rdn-delimiter"
	keyMultiValueDelim = "multi-value-delimiter"
)

func lit(s string) abnf.Operator { return abnf.Literal(`"`+s+`"`, []byte(s)) }

func byteRange(key string, lo, hi byte) abnf.Operator {
	return abnf.Range(key, []byte{lo}, []byte{hi})
}

// Only SP (0x20) is allowed as optional space, never generic whitespace.
var (
	sp     = lit(" ")
	spaces = abnf.Repeat0Inf("*SP", sp)

	digit  = byteRange("DIGIT", '0', '9')
	alpha  = abnf.AltFirst("ALPHA", byteRange("%x41-5A", 'A', 'Z'), byteRange("%x61-7A", 'a', 'z'))
	digits = abnf.Concat("1*DIGIT", digit, abnf.Repeat0Inf("*DIGIT", digit))

	hexchar = abnf.AltFirst("hexchar",
		digit,
		byteRange("%x41-46", 'A', 'F'),
		byteRange("%x61-66", 'a', 'f'),
	)
	hexpair   = abnf.Concat("hexpair", hexchar, hexchar)
	hexstring = abnf.Concat(keyHexString, lit("#"), hexpair, abnf.Repeat0Inf("*hexpair", hexpair))

	special = abnf.AltFirst("special", lit(","), lit("="), lit("+"), lit("<"), lit(">"), lit("#"), lit(";"))

	// An escaped SP is accepted as well, LDAPv3 producers use it for trailing spaces.
	pair = abnf.Concat("pair",
		lit(`\`),
		abnf.AltFirst("pair-char", special, lit(`\`), lit(`"`), sp, hexpair),
	)

	// Any byte except special, "\" and DQUOTE.
	stringchar = abnf.AltFirst("stringchar",
		byteRange("%x00-21", 0x00, 0x21),
		byteRange("%x24-2A", 0x24, 0x2A),
		byteRange("%x2D-3A", 0x2D, 0x3A),
		byteRange("%x3F-5B", 0x3F, 0x5B),
		byteRange("%x5D-FF", 0x5D, 0xFF),
	)
	// Any byte except "\" and DQUOTE.
	quotechar = abnf.AltFirst("quotechar",
		byteRange("%x00-21", 0x00, 0x21),
		byteRange("%x23-5B", 0x23, 0x5B),
		byteRange("%x5D-FF", 0x5D, 0xFF),
	)

	quotedValue = abnf.Concat(keyQuotedValue,
		lit(`"`),
		abnf.Repeat0Inf("*quoted", abnf.AltFirst("quoted", quotechar, pair)),
		lit(`"`),
	)
	unquotedValue = abnf.Repeat0Inf(keyUnquotedValue, abnf.AltFirst("string-item", stringchar, pair))

	attributeValue = abnf.AltFirst(keyAttrValue, hexstring, quotedValue, unquotedValue)

	// The "oid." prefix is an LDAPv2 leftover.
	oidNumber = abnf.Concat("oid-number", digits, abnf.Repeat0Inf("*oid-arc", abnf.Concat("oid-arc", lit("."), digits)))
	oid       = abnf.AltFirst(keyOID, abnf.Concat("oid-prefixed", abnf.AltFirst("oid-prefix", lit("oid."), lit("OID.")), oidNumber), oidNumber)

	// RFC 2253 requires 1*keychar after ALPHA, which would reject "L", "O" and "C".
	keychar   = abnf.AltFirst("keychar", alpha, digit, lit("-"))
	keystring = abnf.Concat("keystring", alpha, abnf.Repeat0Inf("*keychar", keychar))

	attributeType = abnf.AltFirst(keyAttrType, oid, keystring)

	attributeTypeAndValue = abnf.Concat(keyAttrTypeAndVal,
		attributeType,
		spaces, lit("="), spaces,
		attributeValue,
	)

	nextAttributeTypeAndValue = abnf.Concat("next-"+keyAttrTypeAndVal,
		spaces, abnf.AltFirst(keyMultiValueDelim, lit("+")), spaces,
		attributeTypeAndValue,
	)

	nameComponent = abnf.Concat(keyNameComponent,
		attributeTypeAndValue,
		abnf.Repeat0Inf(keySubComponents, nextAttributeTypeAndValue),
	)

	// ";" is accepted on input only.
	nextName = abnf.Concat("next-name",
		spaces, abnf.AltFirst(keyRDNDelimiter, lit(","), lit(";")), spaces,
		nameComponent,
	)
)
