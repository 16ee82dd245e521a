// Package dn parses and canonicalizes distinguished names in the string syntax of RFC 2253.
//
// # Parsing
//
// [Parse] accepts RFC 2253 text along with the RFC 1779 (LDAPv2) forms still found in the wild:
// quoted values, ";" as RDN separator, spaces around separators and "=", "oid." prefixed types.
//
//	d, err := dn.Parse(`CN="Quoted Last, Quoted First", O=Space After Comma ; C = Semi's too!`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// An empty string is the empty DN, see [Empty]. Input that does not start with a valid RDN
// fails with [ErrMalformedGrammar]. Unparsable text after the first RDN is skipped up to
// the next valid separator, set [ParseOptions.Strict] to get [ErrTrailingInput] instead.
//
// # Normalization
//
// The canonical form makes DNs comparable regardless of the input style:
// attribute types are lowercased (unless listed in [ParseOptions.CaseSensitiveTypes]),
// the "oid." prefix is removed, quoting is replaced with backslash escapes,
// hex escapes are reduced to the minimal form with uppercase digits,
// and the components of multi-valued RDNs are sorted.
//
//	s, _ := d.Normalized()
//	// cn=Quoted Last\, Quoted First,o=Space After Comma,c=Semi's too!
//
// [DN.Normalized] never changes the DN and is safe for concurrent use.
// [DN.Normalize] and [DN.AsNormalized] with commit set store the canonical form in place,
// callers must serialize them per DN. [DN.NormalizedCopy] returns a normalized copy instead.
//
// The pure normalization steps are exported as [Unquote], [CanonicalizeEscapes] and
// [LowerUnescaped]. Unquoting and escape canonicalization can be replaced with
// a custom [Canonicalizer].
//
// # Errors
//
// [ParseError] and [NormalizeError] carry the offending DN text.
// DNs often contain personal data, redact errors before logging them.
// [DN] implements [log/slog.LogValuer] and logs attribute types only.
package dn

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -typed -destination ../internal/testutil/dnmock/canonicalizer.go -package dnmock . Canonicalizer
