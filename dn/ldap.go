package dn

import (
	"braces.dev/errtrace"
	"github.com/go-ldap/ldap/v3"

	"github.com/ghettovoice/ldapdn/internal/errorutil"
	"github.com/ghettovoice/ldapdn/internal/util"
)

// LDAP converts the canonical form of dn to a go-ldap DN.
// Escapes are decoded by go-ldap, so the attribute values of the result are raw.
func (dn *DN) LDAP() (*ldap.DN, error) {
	if dn == nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil DN"))
	}
	s, err := dn.Normalized()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(ldap.ParseDN(s))
}

// FromLDAP builds a DN from a go-ldap DN, escaping its raw attribute values.
func FromLDAP(d *ldap.DN, opts *ParseOptions) (*DN, error) {
	if d == nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil DN"))
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, r := range d.RDNs {
		if i > 0 {
			sb.WriteByte(',')
		}
		for j, atv := range r.Attributes {
			if j > 0 {
				sb.WriteByte('+')
			}
			sb.WriteString(atv.Type)
			sb.WriteByte('=')
			sb.WriteString(EscapeValue(atv.Value))
		}
	}
	return errtrace.Wrap2(ParseWithOptions(sb.String(), opts))
}
