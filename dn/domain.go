package dn

import (
	"slices"
	"strings"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/ghettovoice/ldapdn/internal/errorutil"
	"github.com/ghettovoice/ldapdn/internal/grammar"
	"github.com/ghettovoice/ldapdn/internal/util"
)

// Domain component attribute type (RFC 2247).
const (
	DomainComponentType = "dc"
	DomainComponentOID  = "0.9.2342.19200300.100.1.25"
)

// ErrNotDomain is returned by [DN.Domain] when the DN does not end with domain components.
const ErrNotDomain Error = "no domain components"

var domainOpts = &ParseOptions{CaseIgnoreValues: []string{DomainComponentType, DomainComponentOID}}

// FromDomain maps a DNS domain name to a DN of "dc" components as described in RFC 2247,
// e.g. "example.com" => "dc=example,dc=com". Values of the result are case-insensitive.
func FromDomain(domain string) (*DN, error) {
	if _, ok := dns.IsDomainName(domain); !ok {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid domain name %q", domain))
	}
	labels := dns.SplitDomainName(domain)
	if len(labels) == 0 {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("root domain has no components"))
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, l := range labels {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(DomainComponentType)
		sb.WriteByte('=')
		sb.WriteString(grammar.EscapeValue(l))
	}
	return errtrace.Wrap2(ParseWithOptions(sb.String(), domainOpts))
}

// Domain returns the DNS domain name built from the trailing "dc" components of dn,
// e.g. "uid=jdoe,ou=People,dc=Example,dc=COM" => "example.com".
// [ErrNotDomain] is returned if dn does not end with a "dc" component.
func (dn *DN) Domain() (string, error) {
	var labels []string
	for _, r := range slices.Backward(dn.RDNs()) {
		if !isDomainComponent(r) {
			break
		}
		val, err := r.val.normalize(false)
		if err != nil {
			return "", errtrace.Wrap(wrapNormalizeErr(r.typ.text, r.val.text, err))
		}
		if val == "" || strings.ContainsRune(val, '\\') {
			return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid domain component %q", val))
		}
		labels = append(labels, val)
	}
	if len(labels) == 0 {
		return "", errtrace.Wrap(ErrNotDomain)
	}

	slices.Reverse(labels)
	name := strings.Join(labels, ".")
	if _, ok := dns.IsDomainName(name); !ok {
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid domain name %q", name))
	}
	return strings.TrimSuffix(dns.CanonicalName(name), "."), nil
}

func isDomainComponent(r *RDN) bool {
	if r.IsMultiValued() || r.val.hexString {
		return false
	}
	typ := r.typ.normalize(false)
	return util.EqFold(typ, DomainComponentType) || typ == DomainComponentOID
}
