// Dnnorm parses and canonicalizes LDAP distinguished names (RFC 2253).
//
// Usage:
//
//	# Print the canonical form of DNs given as arguments or read line by line from stdin
//	dnnorm normalize 'CN=Steve Kille,O=Isode Limited,C=GB'
//	ldapsearch ... | dnnorm normalize
//
//	# Dump the parsed structure as YAML
//	dnnorm parse 'OU=Sales+CN=J. Smith,O=Widget Inc.,C=US'
//
//	# Compare two DNs in canonical form
//	dnnorm compare 'CN=x,O=y' 'cn=x, o=y'
//
//	# Map between DNS domains and "dc" DNs
//	dnnorm domain 'uid=jdoe,dc=example,dc=com'
//	dnnorm from-domain example.com
//
// Options are read from a YAML file given by --config, command line flags take precedence.
package main

//go:generate go tool errtrace -w .

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
