package main

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/ldapdn/dn"
)

func newDomainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "domain DN",
		Short: `Print the DNS domain of a DN built from its trailing "dc" components`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.parse(args[0])
			if err != nil {
				return errtrace.Wrap(err)
			}
			domain, err := d.Domain()
			if err != nil {
				return errtrace.Wrap(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), domain)
			return errtrace.Wrap(err)
		},
	}
}

func newFromDomainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "from-domain DOMAIN",
		Short: `Print the "dc" DN of a DNS domain`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dn.FromDomain(args[0])
			if err != nil {
				a.logger.Warn("failed to map domain", "domain", args[0], "error", err)
				return errtrace.Wrap(err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%+s\n", d)
			return errtrace.Wrap(err)
		},
	}
}
