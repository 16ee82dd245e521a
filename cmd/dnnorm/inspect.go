package main

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/ldapdn/dn"
	"github.com/ghettovoice/ldapdn/internal/types"
)

type dnView struct {
	Input      string    `yaml:"input"`
	Normalized string    `yaml:"normalized"`
	RDNs       []rdnView `yaml:"rdns"`
}

type rdnView struct {
	Type       string    `yaml:"type"`
	Value      string    `yaml:"value"`
	Normalized string    `yaml:"normalized"`
	OID        bool      `yaml:"oid,omitempty"`
	Quoted     bool      `yaml:"quoted,omitempty"`
	HexString  bool      `yaml:"hex_string,omitempty"`
	Values     []rdnView `yaml:"values,omitempty"`
}

func newRDNView(r *dn.RDN) (rdnView, error) {
	norm, err := r.Normalized()
	if err != nil {
		return rdnView{}, errtrace.Wrap(err)
	}
	v := rdnView{
		Type:       r.Type().String(),
		Value:      r.Value().String(),
		Normalized: norm,
		OID:        r.Type().IsOID(),
		Quoted:     r.Value().IsQuoted(),
		HexString:  r.Value().IsHexString(),
	}
	if r.IsMultiValued() {
		for _, nr := range r.Values() {
			nv, err := newRDNView(nr)
			if err != nil {
				return rdnView{}, errtrace.Wrap(err)
			}
			v.Values = append(v.Values, nv)
		}
	}
	return v, nil
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse DN",
		Short: "Print the parsed structure of a DN as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.parse(args[0])
			if err != nil {
				return errtrace.Wrap(err)
			}
			norm, err := d.Normalized()
			if err != nil {
				return errtrace.Wrap(err)
			}

			view := dnView{Input: args[0], Normalized: norm}
			for _, r := range d.RDNs() {
				rv, err := newRDNView(r)
				if err != nil {
					return errtrace.Wrap(err)
				}
				view.RDNs = append(view.RDNs, rv)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(view); err != nil {
				return errtrace.Wrap(err)
			}
			return errtrace.Wrap(enc.Close())
		},
	}
}

func newCompareCmd(a *app) *cobra.Command {
	var ancestor bool
	cmd := &cobra.Command{
		Use:   "compare DN1 DN2",
		Short: "Compare two DNs in canonical form",
		Long: `Compare two DNs in canonical form and print "equal", "less" or "greater".
With --ancestor the command prints whether DN1 is an ancestor of DN2 instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dns, err := a.parseAll(args)
			if err != nil {
				return errtrace.Wrap(err)
			}
			d1, d2 := dns[0], dns[1]

			out := cmd.OutOrStdout()
			if ancestor {
				_, err := fmt.Fprintln(out, d1.IsAncestorOf(d2))
				return errtrace.Wrap(err)
			}

			var res string
			switch {
			case types.IsEqual(d1, d2):
				res = "equal"
			case d1.Compare(d2) < 0:
				res = "less"
			default:
				res = "greater"
			}
			_, err = fmt.Fprintln(out, res)
			return errtrace.Wrap(err)
		},
	}
	cmd.Flags().BoolVar(&ancestor, "ancestor", false, "print whether DN1 is an ancestor of DN2")
	return cmd
}

