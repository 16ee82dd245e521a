package main

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/ldapdn/dn"
	"github.com/ghettovoice/ldapdn/internal/errorutil"
	"github.com/ghettovoice/ldapdn/internal/log"
)

func newNormalizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [DN...]",
		Short: "Print the canonical form of DNs",
		Long: `Print the canonical form of every DN given as argument.
Without arguments DNs are read from stdin, one per line, empty lines are skipped.

Examples:
  dnnorm normalize 'CN=Steve Kille,O=Isode Limited,C=GB'
  dnnorm normalize --case-ignore-value dc < dns.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return errtrace.Wrap(a.normalizeAll(cmd.OutOrStdout(), slices.Values(args)))
			}
			return errtrace.Wrap(a.normalizeReader(cmd.OutOrStdout(), cmd.InOrStdin()))
		},
	}
}

func (a *app) normalizeReader(w io.Writer, r io.Reader) error {
	sc := bufio.NewScanner(r)
	err := a.normalizeAll(w, func(yield func(string) bool) {
		for sc.Scan() {
			line := strings.TrimRight(sc.Text(), "\r")
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	})
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(sc.Err())
}

// normalizeAll prints the canonical form of every DN from seq.
// Failed DNs are logged and skipped, the returned error counts them.
func (a *app) normalizeAll(w io.Writer, seq iter.Seq[string]) error {
	var total, failed, grammar int
	for s := range seq {
		total++
		norm, err := a.normalize(s)
		if err != nil {
			failed++
			if errorutil.IsGrammarErr(err) {
				grammar++
			}
			continue
		}
		if _, err := fmt.Fprintln(w, norm); err != nil {
			return errtrace.Wrap(err)
		}
	}

	a.logger.Info("normalization done", "total", total, "failed", failed, "malformed", grammar)
	if failed > 0 {
		return errtrace.Wrap(fmt.Errorf("%d of %d DNs failed", failed, total))
	}
	return nil
}

func (a *app) normalize(s string) (string, error) {
	d, err := a.parse(s)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	norm, err := d.Normalized()
	if err != nil {
		a.logger.Warn("failed to normalize DN", log.SensitiveKey, s, "error", err)
		return "", errtrace.Wrap(err)
	}
	return norm, nil
}

// parseAll parses every argument, stopping at the first failure.
func (a *app) parseAll(args []string) ([]*dn.DN, error) {
	dns := make([]*dn.DN, len(args))
	for i, s := range args {
		d, err := a.parse(s)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("argument %d: %w", i+1, err))
		}
		dns[i] = d
	}
	return dns, nil
}
