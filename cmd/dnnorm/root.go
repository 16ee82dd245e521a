package main

import (
	"log/slog"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/ldapdn/dn"
	"github.com/ghettovoice/ldapdn/internal/log"
)

// app holds the state shared by subcommands, it is filled before any of them runs.
type app struct {
	cfgFile string
	opts    *dn.ParseOptions
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: log.Noop}

	cmd := &cobra.Command{
		Use:   "dnnorm",
		Short: "Parse and canonicalize LDAP distinguished names",
		Long: `dnnorm parses LDAP distinguished names in the RFC 2253 string form
and prints their canonical form, so that equal names compare equal as text:
  - attribute types are lowercased, "oid." prefixes are dropped
  - quoted values are unquoted and escaped
  - hex escapes are reduced to the shortest form with uppercase digits
  - values of multi-valued RDNs are sorted`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return errtrace.Wrap(a.init(cmd))
		},
	}

	fs := cmd.PersistentFlags()
	fs.StringVarP(&a.cfgFile, "config", "c", "", "config file path")
	fs.Bool("strict", false, "reject input left after the last RDN")
	fs.StringSlice("case-sensitive-type", nil, "attribute types that keep their case")
	fs.StringSlice("case-ignore-value", nil, "attribute types whose values are lowercased")
	fs.String("log-format", string(log.FormatConsole), "log format: console, dev, none")
	fs.String("log-level", "info", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newNormalizeCmd(a),
		newParseCmd(a),
		newCompareCmd(a),
		newDomainCmd(a),
		newFromDomainCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.cfgFile)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if err := cfg.applyFlags(cmd.Flags()); err != nil {
		return errtrace.Wrap(err)
	}
	if err := cfg.validate(); err != nil {
		return errtrace.Wrap(err)
	}

	if a.logger, err = cfg.logger(cmd.ErrOrStderr()); err != nil {
		return errtrace.Wrap(err)
	}
	a.opts = cfg.parseOptions()
	a.logger.Debug("configuration loaded", "config", a.cfgFile, "options", a.opts)
	return nil
}

// parse parses s with the configured options and logs failures.
func (a *app) parse(s string) (*dn.DN, error) {
	d, err := dn.ParseWithOptions(s, a.opts)
	if err != nil {
		a.logger.Warn("failed to parse DN", log.SensitiveKey, s, "error", err)
		return nil, errtrace.Wrap(err)
	}
	a.logger.Debug("DN parsed", "dn", d)
	return d, nil
}
