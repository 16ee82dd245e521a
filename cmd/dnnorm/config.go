package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/ldapdn/dn"
	"github.com/ghettovoice/ldapdn/internal/errorutil"
	"github.com/ghettovoice/ldapdn/internal/log"
)

// config is the dnnorm configuration file.
//
//	case_sensitive_types: [cn]
//	case_ignore_values: [dc, mail]
//	strict: true
//	log:
//	  format: console
//	  level: info
type config struct {
	dn.ParseOptions `yaml:",inline"`

	Log logConfig `yaml:"log"`
}

type logConfig struct {
	Format log.Format `yaml:"format"`
	Level  string     `yaml:"level"`
}

func defaultConfig() *config {
	return &config{
		Log: logConfig{
			Format: log.FormatConsole,
			Level:  "info",
		},
	}
}

// loadConfig reads the configuration from path over the defaults.
// An empty path yields the defaults.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(fmt.Errorf("decode %s: %w", path, err)))
	}
	return cfg, nil
}

// applyFlags overrides the configuration with the flags set on the command line.
func (cfg *config) applyFlags(fs *pflag.FlagSet) error {
	var (
		errs []error
		err  error
	)
	if fs.Changed("strict") {
		cfg.Strict, err = fs.GetBool("strict")
		errs = append(errs, err)
	}
	if fs.Changed("case-sensitive-type") {
		cfg.CaseSensitiveTypes, err = fs.GetStringSlice("case-sensitive-type")
		errs = append(errs, err)
	}
	if fs.Changed("case-ignore-value") {
		cfg.CaseIgnoreValues, err = fs.GetStringSlice("case-ignore-value")
		errs = append(errs, err)
	}
	if fs.Changed("log-format") {
		var s string
		s, err = fs.GetString("log-format")
		cfg.Log.Format = log.Format(s)
		errs = append(errs, err)
	}
	if fs.Changed("log-level") {
		cfg.Log.Level, err = fs.GetString("log-level")
		errs = append(errs, err)
	}
	return errtrace.Wrap(errorutil.JoinPrefix("invalid flags:", errs...))
}

// validate checks every field and reports all problems at once.
func (cfg *config) validate() error {
	var errs []error
	for _, typ := range cfg.CaseSensitiveTypes {
		if !dn.IsAttributeType(typ) {
			errs = append(errs, errorutil.NewInvalidArgumentError("case_sensitive_types: invalid attribute type %q", typ))
		}
	}
	for _, typ := range cfg.CaseIgnoreValues {
		if !dn.IsAttributeType(typ) {
			errs = append(errs, errorutil.NewInvalidArgumentError("case_ignore_values: invalid attribute type %q", typ))
		}
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch log.Format(strings.ToLower(string(cfg.Log.Format))) {
	case log.FormatConsole, log.FormatDev, log.FormatNone:
	default:
		errs = append(errs, errorutil.NewInvalidArgumentError("log.format: unknown format %q", cfg.Log.Format))
	}
	return errtrace.Wrap(errorutil.JoinPrefix("invalid config:", errs...))
}

func (cfg *config) parseOptions() *dn.ParseOptions {
	opts := cfg.ParseOptions
	return &opts
}

func (cfg *config) logger(w io.Writer) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(log.New(w, cfg.Log.Format, lvl))
}
