// Package log provides logging utilities.
package log

//go:generate go tool errtrace -w .

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"braces.dev/errtrace"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/ldapdn/internal/constraints"
	"github.com/ghettovoice/ldapdn/internal/errorutil"
)

// SensitiveKey is the attribute key whose values are masked by every logger of this package.
// DN text may carry personal data, so raw input should be logged under this key only.
const SensitiveKey = "dn_text"

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.PIIFormatter(SensitiveKey),
)

// Format selects the handler used by [New].
type Format string

const (
	FormatConsole Format = "console"
	FormatDev     Format = "dev"
	FormatNone    Format = "none"
)

// New creates a logger of the given format writing to w.
func New(w io.Writer, format Format, level slog.Level) (*slog.Logger, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatConsole, "":
		return slog.New(newHandler(
			console.NewHandler(w, &console.HandlerOptions{
				AddSource:  level <= slog.LevelDebug,
				Level:      level,
				TimeFormat: time.RFC3339Nano,
			}),
		)), nil
	case FormatDev:
		return slog.New(newHandler(
			devslog.NewHandler(w, &devslog.Options{
				HandlerOptions: &slog.HandlerOptions{
					AddSource: true,
					Level:     level,
				},
				SortKeys:   true,
				TimeFormat: time.RFC3339Nano,
			}),
		)), nil
	case FormatNone:
		return Noop, nil
	default:
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown log format %q", format))
	}
}

// ParseLevel parses a level name like "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	return lvl, nil
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

type stringValue[T constraints.Byteseq] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(string(v.v))
}

// StringValue returns a value logger that formats v as string.
func StringValue[T constraints.Byteseq](v T) slog.LogValuer { return stringValue[T]{v} }

type redactedValue[T constraints.Byteseq] struct {
	v T
}

func (v redactedValue[T]) LogValue() slog.Value {
	if len(v.v) == 0 {
		return slog.StringValue("")
	}
	return slog.StringValue(fmt.Sprintf("<redacted:%d>", len(v.v)))
}

// RedactedValue returns a value logger that hides v, only its length is logged.
func RedactedValue[T constraints.Byteseq](v T) slog.LogValuer { return redactedValue[T]{v} }
