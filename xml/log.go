package xml

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

// Format is a logging output format selectable from the CLI.
type Format string

const (
	FormatJSON    Format = "json"
	FormatLogfmt  Format = "logfmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownLogLevel = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// CreateHandlerWithStrings builds a slog.Handler from the string forms a
// CLI flag set hands back.
func CreateHandlerWithStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	fmtt, err := GetFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return CreateHandler(w, lvl, fmtt), nil
}

// CreateHandler builds the slog.Handler for the given level and format.
func CreateHandler(w io.Writer, lvl slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{AddSource: true, Level: lvl}
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatLogfmt:
		return slog.NewTextHandler(w, opts)
	}
	return nil
}

func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, ErrUnknownLogLevel
}

func GetFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if slices.Contains([]Format{FormatJSON, FormatLogfmt}, f) {
		return f, nil
	}
	return "", ErrUnknownLogFormat
}

// LogConfig holds the --log-level/--log-format flag values for
// cmd/xmlcore, mirroring MacroPower-x/log's Config/RegisterFlags split.
type LogConfig struct {
	Level  string
	Format string
}

// RegisterFlags adds --log-level and --log-format to flags.
func (c *LogConfig) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, "log-level", "info", "log level: error, warn, info, debug")
	flags.StringVar(&c.Format, "log-format", "logfmt", "log format: json, logfmt")
}

// NewHandler builds the slog.Handler described by c, writing to w.
func (c *LogConfig) NewHandler(w io.Writer) (slog.Handler, error) {
	return CreateHandlerWithStrings(w, c.Level, c.Format)
}

// parseLogger wraps a *slog.Logger with a per-parse correlation id
// (spec.md has no notion of this; it's ambient tooling carried from
// MacroPower-x/log's handler construction) so that log lines from
// concurrent parses of the same process can be told apart.
func parseLogger(base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	return base.With(slog.String("parse_id", uuid.NewString()))
}
