package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/envdiff/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevelDefault}"  enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"${logFormatDefault}" enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                                      help:"Set timestamp layout (a time package constant name, a Go layout, or none)."`
	Caller     bool      `default:"false"                                        help:"Include caller information."                                                  negatable:""`
	Pretty     bool      `default:"true"                                         help:"Enable colorized pretty printing."                                            negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelDefault":  log.DefaultLevel.String(),
		"logLevelEnum":     strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatDefault": log.DefaultFormat.String(),
		"logFormatEnum":    strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start applies the fully parsed logger configuration, including values
// resolved from the configuration file.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// logValueFlags are the logger flags taking a value, keyed by name without
// the "--log-" prefix.
var logValueFlags = map[string]func(*logConfig, string){
	"level": func(f *logConfig, v string) {
		_ = f.Level.UnmarshalText([]byte(v))
	},
	"format": func(f *logConfig, v string) {
		_ = f.Format.UnmarshalText([]byte(v))
	},
	"time-layout": func(f *logConfig, v string) {
		f.TimeLayout = v
		log.Config(log.WithTimeLayout(v))
	},
}

// logSwitchFlags are the negatable boolean logger flags.
var logSwitchFlags = map[string]func(*logConfig, bool){
	"caller": func(f *logConfig, v bool) {
		f.Caller = v
		log.Config(log.WithCaller(v))
	},
	"pretty": func(f *logConfig, v bool) {
		f.Pretty = v
		log.Config(log.WithPretty(v))
	},
}

// scan performs an early pass over command-line arguments to extract and
// apply logger configuration before Kong begins parsing. This ensures the
// logger is configured properly regardless of flag position on the command
// line, and that errors reported during parsing already use it.
//
// Value flags accept both "--log-level=debug" and "--log-level debug".
// Boolean flags accept "--log-caller", "--log-caller=false" and the negated
// "--no-log-caller". Scanning stops at "--".
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			return
		}

		name, value, assigned := strings.Cut(args[i], "=")

		name, ok := strings.CutPrefix(name, "--")
		if !ok {
			continue
		}

		name, negated := strings.CutPrefix(name, "no-")

		name, ok = strings.CutPrefix(name, "log-")
		if !ok {
			continue
		}

		if set, ok := logValueFlags[name]; ok && !negated {
			if !assigned {
				if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
					continue
				}

				i++
				value = args[i]
			}

			set(f, value)

			continue
		}

		if set, ok := logSwitchFlags[name]; ok {
			enable := true

			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = v
			}

			set(f, enable != negated)
		}
	}
}
