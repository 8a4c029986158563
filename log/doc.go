// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information, and
// output formats that are applied at logger creation time using functional
// options. A package-level default logger writes diagnostics to standard
// error so that standard output carries only comparison reports.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("comparison finished", slog.Int("differences", 3))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The default logger is reconfigured in place with [Config]:
//
//	log.Config(log.WithFormat(log.FormatText), log.WithPretty(false))
//
// # Levels and Formats
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Two output formats are supported:
// [FormatJSON] and [FormatText]. When pretty printing is enabled, both
// formats are rendered with lipgloss styles; styles degrade to plain text
// when the output is not a terminal.
//
// # Time Formatting
//
// [WithTimeLayout] accepts any named layout of the [time] package (such as
// "RFC3339" or "Kitchen"), a custom layout string, or an empty string to
// omit timestamps entirely.
package log
