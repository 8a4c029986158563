// Package cli contains the command line interface for envdiff.
//
// # Usage
//
//	envdiff [flags] [compare] <file1> <file2> [--keys|--values] [flags]
//	envdiff [flags] flatten <file> [flags]
//	envdiff [flags] init [--force]
//	envdiff --version
//
// compare is the default command, so it may be omitted:
//
//	envdiff .env.example .env --keys --suggest
//	envdiff prod.yaml staging.yaml --values --filter 'key startsWith "db."'
//
// # Configuration File
//
// Flag defaults are read from config.yaml (and config.json) in the user
// configuration directory, for example $XDG_CONFIG_HOME/envdiff/config.yaml.
// The init command writes that file from the current flag values. Flags of a
// command are nested under the command name:
//
//	log-level: debug
//	compare:
//	  values: true
//	  color: never
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, none, ...)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// Logging flags are applied before the rest of the command line is parsed,
// so they take effect regardless of their position.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o envdiff .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/envdiff/pprof)
package cli
