// Package config validates and parses the configuration files compared by
// envdiff.
//
// Two file formats are supported, identified by file extension:
//
//   - dotenv (".env"): line-oriented KEY=VALUE assignments.
//   - YAML (".yaml", ".yml"): nested mappings, flattened into dotted keys.
//
// Both formats are parsed into a [Document], an immutable ordered mapping
// from key to an optional string value. A key declared without a value is
// present but undefined.
//
// [Validate] checks a pair of paths before anything is read, and [Parse]
// reads one file into a [Document]. All failures are reported as [*Error]
// values carrying a [Kind].
package config
