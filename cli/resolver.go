package cli

import (
	"context"
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/envdiff/config"
)

// loadYAML returns a [kong.ConfigurationLoader] that reads flag defaults from
// the YAML configuration file at path.
//
// The file is flattened the same way envdiff flattens compared YAML files,
// so command flags may be given either nested under the command name or as
// dotted keys:
//
//	log-level: debug
//	compare:
//	  values: true
//	  list_delim: ","
//	flatten.output: yaml
//
// Underscores in keys are equivalent to hyphens. Keys with a null value are
// ignored. Command-line flags override config file values.
func loadYAML(ctx context.Context, path string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		doc, err := config.ParseReader(ctx, path, config.FormatYAML, r)
		if err != nil {
			return nil, err
		}

		return makeResolver(doc), nil
	}
}

// resolver implements [kong.Resolver] over a flattened configuration file.
type resolver map[string]string

func makeResolver(doc *config.Document) resolver {
	r := make(resolver, doc.Len())

	for _, e := range doc.Entries() {
		if e.Defined {
			r[flagKey(e.Key)] = e.Value
		}
	}

	return r
}

func flagKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// Validate implements [kong.Resolver].
func (r resolver) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
//
// A flag of a command is looked up under "<command>.<flag>" first, then under
// its bare name. Returning nil lets Kong use the flag's default.
func (r resolver) Resolve(
	_ *kong.Context,
	parent *kong.Path,
	flag *kong.Flag,
) (any, error) {
	name := flagKey(flag.Name)

	if node := parent.Node(); node != nil && node.Type == kong.CommandNode {
		if value, ok := r[flagKey(node.Name)+"."+name]; ok {
			return value, nil
		}
	}

	if value, ok := r[name]; ok {
		return value, nil
	}

	return nil, nil //nolint:nilnil
}
