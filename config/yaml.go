package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// parseYAML parses the first YAML document in data and flattens it into
// entries with dotted keys in document order.
func parseYAML(data []byte) ([]Entry, error) {
	var root any

	if err := yaml.UnmarshalWithOptions(data, &root, yaml.UseOrderedMap()); err != nil {
		return nil, ErrParse.Wrap(err)
	}

	switch m := root.(type) {
	case nil:
		return nil, nil
	case yaml.MapSlice:
		var entries []Entry

		if err := flatten(&entries, map[string]string{}, nil, m); err != nil {
			return nil, err
		}

		return entries, nil
	default:
		return nil, ErrParse.Wrapf("top-level document is %s, not a mapping", kindOf(root))
	}
}

// flatten appends the leaves of m to entries, depth-first in document order.
// Nested mappings extend the key path with '.'; sequences and scalars are
// leaves, and an empty nested mapping is a leaf with value "{}".
//
// seen maps each flattened key to the source path of its leaf. Two leaves
// that flatten to the same key, such as a literal "a.b" and a nested a: {b},
// are a parse error.
func flatten(entries *[]Entry, seen map[string]string, path []string, m yaml.MapSlice) error {
	for _, item := range m {
		sub := append(slices.Clip(path), fmt.Sprint(item.Key))

		if nested, ok := item.Value.(yaml.MapSlice); ok && len(nested) > 0 {
			if err := flatten(entries, seen, sub, nested); err != nil {
				return err
			}

			continue
		}

		key, src := strings.Join(sub, "."), sourcePath(sub)
		if prev, ok := seen[key]; ok {
			return ErrParse.
				Wrapf("key %q is defined by both %s and %s", key, prev, src).
				With(
					slog.String("key", key),
					slog.String("first", prev),
					slog.String("second", src),
				)
		}

		seen[key] = src

		e, err := leaf(key, item.Value)
		if err != nil {
			return err
		}

		*entries = append(*entries, e)
	}

	return nil
}

// sourcePath renders the mapping keys leading to a leaf as a YAML path,
// quoting any key that itself contains a '.'.
func sourcePath(keys []string) string {
	var sb strings.Builder

	sb.WriteString("$")

	for _, k := range keys {
		sb.WriteByte('.')

		if strings.Contains(k, ".") {
			sb.WriteString(strconv.Quote(k))
		} else {
			sb.WriteString(k)
		}
	}

	return sb.String()
}

// leaf converts a scalar, sequence, or empty mapping into an entry.
func leaf(key string, v any) (Entry, error) {
	e := Entry{Key: key, Defined: true}

	switch val := v.(type) {
	case nil:
		e.Defined = false
	case string:
		e.Value = val
	case bool:
		e.Value = strconv.FormatBool(val)
	case int:
		e.Value = strconv.Itoa(val)
	case int64:
		e.Value = strconv.FormatInt(val, 10)
	case uint64:
		e.Value = strconv.FormatUint(val, 10)
	case float64:
		e.Value = strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		e.Value = val.Format(time.RFC3339Nano)
	case []any, yaml.MapSlice:
		b, err := yaml.MarshalWithOptions(val, yaml.Flow(true))
		if err != nil {
			return e, ErrParse.Wrap(err)
		}

		e.Value = strings.TrimSpace(string(b))
	default:
		e.Value = fmt.Sprint(val)
	}

	return e, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case []any:
		return "a sequence"
	default:
		return "a scalar"
	}
}
