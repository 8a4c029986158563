package diff

import (
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/envdiff/config"
)

// Filter selects the keys that participate in a comparison.
//
// A Filter is an expr-lang boolean expression evaluated once per key with
// these variables:
//
//	key       the key
//	first     value in the first document ("" if absent or undefined)
//	second    value in the second document ("" if absent or undefined)
//	inFirst   whether the key is present in the first document
//	inSecond  whether the key is present in the second document
//
// For example:
//
//	key startsWith "DB_" && !(key endsWith "_PASSWORD")
//
// A nil *Filter selects every key.
type Filter struct {
	source  string
	program *vm.Program
}

// filterEnv is the environment a [Filter] expression is evaluated against.
type filterEnv struct {
	Key      string `expr:"key"`
	First    string `expr:"first"`
	Second   string `expr:"second"`
	InFirst  bool   `expr:"inFirst"`
	InSecond bool   `expr:"inSecond"`
}

// CompileFilter compiles source into a [Filter]. An empty (or blank) source
// yields a nil Filter, which selects every key.
func CompileFilter(source string) (*Filter, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, nil //nolint:nilnil
	}

	program, err := expr.Compile(source, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, config.ErrInvalidFilter.Wrap(err).
			With(slog.String("filter", source))
	}

	return &Filter{source: source, program: program}, nil
}

// String returns the source expression of f.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}

	return f.source
}

// Match reports whether key is selected given the two documents.
func (f *Filter) Match(key string, first, second *config.Document) (bool, error) {
	if f == nil {
		return true, nil
	}

	env := filterEnv{
		Key:      key,
		InFirst:  first.Has(key),
		InSecond: second.Has(key),
	}
	env.First, _ = first.Lookup(key)
	env.Second, _ = second.Lookup(key)

	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, config.ErrInvalidFilter.Wrap(err).With(
			slog.String("filter", f.source),
			slog.String("key", key),
		)
	}

	ok, _ := out.(bool)

	return ok, nil
}

// apply returns copies of first and second restricted to the selected keys.
func (f *Filter) apply(
	first, second *config.Document,
) (*config.Document, *config.Document, error) {
	if f == nil {
		return first, second, nil
	}

	keep := make(map[string]bool)

	for _, key := range union(first, second) {
		ok, err := f.Match(key, first, second)
		if err != nil {
			return nil, nil, err
		}

		keep[key] = ok
	}

	return restrict(first, keep), restrict(second, keep), nil
}

func restrict(doc *config.Document, keep map[string]bool) *config.Document {
	var entries []config.Entry

	for _, e := range doc.Entries() {
		if keep[e.Key] {
			entries = append(entries, e)
		}
	}

	return derive(doc, entries)
}

// derive creates a document with the identity of doc and the given entries.
func derive(doc *config.Document, entries []config.Entry) *config.Document {
	out := config.NewDocument(doc.Path, doc.Format, entries...)
	out.Digest = doc.Digest

	return out
}
