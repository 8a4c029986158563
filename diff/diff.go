package diff

//go:generate go tool stringer --linecomment --type Mode,Empty --output diff_string.go

import (
	"context"
	"log/slog"

	"github.com/ardnew/envdiff/config"
	"github.com/ardnew/envdiff/log"
)

// Mode selects which comparison runs.
type Mode int

const (
	ModeKeys   Mode = iota // keys
	ModeValues             // values
)

// ModeFor returns the mode selected by the keys and values flags.
// Key comparison takes precedence when both are set and is the default when
// neither is.
func ModeFor(keys, values bool) Mode {
	if values && !keys {
		return ModeValues
	}

	return ModeKeys
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Empty records which documents, if any, had no keys.
type Empty int

const (
	EmptyNone   Empty = iota // none
	EmptyBoth                // both
	EmptyFirst               // first
	EmptySecond              // second
)

// MarshalText implements encoding.TextMarshaler.
func (e Empty) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// Options configures [Compare].
type Options struct {
	Mode Mode

	// Filter is an expression evaluated per key; only keys for which it is
	// true are compared. See [CompileFilter].
	Filter string

	// ListDelim, when non-empty, compares values as lists separated by
	// ListDelim, ignoring blank items and surrounding whitespace. Repeated
	// items collapse to their first occurrence, so "a:a:b" equals "a:b".
	ListDelim string

	// Suggest enables fuzzy rename suggestions in key comparison.
	Suggest bool

	// ShowUndefined collects keys present in both documents but undefined in
	// at least one during value comparison.
	ShowUndefined bool
}

// Result is the outcome of one comparison.
//
// When Empty is not [EmptyNone], no comparison ran and both Keys and Values
// are nil. Otherwise exactly one of Keys or Values is set, per Mode.
type Result struct {
	Mode   Mode       `json:"mode"             yaml:"mode"`
	Empty  Empty      `json:"empty"            yaml:"empty"`
	Keys   *KeyDiff   `json:"keys,omitempty"   yaml:"keys,omitempty"`
	Values *ValueDiff `json:"values,omitempty" yaml:"values,omitempty"`
}

// Compare compares first and second according to opts.
//
// If either document has no keys, no comparison runs and the result records
// which documents were empty.
func Compare(
	ctx context.Context,
	first, second *config.Document,
	opts Options,
) (Result, error) {
	res := Result{Mode: opts.Mode, Empty: emptiness(first, second)}

	if res.Empty != EmptyNone {
		log.DebugContext(ctx, "empty document",
			slog.String("empty", res.Empty.String()),
		)

		return res, nil
	}

	filter, err := CompileFilter(opts.Filter)
	if err != nil {
		return res, err
	}

	a, b, err := filter.apply(first, second)
	if err != nil {
		return res, err
	}

	switch opts.Mode {
	case ModeValues:
		if opts.ListDelim != "" {
			a = normalize(a, opts.ListDelim)
			b = normalize(b, opts.ListDelim)
		}

		vd := CompareValues(a, b)
		if !opts.ShowUndefined {
			vd.Undefined = []string{}
		}

		res.Values = &vd

	default:
		kd := CompareKeys(a.Keys(), b.Keys())
		if opts.Suggest {
			kd.Suggestions = suggest(kd.MissingInSecond, kd.MissingInFirst)
		}

		res.Keys = &kd
	}

	log.DebugContext(ctx, "compared documents",
		slog.String("mode", opts.Mode.String()),
		slog.Int("differences", res.Len()),
	)

	return res, nil
}

// Len returns the number of differences in r.
func (r Result) Len() int {
	switch {
	case r.Keys != nil:
		return len(r.Keys.MissingInFirst) + len(r.Keys.MissingInSecond)
	case r.Values != nil:
		return len(r.Values.Changes)
	default:
		return 0
	}
}

func emptiness(first, second *config.Document) Empty {
	switch a, b := first.IsEmpty(), second.IsEmpty(); {
	case a && b:
		return EmptyBoth
	case a:
		return EmptyFirst
	case b:
		return EmptySecond
	default:
		return EmptyNone
	}
}
