package config

import (
	"log/slog"
	"slices"
	"strconv"
)

// Entry is a single key of a [Document].
//
// Defined is false for a key declared without a value, such as a bare
// dotenv KEY line or a YAML null; Value is then empty.
type Entry struct {
	Key     string
	Value   string
	Defined bool
}

// Document is the parsed, flattened representation of one configuration
// file. Keys are case-sensitive and kept in first-appearance order.
//
// A Document is immutable once created.
type Document struct {
	Path   string
	Format Format
	Digest uint64 // xxh3 hash of the raw file content

	entries []Entry
	index   map[string]int
}

// NewDocument creates a [Document] from the given entries.
// A repeated key keeps the position of its first appearance and the value of
// its last.
func NewDocument(path string, format Format, entries ...Entry) *Document {
	doc := &Document{
		Path:    path,
		Format:  format,
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		if i, ok := doc.index[e.Key]; ok {
			doc.entries[i] = e

			continue
		}

		doc.index[e.Key] = len(doc.entries)
		doc.entries = append(doc.entries, e)
	}

	return doc
}

// Len returns the number of keys in d.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}

	return len(d.entries)
}

// IsEmpty reports whether d has no keys.
func (d *Document) IsEmpty() bool { return d.Len() == 0 }

// Keys returns the keys of d in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, d.Len())
	for _, e := range d.Entries() {
		keys = append(keys, e.Key)
	}

	return keys
}

// Entries returns a copy of the entries of d in document order.
func (d *Document) Entries() []Entry {
	if d == nil {
		return nil
	}

	return slices.Clone(d.entries)
}

// Has reports whether key is present in d, defined or not.
func (d *Document) Has(key string) bool {
	_, ok := d.entry(key)

	return ok
}

// Lookup returns the value of key and whether the key is present with a
// defined value.
func (d *Document) Lookup(key string) (string, bool) {
	e, ok := d.entry(key)
	if !ok || !e.Defined {
		return "", false
	}

	return e.Value, true
}

func (d *Document) entry(key string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}

	i, ok := d.index[key]
	if !ok {
		return Entry{}, false
	}

	return d.entries[i], true
}

// LogValue implements slog.LogValuer.
func (d *Document) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("<nil>")
	}

	return slog.GroupValue(
		slog.String("path", d.Path),
		slog.String("format", d.Format.String()),
		slog.Int("keys", d.Len()),
		slog.String("digest", strconv.FormatUint(d.Digest, 16)),
	)
}
