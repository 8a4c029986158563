package diff

import (
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/envdiff/config"
)

// normalize returns a copy of doc with every defined value rewritten as a
// canonical delim-separated list.
func normalize(doc *config.Document, delim string) *config.Document {
	entries := doc.Entries()

	for i, e := range entries {
		if e.Defined {
			entries[i].Value = normalizeList(e.Value, delim)
		}
	}

	return derive(doc, entries)
}

// normalizeList drops blank items and whitespace around items of the
// delim-separated list v, then rebuilds it with mung, which also removes
// repeated items after the first.
func normalizeList(v, delim string) string {
	items := strings.Split(v, delim)
	kept := items[:0]

	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}

	if len(kept) == 0 {
		return ""
	}

	return mung.Make(
		mung.WithSubjectItems(strings.Join(kept, delim)),
		mung.WithDelim(delim),
	).String()
}
