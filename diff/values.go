package diff

import "github.com/ardnew/envdiff/config"

// Change is a key defined in both documents with different values.
type Change struct {
	Key    string `json:"key"    yaml:"key"`
	First  string `json:"first"  yaml:"first"`
	Second string `json:"second" yaml:"second"`
}

// ValueDiff is the result of value comparison.
type ValueDiff struct {
	Changes []Change `json:"changes" yaml:"changes"`
	// Undefined lists keys present in both documents but undefined in at
	// least one. They never appear in Changes.
	Undefined []string `json:"undefined,omitempty" yaml:"undefined,omitempty"`
}

// CompareValues reports keys defined in both first and second whose values
// differ as strings.
//
// Keys are visited in the order of first, followed by keys only in second.
// Keys absent from either document are not value differences.
func CompareValues(first, second *config.Document) ValueDiff {
	vd := ValueDiff{Changes: []Change{}, Undefined: []string{}}

	for _, key := range union(first, second) {
		if !first.Has(key) || !second.Has(key) {
			continue
		}

		a, okA := first.Lookup(key)
		b, okB := second.Lookup(key)

		switch {
		case !okA || !okB:
			vd.Undefined = append(vd.Undefined, key)
		case a != b:
			vd.Changes = append(vd.Changes, Change{Key: key, First: a, Second: b})
		}
	}

	return vd
}

// union returns the keys of first followed by the keys of second not in
// first.
func union(first, second *config.Document) []string {
	keys := first.Keys()

	for _, k := range second.Keys() {
		if !first.Has(k) {
			keys = append(keys, k)
		}
	}

	return keys
}
