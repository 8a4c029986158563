package diff

// KeyDiff is the result of key comparison.
type KeyDiff struct {
	// MissingInFirst lists keys of the second document absent from the
	// first, in the second document's order.
	MissingInFirst []string `json:"missingInFirst" yaml:"missingInFirst"`
	// MissingInSecond lists keys of the first document absent from the
	// second, in the first document's order.
	MissingInSecond []string `json:"missingInSecond" yaml:"missingInSecond"`
	// Suggestions pairs keys missing from one side with similar keys missing
	// from the other.
	Suggestions []Suggestion `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// CompareKeys reports the keys present in only one of first and second.
// Both result lists preserve the order of the input they were drawn from and
// are never nil.
func CompareKeys(first, second []string) KeyDiff {
	return KeyDiff{
		MissingInFirst:  missing(second, first),
		MissingInSecond: missing(first, second),
	}
}

// missing returns the elements of from absent from in.
func missing(from, in []string) []string {
	set := make(map[string]struct{}, len(in))
	for _, k := range in {
		set[k] = struct{}{}
	}

	out := []string{}

	for _, k := range from {
		if _, ok := set[k]; !ok {
			out = append(out, k)
		}
	}

	return out
}
