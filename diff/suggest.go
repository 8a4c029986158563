package diff

import "github.com/sahilm/fuzzy"

// Suggestion pairs a key found only in the first document with a similar key
// found only in the second, a likely rename.
type Suggestion struct {
	First  string `json:"first"  yaml:"first"`
	Second string `json:"second" yaml:"second"`
}

// suggest fuzzy-matches keys only in the first document against keys only in
// the second, in both directions, so that a key matches whether it was
// shortened or lengthened. Each key appears in at most one suggestion.
func suggest(onlyFirst, onlySecond []string) []Suggestion {
	var (
		out        []Suggestion
		usedFirst  = make(map[string]bool)
		usedSecond = make(map[string]bool)
	)

	for _, a := range onlyFirst {
		if b := best(a, onlySecond, usedSecond); b != "" {
			usedFirst[a], usedSecond[b] = true, true
			out = append(out, Suggestion{First: a, Second: b})
		}
	}

	for _, b := range onlySecond {
		if usedSecond[b] {
			continue
		}

		if a := best(b, onlyFirst, usedFirst); a != "" {
			usedFirst[a], usedSecond[b] = true, true
			out = append(out, Suggestion{First: a, Second: b})
		}
	}

	return out
}

// best returns the highest-scoring unused candidate matching pattern, or "".
func best(pattern string, candidates []string, used map[string]bool) string {
	for _, m := range fuzzy.Find(pattern, candidates) {
		if !used[m.Str] {
			return m.Str
		}
	}

	return ""
}
