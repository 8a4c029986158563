// Package diff compares two parsed configuration documents.
//
// Two comparison modes exist. Key comparison ([CompareKeys]) reports keys
// present in one document but not the other. Value comparison
// ([CompareValues]) reports keys defined in both documents whose values
// differ. [Compare] selects one mode, applies the empty-document policy and
// any [Options], and returns a [Result] ready for reporting.
package diff
