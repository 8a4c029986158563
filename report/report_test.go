package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/envdiff/config"
	"github.com/ardnew/envdiff/diff"
)

func render(t *testing.T, res diff.Result, opts ...Option) string {
	t.Helper()

	var buf bytes.Buffer

	opts = append([]Option{WithColor(ColorNever)}, opts...)
	require.NoError(t, New(&buf, opts...).Report(t.Context(), "a.env", "b.env", res))

	return buf.String()
}

func TestReportEmpty(t *testing.T) {
	tests := []struct {
		empty diff.Empty
		want  string
	}{
		{diff.EmptyBoth, "both files are empty\n"},
		{diff.EmptyFirst, "a.env is empty\n"},
		{diff.EmptySecond, "b.env is empty\n"},
	}

	for _, tt := range tests {
		t.Run(tt.empty.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, diff.Result{Empty: tt.empty}))
		})
	}
}

func TestReportKeys(t *testing.T) {
	res := diff.Result{Keys: &diff.KeyDiff{
		MissingInFirst:  []string{"BAZ"},
		MissingInSecond: []string{"BAR"},
		Suggestions:     []diff.Suggestion{{First: "BAR", Second: "BAZ"}},
	}}

	want := strings.Join([]string{
		"Keys in a.env missing from b.env:",
		"  1. BAR",
		"Keys in b.env missing from a.env:",
		"  1. BAZ",
		"Possible renames:",
		"  1. BAR → BAZ",
		"",
	}, "\n")

	assert.Equal(t, want, render(t, res))
}

func TestReportNoDifferences(t *testing.T) {
	keys := diff.Result{Keys: &diff.KeyDiff{MissingInFirst: []string{}, MissingInSecond: []string{}}}
	assert.Equal(t, "no key differences between a.env and b.env\n", render(t, keys))

	values := diff.Result{Mode: diff.ModeValues, Values: &diff.ValueDiff{Changes: []diff.Change{}}}
	assert.Equal(t, "no value differences between a.env and b.env\n", render(t, values))
}

func TestReportValues(t *testing.T) {
	res := diff.Result{Mode: diff.ModeValues, Values: &diff.ValueDiff{
		Changes: []diff.Change{
			{Key: "FOO", First: "1", Second: "2"},
			{Key: "LONGER_KEY", First: "", Second: "two\nlines"},
		},
		Undefined: []string{"BARE"},
	}}

	want := strings.Join([]string{
		"Value differences between a.env and b.env:",
		"      KEY         a.env  b.env",
		"  1.  FOO         1      2",
		`  2.  LONGER_KEY  ""     "two\nlines"`,
		"Keys without a value in a.env or b.env:",
		"  1. BARE",
		"",
	}, "\n")

	assert.Equal(t, want, render(t, res))
}

func TestReportValuesTruncated(t *testing.T) {
	res := diff.Result{Mode: diff.ModeValues, Values: &diff.ValueDiff{
		Changes: []diff.Change{{Key: "K", First: "abcdefghij", Second: "0123456789"}},
	}}

	out := render(t, res, WithValueWidth(6))
	assert.Contains(t, out, "abcde…")
	assert.Contains(t, out, "01234…")
	assert.NotContains(t, out, "abcdefghij")

	out = render(t, res, WithValueWidth(-1))
	assert.Contains(t, out, "abcdefghij")
}

func TestReportColor(t *testing.T) {
	var buf bytes.Buffer

	res := diff.Result{Keys: &diff.KeyDiff{MissingInFirst: []string{"X"}, MissingInSecond: []string{}}}
	require.NoError(t, New(&buf, WithColor(ColorAlways)).Report(t.Context(), "a", "b", res))
	assert.Contains(t, buf.String(), "\x1b[")

	assert.NotContains(t, render(t, res), "\x1b[")
}

func TestReportJSON(t *testing.T) {
	res := diff.Result{Mode: diff.ModeValues, Values: &diff.ValueDiff{
		Changes: []diff.Change{{Key: "FOO", First: "1", Second: "2"}},
	}}

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(render(t, res, WithFormat(FormatJSON))), &got))

	assert.Equal(t, map[string]any{
		"first":  "a.env",
		"second": "b.env",
		"mode":   "values",
		"empty":  "none",
		"values": map[string]any{
			"changes": []any{
				map[string]any{"key": "FOO", "first": "1", "second": "2"},
			},
		},
	}, got)
}

func TestReportYAML(t *testing.T) {
	res := diff.Result{Keys: &diff.KeyDiff{MissingInFirst: []string{"BAZ"}, MissingInSecond: []string{}}}

	var got struct {
		First  string `yaml:"first"`
		Second string `yaml:"second"`
		Mode   string `yaml:"mode"`
		Empty  string `yaml:"empty"`
		Keys   struct {
			MissingInFirst  []string `yaml:"missingInFirst"`
			MissingInSecond []string `yaml:"missingInSecond"`
		} `yaml:"keys"`
	}

	require.NoError(t, yaml.Unmarshal([]byte(render(t, res, WithFormat(FormatYAML))), &got))

	assert.Equal(t, "a.env", got.First)
	assert.Equal(t, "b.env", got.Second)
	assert.Equal(t, "keys", got.Mode)
	assert.Equal(t, "none", got.Empty)
	assert.Equal(t, []string{"BAZ"}, got.Keys.MissingInFirst)
	assert.Empty(t, got.Keys.MissingInSecond)
}

func TestReportDoesNotMutate(t *testing.T) {
	kd := &diff.KeyDiff{MissingInFirst: []string{"B", "A"}, MissingInSecond: []string{"C"}}
	res := diff.Result{Keys: kd}

	for _, f := range []Format{FormatText, FormatJSON, FormatYAML} {
		render(t, res, WithFormat(f))
	}

	assert.Equal(t, []string{"B", "A"}, kd.MissingInFirst)
	assert.Equal(t, []string{"C"}, kd.MissingInSecond)
}

func TestDocument(t *testing.T) {
	doc := config.NewDocument("x.env", config.FormatDotenv,
		config.Entry{Key: "A", Value: "1", Defined: true},
		config.Entry{Key: "B", Value: "has space", Defined: true},
		config.Entry{Key: "C"},
	)

	var buf bytes.Buffer
	require.NoError(t, New(&buf, WithColor(ColorNever)).Document(t.Context(), doc))
	assert.Equal(t, "A=1\nB=\"has space\"\nC\n", buf.String())

	buf.Reset()
	require.NoError(t, New(&buf, WithFormat(FormatJSON)).Document(t.Context(), doc))

	var got documentView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "x.env", got.Path)
	assert.Equal(t, "dotenv", got.Format)
	require.Len(t, got.Entries, 3)
	assert.Equal(t, "has space", *got.Entries[1].Value)
	assert.Nil(t, got.Entries[2].Value)

	buf.Reset()
	require.NoError(t, New(&buf, WithColor(ColorNever)).
		Document(t.Context(), config.NewDocument("e.env", config.FormatDotenv)))
	assert.Equal(t, "e.env is empty\n", buf.String())
}

func TestParseNames(t *testing.T) {
	assert.Equal(t, FormatYAML, ParseFormat("yaml"))
	assert.Equal(t, FormatText, ParseFormat("bogus"))
	assert.Equal(t, ColorNever, ParseColorMode("never"))
	assert.Equal(t, ColorAuto, ParseColorMode(""))
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, ColorEnabled(ColorAlways, &buf))
	assert.False(t, ColorEnabled(ColorNever, &buf))
	assert.False(t, ColorEnabled(ColorAuto, &buf))
}
