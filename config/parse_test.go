package config

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
	"pgregory.net/rapid"
)

// entries flattens doc into comparable key/value rows; undefined values
// render as "<undefined>".
func entries(doc *Document) [][2]string {
	var out [][2]string

	for _, e := range doc.Entries() {
		v := e.Value
		if !e.Defined {
			v = "<undefined>"
		}

		out = append(out, [2]string{e.Key, v})
	}

	return out
}

func TestParseDotenv(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][2]string
	}{
		{
			name:  "simple",
			input: "FOO=1\nBAR=2\n",
			want:  [][2]string{{"FOO", "1"}, {"BAR", "2"}},
		},
		{
			name:  "comments and blank lines",
			input: "# header\n\nFOO=1 # trailing\n   \n# BAR=2\n",
			want:  [][2]string{{"FOO", "1"}},
		},
		{
			name:  "quotes",
			input: `A="hello world"` + "\n" + `B='single $KEEP'` + "\n" + `C="esc\nline"`,
			want:  [][2]string{{"A", "hello world"}, {"B", "single $KEEP"}, {"C", "esc\nline"}},
		},
		{
			name:  "export prefix",
			input: "export FOO=bar\n",
			want:  [][2]string{{"FOO", "bar"}},
		},
		{
			name:  "bare keys are undefined",
			input: "FOO\nexport BAR\nBAZ=\n",
			want:  [][2]string{{"FOO", "<undefined>"}, {"BAR", "<undefined>"}, {"BAZ", ""}},
		},
		{
			name:  "variable references are not expanded",
			input: "HOME_DIR=${HOME}/x\nP=\"$PATH\"\n",
			want:  [][2]string{{"HOME_DIR", "${HOME}/x"}, {"P", "$PATH"}},
		},
		{
			name:  "repeated key keeps first position and last value",
			input: "A=1\nB=2\nA=3\n",
			want:  [][2]string{{"A", "3"}, {"B", "2"}},
		},
		{
			name:  "multi-line quoted value",
			input: "CERT=\"line1\nline2\"\nNEXT=ok\n",
			want:  [][2]string{{"CERT", "line1\nline2"}, {"NEXT", "ok"}},
		},
		{
			name:  "variable-only lines are skipped",
			input: "$OTHER\nFOO=1\n",
			want:  [][2]string{{"FOO", "1"}},
		},
		{
			name:  "crlf and bom",
			input: "\xEF\xBB\xBFA=1\r\nB=2\r\n",
			want:  [][2]string{{"A", "1"}, {"B", "2"}},
		},
		{
			name:  "unmatched lines are skipped",
			input: "FOO-BAR=1\nsee http://example.com\nBAD KEY=1\nOK=2\n",
			want:  [][2]string{{"OK", "2"}},
		},
		{
			name:  "escaped backslash before closing quote",
			input: `P="C:\\"` + "\nNEXT=1\n",
			want:  [][2]string{{"P", `C:\`}, {"NEXT", "1"}},
		},
		{
			name:  "escaped quotes inside value",
			input: `Q="say \"hi\""` + "\n",
			want:  [][2]string{{"Q", `say "hi"`}},
		},
		{
			name:  "lone export is skipped",
			input: "export\nA=1\n",
			want:  [][2]string{{"A", "1"}},
		},
		{
			name:  "bare redeclaration keeps value",
			input: "A=1\nA\nB\nB=2\n",
			want:  [][2]string{{"A", "1"}, {"B", "2"}},
		},
		{
			name:  "colon delimiter",
			input: "A: 1\n",
			want:  [][2]string{{"A", "1"}},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseBytes(t.Context(), "a.env", FormatDotenv, []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, entries(doc))
		})
	}
}

func TestParseDotenvErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated quote", "A=\"open\nB=2\n"},
		{"unterminated after escaped backslash", "A=\"x\\\\\\\"\nB=2\n"},
		{"invalid utf-8", "A=\xff\xfe\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes(t.Context(), "a.env", FormatDotenv, []byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParseYAML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][2]string
	}{
		{
			name:  "nested mapping",
			input: "db:\n  host: localhost\n",
			want:  [][2]string{{"db.host", "localhost"}},
		},
		{
			name: "document order and scalars",
			input: "z: 1\n" +
				"a:\n  b:\n    c: true\n  f: 3.5\n" +
				"s: text\n",
			want: [][2]string{{"z", "1"}, {"a.b.c", "true"}, {"a.f", "3.5"}, {"s", "text"}},
		},
		{
			name:  "sequences are leaves",
			input: "list:\n  - a\n  - b\nobjs:\n  - name: x\n",
			want:  [][2]string{{"list", "[a, b]"}, {"objs", "[{name: x}]"}},
		},
		{
			name:  "null is undefined",
			input: "a: ~\nb:\n",
			want:  [][2]string{{"a", "<undefined>"}, {"b", "<undefined>"}},
		},
		{
			name:  "empty nested mapping is a leaf",
			input: "a: {}\n",
			want:  [][2]string{{"a", "{}"}},
		},
		{
			name:  "empty document",
			input: "",
			want:  nil,
		},
		{
			name:  "comment only",
			input: "# nothing\n",
			want:  nil,
		},
		{
			name:  "first document only",
			input: "a: 1\n---\nb: 2\n",
			want:  [][2]string{{"a", "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseBytes(t.Context(), "a.yaml", FormatYAML, []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, entries(doc))
		})
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", "a: [1, 2\n"},
		{"scalar root", "just a string\n"},
		{"sequence root", "- a\n- b\n"},
		{"dotted key collides with nested path", "a.b: 1\na:\n  b: 2\n"},
		{"nested path collides with dotted key", "a:\n  b: 2\na.b: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes(t.Context(), "a.yaml", FormatYAML, []byte(tt.input))
			require.Error(t, err)
			assert.Equal(t, KindParse, KindOf(err), err.Error())
		})
	}
}

func TestParseYAMLCollisionNamesBothSources(t *testing.T) {
	_, err := ParseBytes(t.Context(), "a.yaml", FormatYAML, []byte("a.b: 1\na:\n  b: 2\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), `$."a.b"`)
	assert.Contains(t, err.Error(), `$.a.b`)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.env")
	content := []byte("FOO=1\nBAR=2\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	doc, err := Parse(t.Context(), path, FormatDotenv)
	require.NoError(t, err)

	assert.Equal(t, path, doc.Path)
	assert.Equal(t, FormatDotenv, doc.Format)
	assert.Equal(t, xxh3.Hash(content), doc.Digest)
	assert.Equal(t, []string{"FOO", "BAR"}, doc.Keys())
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(t.Context(), filepath.Join(t.TempDir(), "gone.env"), FormatDotenv)
	require.Error(t, err)
	assert.Equal(t, KindUnknown, KindOf(err))
	assert.ErrorIs(t, err, ErrReadInput)
}

func TestParseReaderFailure(t *testing.T) {
	r := iotest.ErrReader(assert.AnError)

	_, err := ParseReader(t.Context(), "a.env", FormatDotenv, r)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestParseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := ParseBytes(ctx, "a.env", FormatDotenv, []byte("A=1"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := ParseBytes(t.Context(), "a.txt", FormatUnknown, nil)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestParseDotenvRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOfNDistinct(
			rapid.StringMatching(`[A-Z][A-Z0-9_]{0,8}`), 0, 12, rapid.ID[string],
		).Draw(t, "keys")

		var (
			sb   strings.Builder
			want [][2]string
		)

		for _, k := range keys {
			v := rapid.StringMatching(`[a-z0-9./-]{0,12}`).Draw(t, k)
			sb.WriteString(k + "=" + v + "\n")
			want = append(want, [2]string{k, v})
		}

		doc, err := ParseBytes(context.Background(), "p.env", FormatDotenv, []byte(sb.String()))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}

		assert.Equal(t, want, entries(doc))
	})
}

// yamlTree draws a random mapping up to depth levels deep and appends the
// flattened row each leaf should produce to want.
func yamlTree(t *rapid.T, depth int, path []string, want *[][2]string) yaml.MapSlice {
	keys := rapid.SliceOfNDistinct(
		rapid.StringMatching(`k[a-z0-9]{0,3}`), 0, 4, rapid.ID[string],
	).Draw(t, "keys")

	m := make(yaml.MapSlice, 0, len(keys))

	for _, k := range keys {
		sub := append(slices.Clip(path), k)
		key := strings.Join(sub, ".")

		kinds := 4
		if depth > 0 {
			kinds = 5
		}

		var v any

		switch rapid.IntRange(0, kinds-1).Draw(t, key) {
		case 0:
			s := rapid.StringMatching(`v[a-z0-9]{0,5}`).Draw(t, key+"=")
			v = s
			*want = append(*want, [2]string{key, s})
		case 1:
			n := rapid.IntRange(0, 1000).Draw(t, key+"=")
			v = n
			*want = append(*want, [2]string{key, strconv.Itoa(n)})
		case 2:
			*want = append(*want, [2]string{key, "<undefined>"})
		case 3:
			items := rapid.SliceOfN(rapid.StringMatching(`v[a-z0-9]{0,3}`), 1, 3).Draw(t, key+"[]")
			v = items
			*want = append(*want, [2]string{key, "[" + strings.Join(items, ", ") + "]"})
		default:
			nested := yamlTree(t, depth-1, sub, want)
			if len(nested) == 0 {
				*want = append(*want, [2]string{key, "{}"})
			}

			v = nested
		}

		m = append(m, yaml.MapItem{Key: k, Value: v})
	}

	return m
}

func TestParseYAMLFlattenIsOneToOne(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var want [][2]string

		tree := yamlTree(t, 3, nil, &want)

		data, err := yaml.Marshal(tree)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		doc, err := ParseBytes(context.Background(), "p.yaml", FormatYAML, data)
		if err != nil {
			t.Fatalf("parse %q: %v", data, err)
		}

		// Every leaf appears under exactly one key, in document order.
		assert.Equal(t, want, entries(doc), string(data))
		assert.Equal(t, len(want), doc.Len())
	})
}

func TestParseDotenvDeterministic(t *testing.T) {
	line := rapid.OneOf(
		rapid.StringMatching(`[A-Z_][A-Z0-9_]{0,6}=[a-z0-9 $#{}./-]{0,10}`),
		rapid.StringMatching(`(export )?[A-Z][A-Z0-9_]{0,6}`),
		rapid.StringMatching(`[A-Z]{1,4}="[a-z \\$]{0,6}"`),
		rapid.StringMatching(`[A-Za-z:=# '"-]{0,12}`),
	)

	rapid.Check(t, func(t *rapid.T) {
		data := []byte(strings.Join(rapid.SliceOfN(line, 0, 10).Draw(t, "lines"), "\n"))

		a, errA := ParseBytes(context.Background(), "p.env", FormatDotenv, data)
		b, errB := ParseBytes(context.Background(), "p.env", FormatDotenv, data)

		assert.Equal(t, errA == nil, errB == nil, string(data))

		if errA == nil {
			assert.Equal(t, entries(a), entries(b), string(data))
		}
	})
}
