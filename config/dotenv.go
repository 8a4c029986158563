package config

import (
	"bytes"
	"context"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/subosito/gotenv"

	"github.com/ardnew/envdiff/log"
)

// bareKey matches a declaration without an assignment: KEY or export KEY.
var bareKey = regexp.MustCompile(`\A(?:export\s+)?([\w.]+)\z`)

var bomUTF8 = []byte("\xEF\xBB\xBF")

// dotenvEntry is one logical assignment, possibly spanning several lines of a
// multi-line quoted value.
type dotenvEntry struct {
	line int // 1-based line number of the first line
	text string
}

// parseDotenv parses dotenv content into entries in first-appearance order.
//
// Each logical entry is handed to gotenv in strict mode so quoting, escapes,
// the export prefix, and inline comments follow conventional dotenv rules.
// Variable references are not expanded: values compare as written.
func parseDotenv(ctx context.Context, data []byte) ([]Entry, error) {
	data = bytes.TrimPrefix(data, bomUTF8)

	if !utf8.Valid(data) {
		return nil, ErrParse.Wrapf("content is not valid UTF-8")
	}

	groups, err := splitDotenv(string(data))
	if err != nil {
		return nil, err
	}

	var (
		entries = make([]Entry, 0, len(groups))
		defined = make(map[string]bool, len(groups))
	)

	skip := func(g dotenvEntry, attrs ...slog.Attr) {
		log.DebugContext(ctx, "skipped dotenv line",
			append([]slog.Attr{
				slog.Int("line", g.line),
				slog.String("text", g.text),
			}, attrs...)...,
		)
	}

	for _, g := range groups {
		if m := bareKey.FindStringSubmatch(g.text); m != nil {
			switch {
			case g.text == "export":
				skip(g)
			case defined[m[1]]:
				// A bare redeclaration does not unset an earlier value.
				skip(g, slog.String("key", m[1]))
			default:
				entries = append(entries, Entry{Key: m[1]})
			}

			continue
		}

		if !strings.ContainsAny(g.text, "=:") {
			skip(g)

			continue
		}

		text, restore := protectBackslashes(g.text)

		env, err := gotenv.StrictParse(strings.NewReader(escapeVars(text)))
		if err != nil {
			skip(g, slog.Any("error", err))

			continue
		}

		for _, k := range slices.Sorted(maps.Keys(env)) {
			entries = append(entries, Entry{Key: k, Value: restore(env[k]), Defined: true})
			defined[k] = true
		}
	}

	return entries, nil
}

// splitDotenv groups the lines of text into logical entries, skipping blank
// lines and comments. A value opening a quote that is not closed on the same
// line continues until a line containing the closing quote.
func splitDotenv(text string) ([]dotenvEntry, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	var out []dotenvEntry

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || line[0] == '#' {
			continue
		}

		entry := dotenvEntry{line: i + 1, text: line}

		if quote := openQuote(line); quote != 0 {
			closed := false

			for i+1 < len(lines) && !closed {
				i++
				entry.text += "\n" + lines[i]
				closed = hasClosingQuote(lines[i], quote)
			}

			if !closed {
				return nil, ErrParse.
					Wrapf("missing closing quote %c", quote).
					With(slog.Int("line", entry.line))
			}
		}

		out = append(out, entry)
	}

	return out, nil
}

// openQuote returns the quote character that opens the value of line without
// a matching close on the same line, or zero.
func openQuote(line string) byte {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		idx = strings.IndexByte(line, ':')
	}

	if idx <= 0 || idx == len(line)-1 {
		return 0
	}

	val := strings.TrimSpace(line[idx+1:])
	if val == "" || (val[0] != '"' && val[0] != '\'') {
		return 0
	}

	if hasClosingQuote(val[1:], val[0]) {
		return 0
	}

	return val[0]
}

// hasClosingQuote reports whether s contains an unescaped quote character.
func hasClosingQuote(s string, quote byte) bool {
	for i := range len(s) {
		if s[i] == quote && !escaped(s, i) {
			return true
		}
	}

	return false
}

// backslashMark stands in for an escaped backslash while gotenv parses a
// double-quoted value.
const backslashMark = "\uFFFF"

// protectBackslashes replaces each escaped backslash pair in a double-quoted
// value with backslashMark. gotenv treats a quote preceded by any backslash
// as escaped, so "C:\\" would otherwise never close. The returned func maps
// the marks in a parsed value back to single backslashes.
func protectBackslashes(entry string) (string, func(string) string) {
	keep := func(v string) string { return v }

	idx := strings.IndexAny(entry, "=:")
	if idx < 0 || !strings.Contains(entry, `\\`) || strings.Contains(entry, backslashMark) {
		return entry, keep
	}

	if val := strings.TrimSpace(entry[idx+1:]); !strings.HasPrefix(val, `"`) {
		return entry, keep
	}

	entry = entry[:idx+1] + strings.ReplaceAll(entry[idx+1:], `\\`, backslashMark)

	return entry, func(v string) string {
		return strings.ReplaceAll(v, backslashMark, `\`)
	}
}

// escapeVars escapes every unescaped '$' in an entry whose value is not
// single-quoted, so that gotenv keeps variable references literal instead of
// expanding them from the process environment.
func escapeVars(entry string) string {
	if !strings.Contains(entry, "$") {
		return entry
	}

	idx := strings.IndexAny(entry, "=:")
	if val := strings.TrimSpace(entry[idx+1:]); strings.HasPrefix(val, "'") {
		return entry
	}

	var sb strings.Builder

	sb.Grow(len(entry) + strings.Count(entry, "$"))

	for i := range len(entry) {
		if entry[i] == '$' && !escaped(entry, i) {
			sb.WriteByte('\\')
		}

		sb.WriteByte(entry[i])
	}

	return sb.String()
}

// escaped reports whether s[i] is preceded by an odd number of consecutive
// backslashes.
func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}

	return n%2 == 1
}
