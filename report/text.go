package report

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ardnew/envdiff/config"
	"github.com/ardnew/envdiff/diff"
)

const (
	margin   = "  "
	gap      = "  "
	ellipsis = "…"

	// minValueWidth bounds the value columns when fitting a table to the
	// terminal.
	minValueWidth = 8
)

func (r *Reporter) textResult(first, second string, res diff.Result) string {
	var b strings.Builder

	switch res.Empty {
	case diff.EmptyBoth:
		r.line(&b, r.style.muted.Render("both files are empty"))
	case diff.EmptyFirst:
		r.line(&b, r.style.label.Render(first)+r.style.muted.Render(" is empty"))
	case diff.EmptySecond:
		r.line(&b, r.style.label.Render(second)+r.style.muted.Render(" is empty"))
	}

	if res.Keys != nil {
		r.textKeys(&b, first, second, res.Keys)
	}

	if res.Values != nil {
		r.textValues(&b, first, second, res.Values)
	}

	return b.String()
}

func (r *Reporter) textKeys(b *strings.Builder, first, second string, kd *diff.KeyDiff) {
	if len(kd.MissingInFirst) == 0 && len(kd.MissingInSecond) == 0 {
		r.noDifferences(b, "key", first, second)

		return
	}

	if len(kd.MissingInSecond) > 0 {
		r.heading(b, "Keys in ", first, " missing from ", second)
		r.list(b, kd.MissingInSecond, r.style.first)
	}

	if len(kd.MissingInFirst) > 0 {
		r.heading(b, "Keys in ", second, " missing from ", first)
		r.list(b, kd.MissingInFirst, r.style.second)
	}

	if len(kd.Suggestions) > 0 {
		r.heading(b, "Possible renames")

		items := make([]string, len(kd.Suggestions))
		for i, s := range kd.Suggestions {
			items[i] = r.style.first.Render(s.First) + " → " + r.style.second.Render(s.Second)
		}

		r.list(b, items, r.style.plain)
	}
}

func (r *Reporter) textValues(b *strings.Builder, first, second string, vd *diff.ValueDiff) {
	if len(vd.Changes) == 0 {
		r.noDifferences(b, "value", first, second)
	} else {
		r.heading(b, "Value differences between ", first, " and ", second)
		r.table(b, first, second, vd.Changes)
	}

	if len(vd.Undefined) > 0 {
		r.heading(b, "Keys without a value in ", first, " or ", second)
		r.list(b, vd.Undefined, r.style.key)
	}
}

// table writes changes as aligned columns: index, key, first value, second
// value.
func (r *Reporter) table(b *strings.Builder, first, second string, changes []diff.Change) {
	idxW := len(strconv.Itoa(len(changes))) + 1
	keyW := runewidth.StringWidth("KEY")

	for _, c := range changes {
		keyW = max(keyW, runewidth.StringWidth(c.Key))
	}

	limit := r.valueLimit(idxW + keyW)

	rows := make([][2]string, len(changes))
	firstW := runewidth.StringWidth(truncate(first, limit))
	secondW := runewidth.StringWidth(truncate(second, limit))

	for i, c := range changes {
		rows[i] = [2]string{
			truncate(displayValue(c.First), limit),
			truncate(displayValue(c.Second), limit),
		}
		firstW = max(firstW, runewidth.StringWidth(rows[i][0]))
		secondW = max(secondW, runewidth.StringWidth(rows[i][1]))
	}

	r.line(b, strings.TrimRight(margin+
		pad("", idxW)+gap+
		pad(r.style.heading.Render("KEY"), keyW)+gap+
		pad(r.style.label.Render(truncate(first, limit)), firstW)+gap+
		r.style.label.Render(truncate(second, limit)), " "))

	for i, c := range changes {
		r.line(b, margin+
			pad(r.style.index.Render(strconv.Itoa(i+1)+"."), idxW)+gap+
			pad(r.style.key.Render(c.Key), keyW)+gap+
			pad(r.style.first.Render(rows[i][0]), firstW)+gap+
			r.style.second.Render(rows[i][1]))
	}
}

// valueLimit returns the display width available to each value column, or
// zero for unlimited.
func (r *Reporter) valueLimit(used int) int {
	switch {
	case r.valueWidth < 0:
		return 0
	case r.termWidth == 0:
		return r.valueWidth
	}

	avail := r.termWidth - len(margin) - 3*len(gap) - used

	fit := max(minValueWidth, avail/2) //nolint:mnd
	if r.valueWidth > 0 {
		return min(fit, r.valueWidth)
	}

	return fit
}

func (r *Reporter) textDocument(doc *config.Document) string {
	var b strings.Builder

	if doc.IsEmpty() {
		r.line(&b, r.style.label.Render(doc.Path)+r.style.muted.Render(" is empty"))

		return b.String()
	}

	for _, e := range doc.Entries() {
		if !e.Defined {
			r.line(&b, r.style.key.Render(e.Key))

			continue
		}

		r.line(&b, r.style.key.Render(e.Key)+"="+quoteValue(e.Value))
	}

	return b.String()
}

func (r *Reporter) heading(b *strings.Builder, parts ...string) {
	var sb strings.Builder

	// Odd-indexed parts are file labels.
	for i, p := range parts {
		if i%2 == 1 {
			sb.WriteString(r.style.label.Render(p))
		} else {
			sb.WriteString(r.style.heading.Render(p))
		}
	}

	r.line(b, sb.String()+r.style.heading.Render(":"))
}

func (r *Reporter) list(b *strings.Builder, items []string, style lipgloss.Style) {
	w := len(strconv.Itoa(len(items))) + 1

	for i, item := range items {
		r.line(b, margin+
			pad(r.style.index.Render(strconv.Itoa(i+1)+"."), w)+" "+
			style.Render(item))
	}
}

func (r *Reporter) noDifferences(b *strings.Builder, kind, first, second string) {
	r.line(b, r.style.muted.Render("no "+kind+" differences between ")+
		r.style.label.Render(first)+
		r.style.muted.Render(" and ")+
		r.style.label.Render(second))
}

func (r *Reporter) line(b *strings.Builder, s string) {
	b.WriteString(s)
	b.WriteByte('\n')
}

// pad right-pads the rendered string s with spaces to display width w.
func pad(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}

	return s
}

// truncate shortens s to display width limit, marking the cut with an
// ellipsis. A zero limit leaves s unchanged.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}

	return runewidth.Truncate(s, limit, ellipsis)
}

// displayValue renders v on one line with control characters escaped and the
// empty string made visible.
func displayValue(v string) string {
	if v == "" {
		return `""`
	}

	q := strconv.Quote(v)
	if q[1:len(q)-1] == v {
		return v
	}

	return q
}

// quoteValue quotes v for KEY=VALUE output when it would not read back as
// written.
func quoteValue(v string) string {
	if v == "" || strings.ContainsAny(v, " \t\n\r#'\"\\$") {
		return strconv.Quote(v)
	}

	return v
}
