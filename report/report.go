package report

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ardnew/envdiff/config"
	"github.com/ardnew/envdiff/diff"
	"github.com/ardnew/envdiff/log"
)

// Reporter writes comparison results to an output stream.
type Reporter struct {
	w          io.Writer
	format     Format
	color      ColorMode
	valueWidth int
	termWidth  int
	style      styles
}

// styles holds the lipgloss styles of text output, bound to the renderer of
// the output stream.
type styles struct {
	plain, heading, label, key, first, second, index, muted lipgloss.Style
}

// New creates a [Reporter] writing to w. The default configuration renders
// text, with colors enabled when w is a terminal.
func New(w io.Writer, opts ...Option) *Reporter {
	r := &Reporter{w: w}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	rend := lipgloss.NewRenderer(w)
	if ColorEnabled(r.color, w) {
		rend.SetColorProfile(termenv.ANSI)
	} else {
		rend.SetColorProfile(termenv.Ascii)
	}

	fg := func(c string) lipgloss.Style {
		return rend.NewStyle().Foreground(lipgloss.Color(c))
	}

	r.style = styles{
		plain:   rend.NewStyle(),
		heading: rend.NewStyle().Bold(true),
		label:   fg("4").Bold(true),
		key:     fg("6"),
		first:   fg("1"),
		second:  fg("2"),
		index:   fg("8"),
		muted:   fg("8").Italic(true),
	}

	r.termWidth = terminalWidth(w)

	return r
}

// Format returns the output format of r.
func (r *Reporter) Format() Format { return r.format }

// Report writes the outcome of comparing the files labeled first and second.
func (r *Reporter) Report(
	ctx context.Context,
	first, second string,
	res diff.Result,
) error {
	log.TraceContext(ctx, "report",
		slog.String("format", r.format.String()),
		slog.String("mode", res.Mode.String()),
		slog.String("empty", res.Empty.String()),
	)

	switch r.format {
	case FormatJSON:
		return r.encodeJSON(outcome{First: first, Second: second, Result: res})
	case FormatYAML:
		return r.encodeYAML(ctx, outcome{First: first, Second: second, Result: res})
	default:
		return r.writeText(r.textResult(first, second, res))
	}
}

// Document writes the flattened key/value view of doc.
func (r *Reporter) Document(ctx context.Context, doc *config.Document) error {
	switch r.format {
	case FormatJSON:
		return r.encodeJSON(makeDocumentView(doc))
	case FormatYAML:
		return r.encodeYAML(ctx, makeDocumentView(doc))
	default:
		return r.writeText(r.textDocument(doc))
	}
}

func (r *Reporter) writeText(text string) error {
	_, err := io.WriteString(r.w, text)

	return err
}
