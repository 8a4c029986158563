package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/envdiff/report"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type outputKey struct{}

// WithOutput returns a new context.Context whose commands write their
// results to w instead of [os.Stdout].
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

// OutputFrom returns the writer stored in ctx by [WithOutput], or
// [os.Stdout] if none was stored.
func OutputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// Output holds the flags shared by every command that renders a report.
type Output struct {
	Format     string `default:"text" enum:"text,json,yaml"    help:"Output format (${enum})."                                                          name:"output" short:"o"`
	Color      string `default:"auto" enum:"auto,always,never" help:"Colorize text output (${enum})."`
	ValueWidth int    `default:"0"                             help:"Maximum display width of each value in text output (0 fits the terminal, -1 disables truncation)."`
}

// reporter returns a [report.Reporter] writing to the output stored in ctx.
func (o Output) reporter(ctx context.Context) *report.Reporter {
	return report.New(OutputFrom(ctx),
		report.WithFormat(report.ParseFormat(o.Format)),
		report.WithColor(report.ParseColorMode(o.Color)),
		report.WithValueWidth(o.ValueWidth),
	)
}
