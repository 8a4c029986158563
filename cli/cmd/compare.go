package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/envdiff/config"
	"github.com/ardnew/envdiff/diff"
	"github.com/ardnew/envdiff/log"
)

// Compare compares two configuration files of the same format.
type Compare struct {
	First  string `arg:"" help:"First configuration file (.env, .yaml or .yml)." name:"file1"`
	Second string `arg:"" help:"Second configuration file, in the same format."   name:"file2"`

	Keys   bool `help:"Report keys missing from either file (default)." short:"k"`
	Values bool `help:"Report keys whose values differ."                short:"v"`

	ShowUndefined bool   `help:"With --values, also list keys that have no value in either file."`
	ListDelim     string `help:"With --values, compare values as lists split on this delimiter; blank and repeated items are ignored."   placeholder:"SEP"`
	Suggest       bool   `help:"With --keys, suggest likely renames between missing keys."`
	Filter        string `help:"Only compare keys for which this expression is true (variables: key, first, second, inFirst, inSecond)." placeholder:"EXPR" short:"f"`

	Output `embed:""`
}

// Run executes the compare command.
func (c *Compare) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	first, second, format, err := config.Validate(c.First, c.Second)
	if err != nil {
		return err
	}

	a, err := config.Parse(ctx, first, format)
	if err != nil {
		return err
	}

	b, err := config.Parse(ctx, second, format)
	if err != nil {
		return err
	}

	opts := diff.Options{
		Mode:          diff.ModeFor(c.Keys, c.Values),
		Filter:        c.Filter,
		ListDelim:     c.ListDelim,
		Suggest:       c.Suggest,
		ShowUndefined: c.ShowUndefined,
	}

	log.DebugContext(ctx, "compare",
		slog.String("first", first),
		slog.String("second", second),
		slog.String("format", format.String()),
		slog.String("mode", opts.Mode.String()),
	)

	res, err := diff.Compare(ctx, a, b, opts)
	if err != nil {
		return err
	}

	err = c.reporter(ctx).Report(ctx, c.First, c.Second, res)
	if err != nil {
		return ErrWriteReport.Wrap(err)
	}

	return nil
}
