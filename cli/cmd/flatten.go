package cmd

import (
	"context"

	"github.com/ardnew/envdiff/config"
)

// Flatten prints the flat key/value view of a single configuration file,
// exactly as the compare command sees it.
type Flatten struct {
	File string `arg:"" help:"Configuration file (.env, .yaml or .yml)."`

	Output `embed:""`
}

// Run executes the flatten command.
func (f *Flatten) Run(ctx context.Context) error {
	path, format, err := config.ValidateFile(f.File)
	if err != nil {
		return err
	}

	doc, err := config.Parse(ctx, path, format)
	if err != nil {
		return err
	}

	err = f.reporter(ctx).Document(ctx, doc)
	if err != nil {
		return ErrWriteReport.Wrap(err)
	}

	return nil
}
