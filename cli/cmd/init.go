package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/envdiff/log"
	"github.com/ardnew/envdiff/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a configuration file with current flag values.
//
// Global flags are written with their effective values. Flags of the other
// commands are written with their defaults, nested under the command name.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	data, err := yaml.MarshalWithOptions(
		i.buildConfig(ktx),
		yaml.Indent(defaultConfigIndent),
	)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = i.write(confPath, data)
	if err != nil {
		return err
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	_, err = fmt.Fprintln(OutputFrom(ctx), confPath)

	return err
}

func (i *Init) write(path string, data []byte) error {
	err := os.MkdirAll(filepath.Dir(path), 0o700) //nolint:mnd
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", path)).
			Wrap(err)
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !i.Force {
		flag |= os.O_EXCL
	}

	file, err := os.OpenFile(path, flag, 0o600) //nolint:mnd
	if errors.Is(err, fs.ErrExist) {
		return ErrWriteConfig.
			With(slog.String("file", path)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", path)).
			Wrap(err)
	}

	_, err = file.Write(data)
	if cerr := file.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", path)).
			Wrap(err)
	}

	return nil
}

// buildConfig collects the flag values written to the configuration file.
func (i *Init) buildConfig(ktx *kong.Context) yaml.MapSlice {
	root := flagValues(ktx, ktx.Model.Flags)

	for _, child := range ktx.Model.Children {
		if child.Hidden || child == ktx.Selected() {
			continue
		}

		if sub := flagValues(ktx, child.Flags); len(sub) > 0 {
			root = append(root, yaml.MapItem{Key: child.Name, Value: sub})
		}
	}

	return root
}

// flagValues returns the name and value of each configurable flag, skipping
// flags without a meaningful value.
func flagValues(ktx *kong.Context, flags []*kong.Flag) yaml.MapSlice {
	ignore := []string{"help", "version", profile.Tag}

	var out yaml.MapSlice

	for _, flag := range flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val, ok := flagValue(ktx.FlagValue(flag)); ok {
			out = append(out, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return out
}

func flagValue(val any) (any, bool) {
	switch v := val.(type) {
	case nil:
		return nil, false

	case bool, int, int64, uint, uint64, float64:
		return v, true

	case string:
		return v, v != ""

	case fmt.Stringer:
		return v.String(), v.String() != ""

	default:
		s := fmt.Sprint(v)

		return s, s != ""
	}
}
