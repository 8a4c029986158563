package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Validate checks that first and second name existing files of a supported
// and common format before either is read.
//
// Both paths are resolved to cleaned absolute paths. The checks run in a
// fixed order and the first failure is returned: existence of first,
// existence of second, type of first, type of second, then format family.
func Validate(first, second string) (string, string, Format, error) {
	a, err := resolve(first)
	if err != nil {
		return "", "", FormatUnknown, err
	}

	b, err := resolve(second)
	if err != nil {
		return "", "", FormatUnknown, err
	}

	fa, err := formatOf(a)
	if err != nil {
		return "", "", FormatUnknown, err
	}

	fb, err := formatOf(b)
	if err != nil {
		return "", "", FormatUnknown, err
	}

	if fa != fb {
		return "", "", FormatUnknown, ErrFormatMismatch.
			Wrapf("%s is %s but %s is %s", a, fa, b, fb).
			With(
				slog.String("first", a),
				slog.String("second", b),
			)
	}

	return a, b, fa, nil
}

// ValidateFile checks that path names an existing file of a supported format.
func ValidateFile(path string) (string, Format, error) {
	p, err := resolve(path)
	if err != nil {
		return "", FormatUnknown, err
	}

	f, err := formatOf(p)
	if err != nil {
		return "", FormatUnknown, err
	}

	return p, f, nil
}

// resolve returns the absolute form of path after confirming it names an
// existing file.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ErrUnknown.Wrap(err).With(slog.String("path", path))
	}

	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrFileNotFound.Wrap(err).With(slog.String("path", abs))
	}

	if err != nil {
		return "", ErrUnknown.Wrap(err).With(slog.String("path", abs))
	}

	if info.IsDir() {
		return "", ErrFileNotFound.
			Wrapf("%s is a directory", abs).
			With(slog.String("path", abs))
	}

	return abs, nil
}

func formatOf(path string) (Format, error) {
	f := FormatOf(path)
	if f == FormatUnknown {
		ext := filepath.Ext(path)

		return f, ErrUnsupportedFileType.
			Wrapf("%s: extension %q is not one of %s",
				path, ext, strings.Join(Extensions(), ", ")).
			With(
				slog.String("path", path),
				slog.String("extension", ext),
			)
	}

	return f, nil
}
