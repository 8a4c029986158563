package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/envdiff/log"
)

// Parse reads the file at path and parses it as the given format.
func Parse(ctx context.Context, path string, format Format) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	return ParseReader(ctx, path, format, f)
}

// ParseReader reads all of r and parses it as the given format.
// The path is recorded in the returned [Document] and in errors.
func ParseReader(
	ctx context.Context,
	path string,
	format Format,
	r io.Reader,
) (*Document, error) {
	// Read-ahead lets the next chunk load while the previous one is copied.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("path", path))
	}

	return ParseBytes(ctx, path, format, data)
}

// ParseBytes parses data as the given format.
func ParseBytes(
	ctx context.Context,
	path string,
	format Format,
	data []byte,
) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrUnknown.Wrap(context.Cause(ctx)).
			With(slog.String("path", path))
	}

	digest := xxh3.Hash(data)

	log.TraceContext(ctx, "read input",
		slog.String("path", path),
		slog.String("format", format.String()),
		slog.Int("bytes", len(data)),
		slog.String("digest", strconv.FormatUint(digest, 16)),
	)

	var (
		entries []Entry
		err     error
	)

	switch format {
	case FormatDotenv:
		entries, err = parseDotenv(ctx, data)
	case FormatYAML:
		entries, err = parseYAML(data)
	default:
		err = ErrUnsupportedFileType.Wrapf("cannot parse format %s", format)
	}

	if err != nil {
		return nil, AsError(err).With(
			slog.String("path", path),
			slog.String("format", format.String()),
		)
	}

	doc := NewDocument(path, format, entries...)
	doc.Digest = digest

	log.DebugContext(ctx, "parsed document", slog.Any("document", doc))

	return doc, nil
}
