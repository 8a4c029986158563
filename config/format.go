package config

import (
	"path/filepath"
	"slices"
	"strings"
)

// Format identifies the syntax family of a configuration file.
type Format int

const (
	FormatUnknown Format = iota // unknown
	FormatDotenv                // dotenv
	FormatYAML                  // yaml
)

// extensions maps each supported lower-cased file extension to its format.
//
//nolint:gochecknoglobals
var extensions = map[string]Format{
	".env":  FormatDotenv,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// Extensions returns the supported file extensions in sorted order.
func Extensions() []string {
	ext := make([]string, 0, len(extensions))
	for e := range extensions {
		ext = append(ext, e)
	}

	slices.Sort(ext)

	return ext
}

// FormatOf returns the format implied by the extension of path.
// Matching ignores case, and a file named exactly ".env" is a dotenv file.
func FormatOf(path string) Format {
	return extensions[strings.ToLower(filepath.Ext(path))]
}
