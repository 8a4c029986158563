// Package report renders comparison results and flattened documents.
//
// Three output formats are supported: styled text for terminals ([FormatText]),
// and machine-readable [FormatJSON] and [FormatYAML]. Text output is colored
// with lipgloss when enabled by [ColorMode]; values too wide for their column
// are truncated.
//
// A [Reporter] never modifies the results it renders.
package report
