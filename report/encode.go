package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/envdiff/config"
	"github.com/ardnew/envdiff/diff"
)

const indent = 2

// outcome is the machine-readable form of a comparison.
type outcome struct {
	First       string `json:"first"  yaml:"first"`
	Second      string `json:"second" yaml:"second"`
	diff.Result `yaml:",inline"`
}

// documentView is the machine-readable form of a flattened document.
type documentView struct {
	Path    string      `json:"path"    yaml:"path"`
	Format  string      `json:"format"  yaml:"format"`
	Digest  string      `json:"digest"  yaml:"digest"`
	Entries []entryView `json:"entries" yaml:"entries"`
}

type entryView struct {
	Key   string  `json:"key"   yaml:"key"`
	Value *string `json:"value" yaml:"value"` // nil when undefined
}

func makeDocumentView(doc *config.Document) documentView {
	v := documentView{
		Path:    doc.Path,
		Format:  doc.Format.String(),
		Digest:  strconv.FormatUint(doc.Digest, 16),
		Entries: []entryView{},
	}

	for _, e := range doc.Entries() {
		ev := entryView{Key: e.Key}
		if e.Defined {
			ev.Value = &e.Value
		}

		v.Entries = append(v.Entries, ev)
	}

	return v
}

func (r *Reporter) encodeJSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", fmt.Sprintf("%*s", indent, ""))
	enc.SetEscapeHTML(false)

	return enc.Encode(v)
}

func (r *Reporter) encodeYAML(ctx context.Context, v any) error {
	data, err := yaml.MarshalContext(ctx, v, yaml.Indent(indent), yaml.IndentSequence(true))
	if err != nil {
		return err
	}

	_, err = r.w.Write(data)

	return err
}
