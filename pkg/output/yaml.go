package output

import (
	"context"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/powerjson/powerjson/pkg/convert"
)

// YAMLFormatter renders records as a YAML document.
type YAMLFormatter struct {
	opts FormatOptions
}

// NewYAMLFormatter creates a new YAML formatter with the given options.
func NewYAMLFormatter(opts FormatOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Name returns the format name.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// Format renders the records as YAML. YAML is always indented, so Pretty
// has no effect here.
func (f *YAMLFormatter) Format(_ context.Context, records []convert.Record, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(records); err != nil {
		return err
	}
	return encoder.Close()
}
