package output

import (
	"context"
	"encoding/json"
	"io"

	"github.com/powerjson/powerjson/pkg/convert"
)

// JSONFormatter renders records as a JSON array.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the records as JSON. Compact by default; Pretty switches
// to two-space indentation.
func (f *JSONFormatter) Format(_ context.Context, records []convert.Record, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.opts.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(records)
}
