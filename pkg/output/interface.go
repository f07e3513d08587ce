// Package output provides serialization of converted records.
package output

import (
	"context"
	"fmt"
	"io"

	"github.com/powerjson/powerjson/pkg/convert"
)

// Formatter renders converted records in a specific format.
type Formatter interface {
	// Format renders the records to the given writer.
	Format(ctx context.Context, records []convert.Record, w io.Writer) error

	// Name returns the format name (json, yaml).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Pretty enables indented output where the format supports it.
	Pretty bool
}

// New returns the formatter registered under the given name.
func New(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "json":
		return NewJSONFormatter(opts), nil
	case "yaml":
		return NewYAMLFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use json or yaml)", name)
	}
}
