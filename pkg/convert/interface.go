// Package convert defines the contract shared by all format converters and
// the registry used to dispatch between them.
package convert

// Record is one structured record produced by a converter. Leaf values are
// strings in raw mode; normalized mode rewrites them into typed values
// (bool, float64, int64, nil, nested Record, []Record).
type Record map[string]any

// Options controls a single conversion.
type Options struct {
	// Raw skips the converter's normalization pass, returning all leaf
	// values as strings.
	Raw bool

	// Quiet suppresses the compatibility advisory.
	Quiet bool

	// Advise receives the compatibility advisory message, if any.
	// The host injects this hook; converters never write to stderr
	// themselves. Nil disables the advisory.
	Advise func(msg string)
}

// Converter turns the raw text output of one specific command into
// structured records.
type Converter interface {
	// Name is the registry key (e.g. "upower").
	Name() string

	// Description is a one-line summary for listings.
	Description() string

	// Magic lists the command names whose output this converter handles.
	Magic() []string

	// Compatible lists the GOOS values the source command runs on.
	Compatible() []string

	// Convert parses data and returns the structured records.
	Convert(data string, opts Options) ([]Record, error)
}

// Prober is implemented by converters that can score how likely a sample
// of input lines is to be their format. Used for content-based detection.
type Prober interface {
	// Probe returns a confidence score between 0.0 and 1.0.
	Probe(lines []string) float64
}
