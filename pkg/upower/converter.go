package upower

import (
	"strings"

	"github.com/powerjson/powerjson/pkg/convert"
)

func init() {
	convert.MustRegister(Converter{})
}

// Converter adapts this package to the registry contract.
type Converter struct{}

func (Converter) Name() string        { return "upower" }
func (Converter) Description() string { return "upower power-device report" }
func (Converter) Magic() []string     { return []string{"upower"} }
func (Converter) Compatible() []string {
	return []string{"linux"}
}

// Convert parses the report and, unless raw output was requested, applies
// the normalization pass.
func (c Converter) Convert(data string, opts convert.Options) ([]convert.Record, error) {
	convert.Advise(c, opts)

	records, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if opts.Raw {
		return records, nil
	}
	return Normalize(records)
}

// Probe scores how much of the sample looks like an upower report. At
// least one device/daemon header is required for any confidence at all.
func (Converter) Probe(lines []string) float64 {
	headers := 0
	structural := 0

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "Device:"), strings.HasPrefix(line, "Daemon:"):
			headers++
			structural++
		case strings.HasPrefix(line, "    "):
			structural++
		case strings.HasPrefix(line, "  ") && strings.Contains(line, ":"):
			structural++
		}
	}

	if headers == 0 {
		return 0
	}
	return float64(structural) / float64(len(lines))
}
