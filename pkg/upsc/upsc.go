// Package upsc converts the variable dump printed by the NUT upsc command
// (upsc <ups>[@host]) into a structured record.
//
// The grammar is one dotted variable name per line, colon-delimited from
// its value:
//
//	battery.charge: 100
//	ups.status: OL
//
// One record is produced per capture. In normalized mode, values that are
// plain numbers become floats; everything else stays a string.
package upsc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/powerjson/powerjson/pkg/convert"
)

func init() {
	convert.MustRegister(Converter{})
}

var varLine = regexp.MustCompile(`^([a-z][a-z0-9._-]*):\s*(.*)$`)

// Converter adapts this package to the registry contract.
type Converter struct{}

func (Converter) Name() string        { return "upsc" }
func (Converter) Description() string { return "NUT upsc variable dump" }
func (Converter) Magic() []string     { return []string{"upsc"} }
func (Converter) Compatible() []string {
	return []string{"linux", "darwin", "freebsd"}
}

// Convert parses the variable dump. Empty input yields no records; any
// input with at least one variable line yields exactly one.
func (c Converter) Convert(data string, opts convert.Options) ([]convert.Record, error) {
	convert.Advise(c, opts)

	rec := convert.Record{}
	for _, line := range strings.Split(data, "\n") {
		m := varLine.FindStringSubmatch(line)
		if m == nil {
			// upsc prefixes errors and SSL banners; none of those are
			// variables
			continue
		}
		rec[m[1]] = strings.TrimSpace(m[2])
	}

	if len(rec) == 0 {
		return []convert.Record{}, nil
	}
	if !opts.Raw {
		normalizeRecord(rec)
	}
	return []convert.Record{rec}, nil
}

// normalizeRecord converts plain numeric variable values to floats in
// place. NUT reports everything as text; numbers are the only values with
// a firmer type.
func normalizeRecord(rec convert.Record) {
	for key, v := range rec {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			rec[key] = f
		}
	}
}

// Probe scores the fraction of sample lines that look like NUT variable
// assignments. Dotted names are required so flat "key: value" formats from
// other commands don't match.
func (Converter) Probe(lines []string) float64 {
	matched := 0
	for _, line := range lines {
		m := varLine.FindStringSubmatch(line)
		if m != nil && strings.Contains(m[1], ".") {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	return float64(matched) / float64(len(lines))
}
