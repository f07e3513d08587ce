// Package upower converts the human-readable report of the upower command
// (upower -d, upower -i <device-path>) into structured records.
//
// Conversion runs in two stages: Parse turns the indentation- and
// colon-delimited text into one raw record per device/daemon block, with
// every leaf value a string; Normalize rewrites the known fields into typed
// values (booleans, floats, epoch timestamps).
package upower

import (
	"fmt"
	"strings"

	"github.com/powerjson/powerjson/pkg/convert"
)

// Shared field names used across parsing and normalization.
const (
	keyType          = "type"
	keyDeviceName    = "device_name"
	keyDetail        = "detail"
	keyHistoryCharge = "history_charge"
	keyHistoryRate   = "history_rate"
)

// Parse consumes the full report text and returns one raw record per
// device/daemon block, in input order. Blank lines carry no structural
// meaning and are skipped. Lines before the first header are ignored.
func Parse(data string) ([]convert.Record, error) {
	p := &lineParser{records: []convert.Record{}}

	for i, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := p.processLine(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	// the last record is only complete at end of input
	p.flush()
	return p.records, nil
}

// lineParser accumulates records as lines are consumed. current is the one
// record being built; historyKey names the history sequence most recently
// activated on it ("" when no history section is open).
type lineParser struct {
	records    []convert.Record
	current    convert.Record
	historyKey string
}

// processLine classifies one non-blank line by its structural shape.
// Shapes are tested in precedence order; the first match wins.
func (p *lineParser) processLine(line string) error {
	// header lines start a new record and flush the previous one
	if strings.HasPrefix(line, "Device:") || strings.HasPrefix(line, "Daemon:") {
		p.flush()
		if strings.HasPrefix(line, "Device:") {
			name := strings.TrimSpace(strings.SplitN(line, ":", 2)[1])
			p.current = convert.Record{keyType: "Device", keyDeviceName: name}
		} else {
			p.current = convert.Record{keyType: "Daemon"}
		}
		return nil
	}

	if p.current == nil {
		return nil
	}

	hasColon := strings.Contains(line, ":")

	switch {
	// history data row
	case strings.HasPrefix(line, "    ") && !hasColon:
		return p.historyRow(line)

	// detail field line
	case strings.HasPrefix(line, "    ") && hasColon:
		return p.detailField(line)

	// history section header
	case strings.HasPrefix(line, "  History (charge):"):
		p.openHistory(keyHistoryCharge)

	case strings.HasPrefix(line, "  History (rate):"):
		p.openHistory(keyHistoryRate)

	// top-level field line
	case strings.HasPrefix(line, "  ") && hasColon:
		key, val := splitField(line)
		p.current[key] = val

	// detail-type line: establishes the detail mapping that detail field
	// lines require
	case strings.HasPrefix(line, "  ") && !hasColon:
		p.current[keyDetail] = convert.Record{keyType: strings.TrimSpace(line)}
	}

	// anything else carries no structural meaning
	return nil
}

// openHistory activates a history sequence on the current record.
// A section header with zero following rows leaves an empty sequence,
// never an absent field.
func (p *lineParser) openHistory(key string) {
	p.historyKey = key
	p.current[key] = []convert.Record{}
}

func (p *lineParser) historyRow(line string) error {
	if p.historyKey == "" {
		return fmt.Errorf("history row %q outside a history section", strings.TrimSpace(line))
	}

	fields := strings.Fields(line)
	if len(fields) != 3 {
		return fmt.Errorf("malformed history row %q: want 3 fields (time, percent, status), got %d",
			strings.TrimSpace(line), len(fields))
	}

	rows, _ := p.current[p.historyKey].([]convert.Record)
	p.current[p.historyKey] = append(rows, convert.Record{
		"time":            fields[0],
		"percent_charged": fields[1],
		"status":          fields[2],
	})
	return nil
}

func (p *lineParser) detailField(line string) error {
	detail, ok := p.current[keyDetail].(convert.Record)
	if !ok {
		return fmt.Errorf("detail field %q before a detail type line", strings.TrimSpace(line))
	}

	key, val := splitField(line)
	detail[key] = val
	return nil
}

// flush appends the record being built, if any, to the output sequence.
func (p *lineParser) flush() {
	if p.current != nil {
		p.records = append(p.records, p.current)
		p.current = nil
	}
	p.historyKey = ""
}

// splitField splits a "Label: value" line into a normalized field name and
// a trimmed value. Only the first colon delimits; values may contain more.
func splitField(line string) (string, string) {
	parts := strings.SplitN(line, ":", 2)
	return normalizeKey(parts[0]), strings.TrimSpace(parts[1])
}

var keyReplacer = strings.NewReplacer(" ", "_", "-", "_", "(", "", ")", "")

// normalizeKey derives a field name from a raw report label: lowercase,
// spaces and hyphens to underscores, parentheses stripped.
func normalizeKey(label string) string {
	return keyReplacer.Replace(strings.ToLower(strings.TrimSpace(label)))
}
