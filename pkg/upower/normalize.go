package upower

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/powerjson/powerjson/pkg/convert"
)

// Field names whose yes/no values become booleans.
var (
	topLevelBools = []string{
		"power_supply", "has_history", "has_statistics",
		"on_battery", "lid_is_closed", "lid_is_present",
	}
	detailBools = []string{"online", "present", "rechargeable"}
)

// Normalize rewrites the raw string fields of each record into typed
// values. The input records are not modified; a new sequence of the same
// shape is returned.
//
// Normalize is idempotent: fields already converted are left untouched, so
// running it on its own output is a no-op.
func Normalize(records []convert.Record) ([]convert.Record, error) {
	out := make([]convert.Record, 0, len(records))
	for i, rec := range records {
		typed := cloneRecord(rec)
		if err := normalizeRecord(typed); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, typed)
	}
	return out, nil
}

func normalizeRecord(rec convert.Record) error {
	if err := normalizeUpdated(rec); err != nil {
		return err
	}

	for _, key := range topLevelBools {
		if v, ok := rec[key].(string); ok {
			rec[key] = strings.EqualFold(v, "yes")
		}
	}

	if detail, ok := rec[keyDetail].(convert.Record); ok {
		for _, key := range detailBools {
			if v, ok := detail[key].(string); ok {
				detail[key] = strings.EqualFold(v, "yes")
			}
		}

		if v, ok := detail["warning_level"].(string); ok && v == "none" {
			detail["warning_level"] = nil
		}

		if err := extractUnits(detail); err != nil {
			return err
		}
		if err := convertPercentages(detail); err != nil {
			return err
		}
		stripQuotes(detail)
	}

	for _, key := range []string{keyHistoryCharge, keyHistoryRate} {
		rows, ok := rec[key].([]convert.Record)
		if !ok {
			continue
		}
		typed := make([]convert.Record, 0, len(rows))
		for _, row := range rows {
			entry, err := normalizeHistoryEntry(row)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			typed = append(typed, entry)
		}
		rec[key] = typed
	}

	return nil
}

// extractUnits converts detail values of the form "22.3998 Wh" into a float
// plus a sibling <key>_unit field holding the unit token verbatim. The unit
// fields are collected into a snapshot first and merged in after the scan,
// so the mapping is not grown while it is being iterated.
func extractUnits(detail convert.Record) error {
	units := make(convert.Record)

	for key, v := range detail {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		fields := strings.Fields(s)
		if len(fields) != 2 || !isNumeric(strings.ReplaceAll(fields[0], ".", "")) {
			continue
		}
		f, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return fmt.Errorf("parsing %s value %q: %w", key, s, err)
		}
		detail[key] = f
		units[key+"_unit"] = fields[1]
	}

	for key, v := range units {
		detail[key] = v
	}
	return nil
}

// convertPercentages converts remaining detail strings ending in "%" to
// floats. No unit field is added for percentages.
func convertPercentages(detail convert.Record) error {
	for key, v := range detail {
		s, ok := v.(string)
		if !ok || !strings.HasSuffix(s, "%") {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return fmt.Errorf("parsing %s percentage %q: %w", key, s, err)
		}
		detail[key] = f
	}
	return nil
}

// stripQuotes removes one leading and one trailing single-quote from detail
// strings wrapped in them (e.g. model names the utility quotes).
func stripQuotes(detail convert.Record) {
	for key, v := range detail {
		s, ok := v.(string)
		if ok && len(s) >= 2 && strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") {
			detail[key] = s[1 : len(s)-1]
		}
	}
}

// normalizeHistoryEntry types one history row: time becomes an integer,
// percent_charged a float, status stays a string. Entry order is preserved
// by the caller.
func normalizeHistoryEntry(row convert.Record) (convert.Record, error) {
	out := make(convert.Record, len(row))
	for key, v := range row {
		s, ok := v.(string)
		if !ok {
			out[key] = v
			continue
		}
		switch key {
		case "time":
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing time %q: %w", s, err)
			}
			out[key] = n
		case "percent_charged":
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing percent_charged %q: %w", s, err)
			}
			out[key] = f
		default:
			out[key] = v
		}
	}
	return out, nil
}

// isNumeric reports whether s is non-empty and all ASCII digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// cloneRecord deep-copies a record, including nested detail mappings and
// history sequences.
func cloneRecord(rec convert.Record) convert.Record {
	out := make(convert.Record, len(rec))
	for k, v := range rec {
		switch val := v.(type) {
		case convert.Record:
			out[k] = cloneRecord(val)
		case []convert.Record:
			rows := make([]convert.Record, len(val))
			for i, row := range val {
				rows[i] = cloneRecord(row)
			}
			out[k] = rows
		default:
			out[k] = v
		}
	}
	return out
}
