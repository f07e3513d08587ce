package upower

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/powerjson/powerjson/pkg/convert"
)

// cLocaleLayout is the %c date shape of the POSIX "C" locale, which is what
// upower prints in most environments.
const cLocaleLayout = time.ANSIC // Mon Jan _2 15:04:05 2006

// ambientLayouts is the fallback set tried when the C-locale parse fails.
// Best-effort coverage of the common non-C environments; parsing with fixed
// layouts keeps this free of process-wide locale state, so concurrent
// callers are safe.
var ambientLayouts = []string{
	time.UnixDate,                  // Mon Jan _2 15:04:05 MST 2006
	"Mon 02 Jan 2006 15:04:05 MST", // en_GB-style date(1) output
}

var parenReplacer = strings.NewReplacer("(", "", ")", "")

// normalizeUpdated rewrites the "updated" field from its raw form
// "Thu Feb  9 18:42:15 2012 (1 seconds ago)" into the bare display string,
// adding updated_seconds_ago (integer) and updated_epoch (UTC epoch
// seconds, nil when the display string cannot be parsed).
//
// The parenthesized suffix is the raw marker: when it is absent the field
// has already been normalized and is left untouched.
func normalizeUpdated(rec convert.Record) error {
	s, ok := rec["updated"].(string)
	if !ok || !strings.Contains(s, "(") {
		return nil
	}

	tokens := strings.Fields(parenReplacer.Replace(s))
	if len(tokens) < 3 {
		return fmt.Errorf("malformed updated timestamp %q", s)
	}

	// the trailing 3 tokens are the "N seconds ago" suffix
	secondsAgo, err := strconv.ParseInt(tokens[len(tokens)-3], 10, 64)
	if err != nil {
		return fmt.Errorf("parsing updated seconds-ago token %q: %w", tokens[len(tokens)-3], err)
	}

	display := strings.Join(tokens[:len(tokens)-3], " ")
	rec["updated"] = display

	// timestamp parse failure is recovered locally: the epoch is null and
	// processing continues
	if epoch, ok := parseUpdated(display); ok {
		rec["updated_epoch"] = epoch
	} else {
		rec["updated_epoch"] = nil
	}
	rec["updated_seconds_ago"] = secondsAgo
	return nil
}

// parseUpdated converts the display timestamp to UTC epoch seconds. The
// string carries no zone, so it is interpreted in the process's local zone,
// matching how the source utility prints it.
func parseUpdated(display string) (int64, bool) {
	if t, err := time.ParseInLocation(cLocaleLayout, display, time.Local); err == nil {
		return t.Unix(), true
	}
	for _, layout := range ambientLayouts {
		if t, err := time.ParseInLocation(layout, display, time.Local); err == nil {
			return t.Unix(), true
		}
	}
	return 0, false
}
