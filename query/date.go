package query

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/mcncl/accio/value"
)

// maxEpochMillis bounds the instants a number may denote, ±100,000,000 days
// around the Unix epoch.
const maxEpochMillis = 8.64e15

// Time format patterns, most specific first. Each pattern is paired with the
// layouts tried once it matches.
var datePatterns = []struct {
	re      *regexp.Regexp
	layouts []string
}{
	{ // 2006-01-02T15:04:05.999999999Z07:00
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:\d{2})$`),
		[]string{time.RFC3339Nano, "2006-01-02T15:04Z07:00"},
	},
	{ // ISO 8601 without zone or with a ±hhmm zone
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(:\d{2}(\.\d+)?)?([+-]\d{4})?$`),
		[]string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05.999999999-0700", "2006-01-02T15:04", "2006-01-02T15:04-0700"},
	},
	{ // 2006-01-02, 2006-01, 2006
		regexp.MustCompile(`^\d{4}(-\d{2}(-\d{2})?)?$`),
		[]string{time.DateOnly, "2006-01", "2006"},
	},
	{ // 2006-01-02 15:04:05
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}(:\d{2}(\.\d+)?)?$`),
		[]string{"2006-01-02 15:04:05.999999999", "2006-01-02 15:04"},
	},
	{ // 2006/01/02
		regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`),
		[]string{"2006/1/2"},
	},
}

// Textual layouts that are cheaper to try than to pattern match.
var textLayouts = []string{
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.RFC822,
	time.RFC822Z,
	time.ANSIC,
	time.UnixDate,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// IsDate reports whether v denotes a calendar date-time: a string in one of
// the recognized date formats, or a number of milliseconds since the Unix
// epoch within the representable range.
func IsDate(v value.Value) bool {
	if n, ok := v.AsNumber(); ok {
		return !math.IsNaN(n) && math.Abs(n) <= maxEpochMillis
	}
	s, ok := v.AsString()
	if !ok {
		return false
	}
	_, ok = ParseDate(s)
	return ok
}

// ParseDate parses s as a date-time in one of the recognized formats.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, p := range datePatterns {
		if !p.re.MatchString(s) {
			continue
		}
		for _, layout := range p.layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
