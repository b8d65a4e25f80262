package engine

import (
	"strings"
	"time"
)

// Date formats accepted on intake forms. Applications arrive with whatever
// the branch typed in, so parsing is best-effort and callers degrade when
// it fails.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"20060102",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate tries the accepted intake formats in order.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatSwiftDate renders a date as YYYYMMDD for SWIFT fields.
// Unparseable input falls back to the raw string, uppercased, and empty
// input to "NOT SPECIFIED".
func FormatSwiftDate(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "NOT SPECIFIED"
	}
	t, ok := ParseDate(raw)
	if !ok {
		return strings.ToUpper(strings.TrimSpace(raw))
	}
	return t.Format("20060102")
}
