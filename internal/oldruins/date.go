package oldruins

import (
	"regexp"
	"strconv"
	"time"
)

const (
	shortDateLayout = "Jan 2, 2006"
	longDateLayout  = "January 2, 2006"
	dateOnlyLength  = len("2006-01-02")
)

var dateOnlyRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// timestampLayouts are tried in order for values that are not date-only.
// Layouts without a zone are read in the viewer's location.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// FormatDate formats a publishedAt value as "Jan 2, 2006" in the local zone.
func FormatDate(s string) string {
	return FormatDateIn(s, time.Local)
}

// FormatDateLong formats a publishedAt value as "January 2, 2006" in the local zone.
func FormatDateLong(s string) string {
	return FormatDateLongIn(s, time.Local)
}

// FormatDateLongIn is FormatDateLong as seen from loc.
func FormatDateLongIn(s string, loc *time.Location) string {
	t, ok := ParsePublished(s, loc)
	if !ok {
		return ""
	}
	return t.Format(longDateLayout)
}

// FormatDateIn formats a publishedAt value as seen from loc. Unparseable
// input yields "".
func FormatDateIn(s string, loc *time.Location) string {
	t, ok := ParsePublished(s, loc)
	if !ok {
		return ""
	}
	return t.Format(shortDateLayout)
}

// ParsePublished parses a date-only or timestamp publishedAt value.
//
// A date-only value is built from its year, month and day in loc, so it names
// the same calendar day for every viewer. Timestamps are converted to loc.
func ParsePublished(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	if m := dateOnlyRe.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, loc), true
	}

	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t.In(loc), true
		}
	}

	return time.Time{}, false
}

// truncateDate keeps the calendar-date portion of a publishedAt value.
func truncateDate(s string) string {
	if len(s) > dateOnlyLength {
		return s[:dateOnlyLength]
	}
	return s
}
