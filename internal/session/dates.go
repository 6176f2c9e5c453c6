package session

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthIndex = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	monthDayYearExpr = regexp.MustCompile(`([A-Za-z]{3,9})\s+(\d{1,2}),?\s*(\d{4})`)
	isoDateExpr      = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
)

var genericLayouts = []string{
	time.RFC3339,
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02",
	"1/2/2006",
}

// ParseDate resolves the human-readable date text carried by records.
// Abbreviation dots are stripped first ("Aug." -> "Aug"), then generic
// layouts, a month-name pattern, and an ISO pattern are tried in order.
// The second return is false when nothing matches; such records sort last
// and are excluded from date-range computations.
func ParseDate(s string) (time.Time, bool) {
	n := strings.TrimSpace(strings.ReplaceAll(s, ".", ""))
	if n == "" {
		return time.Time{}, false
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, n); err == nil {
			return t, true
		}
	}

	if m := monthDayYearExpr.FindStringSubmatch(n); m != nil {
		if month, ok := monthIndex[strings.ToLower(m[1][:3])]; ok {
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
		}
	}

	if m := isoDateExpr.FindStringSubmatch(n); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}
