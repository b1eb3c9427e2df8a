// Package dates parses the date formats printed on Indian bank statements.
package dates

import (
	"strings"
	"time"
)

// ISO is the canonical output layout.
const ISO = "2006-01-02"

type layout struct {
	value     string
	shortYear bool
}

// transactionLayouts are tried in order; the first that parses wins.
var transactionLayouts = []layout{
	{"2/1/06", true},
	{"2/1/2006", false},
	{"2-1-06", true},
	{"2-1-2006", false},
	{"2006-1-2", false},
	{"2006/1/2", false},
}

// statementLayouts cover the month-name forms seen in statement bodies.
var statementLayouts = []layout{
	{"2-Jan-06", true},
	{"2-Jan-2006", false},
	{"2 Jan 06", true},
	{"2 Jan 2006", false},
	{"January 2, 2006", false},
	{"Jan 2, 2006", false},
	{"2 January 2006", false},
}

// Parse reads a transaction date in one of the numeric layouts
// DD/MM/YY, DD/MM/YYYY, DD-MM-YY, DD-MM-YYYY, YYYY-MM-DD, YYYY/MM/DD.
// Two-digit years always land in the 2000s.
func Parse(s string) (time.Time, bool) {
	return parse(strings.TrimSpace(s), transactionLayouts)
}

// ParseAny is Parse extended with month-name layouts such as 23-Nov-25
// and October 25, 2025.
func ParseAny(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, ok := parse(s, transactionLayouts); ok {
		return t, true
	}
	return parse(s, statementLayouts)
}

func parse(s string, layouts []layout) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range layouts {
		t, err := time.Parse(l.value, s)
		if err != nil {
			continue
		}
		if l.shortYear {
			t = time.Date(2000+t.Year()%100, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t, true
	}
	return time.Time{}, false
}
