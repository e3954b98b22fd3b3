package loader

import (
	"strings"
	"time"

	"github.com/guregu/null/v6"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"20060102",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02T15:04:05Z0700",
	"02-Jan-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate coerces a cell to a date. Values no layout accepts are null.
func ParseDate(s string) null.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return null.TimeFrom(t.UTC())
		}
	}
	return null.Time{}
}
