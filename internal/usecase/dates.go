package usecase

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"01/2006",
}

// FormatMonthYear renders a stored date as zero-padded MM/YYYY. Missing or
// unparseable input yields "".
func FormatMonthYear(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() <= 0 {
				return ""
			}
			return t.Format("01/2006")
		}
	}
	return ""
}

func formatDatePtr(s *string) string {
	if s == nil {
		return ""
	}
	return FormatMonthYear(*s)
}

// endLabel returns the ongoing label when ongoing, else the formatted date.
func endLabel(ongoing bool, ongoingLabel string, end *string) string {
	if ongoing {
		return ongoingLabel
	}
	return formatDatePtr(end)
}
