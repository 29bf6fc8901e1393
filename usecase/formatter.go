package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"channel-insights/domain/model"
)

const (
	analysisDateLayout = "02.01.2006, 15:04:05"
	gridDateLayout     = "02.01.2006, 15:04"
)

// Formatter renders numbers and timestamps for one locale and time zone
type Formatter struct {
	printer  *message.Printer
	location *time.Location
}

// NewFormatter creates a formatter for a BCP 47 locale (e.g. "uk-UA") and an IANA zone
func NewFormatter(locale, timezone string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", timezone, err)
	}
	return &Formatter{printer: message.NewPrinter(tag), location: location}, nil
}

// Number renders n with the locale's digit grouping
func (f *Formatter) Number(n uint64) string {
	return f.printer.Sprintf("%d", n)
}

// ViewCount renders an analysis view count; absent statistics render as "0"
func (f *Formatter) ViewCount(n *uint64) string {
	if n == nil {
		return "0"
	}
	return f.Number(*n)
}

// AnalysisDate renders an RFC 3339 timestamp as dd.MM.yyyy, HH:mm:ss in the
// formatter's zone, or "N/A" when absent or unparsable
func (f *Formatter) AnalysisDate(value string) string {
	t, ok := parseTimestamp(value)
	if !ok {
		return model.NotAvailable
	}
	return t.In(f.location).Format(analysisDateLayout)
}

// GridDate renders a timestamp as dd.MM.yyyy, HH:mm, or "—" when absent
func (f *Formatter) GridDate(value *string) string {
	if value == nil {
		return model.Placeholder
	}
	t, ok := parseTimestamp(*value)
	if !ok {
		return model.Placeholder
	}
	return t.In(f.location).Format(gridDateLayout)
}

// Compact renders a short view count label: 1,2K, 150K, 3,4M. Counts under
// a thousand use the locale's grouping; zero or absent counts render empty.
func (f *Formatter) Compact(n *uint64) string {
	if n == nil || *n == 0 {
		return ""
	}
	value := *n
	switch {
	case value >= 1_000_000:
		return compactUnit(float64(value)/1_000_000, 1) + "M"
	case value >= 1_000:
		digits := 1
		if value >= 100_000 {
			digits = 0
		}
		return compactUnit(float64(value)/1_000, digits) + "K"
	default:
		return f.Number(value)
	}
}

func compactUnit(value float64, digits int) string {
	s := strconv.FormatFloat(value, 'f', digits, 64)
	s = strings.TrimSuffix(s, ".0")
	return strings.Replace(s, ".", ",", 1)
}

func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
