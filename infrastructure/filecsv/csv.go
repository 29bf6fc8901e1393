package filecsv

import (
	"strings"

	"channel-insights/domain/model"
)

// DefaultZoneLabel names the time zone of the publish date column
const DefaultZoneLabel = "Cyprus"

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Exporter renders analysis rows as a CSV document.
// The zero value uses DefaultZoneLabel.
type Exporter struct {
	ZoneLabel string
}

// NewExporter returns an exporter whose date column is labelled with zoneLabel
func NewExporter(zoneLabel string) Exporter {
	return Exporter{ZoneLabel: zoneLabel}
}

// Header returns the fixed column names
func (e Exporter) Header() []string {
	label := e.ZoneLabel
	if label == "" {
		label = DefaultZoneLabel
	}
	return []string{
		"Preview",
		"Video URL",
		"Title",
		"Description",
		"Tags",
		"Keywords",
		"Views",
		"Publish Date (" + label + ")",
	}
}

// ToCSV renders the header and one line per row, joined by "\n" with no trailing newline
func (e Exporter) ToCSV(rows []model.AnalysisRow) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(e.Header(), ","))
	for _, row := range rows {
		fields := []string{
			row.Thumbnail,
			row.URL(),
			row.Title,
			row.Description,
			row.Tags,
			row.Keywords,
			row.ViewCount,
			row.PublishedAt,
		}
		for i, field := range fields {
			fields[i] = EscapeField(field)
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

// ToCSV renders rows with the default zone label
func ToCSV(rows []model.AnalysisRow) string {
	return Exporter{}.ToCSV(rows)
}

// EscapeField replaces every line break with a space, then quotes the value
// when it contains a comma or a double quote, doubling inner quotes.
func EscapeField(value string) string {
	value = lineBreaks.Replace(value)
	if strings.ContainsAny(value, `,"`) {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
