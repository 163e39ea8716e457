package crawler

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pegel-crawler/pkg/models"
)

// ErrTableNotFound means the page has no table of the expected shape.
var ErrTableNotFound = errors.New("table not found")

const (
	dateMarker      = "Datum"
	forecastDivider = "-"
)

// ParseMeasurementTable reads the first table, in document order, that
// mentions both the date and water level headings. Only rows with exactly two
// cells count; the others are dropped without notice. A row whose value cell
// is blank is dropped with a warning, since a measured row always has a value.
// A found table without such rows returns no rows and no error.
func ParseMeasurementTable(doc *goquery.Document, station string, logger *slog.Logger) ([]models.MeasurementRow, error) {
	table := findMeasurementTable(doc)
	if table == nil {
		return nil, ErrTableNotFound
	}

	var rows []models.MeasurementRow
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() != 2 {
			return
		}
		dateTime := strings.TrimSpace(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(1).Text())
		if value == "" {
			logger.Warn("Empty water level value, row dropped", "station", station, "datetime", dateTime)
			return
		}

		row, ok := classifyValue(value)
		if !ok {
			logger.Warn("Malformed forecast value", "station", station, "datetime", dateTime, "value", value)
		}
		row.Station = station
		row.DateTime = dateTime
		rows = append(rows, row)
	})
	return rows, nil
}

func findMeasurementTable(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		text := t.Text()
		if strings.Contains(text, dateMarker) && strings.Contains(text, WaterLevelMarker) {
			found = t
			return false
		}
		return true
	})
	return found
}

// classifyValue turns a value cell into a measured or forecast row. A value
// with a hyphen is a forecast range split at the first hyphen, so "12-34-56"
// gives 12 and 34-56. ok is false for a range with an empty side; the row is
// then a forecast without values.
func classifyValue(value string) (row models.MeasurementRow, ok bool) {
	lower, upper, isRange := strings.Cut(value, forecastDivider)
	if !isRange {
		return models.MeasurementRow{Kind: models.Measured, WaterLevel: value}, true
	}

	lower, upper = strings.TrimSpace(lower), strings.TrimSpace(upper)
	if lower == "" || upper == "" {
		return models.MeasurementRow{Kind: models.Forecast}, false
	}
	return models.MeasurementRow{
		Kind:          models.Forecast,
		ForecastLower: lower,
		ForecastUpper: upper,
	}, true
}
