package models

type MeasurementKind int

const (
	Measured MeasurementKind = iota
	Forecast
)

func (k MeasurementKind) String() string {
	switch k {
	case Measured:
		return "measured"
	case Forecast:
		return "forecast"
	default:
		return "unknown"
	}
}

// MeasurementColumns is the header of the measurement output table.
var MeasurementColumns = []string{"Station", "DateTime", "Type", "WaterLevel", "Forecast_Lower", "Forecast_Upper"}

// MeasurementRow is one row of a station's water level table. All values are
// the raw cell text; an empty string means the value is absent.
type MeasurementRow struct {
	Station       string
	DateTime      string
	Kind          MeasurementKind
	WaterLevel    string
	ForecastLower string
	ForecastUpper string
}

// Record returns the row in MeasurementColumns order.
func (r MeasurementRow) Record() []string {
	return []string{r.Station, r.DateTime, r.Kind.String(), r.WaterLevel, r.ForecastLower, r.ForecastUpper}
}
