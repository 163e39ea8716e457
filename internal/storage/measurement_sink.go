package storage

import (
	"time"

	"pegel-crawler/pkg/models"
)

// MeasurementSink implements engine.Sink for saving water level rows to Postgres.
type MeasurementSink struct {
	*Storage
}

func (s *MeasurementSink) Save(batch []models.MeasurementRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO water_levels (station, date_time, type, water_level, forecast_lower, forecast_upper, crawled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	crawledAt := time.Now()
	for _, r := range batch {
		if _, err := stmt.Exec(r.Station, r.DateTime, r.Kind.String(), r.WaterLevel, r.ForecastLower, r.ForecastUpper, crawledAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}
