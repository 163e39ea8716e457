package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"pegel-crawler/pkg/models"
)

// MasterDataSink implements engine.Sink for saving master data to Postgres.
// The open-ended field set is stored as a jsonb object.
type MasterDataSink struct {
	*Storage
}

func (s *MasterDataSink) Save(batch []models.MasterDataRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO station_master_data (station, fields, crawled_at)
		VALUES ($1, $2, $3)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	crawledAt := time.Now()
	for _, r := range batch {
		fields, err := json.Marshal(r.Fields)
		if err != nil {
			return fmt.Errorf("encode fields of %s: %w", r.Station, err)
		}
		if _, err := stmt.Exec(r.Station, string(fields), crawledAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}
