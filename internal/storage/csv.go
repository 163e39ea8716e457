package storage

import (
	"encoding/csv"
	"fmt"
	"os"

	"pegel-crawler/pkg/models"
)

const (
	MeasurementFile = "water_levels.csv"
	MasterDataFile  = "station_master_data.csv"
)

// MeasurementCSV implements engine.Sink by writing water level rows to Path.
type MeasurementCSV struct {
	Path string
}

func (s *MeasurementCSV) Save(batch []models.MeasurementRow) error {
	records := make([][]string, 0, len(batch)+1)
	records = append(records, models.MeasurementColumns)
	for _, row := range batch {
		records = append(records, row.Record())
	}
	return writeCSV(s.Path, records)
}

// MasterDataCSV implements engine.Sink for master data. The columns are the
// union of all labels in the batch, so it needs the complete batch at once.
type MasterDataCSV struct {
	Path string
}

func (s *MasterDataCSV) Save(batch []models.MasterDataRecord) error {
	columns := MasterDataColumns(batch)

	records := make([][]string, 0, len(batch)+1)
	records = append(records, columns)
	for _, r := range batch {
		line := make([]string, len(columns))
		for i, col := range columns {
			line[i], _ = r.Get(col)
		}
		records = append(records, line)
	}
	return writeCSV(s.Path, records)
}

// MasterDataColumns returns Station followed by every other label in the
// order it first appears across records.
func MasterDataColumns(records []models.MasterDataRecord) []string {
	columns := []string{models.StationField}
	seen := map[string]bool{models.StationField: true}
	for _, r := range records {
		for _, label := range r.Labels {
			if seen[label] {
				continue
			}
			seen[label] = true
			columns = append(columns, label)
		}
	}
	return columns
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
