package crawler

import (
	"context"
	"log/slog"

	"pegel-crawler/pkg/models"
)

// MeasurementProcessor implements engine.Processor for water level tables.
type MeasurementProcessor struct {
	Fetcher   *Fetcher
	Navigator *Navigator
	Logger    *slog.Logger
}

// Process follows the station's table link and parses the measurement table.
func (p *MeasurementProcessor) Process(ctx context.Context, station models.Station) ([]models.MeasurementRow, error) {
	link, err := p.Navigator.LocateMeasurementPage(ctx, station)
	if err != nil {
		return nil, err
	}

	doc, err := p.Fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}

	return ParseMeasurementTable(doc, station.Name, p.Logger)
}
