package crawler

import (
	"context"

	"pegel-crawler/pkg/models"
)

// MasterDataProcessor implements engine.Processor for station master data.
type MasterDataProcessor struct {
	Fetcher    *Fetcher
	Navigator  *Navigator
	TableClass string
}

func (p *MasterDataProcessor) Process(ctx context.Context, station models.Station) ([]models.MasterDataRecord, error) {
	link, err := p.Navigator.LocateMasterDataPage(ctx, station)
	if err != nil {
		return nil, err
	}

	doc, err := p.Fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}

	record, err := ParseMasterDataTable(doc, station.Name, p.TableClass)
	if err != nil {
		return nil, err
	}
	return []models.MasterDataRecord{record}, nil
}
