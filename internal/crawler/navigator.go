package crawler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pegel-crawler/pkg/models"
)

const (
	// WaterLevelMarker must appear in a station page's text for the station
	// to have live water level reporting.
	WaterLevelMarker = "Wasserstand"

	TableLinkLabel      = "Tabelle"
	MasterDataLinkLabel = "Stammdaten / Lagekarte / Bild"
)

var (
	// ErrNoWaterLevel means the station does not publish water levels and
	// is skipped on purpose.
	ErrNoWaterLevel = errors.New("station does not publish water levels")
	// ErrLinkNotFound means the expected sub-page link is missing.
	ErrLinkNotFound = errors.New("link not found")
)

// PublishesWaterLevel is the free text heuristic that separates water level
// gauges from stations measuring something else. All text of the page counts,
// script content included. It breaks if the page wording changes.
func PublishesWaterLevel(doc *goquery.Document) bool {
	return strings.Contains(doc.Text(), WaterLevelMarker)
}

// Navigator walks from a station's main page to its sub-pages.
type Navigator struct {
	fetcher *Fetcher
}

func NewNavigator(fetcher *Fetcher) *Navigator {
	return &Navigator{fetcher: fetcher}
}

// LocateMeasurementPage returns the URL of the station's table view.
func (n *Navigator) LocateMeasurementPage(ctx context.Context, station models.Station) (string, error) {
	doc, err := n.fetcher.Fetch(ctx, station.Link)
	if err != nil {
		return "", err
	}
	if !PublishesWaterLevel(doc) {
		return "", ErrNoWaterLevel
	}
	link, ok := FindLink(doc, LabelContains(TableLinkLabel), station.Link)
	if !ok {
		return "", fmt.Errorf("%w: %q on %s", ErrLinkNotFound, TableLinkLabel, station.Link)
	}
	return link, nil
}

// LocateMasterDataPage returns the URL of the station's master data page.
// It does not depend on the station measuring water levels.
func (n *Navigator) LocateMasterDataPage(ctx context.Context, station models.Station) (string, error) {
	doc, err := n.fetcher.Fetch(ctx, station.Link)
	if err != nil {
		return "", err
	}
	link, ok := FindLink(doc, LabelContains(MasterDataLinkLabel), station.Link)
	if !ok {
		return "", fmt.Errorf("%w: %q on %s", ErrLinkNotFound, MasterDataLinkLabel, station.Link)
	}
	return link, nil
}
