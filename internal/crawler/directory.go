package crawler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pegel-crawler/pkg/models"
)

// Directory reads the station list from the index page.
type Directory struct {
	fetcher *Fetcher
	url     string
	baseURL string
	logger  *slog.Logger
}

func NewDirectory(fetcher *Fetcher, directoryURL, baseURL string, logger *slog.Logger) *Directory {
	return &Directory{
		fetcher: fetcher,
		url:     directoryURL,
		baseURL: baseURL,
		logger:  logger,
	}
}

// ListStations returns the stations in table order. Failures are logged and
// yield an empty list.
func (d *Directory) ListStations(ctx context.Context) []models.Station {
	d.logger.Info("Fetching station directory", "url", d.url)
	doc, err := d.fetcher.Fetch(ctx, d.url)
	if err != nil {
		d.logger.Error("Could not fetch station directory", "url", d.url, "err", err)
		return nil
	}

	stations, ok := ExtractStations(doc, d.baseURL)
	if !ok {
		d.logger.Error("Could not find the station table on the directory page", "url", d.url)
		return nil
	}
	d.logger.Info("Found stations", "count", len(stations))
	return stations
}

// ExtractStations reads the first table of doc. It relies on document order
// only: if another table is placed before the station list, that table is
// read instead. The boolean is false when doc has no table at all.
func ExtractStations(doc *goquery.Document, baseURL string) ([]models.Station, bool) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, false
	}

	var stations []models.Station
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		anchor := row.Find("td").First().Find("a[href]").First()
		if anchor.Length() == 0 {
			return
		}
		href, _ := anchor.Attr("href")
		link := resolveURL(baseURL, href)
		if link == "" {
			return
		}
		stations = append(stations, models.Station{
			Name: strings.TrimSpace(anchor.Text()),
			Link: link,
		})
	})
	return stations, true
}

// SelectStations keeps the stations whose name exactly equals one of names,
// in directory order. No names keeps everything.
func SelectStations(stations []models.Station, names []string) []models.Station {
	if len(names) == 0 {
		return stations
	}

	matchers := make([]LabelMatcher, 0, len(names))
	for _, name := range names {
		matchers = append(matchers, ExactLabel(strings.TrimSpace(name)))
	}

	var selected []models.Station
	for _, s := range stations {
		for _, m := range matchers {
			if m.Match(s.Name) {
				selected = append(selected, s)
				break
			}
		}
	}
	return selected
}
