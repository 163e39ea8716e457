package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pegel-crawler/pkg/models"
)

// ParseMasterDataTable reads the first table carrying tableClass into a
// record. Two-cell rows become label/value pairs, the label losing any
// trailing colon. A single non-empty cell is a section heading and is kept as
// a label with an empty value. The Station field always holds station.
func ParseMasterDataTable(doc *goquery.Document, station, tableClass string) (models.MasterDataRecord, error) {
	record := models.NewMasterDataRecord(station)

	table := doc.Find("table." + tableClass).First()
	if table.Length() == 0 {
		return record, ErrTableNotFound
	}

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td, th")
		switch cells.Length() {
		case 2:
			label := strings.TrimRight(strings.TrimSpace(cells.Eq(0).Text()), ":")
			record.Set(label, strings.TrimSpace(cells.Eq(1).Text()))
		case 1:
			if label := strings.TrimSpace(cells.Text()); label != "" {
				record.Set(label, "")
			}
		}
	})

	record.Set(models.StationField, station)
	return record, nil
}
