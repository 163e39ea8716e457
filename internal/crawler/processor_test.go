package crawler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pegel-crawler/internal/logging"
	"pegel-crawler/pkg/models"
)

func TestProcessors_EndToEnd(t *testing.T) {
	srv := newSite(t, map[string]string{
		"/pegel/neu-ulm/":           stationPage,
		"/pegel/neu-ulm/tabelle":    measurementPage,
		"/pegel/neu-ulm/stammdaten": masterDataPage,
		"/pegel/abfluss/":           flowOnlyPage,
		"/pegel/abfluss/stammdaten": `<table class="stammdaten"><tr><td>Gewässer:</td><td>Iller</td></tr></table>`,
	})
	fetcher := testFetcher()
	nav := NewNavigator(fetcher)
	ctx := context.Background()

	neuUlm := models.Station{Name: "Neu-Ulm", Link: srv.URL + "/pegel/neu-ulm/"}
	abfluss := models.Station{Name: "Abfluss", Link: srv.URL + "/pegel/abfluss/"}

	measurements := &MeasurementProcessor{Fetcher: fetcher, Navigator: nav, Logger: logging.Discard()}

	rows, err := measurements.Process(ctx, neuUlm)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, models.MeasurementRow{Station: "Neu-Ulm", DateTime: "01.01.2024 08:00", Kind: models.Measured, WaterLevel: "245"}, rows[0])

	rows, err = measurements.Process(ctx, abfluss)
	assert.ErrorIs(t, err, ErrNoWaterLevel)
	assert.Empty(t, rows)

	masterData := &MasterDataProcessor{Fetcher: fetcher, Navigator: nav, TableClass: "stammdaten"}

	records, err := masterData.Process(ctx, abfluss)
	require.NoError(t, err, "a station without water levels still has master data")
	require.Len(t, records, 1)
	assert.Equal(t, "Iller", records[0].Fields["Gewässer"])
	assert.Equal(t, "Abfluss", records[0].Fields["Station"])

	records, err = masterData.Process(ctx, neuUlm)
	require.NoError(t, err)
	assert.Equal(t, "11801008", records[0].Fields["Messstellen-Nr."])
}

func TestMeasurementProcessor_TablePageMissing(t *testing.T) {
	srv := newSite(t, map[string]string{
		"/pegel/neu-ulm/": stationPage,
	})
	fetcher := testFetcher()
	p := &MeasurementProcessor{Fetcher: fetcher, Navigator: NewNavigator(fetcher), Logger: logging.Discard()}

	_, err := p.Process(context.Background(), models.Station{Name: "Neu-Ulm", Link: srv.URL + "/pegel/neu-ulm/"})
	assert.ErrorIs(t, err, ErrFetch)
}
