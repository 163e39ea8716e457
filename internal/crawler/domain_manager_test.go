package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pegel-crawler/internal/observability"
)

func TestFetcher_RespectsRobots(t *testing.T) {
	var robotsHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		robotsHits.Add(1)
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /intern/\n"))
	})
	mux.HandleFunc("/pegel/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>Wasserstand</body></html>"))
	})
	mux.HandleFunc("/intern/", func(w http.ResponseWriter, _ *http.Request) {
		t.Error("disallowed path was requested")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(FetcherOptions{UserAgent: "test", RespectRobots: true}, observability.NewMetricsForTesting())

	_, err := f.Fetch(context.Background(), srv.URL+"/pegel/a")
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), srv.URL+"/pegel/b")
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), srv.URL+"/intern/x")
	assert.ErrorIs(t, err, ErrDisallowed)
	assert.Equal(t, int32(1), robotsHits.Load(), "robots.txt is cached per host")
}

func TestFetcher_RobotsRulesSeeQuery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /pegel/tabelle?methode=abfluss\n"))
	})
	mux.HandleFunc("/pegel/tabelle", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("methode") == "abfluss" {
			t.Error("disallowed query was requested")
		}
		_, _ = w.Write([]byte("<html><body>Wasserstand</body></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(FetcherOptions{UserAgent: "test", RespectRobots: true}, observability.NewMetricsForTesting())

	_, err := f.Fetch(context.Background(), srv.URL+"/pegel/tabelle?methode=wasserstand")
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), srv.URL+"/pegel/tabelle?methode=abfluss")
	assert.ErrorIs(t, err, ErrDisallowed)
}

func TestRobotsPath(t *testing.T) {
	assert.Equal(t, "/", robotsPath(mustParseURL(t, "https://www.hnd.bayern.de")))
	assert.Equal(t, "/pegel/tabelle", robotsPath(mustParseURL(t, "https://www.hnd.bayern.de/pegel/tabelle")))
	assert.Equal(t, "/pegel/tabelle?methode=wasserstand", robotsPath(mustParseURL(t, "https://www.hnd.bayern.de/pegel/tabelle?methode=wasserstand")))
}

func TestFetcher_MissingRobotsAllows(t *testing.T) {
	srv := newSite(t, map[string]string{"/pegel/a": "<html></html>"})

	f := NewFetcher(FetcherOptions{UserAgent: "test", RespectRobots: true}, observability.NewMetricsForTesting())
	_, err := f.Fetch(context.Background(), srv.URL+"/pegel/a")
	assert.NoError(t, err)
}

func TestDomainManager_Wait(t *testing.T) {
	u := mustParseURL(t, "https://www.hnd.bayern.de/pegel")
	d := NewDomainManager(nil, "test", 50*time.Millisecond, false)

	start := time.Now()
	require.NoError(t, d.Wait(context.Background(), u))
	require.NoError(t, d.Wait(context.Background(), u))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestDomainManager_WaitUnlimited(t *testing.T) {
	u := mustParseURL(t, "https://www.hnd.bayern.de/pegel")
	d := NewDomainManager(nil, "test", 0, false)

	start := time.Now()
	for i := 0; i < 20; i++ {
		require.NoError(t, d.Wait(context.Background(), u))
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestDomainManager_WaitCancelled(t *testing.T) {
	u := mustParseURL(t, "https://www.hnd.bayern.de/pegel")
	d := NewDomainManager(nil, "test", time.Hour, false)
	require.NoError(t, d.Wait(context.Background(), u))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, d.Wait(ctx, u))
}
