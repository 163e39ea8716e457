package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"

	"pegel-crawler/internal/observability"
)

var (
	// ErrFetch marks transport failures: network errors, timeouts and
	// non-success status codes.
	ErrFetch = errors.New("fetch failed")
	// ErrDisallowed is returned when robots.txt forbids the URL.
	ErrDisallowed = errors.New("disallowed by robots.txt")
)

// Fetcher issues single GET requests and parses the response as HTML.
// It never retries.
type Fetcher struct {
	http      *resty.Client
	domainMgr *DomainManager
	metrics   *observability.Metrics
}

type FetcherOptions struct {
	UserAgent string
	Timeout   time.Duration
	// RateLimit is the per-host interval between requests, zero for none.
	RateLimit     time.Duration
	RespectRobots bool
}

func NewFetcher(opts FetcherOptions, metrics *observability.Metrics) *Fetcher {
	client := resty.New()
	client.SetHeader("User-Agent", opts.UserAgent)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &Fetcher{
		http:      client,
		domainMgr: NewDomainManager(client, opts.UserAgent, opts.RateLimit, opts.RespectRobots),
		metrics:   metrics,
	}
}

// Fetch downloads targetURL and returns the parsed document.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*goquery.Document, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url %q: %v", ErrFetch, targetURL, err)
	}

	if !f.domainMgr.IsAllowed(ctx, u) {
		return nil, fmt.Errorf("%w: %s", ErrDisallowed, targetURL)
	}
	if err := f.domainMgr.Wait(ctx, u); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, targetURL, err)
	}

	start := time.Now()
	res, err := f.http.R().
		SetContext(ctx).
		Get(targetURL)
	f.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		f.metrics.FetchFailures.Inc()
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, targetURL, err)
	}
	if !res.IsSuccess() {
		f.metrics.FetchFailures.Inc()
		return nil, fmt.Errorf("%w: %s: unexpected status %s", ErrFetch, targetURL, res.Status())
	}

	root, err := html.Parse(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", targetURL, err)
	}
	doc := goquery.NewDocumentFromNode(root)
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		doc.Url = res.RawResponse.Request.URL
	}
	return doc, nil
}
