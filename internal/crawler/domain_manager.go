package crawler

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"
)

// DomainManager keeps the crawl polite: one rate limiter and one cached
// robots.txt group per host.
type DomainManager struct {
	mu            sync.Mutex
	limiters      map[string]*rate.Limiter
	robotsCache   map[string]*robotstxt.Group
	http          *resty.Client
	userAgent     string
	interval      time.Duration
	respectRobots bool
}

func NewDomainManager(client *resty.Client, userAgent string, interval time.Duration, respectRobots bool) *DomainManager {
	return &DomainManager{
		limiters:      make(map[string]*rate.Limiter),
		robotsCache:   make(map[string]*robotstxt.Group),
		http:          client,
		userAgent:     userAgent,
		interval:      interval,
		respectRobots: respectRobots,
	}
}

// Wait blocks until the host of u may be requested again.
func (d *DomainManager) Wait(ctx context.Context, u *url.URL) error {
	d.mu.Lock()
	limiter, exists := d.limiters[u.Host]
	if !exists {
		limit := rate.Inf
		if d.interval > 0 {
			limit = rate.Every(d.interval)
		}
		limiter = rate.NewLimiter(limit, 1)
		d.limiters[u.Host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// IsAllowed reports whether robots.txt of the host permits fetching u.
// A missing or unreadable robots.txt allows everything.
func (d *DomainManager) IsAllowed(ctx context.Context, u *url.URL) bool {
	if !d.respectRobots {
		return true
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	group, exists := d.robotsCache[u.Host]
	if !exists {
		group = d.fetchRobots(ctx, u)
		d.robotsCache[u.Host] = group
	}

	if group == nil {
		return true
	}
	return group.Test(robotsPath(u))
}

// robotsPath is the path and query that robots.txt rules are matched against.
func robotsPath(u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path
}

func (d *DomainManager) fetchRobots(ctx context.Context, u *url.URL) *robotstxt.Group {
	res, err := d.http.R().
		SetContext(ctx).
		Get(u.Scheme + "://" + u.Host + "/robots.txt")
	if err != nil || res.StatusCode() != 200 {
		return nil
	}

	data, err := robotstxt.FromBytes(res.Body())
	if err != nil {
		return nil
	}
	return data.FindGroup(d.userAgent)
}
