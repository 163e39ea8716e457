package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FindLink returns the absolute URL of the first anchor, in document order,
// whose trimmed text satisfies matcher. Anchors without href are ignored.
// The boolean is false when nothing matched.
func FindLink(doc *goquery.Document, matcher LabelMatcher, baseURL string) (string, bool) {
	var link string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if !matcher.Match(strings.TrimSpace(a.Text())) {
			return true
		}
		href, _ := a.Attr("href")
		link = resolveURL(baseURL, href)
		return link == ""
	})
	return link, link != ""
}

// Utility to resolve relative URLs (e.g. "/pegel/x" -> "https://site.com/pegel/x")
func resolveURL(base, href string) string {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(u).String()
}
