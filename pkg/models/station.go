package models

// Station is one gauge entry from the directory page. Name is its identity
// within a single crawl.
type Station struct {
	Name string
	Link string
}
