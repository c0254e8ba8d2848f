package sources

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Info is the metadata scraped from a title's listing page.
type Info struct {
	Title         string
	CoverURL      string
	TotalChapters int
}

// Site is one supported hosting site. Each implementation owns its markup
// knowledge, so a broken selector on one site cannot affect another.
type Site interface {
	Name() string
	// Match reports whether this site hosts the given URL.
	Match(rawURL string) bool
	// CheckURL builds the canonical listing page to poll for new chapters.
	CheckURL(rawURL string) (string, error)
	// LatestChapter extracts the highest chapter number from a listing
	// page, or 0 when none is found.
	LatestChapter(doc *goquery.Document) int
	// ReadURL builds the deep link for reading a specific chapter.
	ReadURL(rawURL string, chapter int) string
	// Extract scrapes the add-form metadata from a listing page.
	Extract(doc *goquery.Document) Info
}

var registry = []Site{PhenixScans{}, RimuScans{}}

// Lookup returns the site hosting rawURL, if any.
func Lookup(rawURL string) (Site, bool) {
	for _, s := range registry {
		if s.Match(rawURL) {
			return s, true
		}
	}
	return nil, false
}

// Eligible reports whether a source URL belongs to a supported site.
func Eligible(rawURL string) bool {
	_, ok := Lookup(rawURL)
	return ok
}

// mangaSlug pulls the title slug out of a /manga/<slug>/... path.
func mangaSlug(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	parts := splitPath(u.Path)
	if len(parts) < 2 || parts[0] != "manga" {
		return "", fmt.Errorf("no manga slug in %q", rawURL)
	}
	return parts[1], nil
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
