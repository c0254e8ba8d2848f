package sources

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PhenixScans scrapes phenix-scans.com listing pages.
type PhenixScans struct{}

func (PhenixScans) Name() string { return "phenix-scans" }

func (PhenixScans) Match(rawURL string) bool {
	return strings.Contains(rawURL, "phenix-scans.com")
}

func (PhenixScans) CheckURL(rawURL string) (string, error) {
	slug, err := mangaSlug(rawURL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://phenix-scans.com/manga/%s/", slug), nil
}

func (PhenixScans) LatestChapter(doc *goquery.Document) int {
	return maxChapter(doc, ".project__chapter-heading-title")
}

func (PhenixScans) ReadURL(rawURL string, chapter int) string {
	slug, err := mangaSlug(rawURL)
	if err != nil {
		return FallbackReadURL(rawURL, chapter)
	}
	return fmt.Sprintf("https://phenix-scans.com/manga/%s/chapitre/%d", slug, chapter)
}

func (PhenixScans) Extract(doc *goquery.Document) Info {
	return extractInfo(doc, ".project__chapter-heading-title")
}
