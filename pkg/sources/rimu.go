package sources

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RimuScans scrapes rimuscans.fr listing pages.
type RimuScans struct{}

const rimuChapterSelector = "li.wp-manga-chapter a, .chapternum"

func (RimuScans) Name() string { return "rimuscans" }

func (RimuScans) Match(rawURL string) bool {
	return strings.Contains(rawURL, "rimuscans.fr")
}

func (RimuScans) CheckURL(rawURL string) (string, error) {
	slug, err := mangaSlug(rawURL)
	if err != nil {
		// Listing URLs on this site are already canonical.
		return rawURL, nil
	}
	return fmt.Sprintf("https://rimuscans.fr/manga/%s/", slug), nil
}

func (RimuScans) LatestChapter(doc *goquery.Document) int {
	return maxChapter(doc, rimuChapterSelector)
}

func (RimuScans) ReadURL(rawURL string, chapter int) string {
	slug, err := mangaSlug(rawURL)
	if err != nil {
		return FallbackReadURL(rawURL, chapter)
	}
	return fmt.Sprintf("https://rimuscans.fr/%s-chapitre-%d/", slug, chapter)
}

func (RimuScans) Extract(doc *goquery.Document) Info {
	return extractInfo(doc, rimuChapterSelector)
}
