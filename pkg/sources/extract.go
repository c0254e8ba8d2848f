package sources

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Chapter numbers appear in several formats across sites ("Chapitre 12",
// "Ch. 12.5", a bare trailing number). Patterns are tried in order; the
// first match per element wins.
var chapterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)chapitre\s+(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*$`),
}

// parseChapterNumber extracts a chapter number from one element's text.
func parseChapterNumber(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	for _, re := range chapterPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// maxChapter scans every element matching selector and returns the highest
// chapter number found, truncated to an integer. Absent markup yields 0,
// which callers treat as "no data found" rather than an error.
func maxChapter(doc *goquery.Document, selector string) int {
	max := 0.0
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if n, ok := parseChapterNumber(s.Text()); ok && n > max {
			max = n
		}
	})
	return int(max)
}

// extractInfo scrapes title, cover and chapter count using the WordPress
// manga-theme selectors shared by the supported sites.
func extractInfo(doc *goquery.Document, chapterSelector string) Info {
	info := Info{}

	if title := doc.Find(`h1.entry-title, h1[itemprop="name"]`).First(); title.Length() > 0 {
		info.Title = strings.TrimSpace(title.Text())
	}

	if img := doc.Find("div.summary_image img, img.wp-post-image").First(); img.Length() > 0 {
		if src, ok := img.Attr("src"); ok && strings.HasPrefix(src, "http") {
			info.CoverURL = src
		}
	}

	info.TotalChapters = maxChapter(doc, chapterSelector)

	return info
}

var titleCaser = cases.Title(language.French)

// TitleFromURL guesses a display title from the last path segment of a
// source URL. Best effort only, used to prefill the add form.
func TitleFromURL(rawURL string) string {
	parts := splitPath(pathOf(rawURL))
	if len(parts) == 0 {
		return ""
	}
	slug := parts[len(parts)-1]
	// Prefer the segment after /manga/ when present.
	for i, p := range parts {
		if p == "manga" && i+1 < len(parts) {
			slug = parts[i+1]
			break
		}
	}
	return titleCaser.String(strings.ReplaceAll(slug, "-", " "))
}

func pathOf(rawURL string) string {
	if i := strings.Index(rawURL, "://"); i >= 0 {
		rawURL = rawURL[i+3:]
	}
	if i := strings.Index(rawURL, "/"); i >= 0 {
		return rawURL[i:]
	}
	return ""
}

// FallbackReadURL builds a chapter deep link for sites without a dedicated
// URL scheme, following the common "<base>-chapitre-<n>/" convention.
func FallbackReadURL(baseURL string, chapter int) string {
	if baseURL == "" {
		return ""
	}
	clean := strings.TrimRight(baseURL, "/")
	clean = strings.Replace(clean, "/manga/", "/", 1)
	return clean + "-chapitre-" + strconv.Itoa(chapter) + "/"
}
