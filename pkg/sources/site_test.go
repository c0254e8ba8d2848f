package sources

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestLookup(t *testing.T) {
	site, ok := Lookup("https://phenix-scans.com/manga/solo-leveling/chapitre/12")
	require.True(t, ok)
	assert.Equal(t, "phenix-scans", site.Name())

	site, ok = Lookup("https://rimuscans.fr/manga/arcane-sniper/")
	require.True(t, ok)
	assert.Equal(t, "rimuscans", site.Name())

	_, ok = Lookup("https://example.com/manga/whatever/")
	assert.False(t, ok)

	assert.False(t, Eligible(""))
}

func TestPhenixCheckURL(t *testing.T) {
	got, err := PhenixScans{}.CheckURL("https://phenix-scans.com/manga/solo-leveling/chapitre/42")
	require.NoError(t, err)
	assert.Equal(t, "https://phenix-scans.com/manga/solo-leveling/", got)

	_, err = PhenixScans{}.CheckURL("https://phenix-scans.com/about")
	assert.Error(t, err)
}

func TestPhenixLatestChapter(t *testing.T) {
	doc := docFromHTML(t, `
		<div>
			<h2 class="project__chapter-heading-title">Chapitre 113</h2>
			<h2 class="project__chapter-heading-title">Chapitre 112</h2>
			<h2 class="project__chapter-heading-title">Chapitre 111</h2>
		</div>`)

	assert.Equal(t, 113, PhenixScans{}.LatestChapter(doc))
}

func TestPhenixLatestChapterAbsentMarkup(t *testing.T) {
	doc := docFromHTML(t, `<div><p>maintenance</p></div>`)

	assert.Equal(t, 0, PhenixScans{}.LatestChapter(doc), "missing markup means no data, not an error")
}

func TestPhenixReadURL(t *testing.T) {
	got := PhenixScans{}.ReadURL("https://phenix-scans.com/manga/solo-leveling/", 7)
	assert.Equal(t, "https://phenix-scans.com/manga/solo-leveling/chapitre/7", got)
}

func TestRimuCheckURL(t *testing.T) {
	got, err := RimuScans{}.CheckURL("https://rimuscans.fr/manga/arcane-sniper/")
	require.NoError(t, err)
	assert.Equal(t, "https://rimuscans.fr/manga/arcane-sniper/", got)

	// Non /manga/ listing URLs pass through unchanged.
	got, err = RimuScans{}.CheckURL("https://rimuscans.fr/arcane-sniper/")
	require.NoError(t, err)
	assert.Equal(t, "https://rimuscans.fr/arcane-sniper/", got)
}

func TestRimuLatestChapterMaxAcrossFormats(t *testing.T) {
	doc := docFromHTML(t, `
		<ul>
			<li class="wp-manga-chapter"><a href="#">Chapitre 15</a></li>
			<li class="wp-manga-chapter"><a href="#">Chapitre 14.5</a></li>
			<li class="wp-manga-chapter"><a href="#">Arcane Sniper 12</a></li>
		</ul>`)

	assert.Equal(t, 15, RimuScans{}.LatestChapter(doc))
}

func TestRimuReadURL(t *testing.T) {
	got := RimuScans{}.ReadURL("https://rimuscans.fr/manga/arcane-sniper/", 3)
	assert.Equal(t, "https://rimuscans.fr/arcane-sniper-chapitre-3/", got)
}

func TestRimuExtract(t *testing.T) {
	doc := docFromHTML(t, `
		<html>
			<h1 class="entry-title"> Arcane Sniper </h1>
			<div class="summary_image"><img src="https://rimuscans.fr/covers/as.jpg"></div>
			<ul>
				<li class="wp-manga-chapter"><a href="#">Chapitre 21</a></li>
				<li class="wp-manga-chapter"><a href="#">Chapitre 20</a></li>
			</ul>
		</html>`)

	info := RimuScans{}.Extract(doc)

	assert.Equal(t, "Arcane Sniper", info.Title)
	assert.Equal(t, "https://rimuscans.fr/covers/as.jpg", info.CoverURL)
	assert.Equal(t, 21, info.TotalChapters)
}

func TestExtractIgnoresRelativeCover(t *testing.T) {
	doc := docFromHTML(t, `
		<html>
			<h1 itemprop="name">Solo Leveling</h1>
			<img class="wp-post-image" src="/covers/sl.jpg">
		</html>`)

	info := RimuScans{}.Extract(doc)

	assert.Equal(t, "Solo Leveling", info.Title)
	assert.Empty(t, info.CoverURL, "relative cover URLs are not usable outside the site")
}
