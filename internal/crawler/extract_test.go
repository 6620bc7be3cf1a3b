package crawler_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topiccrawl/topiccrawl/internal/config"
	"github.com/topiccrawl/topiccrawl/internal/crawler"
)

const productHTML = `<!DOCTYPE html>
<html>
<body>
  <div class="o-hero">
    <p>A small single-board computer.</p>
  </div>
  <div class="c-product-description">
    <p>More detail about the board.</p>
  </div>
  <ul class="c-specifications">
    <li>Quad-core CPU</li>
    <li>4GB RAM</li>
  </ul>
  <a class="c-datasheet" href="/documents/datasheet.pdf">Datasheet</a>
  <div class="c-documentation">
    <a href="/documents/datasheet.pdf">Datasheet again</a>
    <a href="/documents/schematics.pdf">Schematics</a>
    <a href="https://cdn.example.com/guide.pdf">Guide</a>
    <a href="https://cdn.example.com/guide.pdf">Guide duplicate</a>
  </div>
  <img class="c-product-image" src="/images/board.png">
  <img class="c-product-image" src="/images/board.png">
  <img class="c-block-diagram" src="/images/diagram.svg">
</body>
</html>`

const categoryHTML = `<!DOCTYPE html>
<html>
<body>
  <div class="o-hero">
    <p>Browse the catalog.</p>
  </div>
  <section><h2>Boards</h2></section>
  <section><h2>Cameras</h2></section>
</body>
</html>`

func pageSite() *config.Site {
	return &config.Site{
		OverviewSelectors:       []string{"div.o-hero", "div.c-product-description"},
		CategoryHeadingSelector: "section h2",
		SpecificationSelectors:  []string{"ul.c-specifications"},
		DatasheetSelector:       "a.c-datasheet",
		DocumentationSelectors:  []string{"div.c-documentation a"},
		ImageSelectors:          []string{"img.c-product-image"},
		BlockDiagramSelectors:   []string{"img.c-block-diagram"},
	}
}

func parsePage(t *testing.T, html, rawURL string) (*goquery.Document, *url.URL) {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	pageURL, err := url.Parse(rawURL)
	require.NoError(t, err)

	return doc, pageURL
}

func TestExtractProductPage(t *testing.T) {
	t.Parallel()

	doc, pageURL := parsePage(t, productHTML, "https://example.com/products/model-b/")
	data := crawler.ExtractPage(doc, pageURL, pageSite(), crawler.LevelProduct)

	require.Len(t, data.OverviewHTML, 2)
	assert.Contains(t, data.OverviewHTML[0], "single-board computer")
	assert.Contains(t, data.OverviewHTML[1], "More detail")

	assert.Contains(t, data.Specifications, "Quad-core CPU")
	assert.Contains(t, data.Specifications, "4GB RAM")

	assert.Equal(t, "https://example.com/documents/datasheet.pdf", data.DatasheetURL)

	// The datasheet link and exact duplicates are excluded from documents.
	assert.Equal(t, []string{
		"https://example.com/documents/schematics.pdf",
		"https://cdn.example.com/guide.pdf",
	}, data.DocumentURLs)

	assert.Equal(t, []string{"https://example.com/images/board.png"}, data.ImageURLs)
	assert.Equal(t, []string{"https://example.com/images/diagram.svg"}, data.DiagramURLs)
	assert.Empty(t, data.CategoryHeadings)
}

func TestExtractCategoryPage(t *testing.T) {
	t.Parallel()

	doc, pageURL := parsePage(t, categoryHTML, "https://example.com/catalog/")
	data := crawler.ExtractPage(doc, pageURL, pageSite(), crawler.LevelCategory)

	require.Len(t, data.OverviewHTML, 1)
	require.Len(t, data.CategoryHeadings, 2)
	assert.Contains(t, data.CategoryHeadings[0], "Boards")
	assert.Contains(t, data.CategoryHeadings[1], "Cameras")

	// Category pages only collect headings; product regions stay empty.
	assert.Empty(t, data.Specifications)
	assert.Empty(t, data.DatasheetURL)
	assert.Empty(t, data.DocumentURLs)
	assert.Empty(t, data.ImageURLs)
}

func TestExtractMissingRegions(t *testing.T) {
	t.Parallel()

	doc, pageURL := parsePage(t, "<html><body><p>bare page</p></body></html>", "https://example.com/products/x/")
	data := crawler.ExtractPage(doc, pageURL, pageSite(), crawler.LevelProduct)

	assert.Empty(t, data.OverviewHTML)
	assert.Empty(t, data.Specifications)
	assert.Empty(t, data.DatasheetURL)
	assert.Empty(t, data.DocumentURLs)
	assert.Empty(t, data.ImageURLs)
	assert.Empty(t, data.DiagramURLs)
}
