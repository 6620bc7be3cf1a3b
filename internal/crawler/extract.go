package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/topiccrawl/topiccrawl/internal/config"
)

// PageData is the raw extraction result of one topic page. HTML fragments
// are kept as-is; Markdown conversion happens later.
type PageData struct {
	// OverviewHTML holds the matched overview block fragments, in document
	// order per selector.
	OverviewHTML []string
	// CategoryHeadings holds section heading fragments of a category page.
	CategoryHeadings []string
	// Specifications is the concatenated specification panel text.
	Specifications string
	// DatasheetURL is the primary datasheet link, absolute. Empty if none.
	DatasheetURL string
	// DocumentURLs are additional documentation links, absolute, excluding
	// the datasheet.
	DocumentURLs []string
	// ImageURLs are product image sources, absolute.
	ImageURLs []string
	// DiagramURLs are block diagram image sources, absolute.
	DiagramURLs []string
}

// ExtractPage pulls the configured regions out of a parsed topic page.
// Relative asset links are resolved against pageURL.
func ExtractPage(doc *goquery.Document, pageURL *url.URL, site *config.Site, level Level) *PageData {
	data := &PageData{}

	for _, selector := range site.OverviewSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if html, err := goquery.OuterHtml(sel); err == nil && strings.TrimSpace(html) != "" {
				data.OverviewHTML = append(data.OverviewHTML, html)
			}
		})
	}

	if level == LevelCategory {
		doc.Find(site.CategoryHeadingSelector).Each(func(_ int, sel *goquery.Selection) {
			if html, err := goquery.OuterHtml(sel); err == nil && strings.TrimSpace(html) != "" {
				data.CategoryHeadings = append(data.CategoryHeadings, html)
			}
		})
		return data
	}

	var specs strings.Builder
	for _, selector := range site.SpecificationSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			specs.WriteString(strings.TrimSpace(sel.Text()))
		}
	}
	data.Specifications = specs.String()

	if sel := doc.Find(site.DatasheetSelector).First(); sel.Length() > 0 {
		if href, ok := sel.Attr("href"); ok {
			data.DatasheetURL = resolveURL(pageURL, href)
		}
	}

	seen := map[string]bool{data.DatasheetURL: true}
	for _, selector := range site.DocumentationSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			if !ok {
				return
			}
			abs := resolveURL(pageURL, href)
			if abs == "" || seen[abs] {
				return
			}
			seen[abs] = true
			data.DocumentURLs = append(data.DocumentURLs, abs)
		})
	}

	data.ImageURLs = collectAttrs(doc, pageURL, site.ImageSelectors, "src")
	data.DiagramURLs = collectAttrs(doc, pageURL, site.BlockDiagramSelectors, "src")

	return data
}

// collectAttrs gathers the resolved attribute values of all elements
// matching the selectors, deduplicated in document order.
func collectAttrs(doc *goquery.Document, pageURL *url.URL, selectors []string, attr string) []string {
	var urls []string
	seen := make(map[string]bool)
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			value, ok := sel.Attr(attr)
			if !ok {
				return
			}
			abs := resolveURL(pageURL, value)
			if abs == "" || seen[abs] {
				return
			}
			seen[abs] = true
			urls = append(urls, abs)
		})
	}
	return urls
}

// resolveURL resolves ref against the page URL, returning "" for
// unparseable references.
func resolveURL(pageURL *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	parsed, err := pageURL.Parse(ref)
	if err != nil {
		return ""
	}
	return parsed.String()
}
