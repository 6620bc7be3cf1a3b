package crawler

import "strings"

// Level classifies a topic page.
type Level string

const (
	// LevelCategory is the catalog root page listing topic sections.
	LevelCategory Level = "category"
	// LevelProduct is an individual product page.
	LevelProduct Level = "product"
)

// DetectLevel classifies pageURL against the configured catalog root. Only
// the root itself is a category page; everything else is a product page.
func DetectLevel(pageURL, baseURL string) Level {
	if normalizeURL(pageURL) == normalizeURL(baseURL) {
		return LevelCategory
	}
	return LevelProduct
}

func normalizeURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}
