package crawler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/topiccrawl/topiccrawl/internal/crawler"
)

func TestDetectLevel(t *testing.T) {
	t.Parallel()

	const base = "https://example.com/catalog/"

	tests := []struct {
		name    string
		pageURL string
		want    crawler.Level
	}{
		{"exact root", "https://example.com/catalog/", crawler.LevelCategory},
		{"root without trailing slash", "https://example.com/catalog", crawler.LevelCategory},
		{"root with surrounding space", "  https://example.com/catalog/  ", crawler.LevelCategory},
		{"product page", "https://example.com/catalog/model-b/", crawler.LevelProduct},
		{"other host", "https://other.example.com/catalog/", crawler.LevelProduct},
		{"empty", "", crawler.LevelProduct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, crawler.DetectLevel(tt.pageURL, base))
		})
	}
}
