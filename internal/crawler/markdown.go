package crawler

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// categoryHeadingTitle precedes the category section headings in the
// overview markdown.
const categoryHeadingTitle = "## main category :"

// NewConverter returns an HTML-to-Markdown converter for page fragments.
func NewConverter() *md.Converter {
	return md.NewConverter("", true, nil)
}

// BuildOverviewMarkdown converts the page's overview fragments to a single
// Markdown document. Category pages additionally list their section
// headings.
func BuildOverviewMarkdown(conv *md.Converter, data *PageData, level Level) (string, error) {
	var b strings.Builder

	for _, fragment := range data.OverviewHTML {
		markdown, err := conv.ConvertString(fragment)
		if err != nil {
			return "", fmt.Errorf("failed to convert overview fragment: %w", err)
		}
		markdown = strings.TrimSpace(markdown)
		if markdown == "" {
			continue
		}
		b.WriteString(markdown)
		b.WriteString("\n\n")
	}

	if level == LevelCategory && len(data.CategoryHeadings) > 0 {
		b.WriteString(categoryHeadingTitle)
		b.WriteString("\n\n")
		for _, fragment := range data.CategoryHeadings {
			markdown, err := conv.ConvertString(fragment)
			if err != nil {
				return "", fmt.Errorf("failed to convert heading fragment: %w", err)
			}
			markdown = strings.TrimSpace(markdown)
			if markdown == "" {
				continue
			}
			b.WriteString(markdown)
			b.WriteString("\n\n")
		}
	}

	return b.String(), nil
}
