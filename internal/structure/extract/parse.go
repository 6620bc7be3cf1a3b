// Package extract scrapes a catalog site's topic navigation into a
// hierarchical topic structure.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/topiccrawl/topiccrawl/internal/config"
	"github.com/topiccrawl/topiccrawl/internal/structure"
)

// unnamedTopicName is used for topic sections without a heading.
const unnamedTopicName = "top products"

// ParseStructure builds the topic structure from a parsed catalog page.
// Each matched container becomes a root topic whose sub-topics are the
// product card links inside it; product URLs are resolved against pageURL.
func ParseStructure(doc *goquery.Document, pageURL *url.URL, site *config.Site) structure.Structure {
	var s structure.Structure

	doc.Find(site.TopicContainerSelector).Each(func(_ int, container *goquery.Selection) {
		topicName := strings.TrimSpace(container.Find(site.TopicHeadingSelector).First().Text())

		topic := structure.Topic{
			Name:        topicName,
			SubTopics:   []structure.Topic{},
			Breadcrumbs: topicBreadcrumbs(site.RootBreadcrumb, topicName),
			URL:         pageURL.String(),
		}
		if topicName == "" {
			topic.Name = unnamedTopicName
		}

		topic.SubTopics = append(topic.SubTopics, parseProducts(container, pageURL, site, topicName)...)

		s = append(s, topic)
	})

	return s
}

// parseProducts extracts the product links of one topic container as leaf
// topics. Cards without a recognizable name are skipped.
func parseProducts(
	container *goquery.Selection,
	pageURL *url.URL,
	site *config.Site,
	topicName string,
) []structure.Topic {
	var products []structure.Topic

	container.Find(site.ProductLinkSelector).Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}

		productName := findProductName(link, site.ProductNameSelectors)
		if productName == "" {
			return
		}

		resolved, err := pageURL.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}

		products = append(products, structure.Topic{
			Name:        productName,
			SubTopics:   []structure.Topic{},
			Breadcrumbs: productBreadcrumbs(site.RootBreadcrumb, topicName, productName),
			URL:         resolved.String(),
		})
	})

	return products
}

// findProductName tries the configured name selectors in order.
func findProductName(link *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if name := strings.TrimSpace(link.Find(selector).First().Text()); name != "" {
			return name
		}
	}
	return ""
}

// topicBreadcrumbs is [root] for unnamed sections, [root, topic] otherwise.
func topicBreadcrumbs(root, topicName string) []string {
	if topicName == "" {
		return []string{root}
	}
	return []string{root, topicName}
}

// productBreadcrumbs is [root, product] when the section is unnamed,
// [root, topic, product] otherwise.
func productBreadcrumbs(root, topicName, productName string) []string {
	if topicName == "" {
		return []string{root, productName}
	}
	return []string{root, topicName, productName}
}
