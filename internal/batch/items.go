// Package batch flattens a topic structure into an ordered list of work
// items and partitions it into disjoint shards.
package batch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/topiccrawl/topiccrawl/internal/structure"
)

// slashEscape replaces path separators inside a breadcrumb so crumbs map to
// single path segments.
const slashEscape = "_slash_"

// Item is one unit of crawl work: a topic page and the relative output path
// its results are written under.
type Item struct {
	// URL is the topic page.
	URL string `json:"url"`
	// Path is the slash-joined, escaped breadcrumb path of the topic.
	// Paths are unique within an item list.
	Path string `json:"path"`
}

// Flatten enumerates every topic of the structure in a stable order: topics
// are walked pre-order (a topic before its sub-topics), paths are derived
// from breadcrumbs, and the resulting list is sorted by path. Every shard of
// a run flattens the same structure to the same list, which is what makes
// index-based partitioning consistent across shard processes.
func Flatten(s structure.Structure) []Item {
	items := make([]Item, 0, s.Count())
	for i := range s {
		items = appendTopic(items, &s[i])
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Path < items[b].Path
	})

	return dedupePaths(items)
}

func appendTopic(items []Item, t *structure.Topic) []Item {
	items = append(items, Item{
		URL:  t.URL,
		Path: topicPath(t),
	})
	for i := range t.SubTopics {
		items = appendTopic(items, &t.SubTopics[i])
	}
	return items
}

// topicPath joins the topic's breadcrumbs into a relative path, escaping
// any separator inside a crumb. Topics without breadcrumbs fall back to the
// escaped topic name.
func topicPath(t *structure.Topic) string {
	if len(t.Breadcrumbs) == 0 {
		return escapeCrumb(t.Name)
	}
	crumbs := make([]string, len(t.Breadcrumbs))
	for i, crumb := range t.Breadcrumbs {
		crumbs[i] = escapeCrumb(crumb)
	}
	return strings.Join(crumbs, "/")
}

func escapeCrumb(crumb string) string {
	return strings.ReplaceAll(crumb, "/", slashEscape)
}

// dedupePaths disambiguates repeated paths in a sorted item list so no two
// items write to the same output directory. The suffix is a function of the
// sorted list only, keeping the result deterministic across shard runs.
func dedupePaths(items []Item) []Item {
	seen := make(map[string]int, len(items))
	for i := range items {
		n := seen[items[i].Path]
		seen[items[i].Path] = n + 1
		if n > 0 {
			items[i].Path = fmt.Sprintf("%s~%d", items[i].Path, n+1)
		}
	}
	return items
}
