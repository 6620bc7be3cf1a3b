// Package structure defines the topic structure artifact produced by the
// extractor and consumed read-only by every batch shard.
package structure

// Topic is one node of the hierarchical topic structure. A topic either
// groups sub-topics (a navigation section) or points at a single page.
type Topic struct {
	// Name is the topic name. Required, non-empty.
	Name string `json:"name"`
	// SubTopics are the nested topics. Required; may be empty but not absent.
	SubTopics []Topic `json:"sub_topics"`
	// Breadcrumbs is the navigation path from the catalog root to this
	// topic. Optional; when present it must contain at least one crumb.
	Breadcrumbs []string `json:"breadcrumbs,omitempty"`
	// URL is the page associated with the topic. Required, non-empty.
	URL string `json:"url"`
}

// Structure is the full topic structure: a non-empty list of root topics.
type Structure []Topic

// Count returns the total number of topics in the structure, including
// nested sub-topics.
func (s Structure) Count() int {
	total := 0
	for i := range s {
		total += s[i].count()
	}
	return total
}

func (t *Topic) count() int {
	total := 1
	for i := range t.SubTopics {
		total += t.SubTopics[i].count()
	}
	return total
}
