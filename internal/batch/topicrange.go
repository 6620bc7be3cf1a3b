package batch

import (
	"fmt"
	"strconv"
	"strings"
)

// TopicRangeAll selects every topic.
const TopicRangeAll = "*"

// TopicRange is an inclusive position range [Start, End] over the flattened
// item list, applied before partitioning.
type TopicRange struct {
	All   bool
	Start int
	End   int
}

// ParseTopicRange parses "*" or "start-end" (inclusive, zero-based).
func ParseTopicRange(s string) (TopicRange, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == TopicRangeAll {
		return TopicRange{All: true}, nil
	}

	start, end, found := strings.Cut(s, "-")
	if !found {
		return TopicRange{}, fmt.Errorf("%w: %q, want \"start-end\" or %q", ErrInvalidTopicRange, s, TopicRangeAll)
	}

	startN, err := strconv.Atoi(start)
	if err != nil {
		return TopicRange{}, fmt.Errorf("%w: start %q is not an integer", ErrInvalidTopicRange, start)
	}
	endN, err := strconv.Atoi(end)
	if err != nil {
		return TopicRange{}, fmt.Errorf("%w: end %q is not an integer", ErrInvalidTopicRange, end)
	}
	if startN < 0 || endN < startN {
		return TopicRange{}, fmt.Errorf("%w: %q, want 0 <= start <= end", ErrInvalidTopicRange, s)
	}

	return TopicRange{Start: startN, End: endN}, nil
}

// Apply returns the sub-list of items selected by the range.
func (r TopicRange) Apply(items []Item) []Item {
	if r.All {
		return items
	}
	if r.Start >= len(items) {
		return nil
	}
	end := r.End + 1
	if end > len(items) {
		end = len(items)
	}
	return items[r.Start:end]
}
