package batch

import (
	"fmt"
)

// Shard identifies one partition of the total work: this process handles
// group GroupIndex out of GroupCount.
type Shard struct {
	// GroupIndex is the zero-based index of this shard.
	GroupIndex int `json:"group_index"`
	// GroupCount is the total number of shards.
	GroupCount int `json:"group_count"`
}

// Validate checks the shard invariants: GroupCount > 0 and
// 0 <= GroupIndex < GroupCount. It is called before any input or output
// I/O so an invalid assignment never touches the filesystem.
func (s Shard) Validate() error {
	if s.GroupCount <= 0 {
		return fmt.Errorf("%w: group_count must be positive, got %d", ErrInvalidShard, s.GroupCount)
	}
	if s.GroupIndex < 0 {
		return fmt.Errorf("%w: group_index must not be negative, got %d", ErrInvalidShard, s.GroupIndex)
	}
	if s.GroupIndex >= s.GroupCount {
		return fmt.Errorf("%w: group_index %d out of range for group_count %d",
			ErrInvalidShard, s.GroupIndex, s.GroupCount)
	}
	return nil
}

// String returns the shard in "index/count" form for logs.
func (s Shard) String() string {
	return fmt.Sprintf("%d/%d", s.GroupIndex, s.GroupCount)
}
