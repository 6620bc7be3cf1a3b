package batch

import (
	"fmt"
	"strings"
)

// Partition strategy names.
const (
	// PartitionModulo assigns item i to shard i mod group_count.
	PartitionModulo = "modulo"
	// PartitionRange assigns contiguous slices of ceil(n/group_count)
	// items per shard.
	PartitionRange = "range"
)

// PartitionFunc maps an item's position in the flattened list to a shard
// index in [0, groupCount). Implementations must be deterministic and must
// together cover every item exactly once across all shards: for any
// itemIndex the returned shard index is a pure function of the arguments.
type PartitionFunc func(itemIndex, itemCount, groupCount int) int

// ModuloPartition assigns item i to shard i mod groupCount. With 17 items
// and 16 groups, shard 0 gets items 0 and 16 and every other shard gets one.
func ModuloPartition(itemIndex, itemCount, groupCount int) int {
	return itemIndex % groupCount
}

// RangePartition assigns contiguous slices: shard k gets items
// [k*ceil(n/g), (k+1)*ceil(n/g)). Trailing shards may be empty when the
// item count does not divide evenly.
func RangePartition(itemIndex, itemCount, groupCount int) int {
	batchSize := itemCount / groupCount
	if itemCount%groupCount > 0 {
		batchSize++
	}
	if batchSize == 0 {
		return 0
	}
	return itemIndex / batchSize
}

// PartitionByName resolves a strategy name to its PartitionFunc.
func PartitionByName(name string) (PartitionFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PartitionModulo:
		return ModuloPartition, nil
	case PartitionRange:
		return RangePartition, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPartition, name)
	}
}

// Partition returns the items assigned to the shard under the given
// strategy, preserving list order. The shard must be validated first.
func Partition(items []Item, shard Shard, fn PartitionFunc) []Item {
	assigned := make([]Item, 0, len(items)/shard.GroupCount+1)
	for i := range items {
		if fn(i, len(items), shard.GroupCount) == shard.GroupIndex {
			assigned = append(assigned, items[i])
		}
	}
	return assigned
}
