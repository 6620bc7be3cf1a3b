package batch

import "errors"

// Common errors returned by the batch package.
var (
	// ErrInvalidShard is returned when group_index/group_count violate the
	// shard invariants.
	ErrInvalidShard = errors.New("invalid shard assignment")
	// ErrUnknownPartition is returned for an unrecognized partition
	// strategy name.
	ErrUnknownPartition = errors.New("unknown partition strategy")
	// ErrInvalidTopicRange is returned for a malformed topic range.
	ErrInvalidTopicRange = errors.New("invalid topic range")
	// ErrItemsFailed is returned when one or more items of a shard failed
	// to crawl.
	ErrItemsFailed = errors.New("one or more items failed")
)
