// Package output manages the shard output directory layout and artifact
// writes.
package output

import "errors"

// ErrOutputDir is returned when the output directory cannot be created or
// is not writable.
var ErrOutputDir = errors.New("output directory not writable")
