package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates the directory if absent and verifies it is writable by
// probing with a temporary file. Failures wrap ErrOutputDir.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputDir, dir, err)
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputDir, dir, err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)

	return nil
}

// TopicDir resolves the output directory of an item path under the shard
// output directory. Item paths use forward slashes; the result uses the
// platform separator.
func TopicDir(outputDir, itemPath string) string {
	return filepath.Join(outputDir, filepath.FromSlash(itemPath))
}

// ShardSummaryPath returns the per-shard summary file path. The name embeds
// the shard assignment, so concurrently running shards never write the same
// summary file.
func ShardSummaryPath(outputDir string, groupIndex, groupCount int) string {
	return filepath.Join(outputDir, fmt.Sprintf("shard_%d_of_%d.json", groupIndex, groupCount))
}
