package batch_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topiccrawl/topiccrawl/internal/batch"
	"github.com/topiccrawl/topiccrawl/internal/logger"
	"github.com/topiccrawl/topiccrawl/internal/structure"
)

// fakeCrawler records the pages it was asked to crawl and fails the URLs
// listed in failURLs.
type fakeCrawler struct {
	mu       sync.Mutex
	crawled  []string
	outDirs  []string
	failURLs map[string]bool
}

func (f *fakeCrawler) Crawl(_ context.Context, pageURL, outDir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.crawled = append(f.crawled, pageURL)
	f.outDirs = append(f.outDirs, outDir)
	if f.failURLs[pageURL] {
		return errors.New("simulated crawl failure")
	}
	return nil
}

func (f *fakeCrawler) crawledURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	urls := make([]string, len(f.crawled))
	copy(urls, f.crawled)
	sort.Strings(urls)
	return urls
}

func testRunnerConfig() batch.RunnerConfig {
	return batch.RunnerConfig{
		Workers:      2,
		DrainTimeout: 5 * time.Second,
		ItemTimeout:  5 * time.Second,
		Partition:    "modulo",
	}
}

func writeStructureFile(t *testing.T, dir string, s structure.Structure) string {
	t.Helper()
	path := filepath.Join(dir, "structure.json")
	require.NoError(t, structure.Save(path, s))
	return path
}

func flatStructure(n int) structure.Structure {
	s := structure.Structure{}
	for i := 0; i < n; i++ {
		s = append(s, structure.Topic{
			Name:      fmt.Sprintf("Topic %02d", i),
			SubTopics: []structure.Topic{},
			URL:       fmt.Sprintf("https://example.com/topics/%02d", i),
		})
	}
	return s
}

func TestRunnerMissingStructureFile(t *testing.T) {
	t.Parallel()

	outputDir := filepath.Join(t.TempDir(), "out")
	crawler := &fakeCrawler{}
	runner := batch.NewRunner(crawler, logger.NewNoOp(), testRunnerConfig())

	summary, err := runner.Run(context.Background(), batch.RunOptions{
		StructureFile: filepath.Join(t.TempDir(), "missing.json"),
		OutputDir:     outputDir,
		Shard:         batch.Shard{GroupIndex: 0, GroupCount: 4},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, structure.ErrInputNotFound))
	assert.Nil(t, summary)
	assert.Empty(t, crawler.crawledURLs())

	// A missing input must not create the output directory.
	_, statErr := os.Stat(outputDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunnerInvalidShardBeforeIO(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	structureFile := writeStructureFile(t, dir, flatStructure(4))
	outputDir := filepath.Join(dir, "out")
	crawler := &fakeCrawler{}
	runner := batch.NewRunner(crawler, logger.NewNoOp(), testRunnerConfig())

	tests := []struct {
		name  string
		shard batch.Shard
	}{
		{"negative index", batch.Shard{GroupIndex: -1, GroupCount: 4}},
		{"index at count", batch.Shard{GroupIndex: 4, GroupCount: 4}},
		{"zero count", batch.Shard{GroupIndex: 0, GroupCount: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := runner.Run(context.Background(), batch.RunOptions{
				StructureFile: structureFile,
				OutputDir:     outputDir,
				Shard:         tt.shard,
			})

			require.Error(t, err)
			assert.True(t, errors.Is(err, batch.ErrInvalidShard))
			assert.Nil(t, summary)
			assert.Empty(t, crawler.crawledURLs())

			_, statErr := os.Stat(outputDir)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestRunnerCrawlsOnlyAssignedItems(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	structureFile := writeStructureFile(t, dir, flatStructure(10))
	outputDir := filepath.Join(dir, "out")
	crawler := &fakeCrawler{}
	runner := batch.NewRunner(crawler, logger.NewNoOp(), testRunnerConfig())

	shard := batch.Shard{GroupIndex: 1, GroupCount: 4}
	summary, err := runner.Run(context.Background(), batch.RunOptions{
		StructureFile: structureFile,
		OutputDir:     outputDir,
		Shard:         shard,
	})

	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 10, summary.Total)
	// Modulo partitioning for index 1 of 4 over 10 items: positions 1, 5, 9.
	assert.Equal(t, 3, summary.Assigned)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Zero(t, summary.Failed)
	assert.Equal(t, []string{
		"https://example.com/topics/01",
		"https://example.com/topics/05",
		"https://example.com/topics/09",
	}, crawler.crawledURLs())

	// The summary artifact lands next to the topic results.
	data, readErr := os.ReadFile(filepath.Join(outputDir, "shard_1_of_4.json"))
	require.NoError(t, readErr)

	var stored batch.Summary
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, summary.RunID, stored.RunID)
	assert.Equal(t, 1, stored.GroupIndex)
	assert.Equal(t, 4, stored.GroupCount)
	assert.Len(t, stored.Items, 3)
}

func TestRunnerReportsItemFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	structureFile := writeStructureFile(t, dir, flatStructure(4))
	outputDir := filepath.Join(dir, "out")
	crawler := &fakeCrawler{failURLs: map[string]bool{
		"https://example.com/topics/02": true,
	}}
	runner := batch.NewRunner(crawler, logger.NewNoOp(), testRunnerConfig())

	summary, err := runner.Run(context.Background(), batch.RunOptions{
		StructureFile: structureFile,
		OutputDir:     outputDir,
		Shard:         batch.Shard{GroupIndex: 0, GroupCount: 1},
	})

	// One failed item flags the run without aborting the remaining items.
	require.Error(t, err)
	assert.True(t, errors.Is(err, batch.ErrItemsFailed))
	require.NotNil(t, summary)
	assert.Equal(t, 4, summary.Assigned)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, crawler.crawledURLs(), 4)

	failures := 0
	for _, item := range summary.Items {
		if item.Error != "" {
			failures++
			assert.Equal(t, "https://example.com/topics/02", item.URL)
		}
	}
	assert.Equal(t, 1, failures)

	// The summary is still written so a failed shard can be inspected.
	_, statErr := os.Stat(filepath.Join(outputDir, "shard_0_of_1.json"))
	assert.NoError(t, statErr)
}

func TestRunnerAppliesTopicRange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	structureFile := writeStructureFile(t, dir, flatStructure(8))
	outputDir := filepath.Join(dir, "out")
	crawler := &fakeCrawler{}
	runner := batch.NewRunner(crawler, logger.NewNoOp(), testRunnerConfig())

	summary, err := runner.Run(context.Background(), batch.RunOptions{
		StructureFile: structureFile,
		OutputDir:     outputDir,
		Shard:         batch.Shard{GroupIndex: 0, GroupCount: 1},
		TopicRange:    "2-4",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, []string{
		"https://example.com/topics/02",
		"https://example.com/topics/03",
		"https://example.com/topics/04",
	}, crawler.crawledURLs())
}

func TestRunnerRejectsMalformedTopicRange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	structureFile := writeStructureFile(t, dir, flatStructure(4))
	crawler := &fakeCrawler{}
	runner := batch.NewRunner(crawler, logger.NewNoOp(), testRunnerConfig())

	_, err := runner.Run(context.Background(), batch.RunOptions{
		StructureFile: structureFile,
		OutputDir:     filepath.Join(dir, "out"),
		Shard:         batch.Shard{GroupIndex: 0, GroupCount: 1},
		TopicRange:    "9-3",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, batch.ErrInvalidTopicRange))
	assert.Empty(t, crawler.crawledURLs())
}
