package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/topiccrawl/topiccrawl/internal/logger"
	"github.com/topiccrawl/topiccrawl/internal/output"
	"github.com/topiccrawl/topiccrawl/internal/structure"
	"github.com/topiccrawl/topiccrawl/internal/worker"
)

// PageCrawler crawls a single topic page into an output directory.
type PageCrawler interface {
	Crawl(ctx context.Context, pageURL, outDir string) error
}

// RunnerConfig holds runner settings.
type RunnerConfig struct {
	// Workers is the number of concurrent topic crawls within the shard.
	Workers int
	// DrainTimeout bounds graceful worker pool shutdown.
	DrainTimeout time.Duration
	// ItemTimeout bounds the crawl of a single topic.
	ItemTimeout time.Duration
	// Partition is the partition strategy name.
	Partition string
}

// RunOptions are the per-invocation inputs of a shard run.
type RunOptions struct {
	// StructureFile is the path of the topic structure artifact.
	StructureFile string
	// OutputDir is the shared output directory.
	OutputDir string
	// Shard is this process's shard assignment.
	Shard Shard
	// TopicRange optionally restricts the flattened item list ("*" or
	// "start-end") before partitioning.
	TopicRange string
}

// ItemResult records the outcome of one item crawl.
type ItemResult struct {
	Path     string        `json:"path"`
	URL      string        `json:"url"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
}

// Summary is the per-shard run record written alongside the topic results.
type Summary struct {
	RunID      string       `json:"run_id"`
	GroupIndex int          `json:"group_index"`
	GroupCount int          `json:"group_count"`
	Partition  string       `json:"partition"`
	Total      int          `json:"total_items"`
	Assigned   int          `json:"assigned_items"`
	Succeeded  int          `json:"succeeded"`
	Failed     int          `json:"failed"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Items      []ItemResult `json:"items"`
}

// Runner executes one shard of a batch crawl: it loads the structure,
// partitions the flattened items, and crawls the assigned ones through a
// bounded worker pool. A failed item does not abort the shard.
type Runner struct {
	crawler PageCrawler
	logger  logger.Interface
	config  RunnerConfig
}

// NewRunner creates a new shard runner.
func NewRunner(crawler PageCrawler, log logger.Interface, cfg RunnerConfig) *Runner {
	return &Runner{
		crawler: crawler,
		logger:  log,
		config:  cfg,
	}
}

// Run executes the shard and writes its summary to the output directory.
// The returned Summary is non-nil whenever processing started; the error is
// ErrItemsFailed when some items failed, or the fatal setup error otherwise.
//
// Invariant ordering: the shard assignment is validated before the structure
// file is read, and the structure must load before the output directory is
// touched, so invalid invocations never create partial output.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	if err := opts.Shard.Validate(); err != nil {
		return nil, err
	}

	topicRange, err := ParseTopicRange(opts.TopicRange)
	if err != nil {
		return nil, err
	}

	partition, err := PartitionByName(r.config.Partition)
	if err != nil {
		return nil, err
	}

	s, err := structure.Load(opts.StructureFile)
	if err != nil {
		return nil, err
	}

	items := Flatten(s)
	items = topicRange.Apply(items)
	assigned := Partition(items, opts.Shard, partition)

	runID := uuid.NewString()
	log := r.logger.WithRunID(runID).WithShard(opts.Shard.GroupIndex, opts.Shard.GroupCount)
	log.Info("shard assignment computed",
		"total_items", len(items),
		"assigned_items", len(assigned),
		"partition", r.config.Partition,
	)

	if ensureErr := output.EnsureDir(opts.OutputDir); ensureErr != nil {
		return nil, ensureErr
	}

	summary := &Summary{
		RunID:      runID,
		GroupIndex: opts.Shard.GroupIndex,
		GroupCount: opts.Shard.GroupCount,
		Partition:  r.config.Partition,
		Total:      len(items),
		Assigned:   len(assigned),
		StartedAt:  time.Now().UTC(),
		Items:      make([]ItemResult, 0, len(assigned)),
	}

	if crawlErr := r.crawlAssigned(ctx, assigned, opts.OutputDir, summary, log); crawlErr != nil {
		return nil, crawlErr
	}

	summary.FinishedAt = time.Now().UTC()

	summaryPath := output.ShardSummaryPath(opts.OutputDir, opts.Shard.GroupIndex, opts.Shard.GroupCount)
	if writeErr := output.WriteJSON(summaryPath, summary); writeErr != nil {
		return summary, writeErr
	}

	log.Info("shard completed",
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"summary", summaryPath,
	)

	if summary.Failed > 0 {
		return summary, fmt.Errorf("%w: %d of %d", ErrItemsFailed, summary.Failed, summary.Assigned)
	}
	return summary, nil
}

// crawlAssigned runs the assigned items through the worker pool, recording
// per-item outcomes on the summary.
func (r *Runner) crawlAssigned(
	ctx context.Context,
	assigned []Item,
	outputDir string,
	summary *Summary,
	log logger.Interface,
) error {
	var mu sync.Mutex

	pool, err := worker.NewPool(worker.Config{
		PoolSize:     r.config.Workers,
		DrainTimeout: r.config.DrainTimeout,
		JobTimeout:   r.config.ItemTimeout,
	}, func(jobCtx context.Context, job worker.Job) error {
		return r.crawler.Crawl(jobCtx, job.URL, job.OutDir)
	}, log)
	if err != nil {
		return err
	}

	if startErr := pool.Start(); startErr != nil {
		return startErr
	}

	for _, item := range assigned {
		item := item
		started := time.Now()
		submitErr := pool.Submit(ctx, worker.Job{
			ID:     item.Path,
			URL:    item.URL,
			OutDir: output.TopicDir(outputDir, item.Path),
		}, func(job worker.Job, jobErr error) {
			result := ItemResult{
				Path:     item.Path,
				URL:      item.URL,
				Duration: time.Since(started),
			}
			if jobErr != nil {
				result.Error = jobErr.Error()
			}

			mu.Lock()
			summary.Items = append(summary.Items, result)
			if jobErr != nil {
				summary.Failed++
			} else {
				summary.Succeeded++
			}
			mu.Unlock()
		})
		if submitErr != nil {
			// Submission stops on cancellation; queued work drains below.
			mu.Lock()
			summary.Items = append(summary.Items, ItemResult{
				Path:  item.Path,
				URL:   item.URL,
				Error: submitErr.Error(),
			})
			summary.Failed++
			mu.Unlock()
			break
		}
	}

	pool.Wait()

	drainCtx, cancel := context.WithTimeout(context.Background(), r.config.DrainTimeout)
	defer cancel()
	if stopErr := pool.Stop(drainCtx); stopErr != nil {
		log.Warn("worker pool stop failed", "error", stopErr)
	}

	return nil
}
