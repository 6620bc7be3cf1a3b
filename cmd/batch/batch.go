// Package batch implements the batch command: it crawls one shard of a
// previously extracted topic structure.
package batch

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	cmdcommon "github.com/topiccrawl/topiccrawl/cmd/common"
	"github.com/topiccrawl/topiccrawl/internal/batch"
	"github.com/topiccrawl/topiccrawl/internal/config"
	"github.com/topiccrawl/topiccrawl/internal/crawler"
	"github.com/topiccrawl/topiccrawl/internal/download"
	"github.com/topiccrawl/topiccrawl/internal/logger"
)

// shardFlags are the shard invocation flags shared by batch and plan.
type shardFlags struct {
	structureFile string
	groupIndex    int
	groupCount    int
	outputDir     string
	topicRange    string
	partition     string
}

// register adds the shard flags to a command, defaulting from config at
// execution time where the zero value signals "use config".
func (f *shardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.structureFile, "structure_file", "",
		"path to the topic structure JSON")
	cmd.Flags().IntVar(&f.groupIndex, "group_index", 0,
		"zero-based index of the shard this instance processes")
	cmd.Flags().IntVar(&f.groupCount, "group_count", 0,
		"total number of shards the work is divided into")
	cmd.Flags().StringVar(&f.outputDir, "output_dir", "",
		"directory where this shard's results are written")
	cmd.Flags().StringVar(&f.topicRange, "topic_range", batch.TopicRangeAll,
		"inclusive item position range to crawl (\"start-end\" or \"*\")")
	cmd.Flags().StringVar(&f.partition, "partition", "",
		"partition strategy (modulo or range)")
}

// applyDefaults fills unset flags from the batch configuration. Whether a
// flag was given is checked through the flag set, not its value: an explicit
// "--group_count 0" is an invalid shard assignment and must reach validation
// as given, not be mistaken for "use the configured default".
func (f *shardFlags) applyDefaults(cmd *cobra.Command, cfg *config.Batch) {
	if f.structureFile == "" {
		f.structureFile = cfg.StructureFile
	}
	if !cmd.Flags().Changed("group_count") {
		f.groupCount = cfg.GroupCount
	}
	if f.outputDir == "" {
		f.outputDir = cfg.OutputDir
	}
	if f.partition == "" {
		f.partition = cfg.Partition
	}
}

// Command returns the batch command for use in the root command.
func Command() *cobra.Command {
	var flags shardFlags
	var workers int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Crawl one shard of the topic structure",
		Long: `This command flattens the topic structure into a deterministic item
list, partitions it into group_count disjoint shards, and crawls the items of
shard group_index into the output directory. Sibling shards run as separate
processes against the same structure file; re-running a shard overwrites only
its own results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			flags.applyDefaults(cmd, &deps.Config.Batch)
			if workers == 0 {
				workers = deps.Config.Batch.Workers
			}

			runner := newRunner(deps, flags.partition, workers)

			summary, runErr := runner.Run(cmd.Context(), batch.RunOptions{
				StructureFile: flags.structureFile,
				OutputDir:     flags.outputDir,
				Shard: batch.Shard{
					GroupIndex: flags.groupIndex,
					GroupCount: flags.groupCount,
				},
				TopicRange: flags.topicRange,
			})
			if runErr != nil {
				if errors.Is(runErr, batch.ErrItemsFailed) && summary != nil {
					deps.Logger.Error("shard finished with failures",
						"failed", summary.Failed,
						"succeeded", summary.Succeeded,
					)
				}
				return runErr
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent topic crawls within this shard")
	cmd.AddCommand(planCommand())

	return cmd
}

// newRunner wires the page crawler and downloader into a shard runner.
func newRunner(deps *cmdcommon.CommandDeps, partition string, workers int) *batch.Runner {
	cfg := deps.Config

	downloader := download.New(download.Config{
		Timeout:      cfg.Download.Timeout,
		MaxBodyBytes: cfg.Download.MaxBodyBytes,
		UserAgent:    cfg.Crawler.UserAgent,
		Referer:      cfg.Download.Referer,
	}, deps.Logger)

	pageCrawler := crawler.New(crawler.Params{
		Site:       &cfg.Site,
		Crawler:    &cfg.Crawler,
		Downloader: downloader,
		Logger:     deps.Logger,
	})

	return batch.NewRunner(pageCrawler, deps.Logger, batch.RunnerConfig{
		Workers:      workers,
		DrainTimeout: cfg.Batch.DrainTimeout,
		ItemTimeout:  cfg.Batch.ItemTimeout,
		Partition:    partition,
	})
}

// loggerFor is a helper for plan, which needs deps but no crawl wiring.
func loggerFor(deps *cmdcommon.CommandDeps) logger.Interface {
	return deps.Logger.WithComponent("plan")
}
