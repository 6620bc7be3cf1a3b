package batch

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	cmdcommon "github.com/topiccrawl/topiccrawl/cmd/common"
	"github.com/topiccrawl/topiccrawl/internal/batch"
	"github.com/topiccrawl/topiccrawl/internal/structure"
)

// planCommand returns the plan subcommand: it prints the shard assignment
// for a structure file without crawling anything.
func planCommand() *cobra.Command {
	var flags shardFlags
	var showItems bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the shard assignment without crawling",
		Long: `This command loads the structure file, computes the deterministic item
list, and prints how the configured partition strategy distributes it across
shards. With --show_items it also lists the items assigned to group_index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			flags.applyDefaults(cmd, &deps.Config.Batch)
			log := loggerFor(deps)

			shard := batch.Shard{GroupIndex: flags.groupIndex, GroupCount: flags.groupCount}
			if validateErr := shard.Validate(); validateErr != nil {
				return validateErr
			}

			partition, err := batch.PartitionByName(flags.partition)
			if err != nil {
				return err
			}

			topicRange, err := batch.ParseTopicRange(flags.topicRange)
			if err != nil {
				return err
			}

			s, err := structure.Load(flags.structureFile)
			if err != nil {
				return err
			}

			items := topicRange.Apply(batch.Flatten(s))
			log.Info("computed item list", "total_items", len(items))

			renderShardCounts(items, flags.groupCount, partition)
			if showItems {
				renderShardItems(items, shard, partition)
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&showItems, "show_items", false, "list the items assigned to group_index")

	return cmd
}

// renderShardCounts prints one row per shard with its assigned item count.
func renderShardCounts(items []batch.Item, groupCount int, fn batch.PartitionFunc) {
	counts := make([]int, groupCount)
	for i := range items {
		counts[fn(i, len(items), groupCount)]++
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Shard", "Items"})
	for shard, count := range counts {
		tw.AppendRow(table.Row{shard, count})
	}
	tw.AppendFooter(table.Row{"Total", len(items)})
	tw.Render()
}

// renderShardItems prints the items assigned to one shard.
func renderShardItems(items []batch.Item, shard batch.Shard, fn batch.PartitionFunc) {
	assigned := batch.Partition(items, shard, fn)

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"#", "Path", "URL"})
	for i, item := range assigned {
		tw.AppendRow(table.Row{i, item.Path, item.URL})
	}
	tw.Render()
}
