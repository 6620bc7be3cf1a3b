// Package structure implements the structure command: it extracts the
// catalog site's topic structure into a JSON artifact.
package structure

import (
	"fmt"

	"github.com/spf13/cobra"

	cmdcommon "github.com/topiccrawl/topiccrawl/cmd/common"
	"github.com/topiccrawl/topiccrawl/internal/structure"
	"github.com/topiccrawl/topiccrawl/internal/structure/extract"
)

// Command returns the structure command for use in the root command.
func Command() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "structure",
		Short: "Extract the topic structure of the catalog site",
		Long: `This command scrapes the configured catalog site's topic navigation and
writes the hierarchical topic structure as a JSON artifact. The artifact is
the input of every batch shard, so it is written atomically: a failed
extraction never leaves a partial file at the output path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			if out == "" {
				out = deps.Config.StructureOut
			}

			extractor := extract.New(&deps.Config.Site, &deps.Config.Crawler, deps.Logger)

			s, err := extractor.Extract(cmd.Context())
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			if saveErr := structure.Save(out, s); saveErr != nil {
				return saveErr
			}

			deps.Logger.Info("topic structure saved",
				"path", out,
				"topics", s.Count(),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file for the topic structure JSON")

	return cmd
}
