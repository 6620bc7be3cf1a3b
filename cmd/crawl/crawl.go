// Package crawl implements the crawl command: it crawls a single topic
// page into an output directory.
package crawl

import (
	"fmt"

	"github.com/spf13/cobra"

	cmdcommon "github.com/topiccrawl/topiccrawl/cmd/common"
	"github.com/topiccrawl/topiccrawl/internal/crawler"
	"github.com/topiccrawl/topiccrawl/internal/download"
	"github.com/topiccrawl/topiccrawl/internal/output"
)

// Command returns the crawl command for use in the root command.
func Command() *cobra.Command {
	var (
		pageURL string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl a single topic page",
		Long: `This command crawls one topic page and writes its overview, assets, and
tables under the output directory. The batch command drives the same code
path for every item of a shard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			if ensureErr := output.EnsureDir(out); ensureErr != nil {
				return ensureErr
			}

			downloader := download.New(download.Config{
				Timeout:      deps.Config.Download.Timeout,
				MaxBodyBytes: deps.Config.Download.MaxBodyBytes,
				UserAgent:    deps.Config.Crawler.UserAgent,
				Referer:      deps.Config.Download.Referer,
			}, deps.Logger)

			pageCrawler := crawler.New(crawler.Params{
				Site:       &deps.Config.Site,
				Crawler:    &deps.Config.Crawler,
				Downloader: downloader,
				Logger:     deps.Logger,
			})

			return pageCrawler.Crawl(cmd.Context(), pageURL, out)
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "URL of the topic page")
	cmd.Flags().StringVar(&out, "out", "", "output directory for the crawled data")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
