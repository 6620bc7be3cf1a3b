package config

import (
	"github.com/spf13/viper"
)

// Default shard and worker settings.
const (
	// DefaultGroupCount is the default total number of shards.
	DefaultGroupCount = 16
	// DefaultWorkers is the default intra-shard crawl parallelism.
	DefaultWorkers = 4
	// DefaultMaxRetries is the default retry count for page fetches.
	DefaultMaxRetries = 3
	// DefaultParallelism is the default per-collector parallelism.
	DefaultParallelism = 2
	// DefaultMaxBodyBytes caps the size of a downloaded asset.
	DefaultMaxBodyBytes = 128 * 1024 * 1024
)

// Default paths reproduce the container invocation defaults.
const (
	// DefaultStructureOut is the default extractor output path.
	DefaultStructureOut = "output/topic_structure.json"
	// DefaultStructureFile is the default batch structure input path.
	DefaultStructureFile = "/input/structure.json"
	// DefaultOutputDir is the default batch output directory.
	DefaultOutputDir = "/output/"
)

// DefaultUserAgent is a desktop browser user agent used when none is configured.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// SetDefaults registers production-safe default configuration values.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app", map[string]any{
		"name":        "topiccrawl",
		"environment": "production",
		"debug":       false,
	})

	v.SetDefault("logger", map[string]any{
		"level":        "info",
		"development":  false,
		"encoding":     "json",
		"enable_color": false,
	})

	v.SetDefault("site", map[string]any{
		"base_url":                 "https://www.raspberrypi.com/products/",
		"topic_container_selector": "div.o-container section",
		"topic_heading_selector":   "h2",
		"product_link_selector":    "a.c-card--link",
		"product_name_selectors": []string{
			"span.c-product-card__heading",
			"h2.c-type-display-large",
		},
		"root_breadcrumb": "products",
		"overview_selectors": []string{
			"div.rp-space-y-5",
			"div.c-product-hero__description",
			"p.font-normal.leading-normal",
			"div.sl-pi400-container",
		},
		"category_heading_selector": "section h2",
		"specification_selectors": []string{
			"div.SpecsPanel-module--rich-text--febdb",
			"div.c-wysiwyg.c-product-slice__content",
		},
		"datasheet_selector":       "a[href$='.pdf']",
		"documentation_selectors":  []string{"a[href$='.pdf']"},
		"image_selectors":          []string{"picture img"},
		"block_diagram_selectors":  []string{"div.slick-list a[aria-label*='diagram'] img"},
	})

	v.SetDefault("crawler", map[string]any{
		"user_agent":               DefaultUserAgent,
		"request_timeout":          "60s",
		"rate_limit":               "2s",
		"parallelism":              DefaultParallelism,
		"max_retries":              DefaultMaxRetries,
		"retry_delay":              "5s",
		"tls_insecure_skip_verify": false,
	})

	v.SetDefault("batch", map[string]any{
		"group_count":    DefaultGroupCount,
		"structure_file": DefaultStructureFile,
		"output_dir":     DefaultOutputDir,
		"partition":      "modulo",
		"workers":        DefaultWorkers,
		"drain_timeout":  "30s",
		"item_timeout":   "10m",
	})

	v.SetDefault("download", map[string]any{
		"timeout":        "120s",
		"max_body_bytes": DefaultMaxBodyBytes,
		"referer":        "",
	})

	v.SetDefault("structure_out", DefaultStructureOut)
}
