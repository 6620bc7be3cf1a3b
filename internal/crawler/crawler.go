package crawler

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/topiccrawl/topiccrawl/internal/config"
	"github.com/topiccrawl/topiccrawl/internal/download"
	"github.com/topiccrawl/topiccrawl/internal/logger"
	"github.com/topiccrawl/topiccrawl/internal/output"
)

// ProductRecord is one row of the per-product products.json table.
type ProductRecord struct {
	ProductPageLink string `json:"product_page_link"`
	Specifications  string `json:"specifications"`
	Summary         string `json:"summary"`
}

// Params holds the dependencies of a Crawler.
type Params struct {
	Site       *config.Site
	Crawler    *config.Crawler
	Downloader *download.Downloader
	Logger     logger.Interface
}

// Crawler crawls individual topic pages. It is safe for concurrent use by
// the worker pool: all per-page state lives on the stack.
type Crawler struct {
	site       *config.Site
	crawlerCfg *config.Crawler
	downloader *download.Downloader
	converter  *md.Converter
	logger     logger.Interface
}

// New creates a page crawler.
func New(p Params) *Crawler {
	return &Crawler{
		site:       p.Site,
		crawlerCfg: p.Crawler,
		downloader: p.Downloader,
		converter:  NewConverter(),
		logger:     p.Logger.WithComponent("crawler"),
	}
}

// Crawl fetches pageURL and writes its results under outDir. Category pages
// get an overview markdown; product pages additionally get the asset folder
// skeleton, downloaded documents, images and diagrams with manifests, and
// the products table.
func (c *Crawler) Crawl(ctx context.Context, pageURL, outDir string) error {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, pageURL)
	}

	level := DetectLevel(pageURL, c.site.BaseURL)
	log := c.logger.With("url", pageURL, "level", string(level))
	log.Info("crawling topic page")

	doc, err := FetchDocument(ctx, c.crawlerCfg, pageURL, log)
	if err != nil {
		return err
	}

	data := ExtractPage(doc, parsed, c.site, level)

	if mkErr := os.MkdirAll(outDir, 0o755); mkErr != nil {
		return fmt.Errorf("%w: %s: %v", output.ErrOutputDir, outDir, mkErr)
	}

	if level == LevelProduct {
		for _, folder := range productFolders {
			if mkErr := os.MkdirAll(filepath.Join(outDir, folder), 0o755); mkErr != nil {
				return fmt.Errorf("%w: %s: %v", output.ErrOutputDir, outDir, mkErr)
			}
		}
	}

	overview, err := c.writeOverview(data, level, outDir, log)
	if err != nil {
		return err
	}

	if level == LevelCategory {
		return nil
	}

	if dlErr := c.downloadAssets(ctx, data, outDir, log); dlErr != nil {
		return dlErr
	}

	return c.writeProductTables(parsed, data, overview, outDir)
}

// writeOverview converts and writes the overview markdown; it returns the
// markdown so the products table can reuse it as the summary.
func (c *Crawler) writeOverview(data *PageData, level Level, outDir string, log logger.Interface) (string, error) {
	overview, err := BuildOverviewMarkdown(c.converter, data, level)
	if err != nil {
		return "", err
	}
	if overview == "" {
		log.Warn("no overview content found")
		return "", nil
	}

	overviewPath := filepath.Join(outDir, overviewFileName)
	if level == LevelProduct {
		overviewPath = filepath.Join(outDir, FolderMarkdowns, overviewFileName)
	}
	if writeErr := output.WriteFile(overviewPath, []byte(overview)); writeErr != nil {
		return "", writeErr
	}

	log.Debug("saved overview", "path", overviewPath)
	return overview, nil
}

// downloadAssets fetches the page's documents, images, and diagrams and
// writes a manifest per asset folder. Individual download failures are
// logged and skipped; the page crawl carries on.
func (c *Crawler) downloadAssets(ctx context.Context, data *PageData, outDir string, log logger.Interface) error {
	docsFolder := filepath.Join(outDir, FolderDocumentations)
	docs := make([]download.Metadata, 0, len(data.DocumentURLs)+1)

	if data.DatasheetURL != "" {
		if meta := c.fetchAsset(ctx, data.DatasheetURL, docsFolder, "documentation", log); meta != nil {
			docs = append(docs, *meta)
		}
	}
	for _, docURL := range data.DocumentURLs {
		if meta := c.fetchAsset(ctx, docURL, docsFolder, "documentation", log); meta != nil {
			docs = append(docs, *meta)
		}
	}
	if err := download.SaveManifest(docsFolder, docs, ""); err != nil {
		return err
	}

	imagesFolder := filepath.Join(outDir, FolderImages)
	images := make([]download.Metadata, 0, len(data.ImageURLs))
	for _, imgURL := range data.ImageURLs {
		if meta := c.fetchAsset(ctx, imgURL, imagesFolder, "product image", log); meta != nil {
			images = append(images, *meta)
		}
	}
	if err := download.SaveManifest(imagesFolder, images, ""); err != nil {
		return err
	}

	diagramsFolder := filepath.Join(outDir, FolderBlockDiagrams)
	diagrams := make([]download.Metadata, 0, len(data.DiagramURLs))
	for _, diagramURL := range data.DiagramURLs {
		if meta := c.fetchAsset(ctx, diagramURL, diagramsFolder, "block diagram", log); meta != nil {
			diagrams = append(diagrams, *meta)
		}
	}
	return download.SaveManifest(diagramsFolder, diagrams, diagramManifestName)
}

// fetchAsset downloads one asset, converting failures into warnings.
func (c *Crawler) fetchAsset(
	ctx context.Context,
	assetURL, folder, fileType string,
	log logger.Interface,
) *download.Metadata {
	meta, err := c.downloader.Fetch(ctx, assetURL, folder, fileType)
	if err != nil {
		log.Warn("skipped asset",
			"file_type", fileType,
			"asset_url", assetURL,
			"error", err,
		)
		return nil
	}
	return meta
}

// writeProductTables writes the tables folder: an empty manifest plus the
// products record keyed by the product's URL slug.
func (c *Crawler) writeProductTables(pageURL *url.URL, data *PageData, overview, outDir string) error {
	tablesFolder := filepath.Join(outDir, FolderTables)
	if err := download.SaveManifest(tablesFolder, nil, ""); err != nil {
		return err
	}

	productName := path.Base(pageURL.Path)
	records := map[string]ProductRecord{
		productName: {
			ProductPageLink: pageURL.String(),
			Specifications:  data.Specifications,
			Summary:         overview,
		},
	}
	return output.WriteJSON(filepath.Join(tablesFolder, productsFileName), records)
}
