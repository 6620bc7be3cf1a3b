package extract

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/topiccrawl/topiccrawl/internal/config"
	"github.com/topiccrawl/topiccrawl/internal/crawler"
	"github.com/topiccrawl/topiccrawl/internal/logger"
	"github.com/topiccrawl/topiccrawl/internal/structure"
)

// ErrEmptyStructure is returned when the catalog page yields no topics,
// usually a sign the navigation selectors no longer match the site.
var ErrEmptyStructure = errors.New("no topics extracted")

// Extractor scrapes the catalog navigation into a topic structure.
type Extractor struct {
	site       *config.Site
	crawlerCfg *config.Crawler
	logger     logger.Interface
}

// New creates an extractor.
func New(site *config.Site, crawlerCfg *config.Crawler, log logger.Interface) *Extractor {
	return &Extractor{
		site:       site,
		crawlerCfg: crawlerCfg,
		logger:     log.WithComponent("extract"),
	}
}

// Extract fetches the catalog root page and parses its topic navigation.
// The result is validated against the structure schema before it is
// returned, so a successful extraction always yields a loadable artifact.
func (e *Extractor) Extract(ctx context.Context) (structure.Structure, error) {
	pageURL, err := url.Parse(e.site.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", e.site.BaseURL, err)
	}

	e.logger.Info("fetching catalog page", "url", e.site.BaseURL)

	doc, err := crawler.FetchDocument(ctx, e.crawlerCfg, e.site.BaseURL, e.logger)
	if err != nil {
		return nil, err
	}

	s := ParseStructure(doc, pageURL, e.site)
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyStructure, e.site.BaseURL)
	}

	if validateErr := s.Validate(); validateErr != nil {
		return nil, fmt.Errorf("extracted structure is invalid: %w", validateErr)
	}

	e.logger.Info("parsed topic structure",
		"root_topics", len(s),
		"total_topics", s.Count(),
	)

	return s, nil
}
