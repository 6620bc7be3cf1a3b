package crawler

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	colly "github.com/gocolly/colly/v2"

	"github.com/topiccrawl/topiccrawl/internal/config"
	"github.com/topiccrawl/topiccrawl/internal/logger"
)

// FetchDocument fetches pageURL with a configured collector and parses the
// response into a goquery document. Failed fetches are retried up to
// cfg.MaxRetries times with cfg.RetryDelay between attempts.
func FetchDocument(
	ctx context.Context,
	cfg *config.Crawler,
	pageURL string,
	log logger.Interface,
) (*goquery.Document, error) {
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Warn("retrying page fetch",
				"url", pageURL,
				"attempt", attempt,
				"error", lastErr,
			)
			select {
			case <-time.After(cfg.RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		doc, err := fetchOnce(ctx, cfg, pageURL)
		if err == nil {
			return doc, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, pageURL, lastErr)
}

func fetchOnce(ctx context.Context, cfg *config.Crawler, pageURL string) (*goquery.Document, error) {
	c, err := NewCollector(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var (
		body     []byte
		fetchErr error
	)

	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(r *colly.Response, e error) {
		fetchErr = e
	})

	if visitErr := c.Visit(pageURL); visitErr != nil {
		return nil, visitErr
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response from %s", pageURL)
	}

	doc, parseErr := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", pageURL, parseErr)
	}
	return doc, nil
}
