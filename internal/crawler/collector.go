// Package crawler provides the per-topic page crawler: it fetches a topic
// page and writes its overview, specifications, and downloadable assets
// under the topic's output directory.
package crawler

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	colly "github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/proxy"

	"github.com/topiccrawl/topiccrawl/internal/config"
)

// RandomDelayDivisor is used to calculate random delay from the rate limit.
const RandomDelayDivisor = 2

// HTTP transport defaults
const (
	defaultMaxIdleConns          = 100
	defaultMaxIdleConnsPerHost   = 10
	defaultIdleConnTimeout       = 90 * time.Second
	defaultResponseHeaderTimeout = 30 * time.Second
	defaultExpectContinueTimeout = 1 * time.Second
)

// NewCollector builds a collector configured from the crawler settings:
// user agent, request timeout, per-domain rate limit, optional round-robin
// proxy rotation, and transport tuning.
func NewCollector(ctx context.Context, cfg *config.Crawler) (*colly.Collector, error) {
	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.UserAgent(cfg.UserAgent),
		colly.MaxDepth(1),
	)

	c.SetRequestTimeout(cfg.RequestTimeout)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       cfg.RateLimit,
		RandomDelay: cfg.RateLimit / RandomDelayDivisor,
		Parallelism: cfg.Parallelism,
	}); err != nil {
		return nil, fmt.Errorf("failed to set rate limit: %w", err)
	}

	if len(cfg.ProxyURLs) > 0 {
		rp, err := proxy.RoundRobinProxySwitcher(cfg.ProxyURLs...)
		if err != nil {
			return nil, fmt.Errorf("failed to create proxy switcher: %w", err)
		}
		c.SetProxyFunc(rp)
	}

	c.WithTransport(&http.Transport{
		MaxIdleConns:          defaultMaxIdleConns,
		MaxIdleConnsPerHost:   defaultMaxIdleConnsPerHost,
		IdleConnTimeout:       defaultIdleConnTimeout,
		ResponseHeaderTimeout: defaultResponseHeaderTimeout,
		ExpectContinueTimeout: defaultExpectContinueTimeout,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.TLSInsecureSkipVerify, //nolint:gosec // operator opt-in
		},
	})

	return c, nil
}
