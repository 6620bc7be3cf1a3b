// Package download fetches page assets (datasheets, images, diagrams) and
// records a metadata entry per downloaded file.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/topiccrawl/topiccrawl/internal/logger"
)

// Allowed content type prefixes for downloaded assets.
var allowedTypes = []string{
	"application/pdf",
	"image/",
	"text/csv",
	"application/csv",
	"text/html",
	"video/",
}

// Common errors returned by the download package.
var (
	// ErrUnsupportedScheme is returned for non-HTTP asset URLs.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
	// ErrDisallowedType is returned when the response content type is not
	// on the allow-list.
	ErrDisallowedType = errors.New("disallowed content type")
	// ErrBodyTooLarge is returned when an asset exceeds the size cap.
	ErrBodyTooLarge = errors.New("response body too large")
)

// Config holds downloader settings.
type Config struct {
	// Timeout bounds a single download.
	Timeout time.Duration
	// MaxBodyBytes limits the size of a downloaded asset.
	MaxBodyBytes int64
	// UserAgent is sent on every request.
	UserAgent string
	// Referer is sent on every request when non-empty.
	Referer string
}

// Downloader fetches assets over HTTP.
type Downloader struct {
	client       *resty.Client
	logger       logger.Interface
	maxBodyBytes int64
}

// New creates a downloader with browser-like request headers.
func New(cfg Config, log logger.Interface) *Downloader {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.5")
	if cfg.Referer != "" {
		client.SetHeader("Referer", cfg.Referer)
	}

	return &Downloader{
		client:       client,
		logger:       log.WithComponent("download"),
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// Fetch downloads rawURL into folder and returns the metadata record for the
// file. Options override the derived filename and annotate the record.
func (d *Downloader) Fetch(ctx context.Context, rawURL, folder, fileType string, opts ...Option) (*Metadata, error) {
	options := applyOptions(opts)

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, rawURL)
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP %d while downloading %s: %s", resp.StatusCode(), fileType, rawURL)
	}

	contentType := strings.ToLower(resp.Header().Get("Content-Type"))
	if !typeAllowed(contentType) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrDisallowedType, contentType, rawURL)
	}

	data, err := d.readBody(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rawURL, err)
	}

	filename := options.filename
	if filename == "" {
		filename = path.Base(parsed.Path)
	}
	filename = resolveFilename(filename, contentType, data)

	if mkErr := os.MkdirAll(folder, 0o755); mkErr != nil {
		return nil, fmt.Errorf("failed to create %s: %w", folder, mkErr)
	}
	filePath := filepath.Join(folder, filename)
	if writeErr := os.WriteFile(filePath, data, 0o644); writeErr != nil {
		return nil, fmt.Errorf("failed to write %s: %w", filePath, writeErr)
	}

	d.logger.Debug("downloaded asset",
		"file_type", fileType,
		"url", rawURL,
		"path", filePath,
		"bytes", len(data),
	)

	date := options.date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	return &Metadata{
		Name:        filename,
		FilePath:    filepath.ToSlash(filePath),
		Version:     options.version,
		Date:        date,
		URL:         rawURL,
		Language:    defaultLanguage,
		Description: options.description,
	}, nil
}

// readBody reads the response body up to the configured size cap.
func (d *Downloader) readBody(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, d.maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > d.maxBodyBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, d.maxBodyBytes)
	}
	return data, nil
}

func typeAllowed(contentType string) bool {
	for _, prefix := range allowedTypes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

// Option customizes a single download.
type Option func(*options)

type options struct {
	filename    string
	version     string
	date        string
	description string
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFilename overrides the filename derived from the URL.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithVersion records an asset version on the metadata entry.
func WithVersion(version string) Option {
	return func(o *options) { o.version = version }
}

// WithDate records an asset date on the metadata entry.
func WithDate(date string) Option {
	return func(o *options) { o.date = date }
}

// WithDescription records a description on the metadata entry.
func WithDescription(description string) Option {
	return func(o *options) { o.description = description }
}
