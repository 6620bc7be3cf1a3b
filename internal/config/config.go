package config

import (
	"fmt"
	"net/url"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Load decodes the application configuration from the given Viper instance.
// Viper merges defaults, the optional config file, and environment variables;
// decoding uses mapstructure with duration and comma-separated-list hooks.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if decodeErr := decoder.Decode(v.AllSettings()); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", decodeErr)
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Site.BaseURL == "" {
		return fmt.Errorf("%w: site.base_url", ErrMissingRequiredField)
	}
	parsed, err := url.Parse(c.Site.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: site.base_url %q", ErrInvalidURL, c.Site.BaseURL)
	}

	if c.Crawler.RequestTimeout <= 0 {
		return fmt.Errorf("%w: crawler.request_timeout must be positive", ErrInvalidValue)
	}
	if c.Crawler.Parallelism <= 0 {
		return fmt.Errorf("%w: crawler.parallelism must be positive", ErrInvalidValue)
	}
	if c.Crawler.MaxRetries < 0 {
		return fmt.Errorf("%w: crawler.max_retries cannot be negative", ErrInvalidValue)
	}

	if c.Batch.GroupCount <= 0 {
		return fmt.Errorf("%w: batch.group_count must be positive", ErrInvalidValue)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("%w: batch.workers must be positive", ErrInvalidValue)
	}

	if c.Download.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: download.max_body_bytes must be positive", ErrInvalidValue)
	}

	return nil
}
