package crawler

import "errors"

// Common errors returned by the crawler package.
var (
	// ErrFetchFailed is returned when a page fetch exhausts its retries.
	ErrFetchFailed = errors.New("page fetch failed")
	// ErrInvalidURL is returned for an unparseable page URL.
	ErrInvalidURL = errors.New("invalid page URL")
)
