package domain

import "errors"

var (
	// ErrCatalogUnavailable is returned when the catalog source cannot be read
	ErrCatalogUnavailable = errors.New("catalog source unavailable")

	// ErrMissingColumn is returned when the catalog is missing a required column
	ErrMissingColumn = errors.New("catalog missing required column")

	// ErrNoMatches is returned when a recommendation call legitimately has
	// no candidates: an empty filtered subset, or an unknown reference
	// product in product-based mode. Callers render this as "no results".
	ErrNoMatches = errors.New("no matching products")

	// ErrRankingFailed is returned when similarity computation breaks
	// unexpectedly. Callers degrade to an empty result with a warning.
	ErrRankingFailed = errors.New("similarity ranking failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrSummaryUnavailable is returned when the summarization backend
	// cannot produce a summary and the caller should fall back to an excerpt
	ErrSummaryUnavailable = errors.New("summary unavailable")

	// ErrUnauthorized is returned when the summarization backend rejects
	// the configured credential
	ErrUnauthorized = errors.New("summarization backend rejected credentials")

	// ErrRateLimited is returned when the summarization backend throttles us
	ErrRateLimited = errors.New("summarization backend rate limit exceeded")
)
