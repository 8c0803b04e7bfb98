package models

import (
	"errors"
)

var (
	// ErrValidation marks client input that fails schema validation.
	// Surfaced immediately; the request never reaches a provider.
	ErrValidation = errors.New("validation error")

	// ErrUnsupportedContentType marks a content type outside the five
	// supported variants.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrRateLimited and ErrQuotaExceeded are expected outcomes, not
	// faults; clients may retry later.
	ErrRateLimited   = errors.New("rate limit exceeded")
	ErrQuotaExceeded = errors.New("daily quota exceeded")

	// ErrProviderAuth marks a bad or misconfigured provider credential.
	// Never retried.
	ErrProviderAuth = errors.New("provider authentication failed")

	// ErrProviderUnavailable marks a transient provider failure after
	// retries are exhausted.
	ErrProviderUnavailable = errors.New("generation temporarily unavailable")
)
