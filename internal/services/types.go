package services

import (
	"context"

	"contentai/internal/models"
)

// Chunk is one unit of streamed output. Err is non-nil only on the
// final chunk of a failed stream.
type Chunk struct {
	Text string
	Err  error
}

// GenerationResult is the raw provider output before post-processing.
// TokensUsed is nil when the provider does not report usage.
type GenerationResult struct {
	Content    string
	TokensUsed *int
	Model      string
}

// GenerationProvider abstracts a text-generation backend. Generate
// blocks until the full completion is available; GenerateChunks returns
// an ordered channel that is closed when the stream ends. Providers
// without native streaming synthesize chunks from a full completion and
// report that via SupportsNativeStreaming.
type GenerationProvider interface {
	Name() string
	ModelName() string
	SupportsNativeStreaming() bool
	Generate(ctx context.Context, prompt models.PromptPair, params models.GenerationParams) (*GenerationResult, error)
	GenerateChunks(ctx context.Context, prompt models.PromptPair, params models.GenerationParams) (<-chan Chunk, error)
}

// RetryStrategy decides the wait after a failed attempt. attempt is the
// 1-based index of the attempt that just failed; a negative return
// means stop retrying.
type RetryStrategy interface {
	NextBackoff(attempt int) int64 // ms
}

// SimpleRetryStrategy provides exponential backoff: BaseDelayMs doubled
// per attempt, capped at MaxDelayMs, stopping after MaxAttempts total
// attempts.
type SimpleRetryStrategy struct {
	MaxAttempts int
	BaseDelayMs int64
	MaxDelayMs  int64
}

// NextBackoff calculates the next backoff duration in milliseconds.
func (s *SimpleRetryStrategy) NextBackoff(attempt int) int64 {
	if s.MaxAttempts <= 0 || attempt >= s.MaxAttempts {
		return -1
	}
	backoff := s.BaseDelayMs * (1 << (attempt - 1))
	if s.MaxDelayMs > 0 && backoff > s.MaxDelayMs {
		backoff = s.MaxDelayMs
	}
	return backoff
}
