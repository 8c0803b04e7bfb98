package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"contentai/internal/models"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelayMs = 2000
	defaultMaxDelayMs  = 10000
)

// GenerationService wraps a provider with bounded retries. Transient
// failures are retried with exponential backoff; auth failures are
// returned immediately.
type GenerationService struct {
	provider GenerationProvider
	retry    RetryStrategy
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewGenerationService creates the retrying gateway around provider.
func NewGenerationService(provider GenerationProvider) *GenerationService {
	return &GenerationService{
		provider: provider,
		retry: &SimpleRetryStrategy{
			MaxAttempts: defaultMaxAttempts,
			BaseDelayMs: defaultBaseDelayMs,
			MaxDelayMs:  defaultMaxDelayMs,
		},
		sleep: sleepCtx,
	}
}

// Provider exposes the wrapped provider.
func (s *GenerationService) Provider() GenerationProvider { return s.provider }

// Generate runs a full completion through the retry loop.
func (s *GenerationService) Generate(ctx context.Context, prompt models.PromptPair, params models.GenerationParams) (*GenerationResult, error) {
	var lastErr error
	for attempt := 1; ; attempt++ {
		result, err := s.provider.Generate(ctx, prompt, params)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, models.ErrProviderAuth) {
			return nil, err
		}
		lastErr = err

		backoff := s.retry.NextBackoff(attempt)
		if backoff < 0 {
			break
		}
		log.Warnf("Generation attempt %d failed (%v), retrying in %dms", attempt, err, backoff)
		if err := s.sleep(ctx, time.Duration(backoff)*time.Millisecond); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, lastErr)
}

// GenerateChunks opens a stream through the retry loop. Retries apply
// only to opening the stream; a failure mid-stream is delivered on the
// channel and not retried.
func (s *GenerationService) GenerateChunks(ctx context.Context, prompt models.PromptPair, params models.GenerationParams) (<-chan Chunk, error) {
	var lastErr error
	for attempt := 1; ; attempt++ {
		chunks, err := s.provider.GenerateChunks(ctx, prompt, params)
		if err == nil {
			return chunks, nil
		}
		if errors.Is(err, models.ErrProviderAuth) {
			return nil, err
		}
		lastErr = err

		backoff := s.retry.NextBackoff(attempt)
		if backoff < 0 {
			break
		}
		log.Warnf("Stream attempt %d failed (%v), retrying in %dms", attempt, err, backoff)
		if err := s.sleep(ctx, time.Duration(backoff)*time.Millisecond); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
