package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"contentai/internal/cache"
	"contentai/internal/models"
	"contentai/internal/normalize"
	"contentai/internal/postprocess"
	"contentai/internal/prompts"
	"contentai/internal/quota"
	"contentai/internal/ratelimit"
	"contentai/internal/usage"
)

const defaultCacheTTL = time.Hour

// ContentServiceDeps carries the collaborators of the generation
// pipeline. Usage may be nil; the other fields are required.
type ContentServiceDeps struct {
	Gateway  *GenerationService
	Limiter  *ratelimit.Limiter
	Quota    *quota.Tracker
	Cache    *cache.Cache
	Usage    *usage.Queue
	CacheTTL time.Duration
}

// ContentService runs the full request pipeline: admission (rate limit,
// quota), validation, normalization, cache lookup, prompt construction,
// generation with retries, post-processing, and usage recording.
type ContentService struct {
	deps    ContentServiceDeps
	process func(content string, req *models.GenerateRequest, tokensUsed *int, model string) (*models.GenerateResponse, error)
}

// NewContentService creates the pipeline service.
func NewContentService(deps ContentServiceDeps) *ContentService {
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = defaultCacheTTL
	}
	return &ContentService{deps: deps, process: postprocess.Process}
}

// Generate runs one request through the whole pipeline and returns the
// post-processed response.
func (s *ContentService) Generate(ctx context.Context, clientKey string, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	normalized, err := s.admit(clientKey, req)
	if err != nil {
		return nil, err
	}

	key, keyErr := cacheKey(normalized)
	if keyErr == nil {
		if cached, ok := s.deps.Cache.Get(key); ok {
			if resp, ok := cached.(*models.GenerateResponse); ok {
				log.Infof("Cache hit for %s request from %s", normalized.ContentType, clientKey)
				return resp, nil
			}
		}
	} else {
		log.Warnf("Cache key derivation failed: %v", keyErr)
	}

	prompt, err := prompts.Build(normalized)
	if err != nil {
		return nil, err
	}

	result, err := s.deps.Gateway.Generate(ctx, prompt, *normalized.GenerationParams)
	if err != nil {
		return nil, err
	}

	resp, perr := s.process(result.Content, normalized, result.TokensUsed, result.Model)
	if perr != nil {
		// Generated content is still billable and useful; degrade to
		// the raw text rather than failing the request.
		log.Errorf("Post-processing failed, returning raw content: %v", perr)
		resp = &models.GenerateResponse{
			Content: result.Content,
			Metadata: &models.ContentMetadata{
				TokensUsed: result.TokensUsed,
				Model:      result.Model,
				WordCount:  postprocess.CountWords(result.Content),
			},
		}
	}

	s.recordUsage(clientKey, normalized.ContentType, result)

	if keyErr == nil {
		s.deps.Cache.Set(key, resp, s.deps.CacheTTL)
	}
	return resp, nil
}

// GenerateStream runs admission and prompt construction, then opens a
// provider stream. Streamed output skips post-processing and caching.
func (s *ContentService) GenerateStream(ctx context.Context, clientKey string, req *models.GenerateRequest) (<-chan Chunk, error) {
	normalized, err := s.admit(clientKey, req)
	if err != nil {
		return nil, err
	}

	prompt, err := prompts.Build(normalized)
	if err != nil {
		return nil, err
	}

	chunks, err := s.deps.Gateway.GenerateChunks(ctx, prompt, *normalized.GenerationParams)
	if err != nil {
		return nil, err
	}

	// Token usage is unknown for streams; count the request only.
	s.deps.Quota.RecordUsage(clientKey, 0)
	return chunks, nil
}

// Usage returns clientKey's consumption against the daily ceilings.
func (s *ContentService) Usage(clientKey string) quota.Usage {
	return s.deps.Quota.GetUsage(clientKey)
}

// admit applies rate limiting, quota, validation, and normalization.
func (s *ContentService) admit(clientKey string, req *models.GenerateRequest) (*models.GenerateRequest, error) {
	if !s.deps.Limiter.IsAllowed(clientKey) {
		return nil, fmt.Errorf("%w: too many requests, please try again later", models.ErrRateLimited)
	}
	if !s.deps.Quota.CheckQuota(clientKey) {
		return nil, fmt.Errorf("%w: daily usage limit reached", models.ErrQuotaExceeded)
	}
	if err := models.ValidateRequest(req); err != nil {
		return nil, err
	}
	return normalize.Request(req), nil
}

// recordUsage updates the in-process quota counters and hands the
// record to the background queue without blocking the response.
func (s *ContentService) recordUsage(clientKey string, contentType models.ContentType, result *GenerationResult) {
	tokens := 0
	if result.TokensUsed != nil {
		tokens = *result.TokensUsed
	}
	s.deps.Quota.RecordUsage(clientKey, tokens)

	rec := models.UsageRecord{
		ClientKey:   clientKey,
		Tokens:      tokens,
		ContentType: contentType,
		Model:       result.Model,
		RecordedAt:  time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.deps.Usage.EnqueueUsageRecord(ctx, rec); err != nil {
			log.Warnf("Failed to enqueue usage record: %v", err)
		}
	}()
}

// cacheKey hashes every normalized field of the request, so any change
// to context, specifications, or sampling parameters misses the cache.
func cacheKey(req *models.GenerateRequest) (string, error) {
	return cache.RequestKey(string(req.ContentType), map[string]any{
		"context":           req.Context,
		"specifications":    req.Specifications,
		"generation_params": req.GenerationParams,
	})
}
