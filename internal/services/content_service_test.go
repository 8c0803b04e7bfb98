package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentai/internal/cache"
	"contentai/internal/models"
	"contentai/internal/quota"
	"contentai/internal/ratelimit"
)

func articleContent() string {
	return "# Test Title\n\nIntro paragraph with enough words to count here.\n\n" +
		"## First Section\n\nSome body text lives here and it ends properly.\n\n" +
		"## Conclusion\n\nA closing summary ends the piece cleanly."
}

func newTestContentService(provider GenerationProvider, limit, quotaTokens int) *ContentService {
	return NewContentService(ContentServiceDeps{
		Gateway:  newTestGateway(provider),
		Limiter:  ratelimit.New(limit, time.Minute),
		Quota:    quota.New(quotaTokens, 1000),
		Cache:    cache.New(),
		CacheTTL: time.Hour,
	})
}

func articleRequest() *models.GenerateRequest {
	return &models.GenerateRequest{
		ContentType: models.ContentTypeArticle,
		Context: map[string]any{
			"topic":    "Testing Go services",
			"audience": "backend engineers",
			"tone":     "Professional",
		},
		Specifications: map[string]any{
			"word_target": "800-1000",
		},
	}
}

func TestGeneratePipeline(t *testing.T) {
	provider := &fakeProvider{content: articleContent()}
	s := newTestContentService(provider, 10, 100000)

	resp, err := s.Generate(context.Background(), "client", articleRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Metadata)

	assert.Equal(t, "fake-model", resp.Metadata.Model)
	assert.Contains(t, resp.Metadata.Sections, "Conclusion")
	assert.Equal(t, 1, provider.calls)

	usage := s.Usage("client")
	assert.Equal(t, 42, usage.Tokens)
	assert.Equal(t, 1, usage.Requests)
}

func TestGenerateCacheHit(t *testing.T) {
	provider := &fakeProvider{content: articleContent()}
	s := newTestContentService(provider, 10, 100000)

	first, err := s.Generate(context.Background(), "client", articleRequest())
	require.NoError(t, err)

	second, err := s.Generate(context.Background(), "client", articleRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls, "second request must come from cache")
	assert.Equal(t, first, second)
}

func TestGenerateCacheMissOnFieldChange(t *testing.T) {
	provider := &fakeProvider{content: articleContent()}
	s := newTestContentService(provider, 10, 100000)

	_, err := s.Generate(context.Background(), "client", articleRequest())
	require.NoError(t, err)

	changed := articleRequest()
	changed.Specifications["word_target"] = 700
	_, err = s.Generate(context.Background(), "client", changed)
	require.NoError(t, err)

	assert.Equal(t, 2, provider.calls)
}

func TestGenerateValidationError(t *testing.T) {
	provider := &fakeProvider{}
	s := newTestContentService(provider, 10, 100000)

	req := articleRequest()
	delete(req.Context, "topic")

	_, err := s.Generate(context.Background(), "client", req)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, 0, provider.calls, "invalid requests never reach the provider")
}

func TestGenerateRateLimited(t *testing.T) {
	provider := &fakeProvider{content: articleContent()}
	s := newTestContentService(provider, 1, 100000)

	_, err := s.Generate(context.Background(), "client", articleRequest())
	require.NoError(t, err)

	_, err = s.Generate(context.Background(), "client", articleRequest())
	assert.ErrorIs(t, err, models.ErrRateLimited)
}

func TestGenerateQuotaExceeded(t *testing.T) {
	provider := &fakeProvider{content: articleContent()}
	s := newTestContentService(provider, 10, 100000)

	s.deps.Quota.RecordUsage("client", 100000)

	_, err := s.Generate(context.Background(), "client", articleRequest())
	assert.ErrorIs(t, err, models.ErrQuotaExceeded)
}

// A post-processing failure degrades to the raw generated content
// instead of failing the request; the generation is still billed.
func TestGeneratePostProcessDegradation(t *testing.T) {
	provider := &fakeProvider{content: articleContent()}
	s := newTestContentService(provider, 10, 100000)
	s.process = func(string, *models.GenerateRequest, *int, string) (*models.GenerateResponse, error) {
		return nil, errors.New("structure parse blew up")
	}

	resp, err := s.Generate(context.Background(), "client", articleRequest())
	require.NoError(t, err)

	assert.Equal(t, articleContent(), resp.Content)
	require.NotNil(t, resp.Metadata)
	assert.Equal(t, "fake-model", resp.Metadata.Model)
	assert.NotZero(t, resp.Metadata.WordCount)
	assert.Empty(t, resp.Metadata.Sections)

	usage := s.Usage("client")
	assert.Equal(t, 42, usage.Tokens)
	assert.Equal(t, 1, usage.Requests)
}

func TestGenerateStream(t *testing.T) {
	provider := &fakeProvider{chunks: []string{"Hello ", "streaming ", "world."}}
	s := newTestContentService(provider, 10, 100000)

	chunks, err := s.GenerateStream(context.Background(), "client", articleRequest())
	require.NoError(t, err)

	var got string
	for c := range chunks {
		require.NoError(t, c.Err)
		got += c.Text
	}
	assert.Equal(t, "Hello streaming world.", got)

	usage := s.Usage("client")
	assert.Equal(t, 1, usage.Requests)
}

func TestGenerateStreamValidationError(t *testing.T) {
	provider := &fakeProvider{}
	s := newTestContentService(provider, 10, 100000)

	req := articleRequest()
	req.ContentType = "poem"

	_, err := s.GenerateStream(context.Background(), "client", req)
	assert.ErrorIs(t, err, models.ErrUnsupportedContentType)
}
