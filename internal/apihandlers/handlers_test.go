package apihandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentai/internal/app"
	"contentai/internal/cache"
	"contentai/internal/config"
	"contentai/internal/models"
	"contentai/internal/pdf"
	"contentai/internal/quota"
	"contentai/internal/ratelimit"
	"contentai/internal/services"
)

type stubProvider struct {
	content string
	chunks  []string
}

func (s *stubProvider) Name() string                  { return "stub" }
func (s *stubProvider) ModelName() string             { return "stub-model" }
func (s *stubProvider) SupportsNativeStreaming() bool { return false }

func (s *stubProvider) Generate(ctx context.Context, prompt models.PromptPair, params models.GenerationParams) (*services.GenerationResult, error) {
	tokens := 17
	return &services.GenerationResult{Content: s.content, TokensUsed: &tokens, Model: s.ModelName()}, nil
}

func (s *stubProvider) GenerateChunks(ctx context.Context, prompt models.PromptPair, params models.GenerationParams) (<-chan services.Chunk, error) {
	out := make(chan services.Chunk)
	go func() {
		defer close(out)
		for _, text := range s.chunks {
			select {
			case out <- services.Chunk{Text: text}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

var _ services.GenerationProvider = (*stubProvider)(nil)

func newTestRouter(t *testing.T, provider services.GenerationProvider, maxRequests int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	limiter := ratelimit.New(maxRequests, time.Minute)
	tracker := quota.New(100000, 1000)
	appInstance := &app.App{
		Config:   &config.Config{},
		Provider: provider,
		Gateway:  services.NewGenerationService(provider),
		Limiter:  limiter,
		Quota:    tracker,
		Cache:    cache.New(),
	}
	appInstance.ContentService = services.NewContentService(services.ContentServiceDeps{
		Gateway:  appInstance.Gateway,
		Limiter:  limiter,
		Quota:    tracker,
		Cache:    appInstance.Cache,
		CacheTTL: time.Hour,
	})
	appInstance.PDFRenderer = pdf.NewRenderer()

	h := NewAPIHandler(appInstance)
	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/generate", h.GenerateHandler)
	v1.GET("/generate/stream", h.StreamHandler)
	v1.POST("/export/pdf", h.ExportPDFHandler)
	v1.GET("/usage", h.UsageHandler)
	router.GET("/health", h.HealthHandler)
	return router
}

func generateBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"content_type": "article",
		"context": map[string]any{
			"topic":    "Structured logging",
			"audience": "Go developers",
			"tone":     "professional",
		},
		"specifications": map[string]any{
			"word_target": 900,
		},
	})
	require.NoError(t, err)
	return body
}

func TestGenerateHandlerOK(t *testing.T) {
	provider := &stubProvider{content: "# Title\n\n## Body\n\nText ends here.\n\n## Conclusion\n\nDone now."}
	router := newTestRouter(t, provider, 10)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewReader(generateBody(t)))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.GenerateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Content)
	require.NotNil(t, resp.Data.Metadata)
	assert.Equal(t, "stub-model", resp.Data.Metadata.Model)
}

func TestGenerateHandlerInvalidBody(t *testing.T) {
	router := newTestRouter(t, &stubProvider{}, 10)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader("{not json"))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bad_request", resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Message)
}

func TestGenerateHandlerValidationError(t *testing.T) {
	router := newTestRouter(t, &stubProvider{}, 10)

	body, _ := json.Marshal(map[string]any{
		"content_type":   "poem",
		"context":        map[string]any{"x": "y"},
		"specifications": map[string]any{"x": "y"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateHandlerRateLimited(t *testing.T) {
	provider := &stubProvider{content: "Fine content ends here."}
	router := newTestRouter(t, provider, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewReader(generateBody(t))))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewReader(generateBody(t))))
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limited", resp.Error.Code)
}

func TestStreamHandler(t *testing.T) {
	provider := &stubProvider{chunks: []string{"Hello ", "world."}}
	router := newTestRouter(t, provider, 10)

	data := url.QueryEscape(string(generateBody(t)))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/generate/stream?data="+data, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	body := w.Body.String()
	assert.Contains(t, body, `data: {"content":"Hello "}`)
	assert.Contains(t, body, `data: {"content":"world."}`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(body), "data: [DONE]"))
}

func TestStreamHandlerMissingData(t *testing.T) {
	router := newTestRouter(t, &stubProvider{}, 10)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/generate/stream", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportPDFHandler(t *testing.T) {
	router := newTestRouter(t, &stubProvider{}, 10)

	body, _ := json.Marshal(models.ExportPDFRequest{
		Content:     "# Report\n\nSome generated body text.",
		ContentType: models.ContentTypeArticle,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/export/pdf", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestExportPDFHandlerMissingContent(t *testing.T) {
	router := newTestRouter(t, &stubProvider{}, 10)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/export/pdf", strings.NewReader(`{"content_type":"article"}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsageHandler(t *testing.T) {
	provider := &stubProvider{content: "Counted content ends here."}
	router := newTestRouter(t, provider, 10)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewReader(generateBody(t))))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data quota.Usage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 17, resp.Data.Tokens)
	assert.Equal(t, 1, resp.Data.Requests)
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter(t, &stubProvider{}, 10)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"provider":"stub"`)
}
