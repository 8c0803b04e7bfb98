package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentai/internal/models"
)

func TestWordTarget(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int
	}{
		{"range string", "800-1000", 900},
		{"uneven range floors", "500-700", 600},
		{"range with spaces", " 400 - 600 ", 500},
		{"plain int", 750, 750},
		{"float from json", float64(600), 600},
		{"int below minimum clamps", 10, 50},
		{"malformed string", "about a thousand", 900},
		{"reversed range", "1000-800", 900},
		{"negative range", "-100-200", 900},
		{"empty string", "", 900},
		{"nil", nil, 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WordTarget(tt.raw))
		})
	}
}

func TestTone(t *testing.T) {
	assert.Equal(t, "professional", Tone("Professional"))
	assert.Equal(t, "formal", Tone("  FORMAL  "))
	assert.Equal(t, "engaging", Tone("sarcastic"))
	assert.Equal(t, "engaging", Tone(""))
}

func TestRequestNormalizesFields(t *testing.T) {
	req := &models.GenerateRequest{
		ContentType: models.ContentTypeArticle,
		Context: map[string]any{
			"topic":    "  Kubernetes networking  ",
			"audience": "platform engineers",
			"tone":     "Professional",
		},
		Specifications: map[string]any{
			"word_target": "800-1000",
			"expertise":   "  Advanced ",
			"seo_enabled": true,
		},
	}

	got := Request(req)

	assert.Equal(t, "Kubernetes networking", got.Context["topic"])
	assert.Equal(t, "professional", got.Context["tone"])
	assert.Equal(t, 900, got.Specifications["word_target"])
	assert.Equal(t, "advanced", got.Specifications["expertise"])
	assert.Equal(t, true, got.Specifications["seo_enabled"])

	// input request untouched
	assert.Equal(t, "  Kubernetes networking  ", req.Context["topic"])
	assert.Equal(t, "800-1000", req.Specifications["word_target"])
}

func TestRequestFillsDefaultParams(t *testing.T) {
	tests := []struct {
		contentType models.ContentType
		want        models.GenerationParams
	}{
		{models.ContentTypeArticle, models.GenerationParams{Temperature: 0.7, MaxOutputTokens: 2000, TopP: 0.9}},
		{models.ContentTypeMessage, models.GenerationParams{Temperature: 0.6, MaxOutputTokens: 1500, TopP: 0.85}},
		{models.ContentTypeShortPost, models.GenerationParams{Temperature: 0.8, MaxOutputTokens: 500, TopP: 0.95}},
		{models.ContentTypeNetworkPost, models.GenerationParams{Temperature: 0.65, MaxOutputTokens: 800, TopP: 0.9}},
		{models.ContentTypeApplicationLetter, models.GenerationParams{Temperature: 0.55, MaxOutputTokens: 1200, TopP: 0.85}},
	}
	for _, tt := range tests {
		t.Run(string(tt.contentType), func(t *testing.T) {
			got := Request(&models.GenerateRequest{ContentType: tt.contentType})
			require.NotNil(t, got.GenerationParams)
			assert.Equal(t, tt.want, *got.GenerationParams)
		})
	}
}

func TestRequestKeepsExplicitParams(t *testing.T) {
	params := &models.GenerationParams{Temperature: 0.3, MaxOutputTokens: 100, TopP: 0.5}
	got := Request(&models.GenerateRequest{
		ContentType:      models.ContentTypeArticle,
		GenerationParams: params,
	})
	assert.Equal(t, params, got.GenerationParams)
}
