package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentai/internal/models"
)

func falconServer(t *testing.T, status int, body map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate", r.URL.Path)

		var req falconRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Prompt)

		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
}

func TestFalconGenerate(t *testing.T) {
	srv := falconServer(t, http.StatusOK, map[string]any{"text": "falcon says hi."})
	defer srv.Close()

	p, err := NewFalconProvider(srv.URL, "", "", time.Second)
	require.NoError(t, err)

	result, err := p.Generate(context.Background(), models.PromptPair{System: "sys", User: "user"}, models.GenerationParams{})
	require.NoError(t, err)
	assert.Equal(t, "falcon says hi.", result.Content)
	assert.Nil(t, result.TokensUsed)
}

func TestFalconGenerateAlternateFields(t *testing.T) {
	srv := falconServer(t, http.StatusOK, map[string]any{"generated_text": "alt field."})
	defer srv.Close()

	p, err := NewFalconProvider(srv.URL, "", "", time.Second)
	require.NoError(t, err)

	result, err := p.Generate(context.Background(), models.PromptPair{}, models.GenerationParams{})
	require.NoError(t, err)
	assert.Equal(t, "alt field.", result.Content)
}

func TestFalconGenerateAuthError(t *testing.T) {
	srv := falconServer(t, http.StatusUnauthorized, map[string]any{"error": "nope"})
	defer srv.Close()

	p, err := NewFalconProvider(srv.URL, "bad-key", "", time.Second)
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), models.PromptPair{}, models.GenerationParams{})
	assert.ErrorIs(t, err, models.ErrProviderAuth)
}

func TestFalconGenerateChunksSynthesized(t *testing.T) {
	content := strings.Repeat("abcdefghij", 12) // 120 chars, 3 chunks of 50/50/20
	srv := falconServer(t, http.StatusOK, map[string]any{"text": content})
	defer srv.Close()

	p, err := NewFalconProvider(srv.URL, "", "", time.Second)
	require.NoError(t, err)
	assert.False(t, p.SupportsNativeStreaming())

	chunks, err := p.GenerateChunks(context.Background(), models.PromptPair{}, models.GenerationParams{})
	require.NoError(t, err)

	var parts []string
	for c := range chunks {
		require.NoError(t, c.Err)
		parts = append(parts, c.Text)
	}
	require.Len(t, parts, 3)
	assert.Len(t, parts[0], falconChunkSize)
	assert.Len(t, parts[1], falconChunkSize)
	assert.Len(t, parts[2], 20)
	assert.Equal(t, content, strings.Join(parts, ""))
}

func TestNewOpenAIProviderRejectsGoogleKey(t *testing.T) {
	_, err := NewOpenAIProvider("AIzaSyExampleGoogleKey", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrProviderAuth)
	assert.Contains(t, err.Error(), "Google API key")
}
