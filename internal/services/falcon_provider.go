package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"contentai/internal/models"
)

const (
	falconChunkSize  = 50
	falconChunkDelay = 10 * time.Millisecond
)

// FalconProvider generates content through a self-hosted Falcon
// inference endpoint. The endpoint has no streaming API, so chunked
// output is synthesized from the full completion.
type FalconProvider struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
}

// NewFalconProvider creates a provider for the inference server at
// baseURL. apiKey is optional; when set it is sent as a bearer token.
func NewFalconProvider(baseURL, apiKey, model string, timeout time.Duration) (*FalconProvider, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("falcon base URL not configured (set FALCON_API_BASE_URL)")
	}
	if model == "" {
		model = "falcon-7b-instruct"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &FalconProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpc:   &http.Client{Timeout: timeout},
	}, nil
}

func (p *FalconProvider) Name() string                  { return "falcon" }
func (p *FalconProvider) ModelName() string             { return p.model }
func (p *FalconProvider) SupportsNativeStreaming() bool { return false }

type falconRequest struct {
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	TopP        float64 `json:"top_p"`
}

// Generate posts the prompt to the inference endpoint and extracts the
// completion text from whichever field the server populated.
func (p *FalconProvider) Generate(ctx context.Context, prompt models.PromptPair, params models.GenerationParams) (*GenerationResult, error) {
	body, err := json.Marshal(falconRequest{
		Prompt:      prompt.System + "\n\n" + prompt.User,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxOutputTokens,
		TopP:        params.TopP,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal falcon request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build falcon request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("falcon request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read falcon response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: falcon endpoint rejected the API key", models.ErrProviderAuth)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("falcon endpoint returned status %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}

	content, err := parseFalconContent(raw)
	if err != nil {
		return nil, err
	}
	return &GenerationResult{Content: content, Model: p.model}, nil
}

// GenerateChunks fetches the full completion, then emits fixed-size
// slices with a short pacing delay so SSE consumers see incremental
// output.
func (p *FalconProvider) GenerateChunks(ctx context.Context, prompt models.PromptPair, params models.GenerationParams) (<-chan Chunk, error) {
	result, err := p.Generate(ctx, prompt, params)
	if err != nil {
		return nil, err
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)
		content := result.Content
		for start := 0; start < len(content); start += falconChunkSize {
			end := start + falconChunkSize
			if end > len(content) {
				end = len(content)
			}
			select {
			case out <- Chunk{Text: content[start:end]}:
			case <-ctx.Done():
				return
			}
			select {
			case <-time.After(falconChunkDelay):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// parseFalconContent accepts the common response shapes self-hosted
// inference servers use: a top-level text field under a handful of
// names, or an OpenAI-style choices array.
func parseFalconContent(raw []byte) (string, error) {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("decode falcon response: %w", err)
	}

	for _, key := range []string{"text", "content", "response", "output", "generated_text"} {
		if s, ok := body[key].(string); ok && s != "" {
			return s, nil
		}
	}
	if choices, ok := body["choices"].([]any); ok && len(choices) > 0 {
		if choice, ok := choices[0].(map[string]any); ok {
			if s, ok := choice["text"].(string); ok && s != "" {
				return s, nil
			}
		}
	}
	return "", fmt.Errorf("falcon response contained no recognizable content field")
}

var _ GenerationProvider = (*FalconProvider)(nil)
