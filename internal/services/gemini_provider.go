package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"contentai/internal/models"
)

// GeminiProvider generates content through the Google Gemini API, with
// native streaming support.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: Gemini API key not configured (set GEMINI_API_KEY)", models.ErrProviderAuth)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	log.Infof("Gemini provider initialized with model %s", model)
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string                  { return "gemini" }
func (p *GeminiProvider) ModelName() string             { return p.model }
func (p *GeminiProvider) SupportsNativeStreaming() bool { return true }

// Generate requests a full completion.
func (p *GeminiProvider) Generate(ctx context.Context, prompt models.PromptPair, params models.GenerationParams) (*GenerationResult, error) {
	m := p.generativeModel(prompt, params)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt.User))
	if err != nil {
		return nil, p.classify(err)
	}

	content := flattenCandidates(resp)
	if content == "" {
		return nil, fmt.Errorf("Gemini returned no candidate content")
	}

	result := &GenerationResult{Content: content, Model: p.model}
	if resp.UsageMetadata != nil {
		tokens := int(resp.UsageMetadata.TotalTokenCount)
		result.TokensUsed = &tokens
	}
	return result, nil
}

// GenerateChunks streams candidate parts in arrival order. The returned
// channel is closed when the stream ends or ctx is cancelled.
func (p *GeminiProvider) GenerateChunks(ctx context.Context, prompt models.PromptPair, params models.GenerationParams) (<-chan Chunk, error) {
	m := p.generativeModel(prompt, params)
	iter := m.GenerateContentStream(ctx, genai.Text(prompt.User))

	out := make(chan Chunk)
	go func() {
		defer close(out)
		for {
			resp, err := iter.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				select {
				case out <- Chunk{Err: p.classify(err)}:
				case <-ctx.Done():
				}
				return
			}
			text := flattenCandidates(resp)
			if text == "" {
				continue
			}
			select {
			case out <- Chunk{Text: text}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (p *GeminiProvider) generativeModel(prompt models.PromptPair, params models.GenerationParams) *genai.GenerativeModel {
	m := p.client.GenerativeModel(p.model)
	m.SetTemperature(float32(params.Temperature))
	m.SetTopP(float32(params.TopP))
	m.SetMaxOutputTokens(int32(params.MaxOutputTokens))
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(prompt.System)}}
	return m
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

func (p *GeminiProvider) classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return fmt.Errorf("%w: Gemini rejected the API key: %v", models.ErrProviderAuth, apiErr.Message)
		}
	}
	if strings.Contains(err.Error(), "API key not valid") {
		return fmt.Errorf("%w: Gemini rejected the API key", models.ErrProviderAuth)
	}
	return fmt.Errorf("Gemini API error: %w", err)
}

func flattenCandidates(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}

var _ GenerationProvider = (*GeminiProvider)(nil)
