package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"contentai/internal/models"
)

// OpenAIProvider generates content through the OpenAI chat completions
// API, with native streaming support.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates an OpenAI-backed provider. A key with the
// Google "AIza" prefix is rejected up front so the misconfiguration
// surfaces as an actionable auth error instead of a provider 401.
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key not configured (set OPENAI_API_KEY)", models.ErrProviderAuth)
	}
	if strings.HasPrefix(apiKey, "AIza") {
		return nil, fmt.Errorf("%w: the configured OpenAI key looks like a Google API key; set OPENAI_API_KEY or switch the provider to gemini", models.ErrProviderAuth)
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Name() string                  { return "openai" }
func (p *OpenAIProvider) ModelName() string             { return p.model }
func (p *OpenAIProvider) SupportsNativeStreaming() bool { return true }

// Generate requests a full completion.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt models.PromptPair, params models.GenerationParams) (*GenerationResult, error) {
	resp, err := p.client.CreateChatCompletion(ctx, p.request(prompt, params, false))
	if err != nil {
		return nil, p.classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("OpenAI returned no completion choices")
	}

	tokens := resp.Usage.TotalTokens
	return &GenerationResult{
		Content:    resp.Choices[0].Message.Content,
		TokensUsed: &tokens,
		Model:      p.model,
	}, nil
}

// GenerateChunks streams completion deltas in arrival order. The
// returned channel is closed when the stream ends or ctx is cancelled.
func (p *OpenAIProvider) GenerateChunks(ctx context.Context, prompt models.PromptPair, params models.GenerationParams) (<-chan Chunk, error) {
	stream, err := p.client.CreateChatCompletionStream(ctx, p.request(prompt, params, true))
	if err != nil {
		return nil, p.classify(err)
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)
		defer stream.Close()
		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				select {
				case out <- Chunk{Err: p.classify(err)}:
				case <-ctx.Done():
				}
				return
			}
			if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
				continue
			}
			select {
			case out <- Chunk{Text: resp.Choices[0].Delta.Content}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (p *OpenAIProvider) request(prompt models.PromptPair, params models.GenerationParams, stream bool) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		Temperature: float32(params.Temperature),
		MaxTokens:   params.MaxOutputTokens,
		TopP:        float32(params.TopP),
		Stream:      stream,
	}
}

// classify maps API failures onto the service error taxonomy: 401/403
// become auth errors (never retried), everything else is left as-is for
// the retry layer.
func (p *OpenAIProvider) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return fmt.Errorf("%w: OpenAI rejected the API key: %v", models.ErrProviderAuth, apiErr.Message)
		}
	}
	return fmt.Errorf("OpenAI API error: %w", err)
}

var _ GenerationProvider = (*OpenAIProvider)(nil)
