package nlsql

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/apperr"
)

// Completer is the boundary to the hosted language model: one prompt in,
// one raw reply out. No streaming.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient implements Completer against an OpenAI-compatible endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client: &client,
		model:  model,
	}
}

// Complete sends the prompt as a single user message. Temperature is pinned
// to zero so repeated invocations with the same input stay maximally
// reproducible.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := (*c.client).Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", apperr.UpstreamModel("language model call failed", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", apperr.UpstreamModel("language model returned no content", nil)
	}

	return resp.Choices[0].Message.Content, nil
}
