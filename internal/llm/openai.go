package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient drives panel turns and the final evaluation over the OpenAI
// chat completions API.
type OpenAIClient struct {
	Client *openai.Client
	apiKey string
	model  string
}

// NewOpenAIClient constructs a client for the given model (gpt-4o by default).
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIClient{Client: openai.NewClient(apiKey), apiKey: apiKey, model: model}
}

func toChatMessages(msgs []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

// Complete generates the next panel turn from the full conversation.
func (c *OpenAIClient) Complete(ctx context.Context, msgs []Message) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("llm: openai api key missing")
	}
	resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toChatMessages(msgs),
		MaxTokens:   256,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("llm: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm: empty choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// CompleteJSON asks the model for a strict JSON object and returns the raw body.
func (c *OpenAIClient) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("llm: openai api key missing")
	}
	resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: RoleSystem, Content: system},
			{Role: RoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: json completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm: empty choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
