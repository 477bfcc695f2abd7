package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient is the alternative panel model, selected with LLM_PROVIDER=gemini.
type GeminiClient struct {
	apiKey string
	model  string
}

// NewGeminiClient constructs a client for the given model (gemini-2.0-flash by default).
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiClient{apiKey: apiKey, model: model}
}

// Complete generates the next panel turn from the full conversation.
// Assistant messages map to the "model" role, candidate messages to "user".
func (c *GeminiClient) Complete(ctx context.Context, msgs []Message) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("llm: gemini api key missing")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("llm: create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SetTemperature(0.7)

	var system strings.Builder
	var contents []*genai.Content
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			system.WriteString(m.Content)
		case RoleAssistant:
			contents = append(contents, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(m.Content)}})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(m.Content)}})
		}
	}
	if system.Len() > 0 {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system.String())}}
	}

	// Gemini requires at least one user part per request.
	parts := []genai.Part{genai.Text("Please begin.")}
	cs := model.StartChat()
	if len(contents) > 0 {
		cs.History = contents[:len(contents)-1]
		parts = contents[len(contents)-1].Parts
	}
	resp, err := cs.SendMessage(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("llm: gemini call failed: %w", err)
	}
	return geminiText(resp)
}

// CompleteJSON asks the model for a strict JSON object and returns the raw body.
func (c *GeminiClient) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("llm: gemini api key missing")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("llm: create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("llm: gemini call failed: %w", err)
	}
	return geminiText(resp)
}

func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("llm: empty gemini response")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("llm: unexpected gemini response part")
	}
	return strings.TrimSpace(string(text)), nil
}
