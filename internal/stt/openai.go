package stt

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Transcript is one best-effort transcription result. An empty transcript is
// a valid result; callers must not treat it as an error.
type Transcript struct {
	Text       string
	Confidence float64
}

// OpenAIClient transcribes recorded answers with Whisper.
type OpenAIClient struct {
	Client   *openai.Client
	apiKey   string
	model    string
	language string
}

// NewOpenAIClient constructs a Whisper client. The language hint may be a
// BCP-47 tag like "en-US"; only the 2-letter code is sent to the API.
func NewOpenAIClient(apiKey, language string) *OpenAIClient {
	return &OpenAIClient{
		Client:   openai.NewClient(apiKey),
		apiKey:   apiKey,
		model:    openai.Whisper1,
		language: isoLanguage(language),
	}
}

// isoLanguage reduces "en-US" style tags to the 2-letter code Whisper expects.
func isoLanguage(lang string) string {
	if len(lang) >= 2 {
		return strings.ToLower(lang[:2])
	}
	return "en"
}

// Transcribe sends one audio blob to Whisper. The filename carries the
// container extension the API uses for decoding.
func (c *OpenAIClient) Transcribe(ctx context.Context, audio []byte, filename string) (Transcript, error) {
	if c.apiKey == "" {
		return Transcript{}, fmt.Errorf("stt: openai api key missing")
	}
	if filename == "" {
		filename = "answer.webm"
	}
	resp, err := c.Client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		Reader:   bytes.NewReader(audio),
		FilePath: filename,
		Language: c.language,
	})
	if err != nil {
		return Transcript{}, fmt.Errorf("stt: transcription failed: %w", err)
	}
	// Whisper reports no per-utterance confidence; default to 1.0.
	return Transcript{Text: strings.TrimSpace(resp.Text), Confidence: 1.0}, nil
}
