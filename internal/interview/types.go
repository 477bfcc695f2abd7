package interview

import (
	"context"

	"github.com/chadiek/interview-demo/internal/llm"
	"github.com/chadiek/interview-demo/internal/stt"
	"github.com/chadiek/interview-demo/internal/tts"
)

// Transcriber converts one recorded answer into best-effort text.
// An empty transcript is a valid result, not an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (stt.Transcript, error)
}

// PanelModel generates panel turns and structured evaluations.
type PanelModel interface {
	Complete(ctx context.Context, msgs []llm.Message) (string, error)
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// Synthesizer turns panel text into audio for a given speaker identity.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, speaker string) (tts.Speech, error)
}
