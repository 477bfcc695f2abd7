package report

import (
	"context"
	"fmt"
	"log"

	"github.com/chadiek/interview-demo/internal/panel"
	"github.com/chadiek/interview-demo/internal/tts"
)

// Evaluator produces a strict-JSON evaluation for a prompt.
type Evaluator interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// Narrator speaks the closing message.
type Narrator interface {
	Synthesize(ctx context.Context, text, speaker string) (tts.Speech, error)
}

const evaluatorSystem = "You are a JSON-outputting HR analysis engine. Always return STRICT JSON."

// Generator turns a finished interview into a validated report plus a spoken
// closing message.
type Generator struct {
	model Evaluator
	tts   Narrator
}

func NewGenerator(model Evaluator, synth Narrator) *Generator {
	return &Generator{model: model, tts: synth}
}

// Result is everything the closing turn hands back to the HTTP surface.
type Result struct {
	Report        *Report
	ClosingText   string
	Audio         []byte
	AudioDegraded bool
	LastCandidate string
	Speaker       string
}

// Generate evaluates the full history against the guide. Any model or
// validation failure fails the whole call; there is no partial report.
func (g *Generator) Generate(ctx context.Context, guideText string, history []panel.Turn) (*Result, error) {
	log.Println("report: generating final evaluation")

	raw, err := g.model.CompleteJSON(ctx, evaluatorSystem, BuildEvaluationPrompt(guideText, history))
	if err != nil {
		return nil, fmt.Errorf("report: evaluation call: %w", err)
	}
	rep, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	closing := fmt.Sprintf("Interview complete. Overall Score: %.1f/10. Result: %s.", rep.OverallScore, rep.Recommendation)
	speech, err := g.tts.Synthesize(ctx, closing, panel.SpeakerHRManager)
	if err != nil {
		return nil, fmt.Errorf("report: synthesize closing: %w", err)
	}

	return &Result{
		Report:        rep,
		ClosingText:   closing,
		Audio:         speech.Audio,
		AudioDegraded: speech.Degraded,
		LastCandidate: LastCandidateText(history),
		Speaker:       panel.SpeakerHRManager,
	}, nil
}
