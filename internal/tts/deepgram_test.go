package tts

import (
	"context"
	"testing"

	"github.com/chadiek/interview-demo/internal/panel"
)

func TestDeepgram_NoKeyIsDegraded(t *testing.T) {
	d := NewDeepgramSynthesizer("")
	sp, err := d.Synthesize(context.Background(), "hello", panel.SpeakerHRManager)
	if err != nil {
		t.Fatalf("missing key must degrade, not error: %v", err)
	}
	if !sp.Degraded || len(sp.Audio) != 0 {
		t.Fatalf("expected degraded silent result, got %+v", sp)
	}
}

func TestDeepgram_EmptyTextIsDegraded(t *testing.T) {
	d := NewDeepgramSynthesizer("key")
	sp, err := d.Synthesize(context.Background(), "", panel.SpeakerTechLead)
	if err != nil {
		t.Fatalf("empty text must degrade, not error: %v", err)
	}
	if !sp.Degraded {
		t.Fatalf("expected degraded result")
	}
}
