package tts

import (
	"bytes"
	"context"
	"log"
	"sync"
	"time"

	msginterfaces "github.com/deepgram/deepgram-go-sdk/pkg/api/speak/v1/websocket/interfaces"
	clientinterfaces "github.com/deepgram/deepgram-go-sdk/pkg/client/interfaces/v1"
	"github.com/deepgram/deepgram-go-sdk/pkg/client/speak"

	"github.com/chadiek/interview-demo/internal/panel"
)

// deepgramVoices routes panel speakers to Aura voice models.
var deepgramVoices = map[string]string{
	panel.SpeakerHRManager: "aura-2-thalia-en",
	panel.SpeakerTechLead:  "aura-2-orion-en",
}

// DeepgramSynthesizer is the alternative provider, selected with
// TTS_PROVIDER=deepgram. It speaks over the streaming websocket API and
// buffers the linear16 frames into a single blob.
type DeepgramSynthesizer struct {
	apiKey     string
	sampleRate int
	encoding   string
}

func NewDeepgramSynthesizer(apiKey string) *DeepgramSynthesizer {
	return &DeepgramSynthesizer{apiKey: apiKey, sampleRate: 48000, encoding: "linear16"}
}

// Synthesize collects the streamed audio for the given text. Missing
// credentials or provider failures yield a degraded silent result.
func (d *DeepgramSynthesizer) Synthesize(ctx context.Context, text, speaker string) (Speech, error) {
	if d.apiKey == "" {
		log.Println("tts: DEEPGRAM_API_KEY missing - returning silent reply")
		return Speech{Degraded: true}, nil
	}
	if text == "" {
		return Speech{Degraded: true}, nil
	}

	model, ok := deepgramVoices[speaker]
	if !ok {
		model = deepgramVoices[panel.SpeakerHRManager]
	}
	options := &clientinterfaces.WSSpeakOptions{
		Model:      model,
		Encoding:   d.encoding,
		SampleRate: d.sampleRate,
	}

	var mu sync.Mutex
	var buf bytes.Buffer
	lastRecv := time.Now()
	seenAudio := false

	cb := &speakCallback{onBinary: func(data []byte) error {
		if len(data) == 0 {
			return nil
		}
		mu.Lock()
		buf.Write(data)
		lastRecv = time.Now()
		seenAudio = true
		mu.Unlock()
		return nil
	}}

	dg, err := speak.NewWSUsingCallback(ctx, d.apiKey, &clientinterfaces.ClientOptions{}, options, cb)
	if err != nil {
		log.Printf("tts: deepgram create ws client: %v", err)
		return Speech{Degraded: true}, nil
	}
	defer dg.Stop()

	if ok := dg.Connect(); !ok {
		log.Println("tts: deepgram connect failed")
		return Speech{Degraded: true}, nil
	}
	if err := dg.SpeakWithText(text); err != nil {
		log.Printf("tts: deepgram speak text: %v", err)
		return Speech{Degraded: true}, nil
	}
	if err := dg.Flush(); err != nil {
		log.Printf("tts: deepgram flush: %v", err)
	}

	// Collect until the stream goes idle or the overall deadline passes.
	idleWindow := 400 * time.Millisecond
	deadline := time.Now().Add(12 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return Speech{Degraded: true}, nil
		case <-ticker.C:
			mu.Lock()
			idle := seenAudio && time.Since(lastRecv) > idleWindow
			mu.Unlock()
			if idle || time.Now().After(deadline) {
				mu.Lock()
				audio := append([]byte(nil), buf.Bytes()...)
				mu.Unlock()
				if len(audio) == 0 {
					return Speech{Degraded: true}, nil
				}
				return Speech{Audio: audio}, nil
			}
		}
	}
}

type speakCallback struct{ onBinary func([]byte) error }

func (s *speakCallback) Open(*msginterfaces.OpenResponse) error         { return nil }
func (s *speakCallback) Metadata(*msginterfaces.MetadataResponse) error { return nil }
func (s *speakCallback) Flush(*msginterfaces.FlushedResponse) error     { return nil }
func (s *speakCallback) Clear(*msginterfaces.ClearedResponse) error     { return nil }
func (s *speakCallback) Close(*msginterfaces.CloseResponse) error       { return nil }
func (s *speakCallback) Warning(*msginterfaces.WarningResponse) error   { return nil }
func (s *speakCallback) Error(*msginterfaces.ErrorResponse) error       { return nil }
func (s *speakCallback) UnhandledEvent([]byte) error                    { return nil }
func (s *speakCallback) Binary(byMsg []byte) error {
	if s.onBinary != nil {
		return s.onBinary(byMsg)
	}
	return nil
}
