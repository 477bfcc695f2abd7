package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/chadiek/interview-demo/internal/panel"
)

// murfVoices routes panel speakers to Murf voice ids.
var murfVoices = map[string]string{
	panel.SpeakerHRManager: "en-US-natalie",
	panel.SpeakerTechLead:  "en-US-cooper",
}

const murfDefaultVoice = "en-US-natalie"

// MurfClient generates speech through the Murf HTTP API. Generation is a
// two-step exchange: the generate call returns JSON carrying an audio file
// URL, which is then downloaded.
type MurfClient struct {
	HTTPClient *http.Client
	APIKey     string
	BaseURL    string
}

func NewMurfClient(apiKey string) *MurfClient {
	return &MurfClient{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		APIKey:     apiKey,
		BaseURL:    "https://api.murf.ai",
	}
}

type murfRequest struct {
	VoiceID string `json:"voiceId"`
	Text    string `json:"text"`
	Format  string `json:"format"`
	Channel string `json:"channel"`
	Style   string `json:"style"`
}

type murfResponse struct {
	AudioFile string `json:"audioFile"`
}

// Synthesize returns MP3 bytes for the given text spoken by the panel member.
func (m *MurfClient) Synthesize(ctx context.Context, text, speaker string) (Speech, error) {
	if m.APIKey == "" {
		log.Println("tts: MURF_API_KEY missing - returning silent reply")
		return Speech{Degraded: true}, nil
	}
	if text == "" {
		return Speech{Degraded: true}, nil
	}

	voice, ok := murfVoices[speaker]
	if !ok {
		voice = murfDefaultVoice
	}

	body, _ := json.Marshal(murfRequest{
		VoiceID: voice,
		Text:    text,
		Format:  "mp3",
		Channel: "MONO",
		Style:   "Conversational",
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/v1/speech/generate", bytes.NewReader(body))
	if err != nil {
		return Speech{}, fmt.Errorf("tts: build murf request: %w", err)
	}
	req.Header.Set("api-key", m.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("accept", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		log.Printf("tts: murf request failed: %v", err)
		return Speech{Degraded: true}, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		log.Printf("tts: murf error: status=%d body=%s", resp.StatusCode, string(b))
		return Speech{Degraded: true}, nil
	}

	var mr murfResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil || mr.AudioFile == "" {
		log.Printf("tts: murf response missing audioFile url: %v", err)
		return Speech{Degraded: true}, nil
	}

	dlReq, err := http.NewRequestWithContext(ctx, http.MethodGet, mr.AudioFile, nil)
	if err != nil {
		return Speech{}, fmt.Errorf("tts: build download request: %w", err)
	}
	dlResp, err := m.HTTPClient.Do(dlReq)
	if err != nil {
		log.Printf("tts: murf audio download failed: %v", err)
		return Speech{Degraded: true}, nil
	}
	defer dlResp.Body.Close()
	if dlResp.StatusCode != http.StatusOK {
		log.Printf("tts: murf audio download status=%d", dlResp.StatusCode)
		return Speech{Degraded: true}, nil
	}
	audio, err := io.ReadAll(dlResp.Body)
	if err != nil {
		log.Printf("tts: read murf audio: %v", err)
		return Speech{Degraded: true}, nil
	}
	return Speech{Audio: audio}, nil
}
