package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chadiek/interview-demo/internal/config"
	"github.com/chadiek/interview-demo/internal/guide"
	"github.com/chadiek/interview-demo/internal/httpserver"
	"github.com/chadiek/interview-demo/internal/interview"
	"github.com/chadiek/interview-demo/internal/llm"
	"github.com/chadiek/interview-demo/internal/report"
	"github.com/chadiek/interview-demo/internal/stt"
	"github.com/chadiek/interview-demo/internal/tts"
)

func main() {
	// Include sub-second precision in all log timestamps
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	cfg := config.Load()

	guideStore := guide.NewStore()
	guideStore.LoadFile(cfg.GuidePDFPath)

	var model interview.PanelModel = llm.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel)
	if cfg.LLMProvider == "gemini" {
		model = llm.NewGeminiClient(cfg.GeminiKey, cfg.GeminiModel)
	}

	var synth interview.Synthesizer = tts.NewMurfClient(cfg.MurfKey)
	if cfg.TTSProvider == "deepgram" {
		synth = tts.NewDeepgramSynthesizer(cfg.DeepgramKey)
	}

	transcriber := stt.NewOpenAIClient(cfg.OpenAIKey, cfg.Language)
	reports := report.NewGenerator(model, synth)
	orch := interview.New(transcriber, model, synth, guideStore, reports, cfg.MaxInterview)
	sessions := interview.NewStore()

	srv := httpserver.New(cfg, orch, sessions, guideStore)

	server := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in background
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", cfg.HTTPAddress)
		serverErrors <- server.ListenAndServe()
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("shutdown signal received: %v", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = server.Close()
	}
}
