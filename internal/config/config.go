package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	HTTPAddress string

	LLMProvider string
	OpenAIKey   string
	OpenAIModel string
	GeminiKey   string
	GeminiModel string

	TTSProvider string
	MurfKey     string
	DeepgramKey string

	Language          string
	GuidePDFPath      string
	QuestionnairePath string
	StaticDir         string

	MaxInterview time.Duration
}

// Load reads environment variables and returns Config with sane defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	addr := os.Getenv("HTTP_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}

	llmProvider := os.Getenv("LLM_PROVIDER")
	if llmProvider == "" {
		llmProvider = "openai"
	}
	openAIKey := os.Getenv("OPENAI_API_KEY")
	if openAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - transcription and panel turns will not work")
	}
	openAIModel := os.Getenv("OPENAI_MODEL_ID")
	if openAIModel == "" {
		openAIModel = "gpt-4o"
	}
	geminiKey := os.Getenv("GEMINI_API_KEY")
	geminiModel := os.Getenv("GEMINI_MODEL_ID")
	if geminiModel == "" {
		geminiModel = "gemini-2.0-flash"
	}
	if llmProvider == "gemini" && geminiKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set - panel turns will not work")
	}

	ttsProvider := os.Getenv("TTS_PROVIDER")
	if ttsProvider == "" {
		ttsProvider = "murf"
	}
	murfKey := os.Getenv("MURF_API_KEY")
	if ttsProvider == "murf" && murfKey == "" {
		log.Println("Warning: MURF_API_KEY not set - replies will be silent")
	}
	deepgramKey := os.Getenv("DEEPGRAM_API_KEY")
	if ttsProvider == "deepgram" && deepgramKey == "" {
		log.Println("Warning: DEEPGRAM_API_KEY not set - replies will be silent")
	}

	language := os.Getenv("DEFAULT_LANGUAGE")
	if language == "" {
		language = "en-US"
	}

	guidePath := os.Getenv("HR_PDF_PATH")
	if guidePath == "" {
		guidePath = "hr_docs/hr_guide.pdf"
	}
	questionnairePath := os.Getenv("QUESTIONNAIRE_PDF_PATH")
	if questionnairePath == "" {
		questionnairePath = "static/hr_questionnaire.pdf"
	}
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "static"
	}

	maxInterview := 300 * time.Second
	if v := os.Getenv("MAX_INTERVIEW_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			maxInterview = time.Duration(secs) * time.Second
		} else {
			log.Printf("Warning: invalid MAX_INTERVIEW_SECONDS=%q - keeping %s", v, maxInterview)
		}
	}

	log.Printf("config: HTTP_ADDRESS=%s LLM_PROVIDER=%s TTS_PROVIDER=%s", addr, llmProvider, ttsProvider)
	return Config{
		HTTPAddress:       addr,
		LLMProvider:       llmProvider,
		OpenAIKey:         openAIKey,
		OpenAIModel:       openAIModel,
		GeminiKey:         geminiKey,
		GeminiModel:       geminiModel,
		TTSProvider:       ttsProvider,
		MurfKey:           murfKey,
		DeepgramKey:       deepgramKey,
		Language:          language,
		GuidePDFPath:      guidePath,
		QuestionnairePath: questionnairePath,
		StaticDir:         staticDir,
		MaxInterview:      maxInterview,
	}
}
