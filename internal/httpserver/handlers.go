package httpserver

import (
	"encoding/base64"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/chadiek/interview-demo/internal/config"
	"github.com/chadiek/interview-demo/internal/guide"
	"github.com/chadiek/interview-demo/internal/interview"
)

// Handlers binds the orchestrator and stores to the HTTP endpoints.
type Handlers struct {
	Orch     Interviewer
	Sessions *interview.Store
	Guide    *guide.Store
	Cfg      config.Config
}

func (h Handlers) Register(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/start", h.start)
	e.POST("/chat", h.chat)
	e.POST("/upload_hr_pdf", h.uploadHRPDF)
	e.GET("/hr_questionnaire", h.questionnaire)
	e.Static("/static", h.Cfg.StaticDir)
}

// sessionID resolves the target session; the frontend omits it and gets the
// single default interview.
func sessionID(c echo.Context) string {
	if id := c.QueryParam("session_id"); id != "" {
		return id
	}
	return interview.DefaultID
}

func (h Handlers) start(c echo.Context) error {
	s := h.Sessions.GetOrCreate(sessionID(c))
	reply, err := h.Orch.Start(c.Request().Context(), s)
	if err != nil {
		log.Printf("httpserver: start interview: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start interview"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"text":         reply.Text,
		"audio_base64": base64.StdEncoding.EncodeToString(reply.Audio),
		"speaker_role": reply.Speaker,
	})
}

func (h Handlers) chat(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing audio file"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable audio file"})
	}
	defer f.Close()
	audio, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable audio file"})
	}

	s, ok := h.Sessions.Get(sessionID(c))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "interview not started"})
	}

	reply, err := h.Orch.SubmitAnswer(c.Request().Context(), s, audio, fh.Filename)
	if err != nil {
		log.Printf("httpserver: chat turn: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to process answer"})
	}

	resp := echo.Map{
		"user_transcript":  reply.UserTranscript,
		"ai_response_text": reply.Text,
		"ai_audio_base64":  base64.StdEncoding.EncodeToString(reply.Audio),
		"speaker_role":     reply.Speaker,
		"is_end":           reply.Finished,
	}
	if reply.Report != nil {
		resp["report"] = reply.Report
	}
	return c.JSON(http.StatusOK, resp)
}

func (h Handlers) uploadHRPDF(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "missing PDF file"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "unreadable PDF file"})
	}
	defer f.Close()
	contents, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "unreadable PDF file"})
	}

	// Persist so a restart picks the guide up again; extraction failures
	// still count as a successful upload with an empty guide.
	if dir := filepath.Dir(h.Cfg.GuidePDFPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("httpserver: create guide dir: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": "Failed to upload HR guide."})
		}
	}
	if err := os.WriteFile(h.Cfg.GuidePDFPath, contents, 0o644); err != nil {
		log.Printf("httpserver: write guide pdf: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": "Failed to upload HR guide."})
	}
	h.Guide.SetPDF(contents)

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "message": "HR guide uploaded and loaded successfully."})
}

func (h Handlers) questionnaire(c echo.Context) error {
	if _, err := os.Stat(h.Cfg.QuestionnairePath); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Questionnaire PDF not found. Put hr_questionnaire.pdf in static/."})
	}
	return c.Attachment(h.Cfg.QuestionnairePath, "HR_Interview_Setup_Form.pdf")
}
