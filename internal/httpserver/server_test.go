package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/chadiek/interview-demo/internal/config"
	"github.com/chadiek/interview-demo/internal/guide"
	"github.com/chadiek/interview-demo/internal/interview"
	"github.com/chadiek/interview-demo/internal/report"
)

type fakeOrchestrator struct {
	startReply  *interview.Reply
	submitReply *interview.Reply
	err         error
	gotAudio    []byte
}

func (f *fakeOrchestrator) Start(ctx context.Context, s *interview.Session) (*interview.Reply, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.startReply, nil
}

func (f *fakeOrchestrator) SubmitAnswer(ctx context.Context, s *interview.Session, audio []byte, filename string) (*interview.Reply, error) {
	f.gotAudio = audio
	if f.err != nil {
		return nil, f.err
	}
	return f.submitReply, nil
}

func newTestServer(t *testing.T, orch Interviewer) (*Server, *interview.Store) {
	t.Helper()
	cfg := config.Config{
		StaticDir:         t.TempDir(),
		GuidePDFPath:      filepath.Join(t.TempDir(), "hr_guide.pdf"),
		QuestionnairePath: filepath.Join(t.TempDir(), "hr_questionnaire.pdf"),
	}
	sessions := interview.NewStore()
	return New(cfg, orch, sessions, guide.NewStore()), sessions
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestServer_Healthz(t *testing.T) {
	srv, _ := newTestServer(t, &fakeOrchestrator{})
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestStart_ReturnsOpeningTurn(t *testing.T) {
	orch := &fakeOrchestrator{startReply: &interview.Reply{
		Text:    "Welcome! Tell us about yourself.",
		Audio:   []byte{1, 2},
		Speaker: "HR Manager",
	}}
	srv, sessions := newTestServer(t, orch)

	r := httptest.NewRequest(http.MethodGet, "/start", nil)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["text"] != "Welcome! Tell us about yourself." {
		t.Fatalf("text: %v", body["text"])
	}
	if body["speaker_role"] != "HR Manager" {
		t.Fatalf("speaker_role: %v", body["speaker_role"])
	}
	if body["audio_base64"] == "" {
		t.Fatalf("expected audio_base64")
	}
	if _, ok := sessions.Get(interview.DefaultID); !ok {
		t.Fatalf("default session must exist after /start")
	}
}

func TestStart_OrchestratorError(t *testing.T) {
	srv, _ := newTestServer(t, &fakeOrchestrator{err: errors.New("boom")})
	r := httptest.NewRequest(http.MethodGet, "/start", nil)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, r)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestChat_MissingFile(t *testing.T) {
	srv, _ := newTestServer(t, &fakeOrchestrator{})
	r := httptest.NewRequest(http.MethodPost, "/chat", nil)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestChat_NotStarted(t *testing.T) {
	srv, _ := newTestServer(t, &fakeOrchestrator{})
	body, contentType := multipartBody(t, "file", "answer.webm", []byte("audio"))
	r := httptest.NewRequest(http.MethodPost, "/chat", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestChat_TurnWithReport(t *testing.T) {
	orch := &fakeOrchestrator{submitReply: &interview.Reply{
		UserTranscript: "thanks for having me",
		Text:           "Thanks, we'll be in touch!",
		Audio:          []byte{7},
		Speaker:        "HR Manager",
		Finished:       true,
		Report: &report.Report{
			Scores:         map[string]float64{"Technical Knowledge": 8},
			OverallScore:   7.4,
			Recommendation: report.Hire,
			Pros:           []string{"a", "b", "c"},
			Cons:           []string{"d", "e", "f"},
			Summary:        "Solid.",
		},
	}}
	srv, sessions := newTestServer(t, orch)
	sessions.GetOrCreate(interview.DefaultID)

	body, contentType := multipartBody(t, "file", "answer.webm", []byte("audio"))
	r := httptest.NewRequest(http.MethodPost, "/chat", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if string(orch.gotAudio) != "audio" {
		t.Fatalf("audio passed through wrong: %q", orch.gotAudio)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["is_end"] != true {
		t.Fatalf("is_end: %v", resp["is_end"])
	}
	if _, ok := resp["report"]; !ok {
		t.Fatalf("expected report in response")
	}
	if resp["user_transcript"] != "thanks for having me" {
		t.Fatalf("user_transcript: %v", resp["user_transcript"])
	}
}

func TestChat_OrchestratorError(t *testing.T) {
	srv, sessions := newTestServer(t, &fakeOrchestrator{err: errors.New("boom")})
	sessions.GetOrCreate(interview.DefaultID)

	body, contentType := multipartBody(t, "file", "answer.webm", []byte("audio"))
	r := httptest.NewRequest(http.MethodPost, "/chat", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, r)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestUploadHRPDF_ReplacesGuide(t *testing.T) {
	cfg := config.Config{
		StaticDir:         t.TempDir(),
		GuidePDFPath:      filepath.Join(t.TempDir(), "docs", "hr_guide.pdf"),
		QuestionnairePath: filepath.Join(t.TempDir(), "hr_questionnaire.pdf"),
	}
	g := guide.NewStore()
	srv := New(cfg, &fakeOrchestrator{}, interview.NewStore(), g)

	body, contentType := multipartBody(t, "file", "guide.pdf", []byte("not really a pdf"))
	r := httptest.NewRequest(http.MethodPost, "/upload_hr_pdf", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, r)

	// Broken extraction still counts as a successful upload with empty guide.
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["status"] != "ok" {
		t.Fatalf("status: %v", resp["status"])
	}
	if g.Text() != "" {
		t.Fatalf("broken pdf must leave empty guide")
	}
}

func TestUploadHRPDF_MissingFile(t *testing.T) {
	srv, _ := newTestServer(t, &fakeOrchestrator{})
	r := httptest.NewRequest(http.MethodPost, "/upload_hr_pdf", nil)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestQuestionnaire_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, &fakeOrchestrator{})
	r := httptest.NewRequest(http.MethodGet, "/hr_questionnaire", nil)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
