package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("key")
	cfg.BaseURL = srv.URL + "/v1"
	return &OpenAIClient{Client: openai.NewClientWithConfig(cfg), apiKey: "key", model: "gpt-4o"}
}

func TestOpenAI_NoKey(t *testing.T) {
	c := NewOpenAIClient("", "")
	if _, err := c.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}); err == nil {
		t.Fatalf("expected error with missing key")
	}
	if _, err := c.CompleteJSON(context.Background(), "sys", "user"); err == nil {
		t.Fatalf("expected error with missing key")
	}
}

func TestOpenAI_Complete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"  [HR_MANAGER] Welcome!  "}}]}`))
	})
	got, err := c.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "panel instructions"},
		{Role: RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != "[HR_MANAGER] Welcome!" {
		t.Fatalf("got %q", got)
	}
}

func TestOpenAI_Failures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status_non_2xx", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(500); _, _ = w.Write([]byte("oops")) }},
		{"empty_choices", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"choices":[]}`)) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, tc.handler)
			if _, err := c.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}); err == nil {
				t.Fatalf("expected error; got nil")
			}
		})
	}
}

func TestOpenAI_CompleteJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	})
	got, err := c.CompleteJSON(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("complete json: %v", err)
	}
	if got != `{"ok":true}` {
		t.Fatalf("got %q", got)
	}
}
