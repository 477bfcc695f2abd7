package httpserver

import (
	"context"
	"net/http"

	"github.com/chadiek/interview-demo/internal/config"
	"github.com/chadiek/interview-demo/internal/guide"
	"github.com/chadiek/interview-demo/internal/interview"
)

// Interviewer is the slice of the orchestrator the HTTP surface needs.
type Interviewer interface {
	Start(ctx context.Context, s *interview.Session) (*interview.Reply, error)
	SubmitAnswer(ctx context.Context, s *interview.Session, audio []byte, filename string) (*interview.Reply, error)
}

// Server bundles the HTTP router and dependencies.
type Server struct {
	Router http.Handler
}

// New constructs the HTTP server with routes.
func New(cfg config.Config, orch Interviewer, sessions *interview.Store, guideStore *guide.Store) *Server {
	e := newEcho()

	h := Handlers{
		Orch:     orch,
		Sessions: sessions,
		Guide:    guideStore,
		Cfg:      cfg,
	}
	h.Register(e)

	return &Server{Router: e}
}
