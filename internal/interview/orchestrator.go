package interview

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/chadiek/interview-demo/internal/guide"
	"github.com/chadiek/interview-demo/internal/panel"
	"github.com/chadiek/interview-demo/internal/report"
)

// ErrFinished is returned when an answer arrives for an interview that
// already produced its report.
var ErrFinished = errors.New("interview: session already finished")

// clarificationText is the fixed reply for silent or unintelligible audio.
// Silence never counts as a turn and never advances the panel.
const clarificationText = "Come again? I didn't hear anything."

// DefaultCeiling is the wall-clock safety cutoff for one interview.
const DefaultCeiling = 5 * time.Minute

// Reply is what one orchestrator call hands back to the HTTP surface.
type Reply struct {
	UserTranscript string
	Text           string
	Audio          []byte
	AudioDegraded  bool
	Speaker        string
	Finished       bool
	Report         *report.Report
}

// Orchestrator owns the interview state machine: it sequences candidate and
// panel turns, detects end-of-interview and hands finished sessions to the
// report generator.
type Orchestrator struct {
	stt     Transcriber
	model   PanelModel
	tts     Synthesizer
	guide   *guide.Store
	reports *report.Generator
	ceiling time.Duration
	now     func() time.Time
}

// New wires the orchestrator. A non-positive ceiling falls back to
// DefaultCeiling; the clock is injectable for tests via WithClock.
func New(transcriber Transcriber, model PanelModel, synth Synthesizer, g *guide.Store, reports *report.Generator, ceiling time.Duration) *Orchestrator {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	return &Orchestrator{
		stt:     transcriber,
		model:   model,
		tts:     synth,
		guide:   g,
		reports: reports,
		ceiling: ceiling,
		now:     time.Now,
	}
}

// WithClock replaces the wall clock. Test hook.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Start resets the session and asks the panel for its opening turn, which is
// usually the HR Manager's greeting plus the first question.
func (o *Orchestrator) Start(ctx context.Context, s *Session) (*Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset(o.now())

	raw, err := o.model.Complete(ctx, panel.BuildMessages(o.guide.Text(), s.history))
	if err != nil {
		return nil, err
	}
	pr := panel.ParseReply(raw)
	s.append(panel.Turn{Role: panel.RoleInterviewer, Speaker: pr.Speaker, Text: pr.Text})
	s.lastQuestion = pr.Text
	s.state = StateAwaitingAnswer

	speech, err := o.tts.Synthesize(ctx, pr.Text, pr.Speaker)
	if err != nil {
		return nil, err
	}
	return &Reply{Text: pr.Text, Audio: speech.Audio, AudioDegraded: speech.Degraded, Speaker: pr.Speaker}, nil
}

// SubmitAnswer processes one recorded candidate answer: transcribe, advance
// the panel, synthesize the reply. A session past the time ceiling is routed
// straight to the report without touching the new audio.
func (o *Orchestrator) SubmitAnswer(ctx context.Context, s *Session, audio []byte, filename string) (*Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateFinished {
		return nil, ErrFinished
	}

	if o.now().Sub(s.startTime) > o.ceiling {
		log.Printf("interview: session %s hit the time ceiling, generating report", s.ID)
		return o.finish(ctx, s)
	}

	s.state = StateProcessing

	tr, err := o.stt.Transcribe(ctx, audio, filename)
	if err != nil {
		s.state = StateAwaitingAnswer
		return nil, err
	}

	userText := strings.TrimSpace(tr.Text)
	if userText == "" {
		// No usable input: one fixed clarification turn from the HR Manager,
		// no candidate turn, no model call.
		s.append(panel.Turn{Role: panel.RoleInterviewer, Speaker: panel.SpeakerHRManager, Text: clarificationText})
		speech, err := o.tts.Synthesize(ctx, clarificationText, panel.SpeakerHRManager)
		if err != nil {
			s.state = StateAwaitingAnswer
			return nil, err
		}
		s.state = StateAwaitingAnswer
		return &Reply{Text: clarificationText, Audio: speech.Audio, AudioDegraded: speech.Degraded, Speaker: panel.SpeakerHRManager}, nil
	}

	s.append(panel.Turn{Role: panel.RoleCandidate, Text: userText})

	raw, err := o.model.Complete(ctx, panel.BuildMessages(o.guide.Text(), s.history))
	if err != nil {
		// The candidate turn stays in history; the next successful call
		// resumes from it instead of rolling back.
		s.state = StateAwaitingAnswer
		return nil, err
	}
	pr := panel.ParseReply(raw)
	if pr.Text != "" {
		s.append(panel.Turn{Role: panel.RoleInterviewer, Speaker: pr.Speaker, Text: pr.Text})
		s.lastQuestion = pr.Text
		s.questionIndex++
	}

	if pr.Finished {
		return o.finish(ctx, s)
	}

	speech, err := o.tts.Synthesize(ctx, pr.Text, pr.Speaker)
	if err != nil {
		s.state = StateAwaitingAnswer
		return nil, err
	}
	s.state = StateAwaitingAnswer
	return &Reply{
		UserTranscript: userText,
		Text:           pr.Text,
		Audio:          speech.Audio,
		AudioDegraded:  speech.Degraded,
		Speaker:        pr.Speaker,
	}, nil
}

// finish generates the report and closes the session. The session only moves
// to Finished once the report succeeds, so a failed report call can be
// retried with the next request. Caller holds s.mu.
func (o *Orchestrator) finish(ctx context.Context, s *Session) (*Reply, error) {
	res, err := o.reports.Generate(ctx, o.guide.Text(), s.history)
	if err != nil {
		s.state = StateAwaitingAnswer
		return nil, err
	}
	s.state = StateFinished
	return &Reply{
		UserTranscript: res.LastCandidate,
		Text:           res.ClosingText,
		Audio:          res.Audio,
		AudioDegraded:  res.AudioDegraded,
		Speaker:        res.Speaker,
		Finished:       true,
		Report:         res.Report,
	}, nil
}
