package interview

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chadiek/interview-demo/internal/panel"
)

// State tracks where a session is in the interview lifecycle.
type State string

const (
	StateIdle           State = "idle"
	StateAwaitingAnswer State = "awaiting_candidate_audio"
	StateProcessing     State = "processing_turn"
	StateFinished       State = "finished"
)

// Session is one interview in flight. The orchestrator holds mu for the full
// duration of a turn, so overlapping calls against the same session
// serialize instead of racing.
type Session struct {
	ID string

	mu            sync.Mutex
	state         State
	startTime     time.Time
	history       []panel.Turn
	lastQuestion  string
	questionIndex int
	followUps     int
}

func newSession(id string) *Session {
	return &Session{ID: id, state: StateIdle}
}

// reset wipes the session for a fresh interview. Caller holds mu.
func (s *Session) reset(now time.Time) {
	s.state = StateIdle
	s.startTime = now
	s.history = nil
	s.lastQuestion = ""
	s.questionIndex = 0
	s.followUps = 0
}

// append records a turn. Caller holds mu.
func (s *Session) append(t panel.Turn) {
	s.history = append(s.history, t)
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns a copy of the ordered turn sequence.
func (s *Session) History() []panel.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]panel.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// LastQuestion returns the text of the panel's most recent question.
func (s *Session) LastQuestion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuestion
}

// DefaultID names the session the single-interview HTTP surface uses.
const DefaultID = "default"

// Store keeps sessions by id. The current frontend drives one interview at a
// time through DefaultID; additional sessions can be created for concurrent
// interviews.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get looks up an existing session.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// GetOrCreate returns the session with the given id, creating it when absent.
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s := newSession(id)
	st.sessions[id] = s
	return s
}

// New creates a session under a fresh identifier.
func (st *Store) New() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := newSession(uuid.NewString())
	st.sessions[s.ID] = s
	return s
}
