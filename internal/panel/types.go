package panel

// Role identifies who produced a turn.
type Role string

const (
	RoleCandidate   Role = "Candidate"
	RoleInterviewer Role = "Interviewer"
)

// Panel speaker identities.
const (
	SpeakerHRManager = "HR Manager"
	SpeakerTechLead  = "Tech Lead"
)

// Markers the model must prefix every panel turn with.
const (
	MarkerHRManager = "[HR_MANAGER]"
	MarkerTechLead  = "[TECH_LEAD]"
)

// EndToken signals interview completion when present in a panel reply.
const EndToken = "<END_INTERVIEW>"

// Turn is one recorded utterance, immutable once appended to a session.
// Speaker is empty for candidate turns.
type Turn struct {
	Role    Role   `json:"role"`
	Speaker string `json:"panelist,omitempty"`
	Text    string `json:"text"`
}

// Reply is the parsed form of one raw model output.
type Reply struct {
	Speaker  string
	Text     string
	Finished bool
}
