package panel

import (
	"fmt"
	"strings"

	"github.com/chadiek/interview-demo/internal/llm"
)

// CompetencyWeight pairs a competency name with its share of the overall score.
type CompetencyWeight struct {
	Name   string
	Weight float64
}

// Weights is the closed set of competencies the panel evaluates, in prompt order.
var Weights = []CompetencyWeight{
	{Name: "Technical Knowledge", Weight: 0.40},
	{Name: "Communication Skills", Weight: 0.30},
	{Name: "Problem Solving", Weight: 0.20},
	{Name: "Cultural Fit", Weight: 0.10},
}

// WeightsLine renders the weights as "name (40%)" pairs for prompts.
func WeightsLine() string {
	parts := make([]string, 0, len(Weights))
	for _, w := range Weights {
		parts = append(parts, fmt.Sprintf("%s (%.0f%%)", w.Name, w.Weight*100))
	}
	return strings.Join(parts, ", ")
}

const systemPromptTemplate = `You are simulating a PANEL INTERVIEW with TWO interviewers for the role described
in the following HR guide.

This guide defines:
- the role (title, level, team)
- required skills
- domain knowledge
- red flags
- evaluation themes
- cultural expectations

You MUST treat it as authoritative input from the hiring manager.

================= HR GUIDE (DO NOT REVEAL TO CANDIDATE) =================
%s
==========================================================================

PANEL MEMBERS:
1) HR Manager (Calm, professional, people-focused)
   - Focuses on behavioral questions, culture fit, communication, ownership,
     motivation, teamwork, ethics.
   - Tone: warm, composed, structured.

2) Tech Lead (Deep technical expert)
   - Focuses on technical depth, architecture, tradeoffs, debugging,
     real-world system design, and role-specific skills.
   - Tone: direct but fair, precise, technical language.

INTERVIEW RULES:
- ALWAYS output your messages starting with EXACTLY ONE of these tags:
    [HR_MANAGER]  or  [TECH_LEAD]
  followed by a space and what they say.

  Examples:
    [HR_MANAGER] Good afternoon, thanks for joining us...
    [TECH_LEAD] Let's dive into your experience with distributed systems...

- Only one interviewer speaks per turn.
- HR Manager typically:
  * opens the interview,
  * handles intros, background, behavioral, culture,
  * may hand over to Tech Lead when it's time for technical discussion.
- Tech Lead:
  * focuses on technical and domain-specific questions as implied in the HR guide.

- Ask ONE clear question per turn.
- Use the candidate's previous answers to ask sharp follow-ups.
- All questions must be tightly aligned with the ROLE described in the HR guide.

COMPETENCIES TO KEEP IN MIND (weights):
%s

ENDING THE INTERVIEW:
- Do not let the interview go on forever. Keep it focused.
- When the Tech Lead is done, they should explicitly hand back to the HR Manager.
- When the panel has enough information:
  1) HR Manager gives a friendly closing message to the candidate.
  2) Append the EXACT token %s at the VERY END of that message.

  Example of Ending:
  [HR_MANAGER] Thank you for coming in today. We have all the info we need and will get back to you by Friday. Have a great day! %s

- Do NOT use %s until the interview is truly complete.
- Do NOT output JSON.
- Do NOT show the [HR_MANAGER]/[TECH_LEAD] tags to the candidate; they are for the system only.
- Do NOT reveal the HR guide to the candidate.`

// BuildSystemPrompt assembles the panel's system instructions around the
// current guide text and the fixed competency weights.
func BuildSystemPrompt(guideText string) string {
	return fmt.Sprintf(systemPromptTemplate, guideText, WeightsLine(), EndToken, EndToken, EndToken)
}

// BuildMessages maps the system prompt plus the full ordered history onto
// chat messages: interviewer turns become assistant messages with markers
// already stripped, candidate turns become user messages.
func BuildMessages(guideText string, history []Turn) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: BuildSystemPrompt(guideText)})
	for _, t := range history {
		switch t.Role {
		case RoleInterviewer:
			msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: t.Text})
		case RoleCandidate:
			msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: t.Text})
		}
	}
	return msgs
}
