package llm

// Chat roles shared by all providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one provider-neutral chat message.
type Message struct {
	Role    string
	Content string
}
