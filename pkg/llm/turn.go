package llm

// Roles a Turn can carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message of a conversation. Turns are never edited once created;
// a history only grows by appending.
type Turn struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // The message text
}

// AppendExchange returns history extended with a user turn followed by an
// assistant turn. The input slice is copied so the caller's backing array is
// left untouched.
func AppendExchange(history []Turn, userMessage, assistantReply string) []Turn {
	out := make([]Turn, 0, len(history)+2)
	out = append(out, history...)
	return append(out,
		Turn{Role: RoleUser, Content: userMessage},
		Turn{Role: RoleAssistant, Content: assistantReply},
	)
}
